// Package config handles agegate configuration.
package config

const (
	// DefaultDir is the default configuration directory name.
	DefaultDir = ".agegate"
	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"
	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// DefaultMinAge is the default minimum age in whole years.
	DefaultMinAge = 18
	// DefaultMaxAge is the oldest plausible age in whole years.
	DefaultMaxAge = 130
	// DefaultFormat is the default expected input format.
	DefaultFormat = "YYYYMMDD"
	// DefaultOutputFormat is the default format of accepted dates.
	DefaultOutputFormat = "YYYY-MM-DD"
	// DefaultPattern is the default native validation pattern.
	DefaultPattern = `\d{8}`
	// DefaultInvalidCharacters matches everything that is not a digit.
	DefaultInvalidCharacters = `[^\d]`

	// DefaultTitle is the heading shown above the field.
	DefaultTitle = "Enter your birth date"
	// DefaultHelpStyle is the glamour style used for the help screen.
	DefaultHelpStyle = "dark"
)

// HelpStyles lists the accepted tui.help_style values.
var HelpStyles = []string{"ascii", "auto", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}
