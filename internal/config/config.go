package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
	"github.com/twiced-technology-gmbh/agegate/internal/clierr"
	"github.com/twiced-technology-gmbh/agegate/internal/date"
	"github.com/twiced-technology-gmbh/agegate/internal/filelock"
)

const (
	fileMode     = 0o600
	dirMode      = 0o750
	lockFileName = ".lock"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no agegate config found (run 'agegate init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the agegate configuration.
type Config struct {
	Version int         `yaml:"version"`
	Field   FieldConfig `yaml:"field"`
	TUI     TUIConfig   `yaml:"tui,omitempty"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// FieldConfig configures the birth date field.
type FieldConfig struct {
	MinAge            int    `yaml:"min_age" json:"min_age"`
	MaxAge            int    `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	Format            string `yaml:"format" json:"format"`
	OutputFormat      string `yaml:"output_format" json:"output_format"`
	Pattern           string `yaml:"pattern" json:"pattern"`
	InvalidCharacters string `yaml:"invalid_characters" json:"invalid_characters"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	HelpStyle string `yaml:"help_style,omitempty" json:"help_style,omitempty"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		Field: FieldConfig{
			MinAge:            DefaultMinAge,
			MaxAge:            DefaultMaxAge,
			Format:            DefaultFormat,
			OutputFormat:      DefaultOutputFormat,
			Pattern:           DefaultPattern,
			InvalidCharacters: DefaultInvalidCharacters,
		},
		TUI: TUIConfig{Title: DefaultTitle, HelpStyle: DefaultHelpStyle},
	}
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// MaxAge returns the configured maximum age, or DefaultMaxAge when unset.
func (c *Config) MaxAge() int {
	if c.Field.MaxAge == 0 {
		return DefaultMaxAge
	}
	return c.Field.MaxAge
}

// Title returns the heading shown above the field.
func (c *Config) Title() string {
	if c.TUI.Title == "" {
		return DefaultTitle
	}
	return c.TUI.Title
}

// HelpStyle returns the glamour style for the help screen.
func (c *Config) HelpStyle() string {
	if c.TUI.HelpStyle == "" {
		return DefaultHelpStyle
	}
	return c.TUI.HelpStyle
}

// BirthDate returns the field configuration in the form the controller takes.
func (c *Config) BirthDate() birthdate.Config {
	return birthdate.Config{
		MinAge:            c.Field.MinAge,
		MaxAge:            c.MaxAge(),
		Format:            c.Field.Format,
		OutputFormat:      c.Field.OutputFormat,
		Pattern:           c.Field.Pattern,
		InvalidCharacters: c.Field.InvalidCharacters,
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := c.validateField(); err != nil {
		return err
	}
	if c.TUI.HelpStyle != "" && !slices.Contains(HelpStyles, c.TUI.HelpStyle) {
		return fmt.Errorf("%w: tui.help_style %q must be one of %s",
			ErrInvalid, c.TUI.HelpStyle, strings.Join(HelpStyles, ", "))
	}
	return nil
}

func (c *Config) validateField() error {
	f := c.Field
	if f.MinAge < 0 {
		return fmt.Errorf("%w: field.min_age must be >= 0", ErrInvalid)
	}
	if c.MaxAge() <= f.MinAge {
		return fmt.Errorf("%w: field.max_age must be greater than field.min_age", ErrInvalid)
	}
	if err := validateFormat(f.Format); err != nil {
		return err
	}
	if _, err := date.NewLayout(f.OutputFormat); err != nil {
		return fmt.Errorf("%w: field.output_format: %w", ErrInvalid, err)
	}
	if f.Pattern == "" {
		return fmt.Errorf("%w: field.pattern is required", ErrInvalid)
	}
	if _, err := regexp2.Compile(f.Pattern, regexp2.ECMAScript); err != nil {
		return fmt.Errorf("%w: field.pattern: %w", ErrInvalid, err)
	}
	if f.InvalidCharacters == "" {
		return fmt.Errorf("%w: field.invalid_characters is required", ErrInvalid)
	}
	if _, err := regexp2.Compile(f.InvalidCharacters, regexp2.ECMAScript); err != nil {
		return fmt.Errorf("%w: field.invalid_characters: %w", ErrInvalid, err)
	}
	return nil
}

// validateFormat requires each of Y, M and D to appear as one contiguous run,
// which is what the field's selection ranges rely on.
func validateFormat(format string) error {
	if _, err := date.NewLayout(format); err != nil {
		return fmt.Errorf("%w: field.format: %w", ErrInvalid, err)
	}
	for _, marker := range []rune{'Y', 'M', 'D'} {
		first := strings.IndexRune(format, marker)
		if first < 0 {
			return fmt.Errorf("%w: field.format %q has no %c", ErrInvalid, format, marker)
		}
		last := strings.LastIndex(format, string(marker))
		if strings.Trim(format[first:last+1], string(marker)) != "" {
			return fmt.Errorf("%w: field.format %q has a split %c run", ErrInvalid, format, marker)
		}
	}
	return nil
}

// Init creates the config directory and writes cfg into it.
func Init(dir string, cfg *Config) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg.SetDir(absDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file while holding the directory lock.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	lock, err := filelock.Acquire(filepath.Join(c.dir, lockFileName))
	if err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer lock.Release() //nolint:errcheck // release errors leave nothing to recover

	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	if cfg.Version > CurrentVersion {
		return nil, fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade agegate)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a config directory
// containing config.yml. Returns the absolute path to the config directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the config directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no agegate config found (run 'agegate init' to create one)")
		}
		dir = parent
	}
}
