// Package output handles formatting CLI output as styled text or JSON.
package output

import (
	"os"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (text).
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatText outputs human-readable, styled text.
	FormatText
)

// Detect returns the appropriate format based on flags and environment.
// Default is text when no explicit format is set.
func Detect(jsonFlag bool) Format {
	if jsonFlag {
		return FormatJSON
	}

	switch os.Getenv("AGEGATE_OUTPUT") {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	}

	return FormatText
}
