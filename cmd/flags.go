package cmd

import (
	"fmt"
	"strings"

	"github.com/jparise/semtime/internal/output"
	"github.com/jparise/semtime/internal/timeparse"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// timestampMode selects the unit of digit-only input.
type timestampMode string

const (
	timestampsAuto    timestampMode = "auto"
	timestampsMillis  timestampMode = "ms"
	timestampsSeconds timestampMode = "s"
)

func (m *timestampMode) String() string {
	return string(*m)
}

func (m *timestampMode) Set(v string) error {
	switch v {
	case "auto", "ms", "s":
		*m = timestampMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"ms\", or \"s\"")
	}
}

func (m *timestampMode) Type() string {
	return "timestampMode"
}

// millis reports whether digit-only input should be read as milliseconds.
func (m timestampMode) millis(input string) bool {
	switch m {
	case timestampsMillis:
		return true
	case timestampsSeconds:
		return false
	default:
		return timeparse.LooksLikeMillis(strings.TrimSpace(input))
	}
}

// outputFormat selects text or JSON output.
type outputFormat string

const (
	outputText outputFormat = outputFormat(output.FormatText)
	outputJSON outputFormat = outputFormat(output.FormatJSON)
)

func (f *outputFormat) String() string {
	return string(*f)
}

func (f *outputFormat) Set(v string) error {
	switch v {
	case "text", "json":
		*f = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"text\" or \"json\"")
	}
}

func (f *outputFormat) Type() string {
	return "outputFormat"
}
