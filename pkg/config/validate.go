package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Issue is one finding of Check.
type Issue struct {
	// Field is the YAML path of the offending field, e.g. "glyphs.checked".
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string

	// Warning marks findings that do not prevent use of the configuration.
	Warning bool
}

// knownLogLevels lists the accepted log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	return f == FormatTable || f == FormatJSON || f == FormatMarkdown
}

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// IsValidLogLevel returns true if level is an accepted log_level value.
func IsValidLogLevel(level string) bool {
	return knownLogLevels[strings.ToLower(level)]
}

// Check inspects the configuration and reports every problem found.
// Empty fields are not reported; they mean "keep the default".
func (c *Config) Check() []Issue {
	if c == nil {
		return nil
	}

	var issues []Issue

	if c.Flavor != "" && !c.Flavor.IsValid() {
		issues = append(issues, Issue{
			Field:   "flavor",
			Value:   c.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", c.Flavor),
		})
	}

	if c.Format != "" && !c.Format.IsValid() {
		issues = append(issues, Issue{
			Field:   "format",
			Value:   c.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: table, json, markdown", c.Format),
		})
	}

	if c.Color != "" && !c.Color.IsValid() {
		issues = append(issues, Issue{
			Field:   "color",
			Value:   c.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", c.Color),
		})
	}

	if c.LogLevel != "" && !IsValidLogLevel(c.LogLevel) {
		issues = append(issues, Issue{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error, fatal", c.LogLevel),
		})
	}

	for i, glyph := range c.Glyphs.Bullets {
		if strings.TrimSpace(glyph) == "" {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("glyphs.bullets[%d]", i),
				Value:   glyph,
				Message: "bullet glyph must not be blank",
			})
		}
	}

	if c.Classes.Marker != "" && c.Classes.Marker == c.Classes.Hidden {
		issues = append(issues, Issue{
			Field:   "classes.hidden",
			Value:   c.Classes.Hidden,
			Message: "hidden and marker classes are equal; revealed markers will look hidden",
			Warning: true,
		})
	}

	return issues
}

// Validate returns the errors found by Check joined together, or nil.
// Warnings are not errors.
func (c *Config) Validate() error {
	var errs []error
	for _, issue := range c.Check() {
		if issue.Warning {
			continue
		}
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, issue.Field, issue.Message))
	}
	return errors.Join(errs...)
}
