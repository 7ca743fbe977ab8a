package configloader

import (
	"strings"

	"github.com/yaklabco/mdlive/pkg/config"
)

// ValidationError reports an invalid setting, with the file it came from
// when known. It matches config.ErrInvalidConfig under errors.Is.
type ValidationError struct {
	FilePath string
	Field    string // YAML path, e.g. "glyphs.bullets[0]"
	Value    any
	Message  string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field, e.Message} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() error {
	return config.ErrInvalidConfig
}

// check runs cfg.Check and splits its findings. The first error found is
// returned; warnings are rendered as messages. path is attached to both.
func check(cfg *config.Config, path string) ([]string, error) {
	var (
		warnings []string
		first    *ValidationError
	)

	for _, issue := range cfg.Check() {
		verr := &ValidationError{
			FilePath: path,
			Field:    issue.Field,
			Value:    issue.Value,
			Message:  issue.Message,
		}
		switch {
		case issue.Warning:
			warnings = append(warnings, verr.Error())
		case first == nil:
			first = verr
		}
	}

	if first != nil {
		return warnings, first
	}
	return warnings, nil
}
