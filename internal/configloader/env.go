package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlive/pkg/config"
)

const envPrefix = "MDLIVE_"

// envVar binds one MDLIVE_* variable to the setting it overrides.
type envVar struct {
	name  string // without the prefix
	field string // YAML path of the setting
	help  string
	set   func(cfg *config.Config, value string) error
}

// envVars is sorted by name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"BULLETS", "glyphs.bullets", "Comma-separated bullet glyphs by nesting depth",
		func(cfg *config.Config, v string) error { cfg.Glyphs.Bullets = splitList(v); return nil }},
	{"CHECKED", "glyphs.checked", "Glyph for checked tasks",
		func(cfg *config.Config, v string) error { cfg.Glyphs.Checked = v; return nil }},
	{"COLOR", "color", "Preview colors: auto, always or never",
		func(cfg *config.Config, v string) error { cfg.Color = config.ColorMode(v); return nil }},
	{"DETECT_CODE_LANGUAGE", "detect_code_language", "Guess code block languages: true or false",
		func(cfg *config.Config, v string) error {
			detect, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("want true or false, got %q", v)
			}
			cfg.DetectCodeLanguage = &detect
			return nil
		}},
	{"FLAVOR", "flavor", "Markdown flavor: commonmark or gfm",
		func(cfg *config.Config, v string) error { cfg.Flavor = config.Flavor(v); return nil }},
	{"FORMAT", "format", "Decorations output format: table, json or markdown",
		func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil }},
	{"LOG_LEVEL", "log_level", "Minimum log level: debug, info, warn or error",
		func(cfg *config.Config, v string) error { cfg.LogLevel = v; return nil }},
	{"UNCHECKED", "glyphs.unchecked", "Glyph for unchecked tasks",
		func(cfg *config.Config, v string) error { cfg.Glyphs.Unchecked = v; return nil }},
}

// LoadFromEnv overrides settings of cfg with the MDLIVE_* variables that
// are set and non-empty.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		value := os.Getenv(envPrefix + v.name)
		if value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, v.name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvVarName returns the variable that overrides the setting at the
// YAML path field, or "".
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envPrefix + v.name
		}
	}
	return ""
}

// ListEnvVars returns the name and description of every variable, sorted
// by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, len(envVars))
	for i, v := range envVars {
		out[i] = [2]string{envPrefix + v.name, v.help}
	}
	return out
}
