package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. If false, the
	// template is a short commented example.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// fieldDoc documents one top-level setting in the full template.
type fieldDoc struct {
	key  string
	help string
}

// fieldDocs lists the top-level settings in template order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldDocs = []fieldDoc{
	{"flavor", "Markdown flavor: commonmark or gfm. Task lists and strikethrough need gfm."},
	{"classes", "Style classes attached to decorations. Headings get a second class with the level appended, e.g. md-heading-2."},
	{"glyphs", "Text drawn by the terminal preview in place of hidden list bullets and task checkboxes. Bullets repeat by nesting depth."},
	{"detect_code_language", "Guess the language of fenced code blocks that have no info string."},
	{"color", "Preview colors: auto, always or never."},
	{"log_level", "Minimum log level: debug, info, warn or error."},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format != "" && opts.Format != "yaml" && opts.Format != "json" {
		return nil, fmt.Errorf("invalid template format %q: must be yaml or json", opts.Format)
	}

	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

# Guess the language of fenced code blocks without an info string
# detect_code_language: true

# Style classes attached to decorations
# classes:
#   strong: md-strong
#   marker: md-marker
#   hidden: md-hidden

# Preview glyphs for hidden markers
# glyphs:
#   bullets: ["•", "◦", "▪"]
#   checked: "☑"
#   unchecked: "☐"

# Preview colors: auto, always or never
# color: auto
`)

	return buf.Bytes()
}

// generateFullTemplate writes every setting with its default value, each
// preceded by its documentation.
func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every setting with its default value.\n")

	defaults := NewConfig()
	for _, doc := range fieldDocs {
		section, err := yamlSection(defaults, doc.key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		buf.WriteString(wrapComment(doc.help, commentWrapWidth))
		buf.Write(section)
	}

	return buf.Bytes(), nil
}

// yamlSection renders the single top-level key of cfg as YAML.
func yamlSection(cfg *Config, key string) ([]byte, error) {
	data, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	inSection := false
	for line := range strings.Lines(string(data)) {
		topLevel := line != "" && line[0] != ' '
		if topLevel {
			inSection = strings.HasPrefix(line, key+":")
		}
		if inSection {
			out.WriteString(line)
		}
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("template section %q not found", key)
	}
	return out.Bytes(), nil
}

// wrapComment wraps text into YAML comment lines of at most maxWidth.
func wrapComment(text string, maxWidth int) string {
	var buf strings.Builder
	line := "#"

	for _, word := range strings.Fields(text) {
		if len(line)+1+len(word) > maxWidth && line != "#" {
			buf.WriteString(line)
			buf.WriteByte('\n')
			line = "#"
		}
		line += " " + word
	}
	buf.WriteString(line)
	buf.WriteByte('\n')

	return buf.String()
}

// templateToJSON renders the template as JSON. JSON has no comments, so
// the minimal template only carries the flavor.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	var value any = map[string]any{"flavor": FlavorGFM}
	if opts.Full {
		value = NewConfig()
	}

	jsonBytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdlive configuration
# See: https://github.com/yaklabco/mdlive`
}
