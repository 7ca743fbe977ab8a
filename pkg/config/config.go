// Package config defines configuration types for mdlive.
// These types are pure data structures with no dependency on the loader.
package config

// Flavor specifies the Markdown flavor to parse.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how decorations are printed.
type OutputFormat string

const (
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// ColorMode controls ANSI styling of rendered previews.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ClassesConfig names the style class attached to each construct.
// Empty fields keep the default.
type ClassesConfig struct {
	Heading       string `json:"heading,omitempty"        yaml:"heading,omitempty"`
	Emphasis      string `json:"emphasis,omitempty"       yaml:"emphasis,omitempty"`
	Strong        string `json:"strong,omitempty"         yaml:"strong,omitempty"`
	InlineCode    string `json:"inline_code,omitempty"    yaml:"inline_code,omitempty"`
	Strikethrough string `json:"strikethrough,omitempty"  yaml:"strikethrough,omitempty"`
	ListMarker    string `json:"list_marker,omitempty"    yaml:"list_marker,omitempty"`
	Task          string `json:"task,omitempty"           yaml:"task,omitempty"`
	TaskChecked   string `json:"task_checked,omitempty"   yaml:"task_checked,omitempty"`
	CodeBlock     string `json:"code_block,omitempty"     yaml:"code_block,omitempty"`
	Marker        string `json:"marker,omitempty"         yaml:"marker,omitempty"`
	Hidden        string `json:"hidden,omitempty"         yaml:"hidden,omitempty"`
}

// GlyphsConfig holds the text drawn in place of hidden list and task markers.
type GlyphsConfig struct {
	// Bullets are indexed by nesting depth and repeat when a list nests
	// deeper than the slice is long.
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`

	Checked   string `json:"checked,omitempty"   yaml:"checked,omitempty"`
	Unchecked string `json:"unchecked,omitempty" yaml:"unchecked,omitempty"`
}

// Bullet returns the glyph for a list nested depth levels deep (1-based).
func (g GlyphsConfig) Bullet(depth int) string {
	if len(g.Bullets) == 0 {
		return ""
	}
	return g.Bullets[max(depth-1, 0)%len(g.Bullets)]
}

// Config is the complete mdlive configuration.
type Config struct {
	// Flavor selects the Markdown dialect. GFM adds tasks and strikethrough.
	Flavor Flavor `json:"flavor,omitempty" yaml:"flavor,omitempty"`

	// Classes overrides the style classes of decorations.
	Classes ClassesConfig `json:"classes,omitzero" yaml:"classes,omitempty"`

	// Glyphs are used by the terminal preview for replaced markers.
	Glyphs GlyphsConfig `json:"glyphs,omitzero" yaml:"glyphs,omitempty"`

	// DetectCodeLanguage guesses the language of fenced code blocks that
	// have no info string. Nil means unset so that merging can tell it
	// apart from false.
	DetectCodeLanguage *bool `json:"detect_code_language,omitempty" yaml:"detect_code_language,omitempty"`

	// Color controls ANSI styling of the preview.
	Color ColorMode `json:"color,omitempty" yaml:"color,omitempty"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Format is the output format of the decorations command (CLI-only).
	Format OutputFormat `json:"-" yaml:"-"`
}

// DetectLanguage reports whether code block language detection is on.
func (c *Config) DetectLanguage() bool {
	return c != nil && c.DetectCodeLanguage != nil && *c.DetectCodeLanguage
}

// NewConfig creates a Config with the default values.
func NewConfig() *Config {
	detect := true
	return &Config{
		Flavor: FlavorGFM,
		Classes: ClassesConfig{
			Heading:       "md-heading",
			Emphasis:      "md-emphasis",
			Strong:        "md-strong",
			InlineCode:    "md-code",
			Strikethrough: "md-strikethrough",
			ListMarker:    "md-list-marker",
			Task:          "md-task",
			TaskChecked:   "md-task-checked",
			CodeBlock:     "md-code-block",
			Marker:        "md-marker",
			Hidden:        "md-hidden",
		},
		Glyphs: GlyphsConfig{
			Bullets:   []string{"•", "◦", "▪"},
			Checked:   "☑",
			Unchecked: "☐",
		},
		DetectCodeLanguage: &detect,
		Color:              ColorAuto,
		LogLevel:           "warn",
		Format:             FormatTable,
	}
}
