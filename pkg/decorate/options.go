package decorate

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Classes names the style classes the builder attaches. The host decides
// what each class looks like.
type Classes struct {
	// Heading is the content class of headings. The level is appended as a
	// second class, so level 2 renders as "md-heading md-heading-2".
	Heading string

	Emphasis      string
	Strong        string
	InlineCode    string
	Strikethrough string

	// ListMarker is the class of bullet and numeral widgets.
	ListMarker string

	// Task is the content class of task items; TaskChecked is added for
	// checked tasks.
	Task        string
	TaskChecked string

	// CodeBlock is the content class of fenced code blocks. A "lang-<id>"
	// class is appended when the language is known.
	CodeBlock string

	// Marker is the muted class of visible markers.
	Marker string

	// Hidden is the class of replace decorations that render nothing.
	Hidden string
}

// DefaultClasses returns the standard class names.
func DefaultClasses() Classes {
	return Classes{
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
	}
}

// contentClass returns the style class for a construct's content.
func (c Classes) contentClass(construct Construct, lang string) string {
	switch construct.Kind {
	case ConstructHeading:
		return fmt.Sprintf("%s %s-%d", c.Heading, c.Heading, construct.Level)
	case ConstructEmphasis:
		return c.Emphasis
	case ConstructStrong:
		return c.Strong
	case ConstructInlineCode:
		return c.InlineCode
	case ConstructStrikethrough:
		return c.Strikethrough
	case ConstructListMarker:
		return c.ListMarker
	case ConstructTask:
		if construct.Checked && c.TaskChecked != "" {
			return c.Task + " " + c.TaskChecked
		}
		return c.Task
	case ConstructCodeBlock:
		if lang != "" {
			return c.CodeBlock + " lang-" + lang
		}
		return c.CodeBlock
	default:
		return ""
	}
}

// Options configures decoration building.
type Options struct {
	// Classes are the style classes to attach.
	Classes Classes

	// DetectLanguage guesses the language of a fenced code block with no
	// info string from its content. Nil disables detection.
	DetectLanguage func(content string) string

	// NormalizeLanguage maps an info string to a language id, for example
	// "Golang" to "go". Nil keeps info strings as written.
	NormalizeLanguage func(info string) string

	// Diagnostics receives one debug summary per rebuild. Nil disables it.
	Diagnostics *log.Logger
}

// DefaultOptions returns Options with the default classes, no language
// detection and no diagnostics.
func DefaultOptions() Options {
	return Options{
		Classes: DefaultClasses(),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithClasses sets the style classes.
func WithClasses(classes Classes) Option {
	return func(o *Options) {
		o.Classes = classes
	}
}

// WithLanguageDetector sets the code block language detector.
func WithLanguageDetector(detect func(content string) string) Option {
	return func(o *Options) {
		o.DetectLanguage = detect
	}
}

// WithLanguageNormalizer sets the mapping from info strings to language ids.
func WithLanguageNormalizer(normalize func(info string) string) Option {
	return func(o *Options) {
		o.NormalizeLanguage = normalize
	}
}

// WithDiagnostics routes rebuild summaries to logger at debug level.
func WithDiagnostics(logger *log.Logger) Option {
	return func(o *Options) {
		o.Diagnostics = logger
	}
}

func applyOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
