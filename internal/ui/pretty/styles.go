// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Construct styles, looked up by decoration class
	Heading       [6]lipgloss.Style
	Emphasis      lipgloss.Style
	Strong        lipgloss.Style
	InlineCode    lipgloss.Style
	Strikethrough lipgloss.Style
	ListMarker    lipgloss.Style
	Task          lipgloss.Style
	TaskChecked   lipgloss.Style
	CodeBlock     lipgloss.Style
	Marker        lipgloss.Style

	// Preview chrome
	Gutter lipgloss.Style
	Caret  lipgloss.Style

	// Locations and source context
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	SourceLine lipgloss.Style
	Checked    lipgloss.Style
	Unchecked  lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableReplace   lipgloss.Style
	TableStyle     lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors. The renderer is pinned
// to the ANSI256 profile so that "always" works on pipes too.
func newColorStyles() *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	base := func() lipgloss.Style { return r.NewStyle().TabWidth(lipgloss.NoTabConversion) }
	fg := func(c string) lipgloss.Style { return base().Foreground(lipgloss.Color(c)) }

	return &Styles{
		Heading: [6]lipgloss.Style{
			fg("13").Bold(true).Underline(true),
			fg("13").Bold(true),
			fg("5").Bold(true),
			fg("5"),
			fg("5").Italic(true),
			fg("8").Italic(true),
		},
		Emphasis:      base().Italic(true),
		Strong:        base().Bold(true),
		InlineCode:    fg("14"),
		Strikethrough: base().Strikethrough(true),
		ListMarker:    fg("11"),
		Task:          base(),
		TaskChecked:   fg("8").Strikethrough(true),
		CodeBlock:     fg("6"),
		Marker:        fg("8").Faint(true),

		Gutter: fg("8"),
		Caret:  fg("9").Bold(true),

		FilePath:   base().Bold(true),
		Location:   fg("8"),
		SourceLine: fg("7"),
		Checked:    fg("10").Bold(true),
		Unchecked:  fg("11").Bold(true),

		TableHeader:    base().Bold(true).Foreground(lipgloss.Color("7")),
		TableReplace:   fg("12"),
		TableStyle:     base(),
		TableSeparator: fg("8"),

		Dim:  fg("8"),
		Bold: base().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Styles{
		Heading:        [6]lipgloss.Style{plain, plain, plain, plain, plain, plain},
		Emphasis:       plain,
		Strong:         plain,
		InlineCode:     plain,
		Strikethrough:  plain,
		ListMarker:     plain,
		Task:           plain,
		TaskChecked:    plain,
		CodeBlock:      plain,
		Marker:         plain,
		Gutter:         plain,
		Caret:          plain,
		FilePath:       plain,
		Location:       plain,
		SourceLine:     plain,
		Checked:        plain,
		Unchecked:      plain,
		TableHeader:    plain,
		TableReplace:   plain,
		TableStyle:     plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default width when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
