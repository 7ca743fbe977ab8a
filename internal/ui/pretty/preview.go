package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

// truncationTail marks lines cut at the terminal width.
const truncationTail = "…"

// PreviewOptions configures a Preview.
type PreviewOptions struct {
	// Classes are the classes the decorations were built with.
	Classes decorate.Classes

	// Glyphs are drawn in place of replaced list and task markers.
	Glyphs config.GlyphsConfig

	// Width truncates rendered lines. Zero disables truncation.
	Width int

	// LineNumbers prefixes every line with its 1-based number.
	LineNumbers bool
}

// Preview draws decorated Markdown source the way an editor would show it:
// hidden markers disappear, widgets become glyphs and styled spans take
// the terminal style of their class.
type Preview struct {
	styles  *Styles
	opts    PreviewOptions
	byClass map[string]lipgloss.Style
	marker  string
}

// NewPreview creates a preview renderer.
func NewPreview(styles *Styles, opts PreviewOptions) *Preview {
	c := opts.Classes
	byClass := map[string]lipgloss.Style{}
	set := func(class string, style lipgloss.Style) {
		if class != "" {
			byClass[class] = style
		}
	}

	for level := range styles.Heading {
		set(c.Heading+"-"+strconv.Itoa(level+1), styles.Heading[level])
	}
	set(c.Emphasis, styles.Emphasis)
	set(c.Strong, styles.Strong)
	set(c.InlineCode, styles.InlineCode)
	set(c.Strikethrough, styles.Strikethrough)
	set(c.ListMarker, styles.ListMarker)
	set(c.Task, styles.Task)
	set(c.TaskChecked, styles.TaskChecked)
	set(c.CodeBlock, styles.CodeBlock)
	set(c.Marker, styles.Marker)

	return &Preview{styles: styles, opts: opts, byClass: byClass, marker: c.Marker}
}

// Render draws lines first through last (1-based, inclusive) of snap with
// the decorations of set. Lines end with a newline.
func (p *Preview) Render(snap *mdast.FileSnapshot, set *decorate.Set, first, last int) string {
	if snap == nil || snap.LineCount() == 0 {
		return ""
	}
	first = min(max(first, 1), snap.LineCount())
	last = min(max(last, first), snap.LineCount())

	digits := len(strconv.Itoa(last))
	var out strings.Builder

	for line := first; line <= last; line++ {
		r := snap.LinesRange(line, line)
		text := p.renderLine(snap, set.Overlapping(r), r)

		gutter := ""
		if p.opts.LineNumbers {
			gutter = p.styles.Gutter.Render(fmt.Sprintf("%*d │ ", digits, line))
		}
		if p.opts.Width > 0 {
			text = ansi.Truncate(text, max(p.opts.Width-ansi.StringWidth(gutter), 1), truncationTail)
		}

		out.WriteString(gutter)
		out.WriteString(text)
		out.WriteByte('\n')
	}

	return out.String()
}

// renderLine splits the line at every decoration boundary and draws each
// piece with the decorations that cover it.
func (p *Preview) renderLine(snap *mdast.FileSnapshot, decos []decorate.Decoration, r mdast.SourceRange) string {
	cuts := []int{r.StartOffset, r.EndOffset}
	for _, d := range decos {
		cuts = append(cuts, min(max(d.From, r.StartOffset), r.EndOffset), min(max(d.To, r.StartOffset), r.EndOffset))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var out strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]

		hidden := false
		var styles []decorate.Decoration
		for _, d := range decos {
			if d.From > from || d.To < to {
				continue
			}
			if d.Family == decorate.FamilyReplace {
				if d.From == from {
					out.WriteString(p.widget(d))
				}
				hidden = true
				continue
			}
			styles = append(styles, d)
		}
		if hidden {
			continue
		}

		out.WriteString(p.styleFor(styles).Render(snap.SliceText(from, to)))
	}

	return out.String()
}

// styleFor combines the styles of every class on decos. Marker styling
// wins over the construct it belongs to.
func (p *Preview) styleFor(decos []decorate.Decoration) lipgloss.Style {
	var classes []string
	for _, d := range decos {
		classes = append(classes, strings.Fields(d.Class)...)
	}
	slices.SortStableFunc(classes, func(a, b string) int {
		switch {
		case a == p.marker && b != p.marker:
			return -1
		case b == p.marker && a != p.marker:
			return 1
		default:
			return 0
		}
	})

	style := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	started := false
	for _, class := range classes {
		s, ok := p.byClass[class]
		if !ok {
			continue
		}
		if !started {
			style, started = s, true
			continue
		}
		style = style.Inherit(s)
	}
	return style
}

// widget returns the glyph drawn for a replace decoration.
func (p *Preview) widget(d decorate.Decoration) string {
	var glyph string
	var style lipgloss.Style

	switch w := d.Widget.(type) {
	case decorate.BulletWidget:
		glyph, style = p.opts.Glyphs.Bullet(w.Depth), p.styles.ListMarker
	case decorate.OrderedWidget:
		glyph, style = w.Label(), p.styles.ListMarker
	case decorate.CheckboxWidget:
		glyph, style = p.opts.Glyphs.Unchecked, p.styles.Unchecked
		if w.Checked {
			glyph, style = p.opts.Glyphs.Checked, p.styles.Checked
		}
	}

	if glyph == "" {
		return ""
	}
	return style.Render(glyph)
}
