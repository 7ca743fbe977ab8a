package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

// FormatSummary returns a one-line count of the decorations in set.
// Example: "12 decorations: 8 style, 4 replace (2 bullet, 1 checkbox)".
func (s *Styles) FormatSummary(set *decorate.Set) string {
	if set.Len() == 0 {
		return s.Dim.Render("no decorations")
	}

	var styles, replaces int
	widgets := map[decorate.WidgetKind]int{}
	for _, d := range set.All() {
		if d.Family == decorate.FamilyReplace {
			replaces++
		} else {
			styles++
		}
		if d.Widget != nil {
			widgets[d.Widget.Kind()]++
		}
	}

	var b strings.Builder
	b.WriteString(s.Bold.Render(fmt.Sprintf("%d %s", set.Len(), pluralize(set.Len(), "decoration"))))
	fmt.Fprintf(&b, ": %d style, %d replace", styles, replaces)

	var parts []string
	for _, kind := range []decorate.WidgetKind{decorate.WidgetBullet, decorate.WidgetOrdered, decorate.WidgetCheckbox} {
		if n := widgets[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	if len(parts) > 0 {
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	return b.String()
}

// FormatLocation formats path:line:col.
func (s *Styles) FormatLocation(path string, line, col int) string {
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", line, col))
}

// FormatToggle describes a task toggle on one line, followed by the source
// line and a caret under the checkbox.
func (s *Styles) FormatToggle(snap *mdast.FileSnapshot, w decorate.CheckboxWidget) string {
	line, col := snap.LineAt(w.From)

	before := snap.SliceText(w.From, w.To)
	after := decorate.CheckboxText(!w.Checked)
	from, to := s.Unchecked.Render(before), s.Checked.Render(after)
	if w.Checked {
		from, to = s.Checked.Render(before), s.Unchecked.Render(after)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s → %s\n", s.FormatLocation(snap.Path, line, col), from, to)
	b.WriteString(s.FormatSourceContext(string(snap.LineContent(line)), col))
	return b.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
