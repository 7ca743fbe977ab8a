package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // RANGE, FAMILY, CLASS, WIDGET, TEXT
	minRangeWidth    = 9
	minFamilyWidth   = 7
	minClassWidth    = 12
	minWidgetWidth   = 8
	minTextWidth     = 10
	heavySeparator   = "="
)

// TableRow represents a single decoration in the table.
type TableRow struct {
	Range  string
	Family decorate.Family
	Class  string
	Widget string
	Text   string
}

// TableFormatter formats decorations as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// DecorationToTableRow describes d with line:column positions from snap.
func DecorationToTableRow(snap *mdast.FileSnapshot, d decorate.Decoration) TableRow {
	startLine, startCol := snap.LineAt(d.From)
	endLine, endCol := snap.LineAt(d.To)

	loc := fmt.Sprintf("%d:%d-%d", startLine, startCol, endCol)
	if endLine != startLine {
		loc = fmt.Sprintf("%d:%d-%d:%d", startLine, startCol, endLine, endCol)
	}

	return TableRow{
		Range:  loc,
		Family: d.Family,
		Class:  d.Class,
		Widget: DescribeWidget(d.Widget),
		Text:   snap.SliceText(d.From, d.To),
	}
}

// DescribeWidget returns a short description of w, or "" for nil.
func DescribeWidget(w decorate.Widget) string {
	switch w := w.(type) {
	case nil:
		return ""
	case decorate.BulletWidget:
		return fmt.Sprintf("bullet(%d)", w.Depth)
	case decorate.OrderedWidget:
		return "ordered(" + w.Label() + ")"
	case decorate.CheckboxWidget:
		if w.Checked {
			return "checkbox(x)"
		}
		return "checkbox( )"
	default:
		return w.Kind().String()
	}
}

// FormatTable formats the decorations of set as a styled table.
func (t *TableFormatter) FormatTable(snap *mdast.FileSnapshot, set *decorate.Set) string {
	if snap == nil || set.Len() == 0 {
		return ""
	}

	rows := make([]TableRow, 0, set.Len())
	for _, d := range set.All() {
		rows = append(rows, DecorationToTableRow(snap, d))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	rng    int
	family int
	class  int
	widget int
	text   int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		rng:    minRangeWidth,
		family: minFamilyWidth,
		class:  minClassWidth,
		widget: minWidgetWidth,
		text:   minTextWidth,
	}

	for _, row := range rows {
		widths.rng = max(widths.rng, len(row.Range))
		widths.class = max(widths.class, len(row.Class))
		widths.widget = max(widths.widget, len(row.Widget))
		widths.text = max(widths.text, ansi.StringWidth(quoteText(row.Text)))
	}

	// Constrain to terminal width: text first, then class.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.text = max(minTextWidth, widths.text-(total-t.termWidth))
	}
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.class = max(minClassWidth, widths.class-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.rng + widths.family + widths.class + widths.widget + widths.text +
		(tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.rng, "RANGE",
		widths.family, "FAMILY",
		widths.class, "CLASS",
		widths.widget, "WIDGET",
		widths.text, "TEXT",
	)
	return t.styles.TableHeader.Render(strings.TrimRight(header, " "))
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row with family-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	text := ansi.Truncate(quoteText(row.Text), widths.text, truncationTail)

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.rng, row.Range,
		widths.family, row.Family,
		widths.class, truncateString(row.Class, widths.class),
		widths.widget, row.Widget,
		text,
	)

	return t.getRowStyle(row.Family).Render(content)
}

// getRowStyle returns the style for a decoration family.
func (t *TableFormatter) getRowStyle(family decorate.Family) lipgloss.Style {
	if family == decorate.FamilyReplace {
		return t.styles.TableReplace
	}
	return t.styles.TableStyle
}

// quoteText makes whitespace and line breaks visible.
func quoteText(s string) string {
	q := fmt.Sprintf("%q", s)
	return q[1 : len(q)-1]
}

// truncateString shortens str to maxLen bytes, marking the cut.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 1 {
		return str[:maxLen]
	}
	return str[:maxLen-1] + truncationTail
}
