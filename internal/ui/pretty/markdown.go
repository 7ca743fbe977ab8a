package pretty

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

// WriteMarkdownReport writes the decorations of set as a Markdown document
// with one table row per decoration, for pasting into issues and docs.
func WriteMarkdownReport(w io.Writer, snap *mdast.FileSnapshot, set *decorate.Set) error {
	rows := make([][]string, 0, set.Len())
	for _, d := range set.All() {
		row := DecorationToTableRow(snap, d)
		rows = append(rows, []string{
			row.Range,
			row.Family.String(),
			markdownCode(row.Class),
			markdownCode(row.Widget),
			markdownCode(quoteText(row.Text)),
		})
	}

	doc := md.NewMarkdown(w).
		H2(fmt.Sprintf("Decorations of %s", snap.Path)).
		PlainText(NewStyles(false).FormatSummary(set))

	if len(rows) > 0 {
		doc = doc.CustomTable(md.TableSet{
			Header: []string{"Range", "Family", "Class", "Widget", "Text"},
			Rows:   rows,
		}, md.TableOptions{
			AutoWrapText: false,
		})
	}

	if err := doc.Build(); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// markdownCode wraps s in a code span that survives a table cell.
func markdownCode(s string) string {
	if s == "" {
		return ""
	}
	return md.Code(strings.ReplaceAll(s, "|", `\|`))
}
