package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

type decorationsFlags struct {
	cursor string
	lines  string
	format string
}

func newDecorationsCommand() *cobra.Command {
	flags := &decorationsFlags{}

	cmd := &cobra.Command{
		Use:     "decorations FILE",
		Aliases: []string{"decos"},
		Short:   "List the decorations computed for a Markdown file",
		Long: `List every decoration computed for a Markdown file, in the order an
editor would apply them.

Each decoration is either a style (a class attached to a span) or a replace
(a hidden span, optionally drawn as a widget).

Examples:
  mdlive decorations README.md                  Table of all decorations
  mdlive decorations README.md --cursor 0       Decorations with the caret at the start
  mdlive decorations README.md --lines 1:5      Only lines 1 to 5 are visible
  mdlive decorations README.md --format json    Machine-readable output
  mdlive decorations README.md --format markdown > decos.md`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecorations(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.cursor, "cursor", "", "caret position as OFFSET or LINE:COL")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "restrict the viewport to lines A:B")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatTable), "output format: table, json or markdown")

	return cmd
}

func runDecorations(cmd *cobra.Command, path string, flags *decorationsFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return fmt.Errorf("%w: format %q: must be table, json or markdown", ErrInvalidUsage, flags.format)
	}
	lines, err := parseLines(flags.lines)
	if err != nil {
		return err
	}

	cli := &config.Config{}
	if cmd.Flags().Changed("format") {
		cli.Format = format
	}

	doc, err := openDocument(cmd, path, cli)
	if err != nil {
		return err
	}
	if err := doc.applyView(flags.cursor, lines); err != nil {
		return err
	}

	snap := doc.session.Snapshot()
	set := doc.session.Decorations()
	out := cmd.OutOrStdout()

	switch doc.cfg.Format {
	case config.FormatJSON:
		return writeDecorationsJSON(out, snap, set)
	case config.FormatMarkdown:
		return pretty.WriteMarkdownReport(out, snap, set)
	}

	styles := newStyles(doc.cfg, out)
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))

	if _, err := fmt.Fprint(out, table.FormatTable(snap, set)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, styles.FormatSummary(set))
	return err
}

type jsonReport struct {
	Path        string           `json:"path"`
	Revision    uint64           `json:"revision"`
	Decorations []jsonDecoration `json:"decorations"`
}

type jsonDecoration struct {
	From   int             `json:"from"`
	To     int             `json:"to"`
	Line   int             `json:"line"`
	Column int             `json:"column"`
	Family decorate.Family `json:"family"`
	Class  string          `json:"class,omitempty"`
	Widget *jsonWidget     `json:"widget,omitempty"`
	Text   string          `json:"text"`
}

type jsonWidget struct {
	Kind    decorate.WidgetKind `json:"kind"`
	Depth   int                 `json:"depth,omitzero"`
	Label   string              `json:"label,omitempty"`
	Checked *bool               `json:"checked,omitempty"`
}

func newJSONWidget(w decorate.Widget) *jsonWidget {
	if w == nil {
		return nil
	}
	out := &jsonWidget{Kind: w.Kind()}
	switch w := w.(type) {
	case decorate.BulletWidget:
		out.Depth = w.Depth
	case decorate.OrderedWidget:
		out.Label = w.Label()
	case decorate.CheckboxWidget:
		checked := w.Checked
		out.Checked = &checked
	}
	return out
}

func writeDecorationsJSON(w io.Writer, snap *mdast.FileSnapshot, set *decorate.Set) error {
	report := jsonReport{
		Path:        snap.Path,
		Revision:    snap.Revision,
		Decorations: make([]jsonDecoration, 0, set.Len()),
	}
	for _, d := range set.All() {
		line, col := snap.LineAt(d.From)
		report.Decorations = append(report.Decorations, jsonDecoration{
			From:   d.From,
			To:     d.To,
			Line:   line,
			Column: col,
			Family: d.Family,
			Class:  d.Class,
			Widget: newJSONWidget(d.Widget),
			Text:   snap.SliceText(d.From, d.To),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode decorations: %w", err)
	}
	return nil
}
