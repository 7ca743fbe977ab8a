package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/internal/ui/pretty"
)

type renderFlags struct {
	cursor      string
	lines       string
	width       int
	lineNumbers bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a Markdown file as a live-preview editor shows it",
		Long: `Render a Markdown file with its decorations applied.

Markers are hidden unless the cursor touches their construct, list markers
and task boxes are drawn as glyphs, and styled spans are coloured. Without
--cursor nothing is selected, so every marker is hidden.

Examples:
  mdlive render README.md                  Render the whole file
  mdlive render README.md --cursor 3:5     Reveal markers around line 3, column 5
  mdlive render README.md --lines 10:20    Render lines 10 to 20 only
  mdlive render README.md -n --color never Number lines, no ANSI styling`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.cursor, "cursor", "", "caret position as OFFSET or LINE:COL")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "render only lines A:B (A:, :B and A also work)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate lines to this width (default: terminal width)")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-numbers", "n", false, "prefix lines with their number")

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	lines, err := parseLines(flags.lines)
	if err != nil {
		return err
	}
	if flags.width < 0 {
		return fmt.Errorf("%w: width must not be negative", ErrInvalidUsage)
	}

	doc, err := openDocument(cmd, path, nil)
	if err != nil {
		return err
	}
	if err := doc.applyView(flags.cursor, lines); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := flags.width
	if !cmd.Flags().Changed("width") {
		width = outputWidth(out)
	}

	preview := pretty.NewPreview(newStyles(doc.cfg, out), pretty.PreviewOptions{
		Classes:     doc.classes,
		Glyphs:      doc.cfg.Glyphs,
		Width:       width,
		LineNumbers: flags.lineNumbers,
	})

	snap := doc.session.Snapshot()
	first, last := lines.resolve(displayLines(snap))
	set := doc.session.Decorations()

	doc.logger.Debug("rendering",
		logging.FieldPath, path,
		logging.FieldFrom, first,
		logging.FieldTo, last,
		logging.FieldDecorations, set.Len(),
	)

	_, err = fmt.Fprint(out, preview.Render(snap, set, first, last))
	return err
}
