package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/edit"
	"github.com/yaklabco/mdlive/pkg/fsutil"
)

type toggleFlags struct {
	lines  []int
	write  bool
	backup bool
}

func newToggleCommand() *cobra.Command {
	flags := &toggleFlags{}

	cmd := &cobra.Command{
		Use:   "toggle FILE --line N",
		Short: "Toggle task checkboxes in a Markdown file",
		Long: `Toggle the task checkbox on one or more lines, the same edit a click on
the checkbox widget performs.

By default the change is shown as a diff and the file is left alone. Use
--write to save it. The file is written atomically and only if it did not
change on disk since it was read.

Examples:
  mdlive toggle TODO.md --line 3               Show the diff for line 3
  mdlive toggle TODO.md --line 3 --line 7 -w   Toggle two tasks and save
  mdlive toggle TODO.md -l 3 -w --backup       Keep TODO.md.mdlive.bak first`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntSliceVarP(&flags.lines, "line", "l", nil, "1-based line of the task to toggle (repeatable)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "copy the file to FILE"+fsutil.BackupSuffix+" before writing")

	return cmd
}

func runToggle(cmd *cobra.Command, path string, flags *toggleFlags) error {
	if len(flags.lines) == 0 {
		return fmt.Errorf("%w: at least one --line is required", ErrInvalidUsage)
	}
	if flags.backup && !flags.write {
		return fmt.Errorf("%w: --backup requires --write", ErrInvalidUsage)
	}

	doc, err := openDocument(cmd, path, nil)
	if err != nil {
		return err
	}

	lines := slices.Clone(flags.lines)
	slices.Sort(lines)
	lines = slices.Compact(lines)

	snap := doc.session.Snapshot()
	styles := newStyles(doc.cfg, cmd.OutOrStdout())
	edits := make([]edit.TextEdit, 0, len(lines))

	for _, line := range lines {
		w, err := doc.session.TaskOnLine(line, doc.options...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		edits = append(edits, edit.TextEdit{
			StartOffset: w.From,
			EndOffset:   w.To,
			Expect:      snap.SliceText(w.From, w.To),
			NewText:     decorate.CheckboxText(!w.Checked),
		})
		if _, err := fmt.Fprint(cmd.OutOrStdout(), styles.FormatToggle(snap, w)); err != nil {
			return err
		}
	}

	if !flags.write {
		diff, err := edit.NewDiff(path, doc.session.Content(), edits)
		if err != nil {
			return fmt.Errorf("compute diff: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), diff.String())
		return err
	}

	if err := doc.session.Apply(edits...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := fsutil.Save(commandContext(cmd), doc.info, doc.session.Content(), flags.backup); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	doc.logger.Info("toggled tasks",
		logging.FieldPath, path,
		logging.FieldLine, lines,
		logging.FieldWrite, true,
	)
	return nil
}
