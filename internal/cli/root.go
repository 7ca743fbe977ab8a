// Package cli implements the mdlive commands on top of cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/logging"
)

// BuildInfo identifies the binary. The fields are stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the mdlive command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug bool
		color string
	)

	root := &cobra.Command{
		Use:   "mdlive",
		Short: "Live-preview decorations for Markdown source",
		Long: `mdlive shows Markdown source the way a live-preview editor does.

Markup such as "**", "#" and list markers is hidden until the cursor enters
the construct it belongs to. List markers and task boxes become widgets,
and headings, emphasis and code take on their styles. mdlive renders a file
with its decorations, lists them, and toggles task checkboxes in place.`,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	root.AddCommand(
		newRenderCommand(),
		newDecorationsCommand(),
		newToggleCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(root)

	return root
}
