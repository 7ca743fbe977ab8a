// Command mdlive renders Markdown source with live-preview decorations,
// lists the decorations and toggles task checkboxes.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/yaklabco/mdlive/internal/cli"
	"github.com/yaklabco/mdlive/internal/logging"
)

// Set with -ldflags -X by the build.
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	if err != nil {
		logging.Default().Error(root.Name()+" failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
