package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/configloader"
	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/fsutil"
	"github.com/yaklabco/mdlive/pkg/langdetect"
	"github.com/yaklabco/mdlive/pkg/mdast"
	"github.com/yaklabco/mdlive/pkg/parser/goldmark"
	"github.com/yaklabco/mdlive/pkg/session"
)

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// document is a file opened for one command run.
type document struct {
	cfg     *config.Config
	logger  *log.Logger
	info    *fsutil.FileInfo
	session *session.Session
	classes decorate.Classes
	options []decorate.Option
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for cmd. cli carries values set by
// the command's own flags; the persistent --color flag is folded in when
// given explicitly.
func loadConfig(cmd *cobra.Command, cli *config.Config) (*configloader.LoadResult, *log.Logger, error) {
	if cli == nil {
		cli = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, nil, fmt.Errorf("get color flag: %w", err)
		}
		cli.Color = config.ColorMode(color)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	level := result.Config.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	return result, logger, nil
}

// classesFromConfig fills the classes left empty in cfg with the defaults.
func classesFromConfig(cfg config.ClassesConfig) decorate.Classes {
	d := decorate.DefaultClasses()
	return decorate.Classes{
		Heading:       cmp.Or(cfg.Heading, d.Heading),
		Emphasis:      cmp.Or(cfg.Emphasis, d.Emphasis),
		Strong:        cmp.Or(cfg.Strong, d.Strong),
		InlineCode:    cmp.Or(cfg.InlineCode, d.InlineCode),
		Strikethrough: cmp.Or(cfg.Strikethrough, d.Strikethrough),
		ListMarker:    cmp.Or(cfg.ListMarker, d.ListMarker),
		Task:          cmp.Or(cfg.Task, d.Task),
		TaskChecked:   cmp.Or(cfg.TaskChecked, d.TaskChecked),
		CodeBlock:     cmp.Or(cfg.CodeBlock, d.CodeBlock),
		Marker:        cmp.Or(cfg.Marker, d.Marker),
		Hidden:        cmp.Or(cfg.Hidden, d.Hidden),
	}
}

func decorateOptions(cfg *config.Config, classes decorate.Classes, logger *log.Logger) []decorate.Option {
	opts := []decorate.Option{
		decorate.WithClasses(classes),
		decorate.WithLanguageNormalizer(langdetect.Normalize),
	}
	if cfg.DetectLanguage() {
		opts = append(opts, decorate.WithLanguageDetector(langdetect.Detect))
	}
	if logging.DebugEnabled(logger) {
		opts = append(opts, decorate.WithDiagnostics(logger))
	}
	return opts
}

// openDocument loads the configuration, reads path and starts a session on it.
func openDocument(cmd *cobra.Command, path string, cli *config.Config) (*document, error) {
	result, logger, err := loadConfig(cmd, cli)
	if err != nil {
		return nil, err
	}
	cfg := result.Config

	ctx := logging.WithLogger(commandContext(cmd), logger)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	classes := classesFromConfig(cfg.Classes)
	opts := decorateOptions(cfg, classes, logger)

	s, err := session.New(ctx, content, session.Options{
		Path:     path,
		Parser:   goldmark.New(string(cfg.Flavor)),
		Decorate: opts,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	logger.Debug("document opened",
		logging.FieldPath, path,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldBytes, len(content),
	)

	return &document{
		cfg:     cfg,
		logger:  logger,
		info:    info,
		session: s,
		classes: classes,
		options: opts,
	}, nil
}

// parseCursor resolves a --cursor value, either a byte offset or a 1-based
// LINE:COL position. An empty value means no selection at all.
func parseCursor(snap *mdast.FileSnapshot, value string) (decorate.Selection, error) {
	if value == "" {
		return decorate.Selection{}, nil
	}

	if lineText, colText, ok := strings.Cut(value, ":"); ok {
		line, lineErr := strconv.Atoi(lineText)
		col, colErr := strconv.Atoi(colText)
		if lineErr != nil || colErr != nil {
			return decorate.Selection{}, fmt.Errorf("%w: cursor %q: want OFFSET or LINE:COL", ErrInvalidUsage, value)
		}
		offset, found := snap.Offset(line, col)
		if !found {
			return decorate.Selection{}, fmt.Errorf("%w: cursor %q is outside the document", ErrInvalidUsage, value)
		}
		return decorate.Cursor(offset), nil
	}

	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 || offset > snap.Len() {
		return decorate.Selection{}, fmt.Errorf("%w: cursor %q: want an offset in [0, %d]", ErrInvalidUsage, value, snap.Len())
	}
	return decorate.Cursor(offset), nil
}

// lineSpan is a 1-based inclusive line range. Zero bounds are open.
type lineSpan struct {
	first int
	last  int
}

// parseLines parses a --lines value: "A:B", "A:", ":B" or "A".
func parseLines(value string) (lineSpan, error) {
	if value == "" {
		return lineSpan{}, nil
	}

	invalid := fmt.Errorf("%w: lines %q: want A:B, A:, :B or A", ErrInvalidUsage, value)

	parse := func(s string) (int, error) {
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, invalid
		}
		return n, nil
	}

	firstText, lastText, isRange := strings.Cut(value, ":")
	first, err := parse(firstText)
	if err != nil {
		return lineSpan{}, err
	}
	if !isRange {
		if first == 0 {
			return lineSpan{}, invalid
		}
		return lineSpan{first: first, last: first}, nil
	}

	last, err := parse(lastText)
	if err != nil {
		return lineSpan{}, err
	}
	if first > 0 && last > 0 && last < first {
		return lineSpan{}, invalid
	}
	return lineSpan{first: first, last: last}, nil
}

// resolve closes open bounds against a document of lineCount lines.
func (l lineSpan) resolve(lineCount int) (int, int) {
	first := max(l.first, 1)
	last := l.last
	if last == 0 {
		last = lineCount
	}
	return first, last
}

// displayLines counts the lines of snap, not counting the empty line after
// a final newline.
func displayLines(snap *mdast.FileSnapshot) int {
	n := snap.LineCount()
	if n > 1 && len(snap.LineContent(n)) == 0 {
		n--
	}
	return n
}

// isSet reports whether any bound was given.
func (l lineSpan) isSet() bool {
	return l.first != 0 || l.last != 0
}

// applyView moves the session to the selection and visible lines the user
// asked for.
func (d *document) applyView(cursor string, lines lineSpan) error {
	sel, err := parseCursor(d.session.Snapshot(), cursor)
	if err != nil {
		return err
	}
	if err := d.session.SetSelection(sel); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}

	if lines.isSet() {
		first, last := lines.resolve(displayLines(d.session.Snapshot()))
		if err := d.session.SetVisibleLines(first, last); err != nil {
			return fmt.Errorf("set visible lines: %w", err)
		}
	}
	return nil
}

// outputWidth is the terminal width of w, or zero when w is not a terminal.
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return pretty.TerminalWidth(f)
	}
	return 0
}

func newStyles(cfg *config.Config, w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), w))
}
