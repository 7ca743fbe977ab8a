// Package session is an in-memory editing session for one Markdown document.
// It plays the editor host for the decoration engine: every edit bumps the
// revision, re-parses the document and triggers a rebuild.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/edit"
	"github.com/yaklabco/mdlive/pkg/mdast"
	"github.com/yaklabco/mdlive/pkg/parser/goldmark"
)

// ErrNoTask is returned when a line holds no task item.
var ErrNoTask = errors.New("no task on line")

// Parser produces the syntax tree for one revision of the document.
type Parser interface {
	ParseRevision(ctx context.Context, path string, content []byte, revision uint64) (*mdast.FileSnapshot, error)
}

// Options configures a Session.
type Options struct {
	// Path names the document in logs and snapshots.
	Path string

	// Parser builds the tree. Nil means a GFM goldmark parser.
	Parser Parser

	// Decorate configures the decoration engine.
	Decorate []decorate.Option

	// Logger receives edit events at debug level. Nil means the logger
	// carried by the context passed to New.
	Logger *log.Logger
}

// Session holds the document text, its revision, the latest tree, the
// selection and the viewport. It is not safe for concurrent use.
type Session struct {
	path     string
	parser   Parser
	logger   *log.Logger
	content  []byte
	revision uint64
	snap     *mdast.FileSnapshot
	sel      decorate.Selection
	viewport []mdast.SourceRange
	engine   *decorate.Engine
}

// New parses content and builds the first decoration set with the caret at
// the start of the document and the whole document visible.
func New(ctx context.Context, content []byte, opts Options) (*Session, error) {
	s := &Session{
		path:    opts.Path,
		parser:  opts.Parser,
		logger:  opts.Logger,
		content: slices.Clone(content),
		sel:     decorate.Cursor(0),
	}
	if s.parser == nil {
		s.parser = goldmark.New(goldmark.FlavorGFM)
	}
	if s.logger == nil {
		s.logger = logging.FromContext(ctx)
	}
	s.engine = decorate.NewEngine(s, opts.Decorate...)

	if err := s.reparse(ctx); err != nil {
		return nil, err
	}
	if err := s.engine.Update(decorate.AllChanged); err != nil {
		return nil, fmt.Errorf("initial decorations: %w", err)
	}
	return s, nil
}

// CurrentTree implements decorate.Host.
func (s *Session) CurrentTree() *mdast.FileSnapshot { return s.snap }

// CurrentSelection implements decorate.Host.
func (s *Session) CurrentSelection() decorate.Selection { return s.sel }

// VisibleRanges implements decorate.Host. Nil means the whole document.
func (s *Session) VisibleRanges() []mdast.SourceRange { return s.viewport }

// SliceText implements decorate.Text.
func (s *Session) SliceText(from, to int) string {
	r := mdast.Span(from, to).Clamp(len(s.content))
	return string(s.content[r.StartOffset:r.EndOffset])
}

// Len implements decorate.Text.
func (s *Session) Len() int { return len(s.content) }

// LineRange returns the span of the line holding offset from the line index
// of the current tree.
func (s *Session) LineRange(offset int) mdast.SourceRange {
	return s.snap.LineRange(offset)
}

// Revision implements decorate.Editor.
func (s *Session) Revision() uint64 { return s.revision }

// Content returns a copy of the current document text.
func (s *Session) Content() []byte { return slices.Clone(s.content) }

// Snapshot returns the tree of the current revision.
func (s *Session) Snapshot() *mdast.FileSnapshot { return s.snap }

// Decorations returns the current decoration set.
func (s *Session) Decorations() *decorate.Set { return s.engine.Set() }

// Changes reports how the last rebuild changed the decorations.
func (s *Session) Changes() decorate.Diff { return s.engine.Changes() }

// SetSelection replaces the selection and rebuilds.
func (s *Session) SetSelection(sel decorate.Selection) error {
	s.sel = clampSelection(sel, len(s.content))
	return s.engine.Update(decorate.SelectionChanged)
}

// SetCursor places a single caret at offset and rebuilds.
func (s *Session) SetCursor(offset int) error {
	return s.SetSelection(decorate.Cursor(offset))
}

// SetViewport replaces the visible ranges and rebuilds. No ranges means the
// whole document.
func (s *Session) SetViewport(ranges ...mdast.SourceRange) error {
	s.viewport = nil
	if len(ranges) > 0 {
		s.viewport = slices.Clone(ranges)
	}
	return s.engine.Update(decorate.ViewportChanged)
}

// SetVisibleLines shows lines first through last (1-based, inclusive).
func (s *Session) SetVisibleLines(first, last int) error {
	return s.SetViewport(s.snap.LinesRange(first, last))
}

// ReplaceText implements decorate.Editor. The edit is rejected with
// edit.ErrStaleText unless [from, to) currently holds expect.
func (s *Session) ReplaceText(from, to int, expect, newText string) error {
	if from >= 0 && from <= to && to <= len(s.content) && s.SliceText(from, to) != expect {
		return fmt.Errorf("replace [%d:%d]: %w", from, to, edit.ErrStaleText)
	}
	return s.Apply(edit.TextEdit{StartOffset: from, EndOffset: to, NewText: newText, Expect: expect})
}

// Apply performs edits as one revision. Selection offsets are mapped through
// the edits. On error nothing changes.
func (s *Session) Apply(edits ...edit.TextEdit) error {
	prepared, err := edit.PrepareEdits(edits, s.content)
	if err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}
	if len(prepared) == 0 {
		return nil
	}

	prevContent, prevSnap, prevSel := s.content, s.snap, s.sel

	s.content = edit.ApplyEdits(s.content, prepared)
	s.revision++
	s.sel = mapSelection(s.sel, prepared)

	if err := s.reparse(context.Background()); err != nil {
		s.content, s.snap, s.sel = prevContent, prevSnap, prevSel
		s.revision--
		return err
	}

	s.logger.Debug("document edited",
		logging.FieldPath, s.path,
		logging.FieldRevision, s.revision,
		logging.FieldFrom, prepared[0].StartOffset,
		logging.FieldTo, prepared[len(prepared)-1].EndOffset,
		logging.FieldBytes, len(s.content),
	)

	return s.engine.Update(decorate.DocChanged | decorate.SelectionChanged)
}

// Click performs primary activation at offset, toggling a task checkbox.
func (s *Session) Click(offset int) error {
	if err := s.engine.Activate(s, offset); err != nil {
		return err
	}
	s.logger.Debug("widget activated",
		logging.FieldWidget, decorate.WidgetCheckbox,
		logging.FieldOffset, offset,
		logging.FieldRevision, s.revision,
	)
	return nil
}

// TaskOnLine returns the checkbox widget of the task on a 1-based line.
// It builds decorations for that line only and leaves the session as is.
func (s *Session) TaskOnLine(line int, opts ...decorate.Option) (decorate.CheckboxWidget, error) {
	if line < 1 || line > s.snap.LineCount() {
		return decorate.CheckboxWidget{}, fmt.Errorf("line %d: %w", line, ErrNoTask)
	}

	r := s.snap.LinesRange(line, line)
	set := decorate.BuildDecorations(s.snap, s.sel, []mdast.SourceRange{r}, opts...)
	for _, d := range set.Overlapping(r) {
		if w, ok := d.Widget.(decorate.CheckboxWidget); ok {
			return w, nil
		}
	}
	return decorate.CheckboxWidget{}, fmt.Errorf("line %d: %w", line, ErrNoTask)
}

// ToggleLine toggles the task on a 1-based line.
func (s *Session) ToggleLine(line int) error {
	w, err := s.TaskOnLine(line)
	if err != nil {
		return err
	}
	return decorate.ActivateCheckbox(s, w)
}

func (s *Session) reparse(ctx context.Context) error {
	snap, err := s.parser.ParseRevision(ctx, s.path, s.content, s.revision)
	if err != nil {
		return fmt.Errorf("parse revision %d: %w", s.revision, err)
	}
	s.snap = snap
	return nil
}
