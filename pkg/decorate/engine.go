package decorate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTree is returned when the host has no syntax tree to decorate.
var ErrNoTree = errors.New("host returned no syntax tree")

// Change flags what the host reports as changed.
type Change uint8

const (
	// DocChanged reports a document edit.
	DocChanged Change = 1 << iota

	// SelectionChanged reports a selection or caret move.
	SelectionChanged

	// ViewportChanged reports a scroll or resize.
	ViewportChanged
)

// AllChanged forces a full rebuild.
const AllChanged = DocChanged | SelectionChanged | ViewportChanged

// String lists the set flags, for example "doc|selection".
func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c&DocChanged != 0 {
		parts = append(parts, "doc")
	}
	if c&SelectionChanged != 0 {
		parts = append(parts, "selection")
	}
	if c&ViewportChanged != 0 {
		parts = append(parts, "viewport")
	}
	return strings.Join(parts, "|")
}

// Engine rebuilds the decoration set whenever the host reports a change.
//
// Every reported change triggers a synchronous rebuild whose result replaces
// the previous set wholesale; there is no debouncing. An Engine is not safe
// for concurrent use: the host must serialize calls.
type Engine struct {
	host     Host
	builder  *Builder
	current  *Set
	previous *Set
}

// NewEngine creates an Engine pulling its inputs from host.
func NewEngine(host Host, opts ...Option) *Engine {
	return &Engine{
		host:    host,
		builder: NewBuilder(opts...),
		current: &Set{},
	}
}

// Update rebuilds the decorations if change has any flag set.
// It returns ErrNoTree, keeping the previous set, when the host has no tree.
func (e *Engine) Update(change Change) error {
	if change == 0 {
		return nil
	}

	snap := e.host.CurrentTree()
	if snap == nil || snap.Root == nil {
		return fmt.Errorf("rebuild after %s change: %w", change, ErrNoTree)
	}

	set := e.builder.Build(snap, e.host.CurrentSelection(), e.host.VisibleRanges())
	e.previous, e.current = e.current, set
	return nil
}

// Set returns the current decoration set. It is never nil.
func (e *Engine) Set() *Set {
	return e.current
}

// Changes reports how the current set differs from the one it replaced.
func (e *Engine) Changes() Diff {
	return e.current.Diff(e.previous)
}

// Activate performs primary activation (a click) at offset. Only checkbox
// widgets are interactive; ErrNoWidget is returned for anything else.
func (e *Engine) Activate(ed Editor, offset int) error {
	deco, ok := e.current.WidgetAt(offset)
	if !ok {
		return fmt.Errorf("activate at %d: %w", offset, ErrNoWidget)
	}

	checkbox, ok := deco.Widget.(CheckboxWidget)
	if !ok {
		return fmt.Errorf("activate %s widget at %d: %w", deco.Widget.Kind(), offset, ErrNoWidget)
	}

	return ActivateCheckbox(ed, checkbox)
}
