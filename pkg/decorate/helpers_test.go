package decorate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
	"github.com/yaklabco/mdlive/pkg/parser/goldmark"
)

func parse(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()

	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return snap
}

func firstOfKind(t *testing.T, snap *mdast.FileSnapshot, kind mdast.NodeKind) *mdast.Node {
	t.Helper()

	node := mdast.FindFirst(snap.Root, func(n *mdast.Node) bool { return n.Kind == kind })
	require.NotNil(t, node, "no %v node", kind)
	return node
}

// style and replace build expected decorations.
func style(from, to int, class string) decorate.Decoration {
	return decorate.Decoration{From: from, To: to, Family: decorate.FamilyStyle, Class: class}
}

func replace(from, to int, class string, widget decorate.Widget) decorate.Decoration {
	return decorate.Decoration{From: from, To: to, Family: decorate.FamilyReplace, Class: class, Widget: widget}
}

type replaceCall struct {
	from, to int
	expect   string
	newText  string
}

// fakeEditor is an in-memory decorate.Editor recording every replacement.
// afterSlice, when set, runs once after the next SliceText returns its
// result, standing in for a concurrent edit.
type fakeEditor struct {
	text       string
	revision   uint64
	calls      []replaceCall
	afterSlice func(e *fakeEditor)
}

var errMismatch = errors.New("text mismatch")

func (e *fakeEditor) SliceText(from, to int) string {
	r := mdast.Span(from, to).Clamp(len(e.text))
	text := e.text[r.StartOffset:r.EndOffset]
	if hook := e.afterSlice; hook != nil {
		e.afterSlice = nil
		hook(e)
	}
	return text
}

func (e *fakeEditor) Len() int { return len(e.text) }

func (e *fakeEditor) Revision() uint64 { return e.revision }

func (e *fakeEditor) ReplaceText(from, to int, expect, newText string) error {
	if from < 0 || to > len(e.text) || from > to || e.text[from:to] != expect {
		return errMismatch
	}
	e.calls = append(e.calls, replaceCall{from, to, expect, newText})
	e.text = e.text[:from] + newText + e.text[to:]
	e.revision++
	return nil
}

// fakeHost is a decorate.Host over fixed inputs.
type fakeHost struct {
	snap     *mdast.FileSnapshot
	sel      decorate.Selection
	viewport []mdast.SourceRange
	pulls    int
}

func (h *fakeHost) CurrentTree() *mdast.FileSnapshot {
	h.pulls++
	return h.snap
}

func (h *fakeHost) CurrentSelection() decorate.Selection { return h.sel }

func (h *fakeHost) VisibleRanges() []mdast.SourceRange { return h.viewport }
