package decorate

import (
	"strings"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Text is read access to the document. *mdast.FileSnapshot implements it.
type Text interface {
	// SliceText returns the text in [from, to), clamped to the document.
	SliceText(from, to int) string

	// Len returns the document length in bytes.
	Len() int
}

// Editor is write access to the document, used by interactive widgets.
type Editor interface {
	Text

	// Revision identifies the current document revision.
	Revision() uint64

	// ReplaceText atomically replaces [from, to) with newText. It must fail
	// without editing when the current text in [from, to) is not expect.
	ReplaceText(from, to int, expect, newText string) error
}

// Host supplies the inputs of a rebuild.
type Host interface {
	// CurrentTree returns the tree for the latest document revision.
	CurrentTree() *mdast.FileSnapshot

	// CurrentSelection returns the current selection.
	CurrentSelection() Selection

	// VisibleRanges returns the ranges the host is rendering.
	VisibleRanges() []mdast.SourceRange
}

// lineRanger is implemented by documents with a line index.
type lineRanger interface {
	LineRange(offset int) mdast.SourceRange
}

// lineRange returns the span of the line holding offset, excluding its
// line break.
func lineRange(doc Text, offset int) mdast.SourceRange {
	if lr, ok := doc.(lineRanger); ok {
		return lr.LineRange(offset)
	}

	n := doc.Len()
	offset = min(max(offset, 0), n)
	text := doc.SliceText(0, n)

	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := n
	if idx := strings.IndexByte(text[offset:], '\n'); idx >= 0 {
		end = offset + idx
	}
	if end > start && text[end-1] == '\r' {
		end--
	}
	return mdast.Span(start, end)
}

// skipNewline returns the offset after a line break starting at pos, or pos.
func skipNewline(doc Text, pos int) int {
	switch {
	case doc.SliceText(pos, pos+2) == "\r\n":
		return pos + 2
	case doc.SliceText(pos, pos+1) == "\n":
		return pos + 1
	default:
		return min(pos, doc.Len())
	}
}

// trimNewline drops a line break ending at end, never moving before start.
func trimNewline(doc Text, start, end int) int {
	if end > start && doc.SliceText(end-1, end) == "\n" {
		end--
	}
	if end > start && doc.SliceText(end-1, end) == "\r" {
		end--
	}
	return end
}
