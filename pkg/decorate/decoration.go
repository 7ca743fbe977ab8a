// Package decorate computes selection-aware decorations for Markdown source.
//
// Given a parsed document, the current selection and the visible ranges, the
// package produces a sorted set of rendering instructions that make raw
// Markdown look formatted while the text stays editable:
//   - style decorations attach a class to a span of text
//   - replace decorations hide a span, optionally standing in a widget
//
// Markers (the literal syntax such as "**" or "#") are hidden while no
// selection touches their construct and shown muted once the user is inside it.
package decorate

import (
	"fmt"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Family distinguishes the two kinds of decoration.
type Family uint8

const (
	// FamilyStyle attaches a class to a span without changing layout.
	FamilyStyle Family = iota

	// FamilyReplace hides a span, optionally rendering a widget in its place.
	FamilyReplace
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyStyle:
		return "style"
	case FamilyReplace:
		return "replace"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Request is an uncommitted decoration produced while walking the tree.
// Requests may be empty, inverted or out of range; Assemble drops those.
type Request struct {
	From   int
	To     int
	Family Family
	Class  string
	Widget Widget

	// seq is the insertion order, used as the final sort key.
	seq int
}

// Decoration is a committed, non-empty decoration over [From, To).
type Decoration struct {
	From   int
	To     int
	Family Family
	Class  string
	Widget Widget
}

// Range returns the decorated span.
func (d Decoration) Range() mdast.SourceRange {
	return mdast.Span(d.From, d.To)
}

// Eq reports whether two decorations render identically.
func (d Decoration) Eq(other Decoration) bool {
	if d.From != other.From || d.To != other.To || d.Family != other.Family || d.Class != other.Class {
		return false
	}
	if d.Widget == nil || other.Widget == nil {
		return d.Widget == nil && other.Widget == nil
	}
	return d.Widget.Eq(other.Widget)
}

// String formats the decoration for debugging output.
func (d Decoration) String() string {
	s := fmt.Sprintf("%s[%d,%d)", d.Family, d.From, d.To)
	if d.Class != "" {
		s += " ." + d.Class
	}
	if d.Widget != nil {
		s += " " + d.Widget.Kind().String()
	}
	return s
}
