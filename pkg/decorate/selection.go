package decorate

import "github.com/yaklabco/mdlive/pkg/mdast"

// SelectionRange is one selected range. Anchor and Head may be in either
// order; when they are equal the range is a caret.
type SelectionRange struct {
	Anchor int
	Head   int
}

// From returns the lower bound of the range.
func (r SelectionRange) From() int {
	return min(r.Anchor, r.Head)
}

// To returns the upper bound of the range.
func (r SelectionRange) To() int {
	return max(r.Anchor, r.Head)
}

// IsEmpty reports whether the range is a caret.
func (r SelectionRange) IsEmpty() bool {
	return r.Anchor == r.Head
}

// Range returns the range as a SourceRange.
func (r SelectionRange) Range() mdast.SourceRange {
	return mdast.Span(r.From(), r.To())
}

// Selection is the set of selected ranges. Every range takes part in
// visibility decisions; Main only identifies the primary caret.
type Selection struct {
	Ranges []SelectionRange
	Main   int
}

// Cursor returns a selection holding a single caret at offset.
func Cursor(offset int) Selection {
	return Selection{Ranges: []SelectionRange{{Anchor: offset, Head: offset}}}
}

// NewSelection returns a selection over the given ranges with the first as main.
func NewSelection(ranges ...SelectionRange) Selection {
	return Selection{Ranges: ranges}
}

// MainRange returns the primary range, or an empty range at 0 when the
// selection is empty.
func (s Selection) MainRange() SelectionRange {
	if s.Main < 0 || s.Main >= len(s.Ranges) {
		if len(s.Ranges) == 0 {
			return SelectionRange{}
		}
		return s.Ranges[0]
	}
	return s.Ranges[s.Main]
}

// Equal reports whether two selections hold the same ranges and main index.
func (s Selection) Equal(other Selection) bool {
	if s.Main != other.Main || len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i := range s.Ranges {
		if s.Ranges[i] != other.Ranges[i] {
			return false
		}
	}
	return true
}
