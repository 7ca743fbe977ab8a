package decorate

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// Set is an immutable, sorted collection of decorations produced by one
// rebuild. The zero value and a nil *Set are empty sets.
type Set struct {
	decorations []Decoration
	revision    uint64
	ranges      []mdast.SourceRange
}

// Assemble commits requests into a Set. Requests are ordered by From, then
// To, then insertion order; requests that are empty, inverted or not inside
// bounds are dropped.
func Assemble(reqs []Request, bounds mdast.SourceRange) *Set {
	sorted := slices.Clone(reqs)
	slices.SortStableFunc(sorted, func(a, b Request) int {
		return cmp.Or(
			cmp.Compare(a.From, b.From),
			cmp.Compare(a.To, b.To),
			cmp.Compare(a.seq, b.seq),
		)
	})

	decorations := make([]Decoration, 0, len(sorted))
	for _, req := range sorted {
		if req.From >= req.To || !bounds.ContainsRange(mdast.Span(req.From, req.To)) {
			continue
		}
		decorations = append(decorations, Decoration{
			From:   req.From,
			To:     req.To,
			Family: req.Family,
			Class:  req.Class,
			Widget: req.Widget,
		})
	}

	return &Set{decorations: decorations}
}

// Len returns the number of decorations.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decorations)
}

// At returns the i-th decoration in order.
func (s *Set) At(i int) Decoration {
	return s.decorations[i]
}

// All returns a copy of the decorations in order.
func (s *Set) All() []Decoration {
	if s == nil {
		return nil
	}
	return slices.Clone(s.decorations)
}

// Revision returns the document revision the set was built from.
func (s *Set) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}

// Ranges returns the normalized viewport ranges the set was built for.
func (s *Set) Ranges() []mdast.SourceRange {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ranges)
}

// Overlapping returns the decorations overlapping r, in order.
func (s *Set) Overlapping(r mdast.SourceRange) []Decoration {
	var out []Decoration
	for _, d := range s.decorationsOrNil() {
		if d.From >= r.EndOffset {
			break
		}
		if d.Range().Overlaps(r) {
			out = append(out, d)
		}
	}
	return out
}

// WidgetAt returns the widget decoration covering offset, if any.
func (s *Set) WidgetAt(offset int) (Decoration, bool) {
	for _, d := range s.decorationsOrNil() {
		if d.From > offset {
			break
		}
		if d.Widget != nil && d.Range().Contains(offset) {
			return d, true
		}
	}
	return Decoration{}, false
}

// Equal reports whether both sets hold the same decorations in the same order.
func (s *Set) Equal(other *Set) bool {
	return slices.EqualFunc(s.decorationsOrNil(), other.decorationsOrNil(), Decoration.Eq)
}

// Compact returns a set in which adjacent style decorations with the same
// class are merged into one.
func (s *Set) Compact() *Set {
	if s == nil {
		return &Set{}
	}

	merged := make([]Decoration, 0, len(s.decorations))
	for _, d := range s.decorations {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Family == FamilyStyle && d.Family == FamilyStyle && last.Widget == nil && d.Widget == nil &&
				last.Class == d.Class && last.To == d.From {
				last.To = d.To
				continue
			}
		}
		merged = append(merged, d)
	}

	return &Set{decorations: merged, revision: s.revision, ranges: s.ranges}
}

// Diff describes how a set differs from the one before it.
type Diff struct {
	// Added are decorations with no equal counterpart in the previous set.
	Added []Decoration

	// Removed are previous decorations with no equal counterpart in the new set.
	Removed []Decoration

	// Unchanged counts decorations present in both sets.
	Unchanged int
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

type decorationKey struct {
	from, to int
	family   Family
	class    string
}

// Diff compares s against prev. Decorations match when they cover the same
// range with the same family and class and their widgets are Eq, so a host
// can keep rendered widgets whose decoration is unchanged.
func (s *Set) Diff(prev *Set) Diff {
	prevDecorations := prev.decorationsOrNil()

	index := make(map[decorationKey][]int, len(prevDecorations))
	for i, d := range prevDecorations {
		key := decorationKey{d.From, d.To, d.Family, d.Class}
		index[key] = append(index[key], i)
	}

	var diff Diff
	used := make([]bool, len(prevDecorations))
	for _, d := range s.decorationsOrNil() {
		matched := false
		for _, i := range index[decorationKey{d.From, d.To, d.Family, d.Class}] {
			if !used[i] && prevDecorations[i].Eq(d) {
				used[i] = true
				matched = true
				break
			}
		}
		if matched {
			diff.Unchanged++
		} else {
			diff.Added = append(diff.Added, d)
		}
	}

	for i, d := range prevDecorations {
		if !used[i] {
			diff.Removed = append(diff.Removed, d)
		}
	}

	return diff
}

func (s *Set) decorationsOrNil() []Decoration {
	if s == nil {
		return nil
	}
	return s.decorations
}
