package session

import (
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/edit"
)

// mapOffset moves pos through sorted, non-overlapping edits. Offsets inside
// or at the end of a replaced span land at the end of its replacement; a
// caret at an insertion point moves past the inserted text.
func mapOffset(pos int, edits []edit.TextEdit) int {
	delta := 0
	for _, e := range edits {
		switch {
		case pos < e.StartOffset, pos == e.StartOffset && e.Len() > 0:
			return pos + delta
		case pos <= e.EndOffset && e.Len() > 0:
			return e.StartOffset + delta + len(e.NewText)
		}
		delta += len(e.NewText) - e.Len()
	}
	return pos + delta
}

func mapSelection(sel decorate.Selection, edits []edit.TextEdit) decorate.Selection {
	out := decorate.Selection{Ranges: make([]decorate.SelectionRange, len(sel.Ranges)), Main: sel.Main}
	for i, r := range sel.Ranges {
		out.Ranges[i] = decorate.SelectionRange{
			Anchor: mapOffset(r.Anchor, edits),
			Head:   mapOffset(r.Head, edits),
		}
	}
	return out
}

func clampSelection(sel decorate.Selection, limit int) decorate.Selection {
	out := decorate.Selection{Ranges: make([]decorate.SelectionRange, len(sel.Ranges)), Main: sel.Main}
	for i, r := range sel.Ranges {
		out.Ranges[i] = decorate.SelectionRange{
			Anchor: min(max(r.Anchor, 0), limit),
			Head:   min(max(r.Head, 0), limit),
		}
	}
	return out
}
