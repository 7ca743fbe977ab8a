package edit

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Errors wrapped by PrepareEdits.
var (
	ErrStaleText    = errors.New("text changed since the edit was computed")
	ErrInvalidRange = errors.New("invalid edit range")
	ErrOverlap      = errors.New("overlapping edits")
)

// EditError ties a rejected edit to the reason it was rejected.
type EditError struct {
	Edit   TextEdit
	Reason string
	Err    error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Reason)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// PrepareEdits returns edits sorted by position, ready for ApplyEdits. It
// fails if an edit lies outside content, if a guarded edit no longer finds
// its Expect text, or if two edits overlap. Two insertions at one offset
// overlap because their order would be ambiguous. edits is not modified.
func PrepareEdits(edits []TextEdit, content []byte) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	for _, e := range edits {
		if err := checkEdit(e, content); err != nil {
			return nil, err
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		bothInserts := prev.Len() == 0 && cur.Len() == 0
		if cur.StartOffset < prev.EndOffset || (bothInserts && cur.StartOffset == prev.StartOffset) {
			return nil, &EditError{
				Edit:   cur,
				Reason: fmt.Sprintf("overlaps [%d:%d]", prev.StartOffset, prev.EndOffset),
				Err:    ErrOverlap,
			}
		}
	}

	return sorted, nil
}

func checkEdit(e TextEdit, content []byte) error {
	var reason string
	switch {
	case e.StartOffset < 0:
		reason = "start offset is negative"
	case e.EndOffset < e.StartOffset:
		reason = "end offset is before start offset"
	case e.EndOffset > len(content):
		reason = fmt.Sprintf("end offset exceeds content length %d", len(content))
	}
	if reason != "" {
		return &EditError{Edit: e, Reason: reason, Err: ErrInvalidRange}
	}

	if e.Expect == "" {
		return nil
	}
	if got := string(content[e.StartOffset:e.EndOffset]); got != e.Expect {
		return &EditError{
			Edit:   e,
			Reason: fmt.Sprintf("found %q, expected %q", got, e.Expect),
			Err:    ErrStaleText,
		}
	}
	return nil
}
