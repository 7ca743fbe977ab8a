// Package edit provides byte-offset text edits guarded against stale text.
package edit

// TextEdit represents a single text replacement in a document.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string

	// Expect is the text [StartOffset, EndOffset) must hold for the edit to
	// apply. An empty Expect skips the check.
	Expect string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Builder accumulates text edits for one document.
type Builder struct {
	edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (b *Builder) Replace(start, end int, newText string) *Builder {
	return b.add(TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// ReplaceExpect adds an edit that replaces bytes [start, end) with newText
// only if they currently hold expect.
func (b *Builder) ReplaceExpect(start, end int, expect, newText string) *Builder {
	return b.add(TextEdit{StartOffset: start, EndOffset: end, NewText: newText, Expect: expect})
}

// Insert adds an edit that inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Edits returns the accumulated edits in insertion order.
func (b *Builder) Edits() []TextEdit {
	out := make([]TextEdit, len(b.edits))
	copy(out, b.edits)
	return out
}

func (b *Builder) add(e TextEdit) *Builder {
	b.edits = append(b.edits, e)
	return b
}
