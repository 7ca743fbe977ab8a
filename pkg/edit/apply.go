package edit

// ApplyEdits splices prepared edits into content and returns the result in
// a new slice. edits must come from PrepareEdits. With no edits, content
// itself is returned.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - e.Len()
	}

	out := make([]byte, 0, size)
	prevEnd := 0
	for _, e := range edits {
		out = append(out, content[prevEnd:e.StartOffset]...)
		out = append(out, e.NewText...)
		prevEnd = e.EndOffset
	}
	return append(out, content[prevEnd:]...)
}

// Apply is PrepareEdits followed by ApplyEdits. On error it returns content
// unchanged along with the error.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := PrepareEdits(edits, content)
	if err != nil {
		return content, err
	}
	return ApplyEdits(content, prepared), nil
}
