package edit

import (
	"bytes"
	"fmt"
	"strings"
)

// Diff is a unified diff of the lines a set of edits touches.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks are the changed regions in document order.
	Hunks []Hunk
}

// Hunk is one changed region. Hunks carry no context lines.
type Hunk struct {
	// OriginalStart is the 1-based first line in the original.
	OriginalStart int

	// OriginalCount is the number of original lines replaced.
	OriginalCount int

	// ModifiedStart is the 1-based first line in the modified document.
	ModifiedStart int

	// ModifiedCount is the number of lines in the replacement.
	ModifiedCount int

	// Removed and Added are the lines without their diff prefix.
	Removed []string
	Added   []string
}

// NewDiff computes the diff edits would make to content. Edits touching the
// same or overlapping lines share a hunk.
func NewDiff(path string, content []byte, edits []TextEdit) (*Diff, error) {
	prepared, err := PrepareEdits(edits, content)
	if err != nil {
		return nil, err
	}

	diff := &Diff{Path: path}
	shift := 0
	for i := 0; i < len(prepared); {
		start := lineStart(content, prepared[i].StartOffset)
		end := lineEnd(content, prepared[i].EndOffset)

		j := i + 1
		for j < len(prepared) && lineStart(content, prepared[j].StartOffset) <= end {
			end = max(end, lineEnd(content, prepared[j].EndOffset))
			j++
		}

		rebased := make([]TextEdit, 0, j-i)
		for _, e := range prepared[i:j] {
			e.StartOffset -= start
			e.EndOffset -= start
			rebased = append(rebased, e)
		}

		before := content[start:end]
		after := ApplyEdits(before, rebased)
		i = j

		if bytes.Equal(before, after) {
			continue
		}

		removed, added := splitLines(before), splitLines(after)
		first := 1 + bytes.Count(content[:start], []byte{'\n'})
		diff.Hunks = append(diff.Hunks, Hunk{
			OriginalStart: first,
			OriginalCount: len(removed),
			ModifiedStart: first + shift,
			ModifiedCount: len(added),
			Removed:       removed,
			Added:         added,
		})
		shift += len(added) - len(removed)
	}

	return diff, nil
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Removed {
			fmt.Fprintf(&sb, "-%s\n", line)
		}
		for _, line := range hunk.Added {
			fmt.Fprintf(&sb, "+%s\n", line)
		}
	}
	return sb.String()
}

func lineStart(content []byte, pos int) int {
	return bytes.LastIndexByte(content[:pos], '\n') + 1
}

func lineEnd(content []byte, pos int) int {
	if idx := bytes.IndexByte(content[pos:], '\n'); idx >= 0 {
		return pos + idx
	}
	return len(content)
}

func splitLines(text []byte) []string {
	return strings.Split(string(text), "\n")
}
