package mdast

import (
	"bytes"
	"sort"
)

// BuildLines splits content into lines ending in LF or CRLF. Content that
// ends with a newline has a final empty line; empty content has none.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	if len(content) == 0 {
		return lines
	}

	start := 0
	for {
		nl := bytes.IndexByte(content[start:], '\n')
		if nl < 0 {
			break
		}
		end := start + nl
		line := LineInfo{StartOffset: start, NewlineStart: end, EndOffset: end + 1}
		if end > start && content[end-1] == '\r' {
			line.NewlineStart--
		}
		lines = append(lines, line)
		start = end + 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// lineIndex returns the 0-based index of the line holding offset, or -1 for
// a negative offset or a file without lines. Offsets past the end belong to
// the last line.
func (f *FileSnapshot) lineIndex(offset int) int {
	n := len(f.Lines)
	if offset < 0 || n == 0 {
		return -1
	}
	idx := sort.Search(n, func(i int) bool { return f.Lines[i].EndOffset > offset })
	return min(idx, n-1)
}

// LineAt returns the 1-based line and byte column of offset, or (0, 0) when
// offset is negative or the file is empty.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	idx := f.lineIndex(offset)
	if idx < 0 {
		return 0, 0
	}
	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// LineRange returns the span of the line holding offset without its
// newline.
func (f *FileSnapshot) LineRange(offset int) SourceRange {
	idx := f.lineIndex(offset)
	if idx < 0 {
		return SourceRange{}
	}
	return f.Lines[idx].content()
}

// LinesRange spans 1-based lines first through last, without the final
// newline. Both bounds are clamped to the file.
func (f *FileSnapshot) LinesRange(first, last int) SourceRange {
	n := len(f.Lines)
	if n == 0 {
		return SourceRange{}
	}
	first = min(max(first, 1), n)
	last = min(max(last, first), n)
	return SourceRange{StartOffset: f.Lines[first-1].StartOffset, EndOffset: f.Lines[last-1].NewlineStart}
}

// Offset converts a 1-based line and byte column to an offset. The column
// may reach one past the line's last byte, where a caret sits before the
// newline.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	r := f.Lines[line-1].content()
	if offset := r.StartOffset + col - 1; offset <= r.EndOffset {
		return offset, true
	}
	return 0, false
}

// LineContent returns a 1-based line without its newline, or nil.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	r := f.Lines[line-1].content()
	return f.Content[r.StartOffset:r.EndOffset]
}

func (l LineInfo) content() SourceRange {
	return SourceRange{StartOffset: l.StartOffset, EndOffset: l.NewlineStart}
}
