// Package mdast provides the Markdown syntax tree consumed by the decoration engine.
// It defines an immutable, per-revision view of a Markdown document:
// - FileSnapshot: the content, line index and tree for one revision
// - Node: a tree node with a closed kind, a byte span and marker children
// - SourceRange: half-open byte ranges and their containment/touch tests
package mdast

import "sort"

// FileSnapshot is an immutable view of a Markdown document at one revision.
// It holds the raw content, line metadata and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Revision identifies the document revision the tree was built from.
	Revision uint64

	// Content is the full document bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node

	// Blocks indexes the top-level children of Root in document order.
	// Used to seek into large documents without scanning every block.
	Blocks []*Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Len returns the document length in bytes.
func (f *FileSnapshot) Len() int {
	return len(f.Content)
}

// SliceText returns the text in [from, to), clamped to the document.
func (f *FileSnapshot) SliceText(from, to int) string {
	r := Span(from, to).Clamp(len(f.Content))
	return string(f.Content[r.StartOffset:r.EndOffset])
}

// IndexBlocks rebuilds the top-level block index from Root.
// Blocks without a source span are left out so the index stays sorted.
func (f *FileSnapshot) IndexBlocks() {
	f.Blocks = f.Blocks[:0]
	if f.Root == nil {
		return
	}
	for child := f.Root.FirstChild; child != nil; child = child.Next {
		if child.HasSpan() {
			f.Blocks = append(f.Blocks, child)
		}
	}
}

// SeekBlock returns the index into Blocks of the first top-level block
// whose span ends at or after offset.
func (f *FileSnapshot) SeekBlock(offset int) int {
	return sort.Search(len(f.Blocks), func(i int) bool {
		return f.Blocks[i].Span.EndOffset >= offset
	})
}
