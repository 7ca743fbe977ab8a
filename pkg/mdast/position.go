package mdast

// SourceRange represents a half-open byte range [StartOffset, EndOffset) in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NoSpan marks a node that has no position in the source.
//
//nolint:gochecknoglobals // Sentinel value.
var NoSpan = SourceRange{StartOffset: -1, EndOffset: -1}

// Span is shorthand for SourceRange{from, to}.
func Span(from, to int) SourceRange {
	return SourceRange{StartOffset: from, EndOffset: to}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// IsValid returns true if the range is anchored (non-negative) and not inverted.
func (r SourceRange) IsValid() bool {
	return r.StartOffset >= 0 && r.StartOffset <= r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// ContainsRange returns true if other lies entirely within r.
func (r SourceRange) ContainsRange(other SourceRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// Overlaps returns true if the ranges share at least one byte.
func (r SourceRange) Overlaps(other SourceRange) bool {
	return r.StartOffset < other.EndOffset && other.StartOffset < r.EndOffset
}

// Touches returns true if the ranges overlap or meet at a boundary.
// An empty range at either end of r touches r.
func (r SourceRange) Touches(other SourceRange) bool {
	return other.StartOffset <= r.EndOffset && other.EndOffset >= r.StartOffset
}

// Intersect returns the overlap of r and other, and false if they are disjoint.
func (r SourceRange) Intersect(other SourceRange) (SourceRange, bool) {
	start := max(r.StartOffset, other.StartOffset)
	end := min(r.EndOffset, other.EndOffset)
	if start > end {
		return SourceRange{}, false
	}
	return SourceRange{StartOffset: start, EndOffset: end}, true
}

// Union returns the smallest range covering both r and other.
// An invalid operand is ignored.
func (r SourceRange) Union(other SourceRange) SourceRange {
	if !r.IsValid() {
		return other
	}
	if !other.IsValid() {
		return r
	}
	return SourceRange{
		StartOffset: min(r.StartOffset, other.StartOffset),
		EndOffset:   max(r.EndOffset, other.EndOffset),
	}
}

// Clamp restricts r to [0, limit].
func (r SourceRange) Clamp(limit int) SourceRange {
	start := min(max(r.StartOffset, 0), limit)
	end := min(max(r.EndOffset, start), limit)
	return SourceRange{StartOffset: start, EndOffset: end}
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourceRange returns the byte range for this node.
func (n *Node) SourceRange() SourceRange {
	return n.Span
}

// Text returns the source text for this node.
// Returns nil if the node has no associated file or span.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Span.IsValid() || n.Span.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Span.StartOffset:n.Span.EndOffset]
}

// StartPosition returns the 1-based line/column where the node begins.
func (n *Node) StartPosition() Position {
	if n.File == nil || !n.Span.IsValid() {
		return Position{}
	}
	line, col := n.File.LineAt(n.Span.StartOffset)
	return Position{Line: line, Column: col}
}
