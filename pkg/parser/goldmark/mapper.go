package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
// goldmark only records positions for text segments and block lines, so the
// mapper recovers the remaining spans (delimiters, link brackets, list
// markers, fences) from the source and attaches them as mark children.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewSpanNode(mdast.NodeDocument, 0, len(m.content))
	m.mapBlocks(gmDoc, doc, 0)
	mdast.PropagateSpans(doc)
	return doc
}

// mapBlocks maps block children in order. pos is the earliest offset the
// next child can start at; it advances past every anchored child.
func (m *mapper) mapBlocks(gmParent ast.Node, parent *mdast.Node, pos int) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapBlock(child, pos)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)
		if node.HasSpan() {
			pos = max(pos, node.Span.EndOffset)
		}
	}
}

// mapBlock converts a single block-level goldmark node.
func (m *mapper) mapBlock(gmNode ast.Node, pos int) *mdast.Node {
	if gmNode.Type() == ast.TypeInline {
		// Inline content directly under a block container is unusual but legal.
		return m.mapInline(gmNode, pos)
	}

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)

	case *ast.Paragraph:
		return m.mapTextBlock(gmn)

	case *ast.TextBlock:
		return m.mapTextBlock(gmn)

	case *ast.List:
		return m.mapList(gmn, pos)

	case *ast.Blockquote:
		node := mdast.NewNode(mdast.NodeBlockquote)
		m.mapBlocks(gmn, node, pos)
		mdast.PropagateSpans(node)
		return node

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn, pos)

	case *ast.CodeBlock:
		node := mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}
		node.Span = m.linesSpan(gmn)
		return node

	case *ast.ThematicBreak:
		node := mdast.NewNode(mdast.NodeThematicBreak)
		node.Span = m.thematicBreakSpan(pos)
		return node

	case *ast.HTMLBlock:
		node := mdast.NewNode(mdast.NodeHTMLBlock)
		node.Span = m.linesSpan(gmn)
		return node

	default:
		// Tables and other extension blocks keep their inline content reachable.
		node := mdast.NewNode(mdast.NodeRaw)
		if gmNode.Type() == ast.TypeBlock && gmNode.Lines().Len() > 0 {
			node.Span = m.linesSpan(gmNode)
		}
		m.mapMixed(gmNode, node, pos)
		mdast.PropagateSpans(node)
		return node
	}
}

// mapMixed maps children that may be either blocks or inlines.
func (m *mapper) mapMixed(gmParent ast.Node, parent *mdast.Node, pos int) {
	if first := gmParent.FirstChild(); first != nil && first.Type() == ast.TypeInline {
		m.mapInlines(gmParent, parent, pos)
		return
	}
	m.mapBlocks(gmParent, parent, pos)
}

// mapHeading converts an ATX or setext heading. ATX headings get a
// NodeHeadingMark child covering the '#' run and the whitespace after it,
// and a trailing one for a closing sequence such as " ##".
func (m *mapper) mapHeading(heading *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = &mdast.BlockAttrs{HeadingLevel: heading.Level}

	lines := heading.Lines()
	if lines.Len() == 0 {
		// An empty heading ("#") has no recorded position.
		return node
	}

	contentStart := lines.At(0).Start
	contentEnd := m.stopLineEnd(lines.At(lines.Len() - 1).Stop)

	mark, ok := m.headingMark(contentStart, heading.Level)
	start := contentStart
	if ok {
		start = mark.StartOffset
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeHeadingMark, mark.StartOffset, mark.EndOffset))
	}
	node.Span = mdast.Span(start, contentEnd)

	m.mapInlines(heading, node, contentStart)
	if ok {
		if closing, found := m.headingClosing(contentStart, contentEnd); found {
			mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeHeadingMark, closing.StartOffset, closing.EndOffset))
		}
	}
	return node
}

// headingClosing finds an optional ATX closing sequence between contentStart
// and lineEnd: blanks, a '#' run, then trailing blanks up to the line end.
func (m *mapper) headingClosing(contentStart, lineEnd int) (mdast.SourceRange, bool) {
	end := lineEnd
	for end > contentStart && isSpaceOrTab(m.content[end-1]) {
		end--
	}
	hashStart := end
	for hashStart > contentStart && m.content[hashStart-1] == '#' {
		hashStart--
	}
	wsStart := hashStart
	for wsStart > contentStart && isSpaceOrTab(m.content[wsStart-1]) {
		wsStart--
	}
	if hashStart == end || wsStart == hashStart || wsStart == contentStart {
		return mdast.SourceRange{}, false
	}
	return mdast.Span(wsStart, lineEnd), true
}

// headingMark scans backwards from contentStart over whitespace and then a
// '#' run of exactly level characters.
func (m *mapper) headingMark(contentStart, level int) (mdast.SourceRange, bool) {
	wsStart := contentStart
	for wsStart > 0 && isSpaceOrTab(m.content[wsStart-1]) {
		wsStart--
	}
	if wsStart == contentStart {
		return mdast.SourceRange{}, false
	}

	hashStart := wsStart
	for hashStart > 0 && m.content[hashStart-1] == '#' {
		hashStart--
	}
	if wsStart-hashStart != level {
		return mdast.SourceRange{}, false
	}
	if hashStart > 0 && !isLinePrefixByte(m.content[hashStart-1]) {
		return mdast.SourceRange{}, false
	}

	return mdast.Span(hashStart, contentStart), true
}

// mapTextBlock converts a paragraph or a tight-list text block.
func (m *mapper) mapTextBlock(block ast.Node) *mdast.Node {
	node := mdast.NewNode(mdast.NodeParagraph)
	node.Span = m.linesSpan(block)

	pos := 0
	if node.HasSpan() {
		pos = node.Span.StartOffset
	}
	m.mapInlines(block, node, pos)
	mdast.PropagateSpans(node)
	return node
}

// mapList converts a list and attaches a NodeListMark to every item.
func (m *mapper) mapList(list *ast.List, pos int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		listAttrs.BulletMarker = string(list.Marker)
	}
	node.Block = &mdast.BlockAttrs{List: listAttrs}

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item := mdast.NewNode(mdast.NodeListItem)
		m.mapBlocks(child, item, pos)

		if mark, ok := m.listMark(item, list, pos); ok {
			mdast.PrependChild(item, mdast.NewSpanNode(mdast.NodeListMark, mark.StartOffset, mark.EndOffset))
		}
		mdast.PropagateSpans(item)
		mdast.AppendChild(node, item)

		if item.HasSpan() {
			pos = max(pos, item.Span.EndOffset)
		}
	}

	mdast.PropagateSpans(node)
	return node
}

// listMark locates the marker of a list item. When the item has anchored
// content the marker sits just before it on the same line; otherwise (an
// empty item) it is the next marker at or after pos.
func (m *mapper) listMark(item *mdast.Node, list *ast.List, pos int) (mdast.SourceRange, bool) {
	var anchor *mdast.Node
	for child := item.FirstChild; child != nil; child = child.Next {
		if child.HasSpan() {
			anchor = child
			break
		}
	}

	if anchor != nil {
		end := anchor.Span.StartOffset
		for end > 0 && isSpaceOrTab(m.content[end-1]) {
			end--
		}
		if mark, ok := m.markerEndingAt(end, list); ok {
			return mark, true
		}
	}

	start := pos
	for start < len(m.content) && (isSpaceOrTab(m.content[start]) || isNewline(m.content[start]) || m.content[start] == '>') {
		start++
	}
	return m.markerStartingAt(start, list)
}

// markerEndingAt matches a list marker whose last byte is at end-1.
func (m *mapper) markerEndingAt(end int, list *ast.List) (mdast.SourceRange, bool) {
	if end <= 0 {
		return mdast.SourceRange{}, false
	}

	if !list.IsOrdered() {
		if m.content[end-1] != list.Marker {
			return mdast.SourceRange{}, false
		}
		return mdast.Span(end-1, end), true
	}

	delim := m.content[end-1]
	if delim != '.' && delim != ')' {
		return mdast.SourceRange{}, false
	}
	start := end - 1
	for start > 0 && isDigit(m.content[start-1]) {
		start--
	}
	if start == end-1 {
		return mdast.SourceRange{}, false
	}
	return mdast.Span(start, end), true
}

// markerStartingAt matches a list marker beginning at start.
func (m *mapper) markerStartingAt(start int, list *ast.List) (mdast.SourceRange, bool) {
	if start >= len(m.content) {
		return mdast.SourceRange{}, false
	}

	if !list.IsOrdered() {
		if m.content[start] != list.Marker {
			return mdast.SourceRange{}, false
		}
		return mdast.Span(start, start+1), true
	}

	end := start
	for end < len(m.content) && isDigit(m.content[end]) {
		end++
	}
	if end == start || end >= len(m.content) || (m.content[end] != '.' && m.content[end] != ')') {
		return mdast.SourceRange{}, false
	}
	return mdast.Span(start, end+1), true
}

// mapFencedCodeBlock converts a fenced code block. The opening and closing
// fence lines become NodeCodeFence children.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock, pos int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		seg := codeBlock.Info.Segment
		info = string(m.content[seg.Start:seg.Stop])
	}

	lines := codeBlock.Lines()
	openSearch := pos
	if lines.Len() > 0 {
		openSearch = m.prevLineStart(lines.At(0).Start)
	}
	open, fenceChar, fenceLen, ok := m.findFence(openSearch, 0, 0)

	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLen,
		Info:        info,
	}}

	if !ok {
		node.Span = m.linesSpan(codeBlock)
		return node
	}
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeCodeFence, open.StartOffset, open.EndOffset))

	closeStart := m.nextLineStart(open.EndOffset)
	end := open.EndOffset
	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1).Stop
		closeStart = last
		if last == 0 || m.content[last-1] != '\n' {
			// Unterminated block running to the end of the document.
			closeStart = len(m.content)
		}
		end = m.stopLineEnd(last)
	}

	if closing, _, _, found := m.findFence(closeStart, fenceChar, fenceLen); found {
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeCodeFence, closing.StartOffset, closing.EndOffset))
		end = closing.EndOffset
	}

	node.Span = mdast.Span(open.StartOffset, max(end, open.EndOffset))
	return node
}

// findFence finds the first line at or after from holding a fence. When char
// is non-zero the fence must use that char, be at least minLen long and carry
// no info string (a closing fence). It returns the fence span (fence run to
// end of line), the fence char and its length.
func (m *mapper) findFence(from int, char byte, minLen int) (mdast.SourceRange, byte, int, bool) {
	for lineStart := from; lineStart < len(m.content); lineStart = m.nextLineStart(lineStart) {
		end := m.lineEnd(lineStart)
		i := lineStart
		for i < end && (isSpaceOrTab(m.content[i]) || m.content[i] == '>') {
			i++
		}
		// Skip a list marker in front of the fence ("- ```").
		for i < end && (m.content[i] == '-' || m.content[i] == '*' || m.content[i] == '+' || isDigit(m.content[i]) || m.content[i] == '.' || m.content[i] == ')' || isSpaceOrTab(m.content[i])) {
			i++
		}
		if i >= end || (m.content[i] != '`' && m.content[i] != '~') {
			if char != 0 {
				return mdast.SourceRange{}, 0, 0, false
			}
			continue
		}
		c := m.content[i]
		j := i
		for j < end && m.content[j] == c {
			j++
		}
		const minFence = 3
		if j-i < minFence || (char != 0 && (c != char || j-i < minLen || len(bytes.TrimSpace(m.content[j:end])) > 0)) {
			if char != 0 {
				return mdast.SourceRange{}, 0, 0, false
			}
			continue
		}
		return mdast.Span(i, end), c, j - i, true
	}
	return mdast.SourceRange{}, 0, 0, false
}

// thematicBreakSpan finds the break line at or after pos.
func (m *mapper) thematicBreakSpan(pos int) mdast.SourceRange {
	for lineStart := pos; lineStart < len(m.content); lineStart = m.nextLineStart(lineStart) {
		end := m.lineEnd(lineStart)
		trimmed := bytes.TrimSpace(m.content[lineStart:end])
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '_' {
			start := lineStart + bytes.IndexByte(m.content[lineStart:end], trimmed[0])
			return mdast.Span(start, end)
		}
		break
	}
	return mdast.NoSpan
}

// linesSpan returns the span of a block's recorded lines without the final line break.
func (m *mapper) linesSpan(block ast.Node) mdast.SourceRange {
	lines := block.Lines()
	if lines.Len() == 0 {
		return mdast.NoSpan
	}
	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop
	for stop > start && isNewline(m.content[stop-1]) {
		stop--
	}
	return clampSpan(start, stop, len(m.content))
}

// lineEnd returns the offset of the first line break at or after pos.
func (m *mapper) lineEnd(pos int) int {
	pos = min(max(pos, 0), len(m.content))
	for pos < len(m.content) && !isNewline(m.content[pos]) {
		pos++
	}
	return pos
}

// stopLineEnd is lineEnd for an exclusive stop offset: a stop just past a
// line break belongs to the line that break ends.
func (m *mapper) stopLineEnd(stop int) int {
	if stop > 0 && stop <= len(m.content) && m.content[stop-1] == '\n' {
		stop--
		if stop > 0 && m.content[stop-1] == '\r' {
			stop--
		}
		return stop
	}
	return m.lineEnd(stop)
}

// lineStartOf returns the start of the line holding pos.
func (m *mapper) lineStartOf(pos int) int {
	pos = min(pos, len(m.content))
	for pos > 0 && m.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// nextLineStart returns the start of the line after the one holding pos.
func (m *mapper) nextLineStart(pos int) int {
	idx := bytes.IndexByte(m.content[min(pos, len(m.content)):], '\n')
	if idx < 0 {
		return len(m.content)
	}
	return pos + idx + 1
}

// prevLineStart returns the start of the line before the one holding pos.
func (m *mapper) prevLineStart(pos int) int {
	start := m.lineStartOf(pos)
	if start == 0 {
		return 0
	}
	return m.lineStartOf(start - 1)
}

func clampSpan(start, stop, limit int) mdast.SourceRange {
	if start < 0 || stop < start || stop > limit {
		return mdast.NoSpan
	}
	return mdast.Span(start, stop)
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isLinePrefixByte reports whether c may precede a block marker on its line.
func isLinePrefixByte(c byte) bool {
	return c == '\n' || c == ' ' || c == '\t' || c == '>'
}
