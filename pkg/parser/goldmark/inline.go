package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// mapInlines maps the inline children of gmParent in order. pos is the
// earliest offset the next child can start at; nodes goldmark does not
// position (task checkboxes, autolinks) are located by searching from it.
func (m *mapper) mapInlines(gmParent ast.Node, parent *mdast.Node, pos int) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapInline(child, pos)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)
		if node.HasSpan() {
			pos = max(pos, node.Span.EndOffset)
		}

		if text, ok := child.(*ast.Text); ok && (text.SoftLineBreak() || text.HardLineBreak()) {
			brk := m.lineBreak(text)
			mdast.AppendChild(parent, brk)
			if brk.HasSpan() {
				pos = max(pos, brk.Span.EndOffset)
			}
		}
	}
}

// mapInline converts a single inline goldmark node.
func (m *mapper) mapInline(gmNode ast.Node, pos int) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		node := mdast.NewNode(mdast.NodeText)
		node.Span = clampSpan(gmn.Segment.Start, gmn.Segment.Stop, len(m.content))
		return node

	case *ast.String:
		// Synthesized text with no source position.
		return mdast.NewNode(mdast.NodeText)

	case *ast.Emphasis:
		return m.mapEmphasis(gmn, pos)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn, pos)

	case *ast.Link:
		node := mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Destination: string(gmn.Destination)}
		m.mapInlines(gmn, node, pos)
		node.Span = m.linkSpan(childUnion(node), 1)
		return node

	case *ast.Image:
		node := mdast.NewNode(mdast.NodeImage)
		node.Inline = &mdast.InlineAttrs{Destination: string(gmn.Destination)}
		m.mapInlines(gmn, node, pos)
		node.Span = m.linkSpan(childUnion(node), 2)
		return node

	case *ast.AutoLink:
		node := mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Destination: string(gmn.URL(m.content))}
		node.Span = m.autoLinkSpan(gmn.Label(m.content), pos)
		return node

	case *ast.RawHTML:
		node := mdast.NewNode(mdast.NodeHTMLInline)
		segs := gmn.Segments
		if segs != nil && segs.Len() > 0 {
			node.Span = clampSpan(segs.At(0).Start, segs.At(segs.Len()-1).Stop, len(m.content))
		}
		return node

	case *east.Strikethrough:
		return m.mapStrikethrough(gmn, pos)

	case *east.TaskCheckBox:
		return m.mapTaskCheckBox(gmn, pos)

	default:
		node := mdast.NewNode(mdast.NodeRaw)
		m.mapInlines(gmNode, node, pos)
		mdast.PropagateSpans(node)
		return node
	}
}

// mapEmphasis converts emphasis and strong emphasis. The delimiter runs on
// either side of the content become NodeEmphasisMark children.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis, pos int) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level >= 2 {
		kind = mdast.NodeStrong
	}
	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{EmphasisLevel: emphasis.Level}

	m.mapInlines(emphasis, node, pos)
	m.wrapDelimiters(node, childUnion(node), emphasis.Level, mdast.NodeEmphasisMark, isEmphasisChar)
	return node
}

// mapStrikethrough converts a GFM strikethrough ("~~text~~" or "~text~").
func (m *mapper) mapStrikethrough(strike *east.Strikethrough, pos int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeStrikethrough)
	m.mapInlines(strike, node, pos)

	inner := childUnion(node)
	width := 0
	if inner.IsValid() {
		for width < 2 && inner.StartOffset-width > 0 && m.content[inner.StartOffset-width-1] == '~' {
			width++
		}
	}
	m.wrapDelimiters(node, inner, width, mdast.NodeStrikethroughMark, func(c byte) bool { return c == '~' })
	return node
}

// wrapDelimiters anchors node at inner widened by width bytes on both sides
// and adds mark children for the two delimiter runs. Nothing is added when
// the bytes around inner are not a matching delimiter pair.
func (m *mapper) wrapDelimiters(node *mdast.Node, inner mdast.SourceRange, width int, markKind mdast.NodeKind, isDelim func(byte) bool) {
	node.Span = inner
	if !inner.IsValid() || width <= 0 {
		return
	}

	start := inner.StartOffset - width
	end := inner.EndOffset + width
	if start < 0 || end > len(m.content) {
		return
	}

	delim := m.content[start]
	for i := range width {
		if !isDelim(m.content[start+i]) || m.content[start+i] != delim ||
			m.content[inner.EndOffset+i] != delim {
			return
		}
	}

	mdast.PrependChild(node, mdast.NewSpanNode(markKind, start, inner.StartOffset))
	mdast.AppendChild(node, mdast.NewSpanNode(markKind, inner.EndOffset, end))
	node.Span = mdast.Span(start, end)
}

// mapCodeSpan converts a code span. goldmark strips one space of padding on
// each side, so the backtick runs are found by skipping spaces outward.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan, pos int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)
	m.mapInlines(codeSpan, node, pos)

	inner := childUnion(node)
	node.Span = inner
	if !inner.IsValid() {
		return node
	}

	openEnd := inner.StartOffset
	for openEnd > 0 && m.content[openEnd-1] == ' ' {
		openEnd--
	}
	openStart := openEnd
	for openStart > 0 && m.content[openStart-1] == '`' {
		openStart--
	}

	closeStart := inner.EndOffset
	for closeStart < len(m.content) && m.content[closeStart] == ' ' {
		closeStart++
	}
	closeEnd := closeStart
	for closeEnd < len(m.content) && m.content[closeEnd] == '`' {
		closeEnd++
	}

	width := openEnd - openStart
	if width == 0 || closeEnd-closeStart != width {
		return node
	}

	mdast.PrependChild(node, mdast.NewSpanNode(mdast.NodeCodeMark, openStart, openEnd))
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeCodeMark, closeStart, closeEnd))
	node.Span = mdast.Span(openStart, closeEnd)
	return node
}

// mapTaskCheckBox anchors a GFM task checkbox. goldmark consumes "[ ]" and
// the whitespace after it without recording a segment, so the bracket pair
// is found at or after pos.
func (m *mapper) mapTaskCheckBox(box *east.TaskCheckBox, pos int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeTaskMark)
	node.Inline = &mdast.InlineAttrs{Checked: box.IsChecked}

	start := pos
	for start < len(m.content) && isSpaceOrTab(m.content[start]) {
		start++
	}
	if start >= len(m.content) || m.content[start] != '[' {
		return node
	}
	closeIdx := bytes.IndexByte(m.content[start:m.lineEnd(start)], ']')
	if closeIdx < 0 {
		return node
	}
	node.Span = mdast.Span(start, start+closeIdx+1)
	return node
}

// linkSpan widens a link's text range to cover its brackets and destination.
// openWidth is 1 for "[" and 2 for "![".
func (m *mapper) linkSpan(text mdast.SourceRange, openWidth int) mdast.SourceRange {
	if !text.IsValid() || text.StartOffset < openWidth || text.EndOffset >= len(m.content) ||
		m.content[text.EndOffset] != ']' {
		return text
	}

	end := text.EndOffset + 1
	if end < len(m.content) {
		switch m.content[end] {
		case '(':
			if closeIdx := m.matchParen(end); closeIdx >= 0 {
				end = closeIdx + 1
			}
		case '[':
			if closeIdx := bytes.IndexByte(m.content[end:], ']'); closeIdx >= 0 {
				end += closeIdx + 1
			}
		}
	}

	return mdast.Span(text.StartOffset-openWidth, end)
}

// matchParen returns the index of the ')' closing the '(' at open, honouring
// nesting, backslash escapes, <...> destinations and quoted titles.
func (m *mapper) matchParen(open int) int {
	depth := 0
	var quote byte
	angle := false

	for i := open; i < len(m.content); i++ {
		c := m.content[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case angle:
			if c == '>' {
				angle = false
			}
		case c == '<' && i > open && m.content[i-1] == '(':
			angle = true
		case (c == '"' || c == '\'') && depth == 1:
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// autoLinkSpan finds "<label>" (or a bare GFM linkified label) at or after pos.
func (m *mapper) autoLinkSpan(label []byte, pos int) mdast.SourceRange {
	if len(label) == 0 || pos >= len(m.content) {
		return mdast.NoSpan
	}

	rest := m.content[pos:]
	bracketed := append(append([]byte{'<'}, label...), '>')
	if idx := bytes.Index(rest, bracketed); idx >= 0 {
		return mdast.Span(pos+idx, pos+idx+len(bracketed))
	}
	if idx := bytes.Index(rest, label); idx >= 0 {
		return mdast.Span(pos+idx, pos+idx+len(label))
	}
	return mdast.NoSpan
}

// lineBreak builds the soft or hard break node following a text segment.
// The span runs from the end of the text to just after the newline.
func (m *mapper) lineBreak(text *ast.Text) *mdast.Node {
	kind := mdast.NodeSoftBreak
	if text.HardLineBreak() {
		kind = mdast.NodeHardBreak
	}
	node := mdast.NewNode(kind)

	start := text.Segment.Stop
	if start < 0 || start > len(m.content) {
		return node
	}
	idx := bytes.IndexByte(m.content[start:], '\n')
	if idx < 0 {
		return node
	}
	node.Span = mdast.Span(start, start+idx+1)
	return node
}

// childUnion returns the union of the anchored children's spans.
func childUnion(node *mdast.Node) mdast.SourceRange {
	union := mdast.NoSpan
	for child := node.FirstChild; child != nil; child = child.Next {
		union = union.Union(child.Span)
	}
	return union
}

func isEmphasisChar(c byte) bool {
	return c == '*' || c == '_'
}
