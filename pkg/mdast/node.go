package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level, inline-level and marker elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeStrikethrough
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Marker nodes cover the literal syntax characters of their parent.
	NodeHeadingMark       // '#' run plus the whitespace after it
	NodeEmphasisMark      // '*', '_', '**', '__'
	NodeCodeMark          // backtick run of a code span
	NodeStrikethroughMark // '~' or '~~'
	NodeListMark          // '-', '+', '*', '1.', '1)'
	NodeTaskMark          // '[ ]', '[x]'
	NodeCodeFence         // opening or closing fence line of a fenced code block

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeDocument:          "Document",
	NodeParagraph:         "Paragraph",
	NodeHeading:           "Heading",
	NodeList:              "List",
	NodeListItem:          "ListItem",
	NodeBlockquote:        "Blockquote",
	NodeCodeBlock:         "CodeBlock",
	NodeThematicBreak:     "ThematicBreak",
	NodeHTMLBlock:         "HTMLBlock",
	NodeText:              "Text",
	NodeEmphasis:          "Emphasis",
	NodeStrong:            "Strong",
	NodeCodeSpan:          "CodeSpan",
	NodeStrikethrough:     "Strikethrough",
	NodeLink:              "Link",
	NodeImage:             "Image",
	NodeSoftBreak:         "SoftBreak",
	NodeHardBreak:         "HardBreak",
	NodeHTMLInline:        "HTMLInline",
	NodeHeadingMark:       "HeadingMark",
	NodeEmphasisMark:      "EmphasisMark",
	NodeCodeMark:          "CodeMark",
	NodeStrikethroughMark: "StrikethroughMark",
	NodeListMark:          "ListMark",
	NodeTaskMark:          "TaskMark",
	NodeCodeFence:         "CodeFence",
	NodeRaw:               "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the half-open byte range this node covers in File.Content.
	// Synthetic nodes with no source position carry NoSpan.
	Span SourceRange

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeStrikethrough,
		NodeLink, NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// IsMark returns true if this node covers literal marker syntax.
func (n *Node) IsMark() bool {
	switch n.Kind {
	case NodeHeadingMark, NodeEmphasisMark, NodeCodeMark, NodeStrikethroughMark,
		NodeListMark, NodeTaskMark, NodeCodeFence:
		return true
	default:
		return false
	}
}

// HasSpan reports whether the node is anchored to source text.
func (n *Node) HasSpan() bool {
	return n.Span.IsValid()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// FirstChildOfKind returns the first direct child of the given kind, or nil.
func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// LastChildOfKind returns the last direct child of the given kind, or nil.
func (n *Node) LastChildOfKind(kind NodeKind) *Node {
	for child := n.LastChild; child != nil; child = child.Prev {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}
