package mdast

// BlockAttrs are parser facts about a block node that its children do not
// show directly. At most one field is set, matching the node's kind.
type BlockAttrs struct {
	HeadingLevel int
	List         *ListAttrs
	CodeBlock    *CodeBlockAttrs
}

// ListAttrs describe a NodeList.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+" or "*"; empty for ordered lists
	StartNumber  int
	Tight        bool
}

// CodeBlockAttrs describe a NodeCodeBlock. FenceChar is zero and Indented
// true for indented blocks.
type CodeBlockAttrs struct {
	FenceChar   byte
	FenceLength int
	Info        string
	Indented    bool
}

// InlineAttrs are parser facts about inline and mark nodes.
type InlineAttrs struct {
	EmphasisLevel int    // 1 for emphasis, 2 for strong
	Checked       bool   // NodeTaskMark
	Destination   string // links, images and autolinks
}

// HeadingLevel returns the level of a heading node, or 0.
func (n *Node) HeadingLevel() int {
	if n == nil || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// CodeBlockAttrs returns the code block facts of n, or nil.
func (n *Node) CodeBlockAttrs() *CodeBlockAttrs {
	if n == nil || n.Block == nil {
		return nil
	}
	return n.Block.CodeBlock
}

// IsFenced reports whether n is a fenced code block.
func (n *Node) IsFenced() bool {
	attrs := n.CodeBlockAttrs()
	return attrs != nil && !attrs.Indented && attrs.FenceChar != 0
}

// EmphasisLevel returns the emphasis strength of n, or 0.
func (n *Node) EmphasisLevel() int {
	if n == nil || n.Inline == nil {
		return 0
	}
	return n.Inline.EmphasisLevel
}

// Checked reports whether n is a checked task mark.
func (n *Node) Checked() bool {
	return n != nil && n.Inline != nil && n.Inline.Checked
}
