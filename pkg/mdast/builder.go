package mdast

// NewNode creates a detached node of kind with no source span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, Span: NoSpan}
}

// NewSpanNode creates a detached node of kind covering [from, to).
func NewSpanNode(kind NodeKind, from, to int) *Node {
	return &Node{Kind: kind, Span: Span(from, to)}
}

// NewDocument creates an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	link(parent, child, parent.LastChild, nil)
}

// PrependChild makes child the first child of parent, detaching it from any
// previous parent first.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	link(parent, child, nil, parent.FirstChild)
}

// Detach unlinks n from its parent and siblings. Its own children stay
// attached.
func Detach(n *Node) {
	if n == nil || n.Parent == nil {
		return
	}
	parent := n.Parent

	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		parent.LastChild = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// link places child between prev and next under parent. prev and next must
// be adjacent children of parent (or nil at either end).
func link(parent, child, prev, next *Node) {
	if child.Parent != nil {
		if child == prev || child == next {
			return
		}
		Detach(child)
	}

	child.Parent, child.Prev, child.Next = parent, prev, next

	if prev != nil {
		prev.Next = child
	} else {
		parent.FirstChild = child
	}
	if next != nil {
		next.Prev = child
	} else {
		parent.LastChild = child
	}
}

// PropagateSpans widens every node to cover its descendants. Nodes without
// a span take the union of their children's. Children are processed first
// so containers see final child spans.
func PropagateSpans(root *Node) {
	if root == nil {
		return
	}
	span := root.Span
	for child := root.FirstChild; child != nil; child = child.Next {
		PropagateSpans(child)
		span = span.Union(child.Span)
	}
	root.Span = span
}

// SetFile points root and every descendant at file.
func SetFile(root *Node, file *FileSnapshot) {
	for n := range All(root) {
		n.File = file
	}
}
