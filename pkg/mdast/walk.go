package mdast

import (
	"errors"
	"iter"
)

// WalkFunc is called for each visited node. A non-nil error other than
// ErrSkipChildren stops the walk and is returned by it.
type WalkFunc func(n *Node) error

// ErrSkipChildren may be returned by a WalkFunc to skip the children of the
// current node without stopping the walk.
var ErrSkipChildren = errors.New("skip children")

// Walk visits root and its descendants in pre-order.
func Walk(root *Node, walkFunc WalkFunc) error {
	return walk(root, nil, walkFunc)
}

// WalkRange is Walk restricted to nodes whose span overlaps r. Siblings are
// in document order, so a child list is abandoned at the first child that
// starts at or after r's end. Nodes without a span are always entered.
func WalkRange(root *Node, r SourceRange, walkFunc WalkFunc) error {
	return walk(root, &r, walkFunc)
}

func walk(n *Node, within *SourceRange, walkFunc WalkFunc) error {
	if n == nil {
		return nil
	}
	if within != nil && n.HasSpan() && !n.Span.Overlaps(*within) {
		return nil
	}

	if err := walkFunc(n); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		if within != nil && child.HasSpan() && child.Span.StartOffset >= within.EndOffset {
			break
		}
		if err := walk(child, within, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// All yields root and its descendants in pre-order. It does not recurse, so
// deeply nested trees are safe to range over.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := root; n != nil; n = following(root, n) {
			if !yield(n) {
				return
			}
		}
	}
}

// following returns the pre-order successor of n within root's subtree.
func following(root, n *Node) *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != root; n = n.Parent {
		if n.Next != nil {
			return n.Next
		}
	}
	return nil
}

// FindAll returns the nodes under root, root included, that match predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if predicate(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node in pre-order matching predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for n := range All(root) {
		if predicate(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns the nodes of kind under root in document order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
