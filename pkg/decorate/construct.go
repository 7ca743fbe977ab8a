package decorate

import (
	"fmt"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// ConstructKind is the closed set of Markdown constructs the engine decorates.
type ConstructKind uint8

const (
	ConstructHeading ConstructKind = iota + 1
	ConstructEmphasis
	ConstructStrong
	ConstructInlineCode
	ConstructStrikethrough
	ConstructListMarker
	ConstructTask
	ConstructCodeBlock
)

//nolint:gochecknoglobals // Read-only lookup table.
var constructKindNames = [...]string{
	ConstructHeading:       "heading",
	ConstructEmphasis:      "emphasis",
	ConstructStrong:        "strong",
	ConstructInlineCode:    "inline-code",
	ConstructStrikethrough: "strikethrough",
	ConstructListMarker:    "list-marker",
	ConstructTask:          "task",
	ConstructCodeBlock:     "code-block",
}

// String returns the construct kind name.
func (k ConstructKind) String() string {
	if k > 0 && int(k) < len(constructKindNames) {
		return constructKindNames[k]
	}
	return fmt.Sprintf("ConstructKind(%d)", uint8(k))
}

// LineScoped reports whether the construct reveals its markers for a
// selection anywhere on its source line(s) rather than only inside its span.
func (k ConstructKind) LineScoped() bool {
	switch k {
	case ConstructHeading, ConstructListMarker, ConstructTask, ConstructCodeBlock:
		return true
	case ConstructEmphasis, ConstructStrong, ConstructInlineCode, ConstructStrikethrough:
		return false
	default:
		return false
	}
}

// MarkerRole says what stands in for a marker when it is hidden.
type MarkerRole uint8

const (
	// MarkerSyntax is hidden without a replacement widget.
	MarkerSyntax MarkerRole = iota

	// MarkerBullet is replaced by a BulletWidget when hidden.
	MarkerBullet

	// MarkerNumber is replaced by an OrderedWidget when hidden.
	MarkerNumber

	// MarkerCheckbox is always replaced by a CheckboxWidget.
	MarkerCheckbox
)

// Marker is one literal syntax run of a construct.
type Marker struct {
	Span mdast.SourceRange
	Role MarkerRole
}

// Construct is a classified node: the ranges to hide or reveal and the
// range to style.
type Construct struct {
	Kind ConstructKind

	// Node is the syntax node the construct was derived from.
	Node *mdast.Node

	// Markers are the literal syntax runs, in document order.
	Markers []Marker

	// Content is the formatted text between the markers. It may be empty.
	Content mdast.SourceRange

	// Reference is the range a selection must touch to reveal the markers.
	Reference mdast.SourceRange

	// Level is the heading level (1-6) or list nesting depth (from 1).
	Level int

	// Ordered is set for ordered list markers; Number and Delimiter hold the numeral.
	Ordered   bool
	Number    int
	Delimiter byte

	// Checked is the task state.
	Checked bool

	// Info is the first word of a fenced code block's info string.
	Info string
}
