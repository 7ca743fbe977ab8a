package decorate

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// maxListNumberDigits is the longest ordered-list numeral CommonMark accepts.
const maxListNumberDigits = 9

// maxHeadingLevel is the deepest ATX heading level.
const maxHeadingLevel = 6

// Classify maps a syntax node to the construct it represents.
//
// It returns false for node kinds that are never decorated and for nodes
// whose expected marker children are missing or do not match the document
// text, which is routine while the user is mid-edit. Classify never panics
// on a malformed tree.
func Classify(n *mdast.Node, doc Text) (Construct, bool) {
	if n == nil || doc == nil || !n.HasSpan() {
		return Construct{}, false
	}

	switch n.Kind {
	case mdast.NodeHeading:
		return classifyHeading(n, doc)
	case mdast.NodeEmphasis:
		return classifyDelimited(n, doc, ConstructEmphasis, mdast.NodeEmphasisMark, "*_")
	case mdast.NodeStrong:
		return classifyDelimited(n, doc, ConstructStrong, mdast.NodeEmphasisMark, "*_")
	case mdast.NodeCodeSpan:
		return classifyDelimited(n, doc, ConstructInlineCode, mdast.NodeCodeMark, "`")
	case mdast.NodeStrikethrough:
		return classifyDelimited(n, doc, ConstructStrikethrough, mdast.NodeStrikethroughMark, "~")
	case mdast.NodeListItem:
		return classifyListItem(n, doc)
	case mdast.NodeCodeBlock:
		return classifyCodeBlock(n, doc)
	case mdast.NodeDocument, mdast.NodeParagraph, mdast.NodeList, mdast.NodeBlockquote,
		mdast.NodeThematicBreak, mdast.NodeHTMLBlock, mdast.NodeText, mdast.NodeLink,
		mdast.NodeImage, mdast.NodeSoftBreak, mdast.NodeHardBreak, mdast.NodeHTMLInline,
		mdast.NodeHeadingMark, mdast.NodeEmphasisMark, mdast.NodeCodeMark,
		mdast.NodeStrikethroughMark, mdast.NodeListMark, mdast.NodeTaskMark,
		mdast.NodeCodeFence, mdast.NodeRaw:
		return Construct{}, false
	default:
		return Construct{}, false
	}
}

// classifyHeading requires an ATX marker at the very start of the heading:
// a '#' run of the heading's level followed by spaces or tabs. A trailing
// heading mark is the optional closing sequence.
func classifyHeading(n *mdast.Node, doc Text) (Construct, bool) {
	mark := n.FirstChild
	if mark == nil || mark.Kind != mdast.NodeHeadingMark || !mark.HasSpan() ||
		mark.Span.StartOffset != n.Span.StartOffset || mark.Span.EndOffset > n.Span.EndOffset {
		return Construct{}, false
	}

	level := n.HeadingLevel()
	if level < 1 || level > maxHeadingLevel {
		return Construct{}, false
	}

	text := sliceRange(doc, mark.Span)
	hashes := len(text) - len(strings.TrimLeft(text, "#"))
	if hashes != level || hashes == len(text) || strings.Trim(text[hashes:], " \t") != "" {
		return Construct{}, false
	}

	construct := Construct{
		Kind:      ConstructHeading,
		Node:      n,
		Markers:   []Marker{{Span: mark.Span}},
		Content:   mdast.Span(mark.Span.EndOffset, n.Span.EndOffset),
		Reference: lineRange(doc, n.Span.StartOffset),
		Level:     level,
	}
	if closing := n.LastChild; closing != mark && closing.Kind == mdast.NodeHeadingMark {
		if !closing.HasSpan() || closing.Span.StartOffset < mark.Span.EndOffset ||
			closing.Span.EndOffset != n.Span.EndOffset || !isClosingRun(sliceRange(doc, closing.Span)) {
			return Construct{}, false
		}
		construct.Markers = append(construct.Markers, Marker{Span: closing.Span})
		construct.Content.EndOffset = closing.Span.StartOffset
	}
	return construct, true
}

// isClosingRun reports whether text is blanks, a '#' run, then blanks.
func isClosingRun(text string) bool {
	trimmed := strings.Trim(text, " \t")
	return trimmed != "" && trimmed != text && strings.Trim(trimmed, "#") == "" && text[0] != '#'
}

// classifyDelimited handles the inline constructs wrapped in a pair of
// delimiter runs: emphasis, strong, code spans and strikethrough.
func classifyDelimited(n *mdast.Node, doc Text, kind ConstructKind, markKind mdast.NodeKind, chars string) (Construct, bool) {
	first := n.FirstChildOfKind(markKind)
	last := n.LastChildOfKind(markKind)
	if first == nil || last == nil || first == last {
		return Construct{}, false
	}
	if !first.HasSpan() || !last.HasSpan() || first.Span.IsEmpty() || last.Span.IsEmpty() ||
		first.Span.EndOffset > last.Span.StartOffset {
		return Construct{}, false
	}
	if !isRunOf(sliceRange(doc, first.Span), chars) || !isRunOf(sliceRange(doc, last.Span), chars) {
		return Construct{}, false
	}

	construct := Construct{
		Kind:      kind,
		Node:      n,
		Markers:   []Marker{{Span: first.Span}, {Span: last.Span}},
		Content:   mdast.Span(first.Span.EndOffset, last.Span.StartOffset),
		Reference: mdast.Span(first.Span.StartOffset, last.Span.EndOffset),
	}
	construct.Level = n.EmphasisLevel()
	return construct, true
}

// classifyListItem produces a Task construct for task items and a
// ListMarker construct otherwise, so an item is never decorated twice.
func classifyListItem(n *mdast.Node, doc Text) (Construct, bool) {
	mark := n.FirstChildOfKind(mdast.NodeListMark)
	if mark == nil || !mark.HasSpan() || mark.Span.IsEmpty() {
		return Construct{}, false
	}

	if task := taskMarkOf(n); task != nil {
		return classifyTask(n, mark, task, doc)
	}

	text := sliceRange(doc, mark.Span)
	construct := Construct{
		Kind:      ConstructListMarker,
		Node:      n,
		Content:   mdast.NoSpan,
		Reference: lineRange(doc, mark.Span.StartOffset),
		Level:     listDepth(n),
	}

	if number, delim, ok := parseOrdered(text); ok {
		construct.Ordered = true
		construct.Number = number
		construct.Delimiter = delim
		construct.Markers = []Marker{{Span: mark.Span, Role: MarkerNumber}}
		return construct, true
	}

	if text != "-" && text != "+" && text != "*" {
		return Construct{}, false
	}
	construct.Markers = []Marker{{Span: mark.Span, Role: MarkerBullet}}
	return construct, true
}

// classifyTask pairs the list marker with the task marker. The list marker
// hides and reveals as usual while the task marker is always a checkbox.
func classifyTask(item, mark, task *mdast.Node, doc Text) (Construct, bool) {
	checked, ok := parseCheckbox(sliceRange(doc, task.Span))
	if !ok || mark.Span.EndOffset > task.Span.StartOffset {
		return Construct{}, false
	}

	content := mdast.NoSpan
	if block := task.Parent; block != nil && block.HasSpan() && block.Span.EndOffset >= task.Span.EndOffset {
		rest := sliceRange(doc, mdast.Span(task.Span.EndOffset, block.Span.EndOffset))
		start := task.Span.EndOffset + len(rest) - len(strings.TrimLeft(rest, " \t"))
		content = mdast.Span(start, block.Span.EndOffset)
	}

	return Construct{
		Kind: ConstructTask,
		Node: item,
		Markers: []Marker{
			{Span: mark.Span, Role: MarkerSyntax},
			{Span: task.Span, Role: MarkerCheckbox},
		},
		Content:   content,
		Reference: lineRange(doc, mark.Span.StartOffset),
		Level:     listDepth(item),
		Checked:   checked,
	}, true
}

// classifyCodeBlock handles fenced code blocks. The fence lines are the
// markers and the lines between them the content.
func classifyCodeBlock(n *mdast.Node, doc Text) (Construct, bool) {
	if !n.IsFenced() {
		return Construct{}, false
	}
	attrs := n.CodeBlockAttrs()

	open := n.FirstChildOfKind(mdast.NodeCodeFence)
	if open == nil || !open.HasSpan() || open.Span.IsEmpty() {
		return Construct{}, false
	}
	fence := strings.Repeat(string(attrs.FenceChar), max(attrs.FenceLength, 1))
	if !strings.HasPrefix(sliceRange(doc, open.Span), fence) {
		return Construct{}, false
	}

	markers := []Marker{{Span: open.Span}}
	contentStart := skipNewline(doc, open.Span.EndOffset)
	contentEnd := n.Span.EndOffset

	if closing := n.LastChildOfKind(mdast.NodeCodeFence); closing != nil && closing != open && closing.HasSpan() {
		markers = append(markers, Marker{Span: closing.Span})
		contentEnd = lineRange(doc, closing.Span.StartOffset).StartOffset
	}
	contentEnd = max(trimNewline(doc, contentStart, contentEnd), contentStart)

	info, _, _ := strings.Cut(strings.TrimSpace(attrs.Info), " ")

	return Construct{
		Kind:      ConstructCodeBlock,
		Node:      n,
		Markers:   markers,
		Content:   mdast.Span(contentStart, contentEnd),
		Reference: mdast.Span(lineRange(doc, n.Span.StartOffset).StartOffset, n.Span.EndOffset),
		Info:      info,
	}, true
}

// taskMarkOf returns the task marker leading the item's first block, if any.
func taskMarkOf(item *mdast.Node) *mdast.Node {
	for child := item.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeListMark {
			continue
		}
		if child.Kind != mdast.NodeParagraph {
			return nil
		}
		task := child.FirstChildOfKind(mdast.NodeTaskMark)
		if task == nil || !task.HasSpan() {
			return nil
		}
		return task
	}
	return nil
}

// listDepth counts the lists enclosing n.
func listDepth(n *mdast.Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == mdast.NodeList {
			depth++
		}
	}
	return max(depth, 1)
}

// parseOrdered parses an ordered list marker: a run of digits followed by
// '.' or ')'.
func parseOrdered(text string) (int, byte, bool) {
	if len(text) < 2 || len(text) > maxListNumberDigits+1 {
		return 0, 0, false
	}
	delim := text[len(text)-1]
	if delim != '.' && delim != ')' {
		return 0, 0, false
	}
	digits := text[:len(text)-1]
	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, false
		}
	}
	number, err := strconv.Atoi(digits)
	if err != nil {
		return 0, 0, false
	}
	return number, delim, true
}

// parseCheckbox parses a bracketed task marker such as "[ ]" or "[x]".
func parseCheckbox(text string) (bool, bool) {
	if len(text) < 3 || text[0] != '[' || text[len(text)-1] != ']' {
		return false, false
	}
	inner := text[1 : len(text)-1]
	switch strings.Trim(inner, " \t") {
	case "":
		return false, inner != ""
	case "x", "X":
		return true, true
	default:
		return false, false
	}
}

func isRunOf(text, chars string) bool {
	if text == "" || !strings.ContainsRune(chars, rune(text[0])) {
		return false
	}
	return strings.Count(text, text[:1]) == len(text)
}

func sliceRange(doc Text, r mdast.SourceRange) string {
	return doc.SliceText(r.StartOffset, r.EndOffset)
}
