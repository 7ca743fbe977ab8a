package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

func parseGFM(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := New(FlavorGFM).Parse(context.Background(), "test.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return snapshot
}

func findOne(t *testing.T, root *mdast.Node, kind mdast.NodeKind) *mdast.Node {
	t.Helper()

	nodes := mdast.FindByKind(root, kind)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 %v node, got %d", kind, len(nodes))
	}
	return nodes[0]
}

func marks(node *mdast.Node, kind mdast.NodeKind) []mdast.SourceRange {
	var spans []mdast.SourceRange
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			spans = append(spans, child.Span)
		}
	}
	return spans
}

func TestMapper_Heading(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		level    int
		wantMark mdast.SourceRange
		wantSpan mdast.SourceRange
	}{
		{"h1", "# Heading 1", 1, mdast.Span(0, 2), mdast.Span(0, 11)},
		{"h2", "## Title", 2, mdast.Span(0, 3), mdast.Span(0, 8)},
		{"h3 with newline", "### Three\n", 3, mdast.Span(0, 4), mdast.Span(0, 9)},
		{"h6", "###### Six", 6, mdast.Span(0, 7), mdast.Span(0, 10)},
		{"indented", "  # Hi", 1, mdast.Span(2, 4), mdast.Span(2, 6)},
		{"tab separator", "#\tTab", 1, mdast.Span(0, 2), mdast.Span(0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseGFM(t, tt.content)
			heading := findOne(t, snapshot.Root, mdast.NodeHeading)

			if heading.Block == nil || heading.Block.HeadingLevel != tt.level {
				t.Fatalf("heading level = %+v, want %d", heading.Block, tt.level)
			}

			if heading.Span != tt.wantSpan {
				t.Errorf("heading span = %+v, want %+v", heading.Span, tt.wantSpan)
			}

			got := marks(heading, mdast.NodeHeadingMark)
			if len(got) != 1 || got[0] != tt.wantMark {
				t.Errorf("heading marks = %+v, want [%+v]", got, tt.wantMark)
			}

			if heading.FirstChild.Kind != mdast.NodeHeadingMark {
				t.Errorf("first child = %v, want HeadingMark", heading.FirstChild.Kind)
			}
		})
	}
}

func TestMapper_HeadingClosingSequence(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantMarks []mdast.SourceRange
	}{
		{"closed", "## Title ##", []mdast.SourceRange{mdast.Span(0, 3), mdast.Span(8, 11)}},
		{"trailing blanks", "# Title #  \n", []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(7, 11)}},
		{"longer run", "# A ####", []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(3, 8)}},
		{"hash glued to text", "# Title#", []mdast.SourceRange{mdast.Span(0, 2)}},
		{"escaped hash", "# Title \\#", []mdast.SourceRange{mdast.Span(0, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseGFM(t, tt.content)
			heading := findOne(t, snapshot.Root, mdast.NodeHeading)

			got := marks(heading, mdast.NodeHeadingMark)
			if len(got) != len(tt.wantMarks) {
				t.Fatalf("heading marks = %+v, want %+v", got, tt.wantMarks)
			}
			for i := range got {
				if got[i] != tt.wantMarks[i] {
					t.Errorf("mark %d = %+v, want %+v", i, got[i], tt.wantMarks[i])
				}
			}
			if len(got) == 2 && heading.LastChild.Span != got[1] {
				t.Errorf("closing mark is not the last child: %v", heading.LastChild.Kind)
			}
		})
	}
}

func TestMapper_SetextHeadingHasNoMark(t *testing.T) {
	snapshot := parseGFM(t, "Title\n=====\n")
	heading := findOne(t, snapshot.Root, mdast.NodeHeading)

	if got := marks(heading, mdast.NodeHeadingMark); len(got) != 0 {
		t.Errorf("setext heading marks = %+v, want none", got)
	}
	if heading.Span.StartOffset != 0 {
		t.Errorf("setext heading start = %d, want 0", heading.Span.StartOffset)
	}
}

func TestMapper_Delimiters(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		kind      mdast.NodeKind
		markKind  mdast.NodeKind
		wantMarks []mdast.SourceRange
		wantSpan  mdast.SourceRange
	}{
		{
			name: "strong", content: "**bold**",
			kind: mdast.NodeStrong, markKind: mdast.NodeEmphasisMark,
			wantMarks: []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(6, 8)},
			wantSpan:  mdast.Span(0, 8),
		},
		{
			name: "strong underscore", content: "a __b__ c",
			kind: mdast.NodeStrong, markKind: mdast.NodeEmphasisMark,
			wantMarks: []mdast.SourceRange{mdast.Span(2, 4), mdast.Span(5, 7)},
			wantSpan:  mdast.Span(2, 7),
		},
		{
			name: "emphasis", content: "x *it* y",
			kind: mdast.NodeEmphasis, markKind: mdast.NodeEmphasisMark,
			wantMarks: []mdast.SourceRange{mdast.Span(2, 3), mdast.Span(5, 6)},
			wantSpan:  mdast.Span(2, 6),
		},
		{
			name: "code span", content: "`code`",
			kind: mdast.NodeCodeSpan, markKind: mdast.NodeCodeMark,
			wantMarks: []mdast.SourceRange{mdast.Span(0, 1), mdast.Span(5, 6)},
			wantSpan:  mdast.Span(0, 6),
		},
		{
			name: "padded double backtick", content: "`` a`b ``",
			kind: mdast.NodeCodeSpan, markKind: mdast.NodeCodeMark,
			wantMarks: []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(7, 9)},
			wantSpan:  mdast.Span(0, 9),
		},
		{
			name: "strikethrough", content: "~~del~~",
			kind: mdast.NodeStrikethrough, markKind: mdast.NodeStrikethroughMark,
			wantMarks: []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(5, 7)},
			wantSpan:  mdast.Span(0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseGFM(t, tt.content)
			node := findOne(t, snapshot.Root, tt.kind)

			if node.Span != tt.wantSpan {
				t.Errorf("span = %+v, want %+v", node.Span, tt.wantSpan)
			}

			got := marks(node, tt.markKind)
			if len(got) != len(tt.wantMarks) {
				t.Fatalf("marks = %+v, want %+v", got, tt.wantMarks)
			}
			for i := range got {
				if got[i] != tt.wantMarks[i] {
					t.Errorf("mark[%d] = %+v, want %+v", i, got[i], tt.wantMarks[i])
				}
			}

			if node.FirstChild.Kind != tt.markKind || node.LastChild.Kind != tt.markKind {
				t.Errorf("marks must be first and last children, got %v and %v",
					node.FirstChild.Kind, node.LastChild.Kind)
			}
		})
	}
}

func TestMapper_UnclosedStrongIsPlainText(t *testing.T) {
	snapshot := parseGFM(t, "**bold")

	if got := mdast.FindByKind(snapshot.Root, mdast.NodeStrong); len(got) != 0 {
		t.Errorf("expected no strong nodes, got %d", len(got))
	}
	if got := mdast.FindByKind(snapshot.Root, mdast.NodeEmphasisMark); len(got) != 0 {
		t.Errorf("expected no emphasis marks, got %d", len(got))
	}
}

func TestMapper_BulletList(t *testing.T) {
	snapshot := parseGFM(t, "- one\n- two\n")
	list := findOne(t, snapshot.Root, mdast.NodeList)

	if list.Block == nil || list.Block.List == nil {
		t.Fatal("expected list attrs")
	}
	if list.Block.List.Ordered {
		t.Error("expected unordered list")
	}
	if list.Block.List.BulletMarker != "-" {
		t.Errorf("BulletMarker = %q, want %q", list.Block.List.BulletMarker, "-")
	}

	items := list.Children()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	want := []mdast.SourceRange{mdast.Span(0, 1), mdast.Span(6, 7)}
	for i, item := range items {
		got := marks(item, mdast.NodeListMark)
		if len(got) != 1 || got[0] != want[i] {
			t.Errorf("item %d marks = %+v, want [%+v]", i, got, want[i])
		}
	}
}

func TestMapper_OrderedList(t *testing.T) {
	snapshot := parseGFM(t, "1. one\n2. two\n\n10) ten\n")

	lists := mdast.FindByKind(snapshot.Root, mdast.NodeList)
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}

	if !lists[0].Block.List.Ordered || lists[0].Block.List.StartNumber != 1 {
		t.Errorf("first list attrs = %+v", lists[0].Block.List)
	}
	if lists[1].Block.List.StartNumber != 10 {
		t.Errorf("second list start = %d, want 10", lists[1].Block.List.StartNumber)
	}

	gotMarks := make([]mdast.SourceRange, 0, 3)
	for _, mark := range mdast.FindByKind(snapshot.Root, mdast.NodeListMark) {
		gotMarks = append(gotMarks, mark.Span)
	}
	want := []mdast.SourceRange{mdast.Span(0, 2), mdast.Span(7, 9), mdast.Span(15, 18)}
	if len(gotMarks) != len(want) {
		t.Fatalf("list marks = %+v, want %+v", gotMarks, want)
	}
	for i := range want {
		if gotMarks[i] != want[i] {
			t.Errorf("mark[%d] = %+v, want %+v", i, gotMarks[i], want[i])
		}
	}
}

func TestMapper_TaskList(t *testing.T) {
	snapshot := parseGFM(t, "- [ ] Buy milk\n- [x] Done\n")

	tasks := mdast.FindByKind(snapshot.Root, mdast.NodeTaskMark)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 task marks, got %d", len(tasks))
	}

	if tasks[0].Span != mdast.Span(2, 5) {
		t.Errorf("task[0] span = %+v, want [2,5)", tasks[0].Span)
	}
	if tasks[0].Inline == nil || tasks[0].Inline.Checked {
		t.Errorf("task[0] should be unchecked, got %+v", tasks[0].Inline)
	}

	if tasks[1].Span != mdast.Span(17, 20) {
		t.Errorf("task[1] span = %+v, want [17,20)", tasks[1].Span)
	}
	if tasks[1].Inline == nil || !tasks[1].Inline.Checked {
		t.Errorf("task[1] should be checked, got %+v", tasks[1].Inline)
	}

	item := tasks[0].Parent.Parent
	if item.Kind != mdast.NodeListItem {
		t.Fatalf("task grandparent = %v, want ListItem", item.Kind)
	}
	if got := marks(item, mdast.NodeListMark); len(got) != 1 || got[0] != mdast.Span(0, 1) {
		t.Errorf("list marks = %+v, want [[0,1)]", got)
	}

	text := tasks[0].Next
	if text == nil || text.Kind != mdast.NodeText || string(text.Text()) != "Buy milk" {
		t.Errorf("text after task = %+v", text)
	}
}

func TestMapper_FencedCodeBlock(t *testing.T) {
	content := "```go\ncode\n```\n"
	snapshot := parseGFM(t, content)
	block := findOne(t, snapshot.Root, mdast.NodeCodeBlock)

	if block.Span != mdast.Span(0, 14) {
		t.Errorf("span = %+v, want [0,14)", block.Span)
	}

	attrs := block.Block.CodeBlock
	if attrs == nil {
		t.Fatal("expected code block attrs")
	}
	if attrs.Info != "go" || attrs.FenceChar != '`' || attrs.FenceLength != 3 || attrs.Indented {
		t.Errorf("attrs = %+v", attrs)
	}

	fences := marks(block, mdast.NodeCodeFence)
	want := []mdast.SourceRange{mdast.Span(0, 5), mdast.Span(11, 14)}
	if len(fences) != 2 || fences[0] != want[0] || fences[1] != want[1] {
		t.Errorf("fences = %+v, want %+v", fences, want)
	}
}

func TestMapper_UnterminatedFence(t *testing.T) {
	snapshot := parseGFM(t, "~~~~\nno end\n")
	block := findOne(t, snapshot.Root, mdast.NodeCodeBlock)

	fences := marks(block, mdast.NodeCodeFence)
	if len(fences) != 1 || fences[0] != mdast.Span(0, 4) {
		t.Errorf("fences = %+v, want [[0,4)]", fences)
	}
	if block.Block.CodeBlock.FenceChar != '~' || block.Block.CodeBlock.FenceLength != 4 {
		t.Errorf("attrs = %+v", block.Block.CodeBlock)
	}
}

func TestMapper_IndentedCodeBlock(t *testing.T) {
	snapshot := parseGFM(t, "para\n\n    code\n")
	block := findOne(t, snapshot.Root, mdast.NodeCodeBlock)

	if block.Block.CodeBlock == nil || !block.Block.CodeBlock.Indented {
		t.Errorf("expected indented code block, got %+v", block.Block.CodeBlock)
	}
	if len(marks(block, mdast.NodeCodeFence)) != 0 {
		t.Error("indented code block should have no fences")
	}
}

func TestMapper_Link(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		kind     mdast.NodeKind
		wantSpan mdast.SourceRange
		wantDest string
	}{
		{"inline", "[a](b)", mdast.NodeLink, mdast.Span(0, 6), "b"},
		{"nested parens", "[a](b(c)) x", mdast.NodeLink, mdast.Span(0, 9), "b(c)"},
		{"title", `[a](b "t)") x`, mdast.NodeLink, mdast.Span(0, 11), "b"},
		{"image", "![alt](i.png)", mdast.NodeImage, mdast.Span(0, 13), "i.png"},
		{"autolink", "see <http://x.io>", mdast.NodeLink, mdast.Span(4, 17), "http://x.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := parseGFM(t, tt.content)
			link := findOne(t, snapshot.Root, tt.kind)

			if link.Span != tt.wantSpan {
				t.Errorf("span = %+v, want %+v", link.Span, tt.wantSpan)
			}
			if link.Inline == nil || link.Inline.Destination != tt.wantDest {
				t.Errorf("destination = %+v, want %q", link.Inline, tt.wantDest)
			}
		})
	}
}

func TestMapper_Breaks(t *testing.T) {
	snapshot := parseGFM(t, "a\nb")

	soft := findOne(t, snapshot.Root, mdast.NodeSoftBreak)
	if soft.Span != mdast.Span(1, 2) {
		t.Errorf("soft break span = %+v, want [1,2)", soft.Span)
	}

	texts := mdast.FindByKind(snapshot.Root, mdast.NodeText)
	if len(texts) != 2 {
		t.Fatalf("expected 2 text nodes, got %d", len(texts))
	}
	if texts[1].Span != mdast.Span(2, 3) {
		t.Errorf("second text span = %+v, want [2,3)", texts[1].Span)
	}
}

func TestMapper_ThematicBreak(t *testing.T) {
	snapshot := parseGFM(t, "a\n\n---\n")
	brk := findOne(t, snapshot.Root, mdast.NodeThematicBreak)

	if brk.Span != mdast.Span(3, 6) {
		t.Errorf("span = %+v, want [3,6)", brk.Span)
	}
}

func TestMapper_Blockquote(t *testing.T) {
	snapshot := parseGFM(t, "> quote\n")
	quote := findOne(t, snapshot.Root, mdast.NodeBlockquote)

	if quote.Span != mdast.Span(2, 7) {
		t.Errorf("span = %+v, want [2,7)", quote.Span)
	}
}

func TestMapper_ListInBlockquote(t *testing.T) {
	snapshot := parseGFM(t, "> - [x] quoted\n")

	mark := findOne(t, snapshot.Root, mdast.NodeListMark)
	if mark.Span != mdast.Span(2, 3) {
		t.Errorf("list mark = %+v, want [2,3)", mark.Span)
	}

	task := findOne(t, snapshot.Root, mdast.NodeTaskMark)
	if task.Span != mdast.Span(4, 7) {
		t.Errorf("task mark = %+v, want [4,7)", task.Span)
	}
}

func TestMapper_FindFence(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		from     int
		char     byte
		minLen   int
		wantOK   bool
		wantSpan mdast.SourceRange
	}{
		{"opening", "```js\n", 0, 0, 0, true, mdast.Span(0, 5)},
		{"opening skips text", "x\n~~~\n", 0, 0, 0, true, mdast.Span(2, 5)},
		{"too short", "``\n", 0, 0, 0, false, mdast.SourceRange{}},
		{"closing", "```\n", 0, '`', 3, true, mdast.Span(0, 3)},
		{"closing too short", "```\n", 0, '`', 4, false, mdast.SourceRange{}},
		{"closing wrong char", "~~~\n", 0, '`', 3, false, mdast.SourceRange{}},
		{"closing with info", "``` go\n", 0, '`', 3, false, mdast.SourceRange{}},
		{"closing in list", "  ```\n", 0, '`', 3, true, mdast.Span(2, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMapper([]byte(tt.content))
			got, _, _, ok := m.findFence(tt.from, tt.char, tt.minLen)

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantSpan {
				t.Errorf("span = %+v, want %+v", got, tt.wantSpan)
			}
		})
	}
}

func TestMapper_MatchParen(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"(a)", 2},
		{"(a(b)c)", 6},
		{`(a "x)")`, 7},
		{`(a\))`, 4},
		{"(<a)b>)", 6},
		{"(open", -1},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			m := newMapper([]byte(tt.content))
			if got := m.matchParen(0); got != tt.want {
				t.Errorf("matchParen(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestMapper_HeadingMarkRejectsNonPrefix(t *testing.T) {
	m := newMapper([]byte("a## b"))
	if _, ok := m.headingMark(4, 2); ok {
		t.Error("expected no heading mark when '#' run is preceded by text")
	}
}
