package decorate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

func TestClassify_Heading(t *testing.T) {
	t.Parallel()

	snap := parse(t, "text\n## Title\n")
	construct, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeHeading), snap)
	require.True(t, ok)

	assert.Equal(t, decorate.ConstructHeading, construct.Kind)
	assert.Equal(t, 2, construct.Level)
	assert.Equal(t, []decorate.Marker{{Span: mdast.Span(5, 8)}}, construct.Markers)
	assert.Equal(t, mdast.Span(8, 13), construct.Content)
	assert.Equal(t, mdast.Span(5, 13), construct.Reference)
}

func TestClassify_HeadingClosingSequence(t *testing.T) {
	t.Parallel()

	snap := parse(t, "## Title ##\n")
	construct, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeHeading), snap)
	require.True(t, ok)

	assert.Equal(t, []decorate.Marker{{Span: mdast.Span(0, 3)}, {Span: mdast.Span(8, 11)}}, construct.Markers)
	assert.Equal(t, mdast.Span(3, 8), construct.Content)
	assert.Equal(t, mdast.Span(0, 11), construct.Reference)
}

func TestClassify_HeadingWithoutMarker(t *testing.T) {
	t.Parallel()

	snap := parse(t, "Title\n=====\n")
	_, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeHeading), snap)
	assert.False(t, ok, "setext headings have no ATX marker")
}

func TestClassify_MalformedHeadingTree(t *testing.T) {
	t.Parallel()

	content := []byte("##Title")
	snap := mdast.NewFileSnapshot("", content)
	heading := mdast.NewSpanNode(mdast.NodeHeading, 0, 7)
	heading.Block = &mdast.BlockAttrs{HeadingLevel: 2}
	mdast.AppendChild(heading, mdast.NewSpanNode(mdast.NodeHeadingMark, 0, 2))

	_, ok := decorate.Classify(heading, snap)
	assert.False(t, ok, "marker without trailing whitespace is not a heading marker")

	heading.Block.HeadingLevel = 3
	heading.FirstChild.Span = mdast.Span(0, 3)
	_, ok = decorate.Classify(heading, snap)
	assert.False(t, ok, "marker text must match the level")
}

func TestClassify_Delimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		nodeKind    mdast.NodeKind
		wantKind    decorate.ConstructKind
		wantMarkers []mdast.SourceRange
		wantContent mdast.SourceRange
	}{
		{
			"strong", "plain tex **strong**", mdast.NodeStrong, decorate.ConstructStrong,
			[]mdast.SourceRange{mdast.Span(10, 12), mdast.Span(18, 20)}, mdast.Span(12, 18),
		},
		{
			"emphasis", "_it_", mdast.NodeEmphasis, decorate.ConstructEmphasis,
			[]mdast.SourceRange{mdast.Span(0, 1), mdast.Span(3, 4)}, mdast.Span(1, 3),
		},
		{
			"inline code", "a `b` c", mdast.NodeCodeSpan, decorate.ConstructInlineCode,
			[]mdast.SourceRange{mdast.Span(2, 3), mdast.Span(4, 5)}, mdast.Span(3, 4),
		},
		{
			"strikethrough", "~~old~~", mdast.NodeStrikethrough, decorate.ConstructStrikethrough,
			[]mdast.SourceRange{mdast.Span(0, 2), mdast.Span(5, 7)}, mdast.Span(2, 5),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snap := parse(t, testCase.content)
			construct, ok := decorate.Classify(firstOfKind(t, snap, testCase.nodeKind), snap)
			require.True(t, ok)

			assert.Equal(t, testCase.wantKind, construct.Kind)
			require.Len(t, construct.Markers, len(testCase.wantMarkers))
			for i, want := range testCase.wantMarkers {
				assert.Equal(t, want, construct.Markers[i].Span)
				assert.Equal(t, decorate.MarkerSyntax, construct.Markers[i].Role)
			}
			assert.Equal(t, testCase.wantContent, construct.Content)
			assert.Equal(t, mdast.Span(testCase.wantMarkers[0].StartOffset, testCase.wantMarkers[1].EndOffset), construct.Reference)
			assert.False(t, construct.Kind.LineScoped())
		})
	}
}

func TestClassify_DelimitedNeedsTwoMarks(t *testing.T) {
	t.Parallel()

	content := []byte("**bold")
	snap := mdast.NewFileSnapshot("", content)
	strong := mdast.NewSpanNode(mdast.NodeStrong, 0, 6)
	mdast.AppendChild(strong, mdast.NewSpanNode(mdast.NodeEmphasisMark, 0, 2))
	mdast.AppendChild(strong, mdast.NewSpanNode(mdast.NodeText, 2, 6))

	_, ok := decorate.Classify(strong, snap)
	assert.False(t, ok)
}

func TestClassify_DelimitedRejectsStaleTree(t *testing.T) {
	t.Parallel()

	// The marks point at text that is no longer emphasis syntax.
	snap := mdast.NewFileSnapshot("", []byte("abbold__"))
	strong := mdast.NewSpanNode(mdast.NodeStrong, 0, 8)
	mdast.AppendChild(strong, mdast.NewSpanNode(mdast.NodeEmphasisMark, 0, 2))
	mdast.AppendChild(strong, mdast.NewSpanNode(mdast.NodeEmphasisMark, 6, 8))

	_, ok := decorate.Classify(strong, snap)
	assert.False(t, ok)
}

func TestClassify_ListMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantOrdered bool
		wantNumber  int
		wantDelim   byte
		wantRole    decorate.MarkerRole
		wantMarker  mdast.SourceRange
	}{
		{"dash", "- item", false, 0, 0, decorate.MarkerBullet, mdast.Span(0, 1)},
		{"plus", "+ item", false, 0, 0, decorate.MarkerBullet, mdast.Span(0, 1)},
		{"ordered dot", "12. item", true, 12, '.', decorate.MarkerNumber, mdast.Span(0, 3)},
		{"ordered paren", "3) item", true, 3, ')', decorate.MarkerNumber, mdast.Span(0, 2)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snap := parse(t, testCase.content)
			construct, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeListItem), snap)
			require.True(t, ok)

			assert.Equal(t, decorate.ConstructListMarker, construct.Kind)
			assert.Equal(t, testCase.wantOrdered, construct.Ordered)
			assert.Equal(t, testCase.wantNumber, construct.Number)
			assert.Equal(t, testCase.wantDelim, construct.Delimiter)
			assert.Equal(t, 1, construct.Level)
			assert.Equal(t, []decorate.Marker{{Span: testCase.wantMarker, Role: testCase.wantRole}}, construct.Markers)
			assert.False(t, construct.Content.IsValid(), "a bare list marker has no content")
			assert.Equal(t, mdast.Span(0, len(testCase.content)), construct.Reference)
		})
	}
}

func TestClassify_NestedListDepth(t *testing.T) {
	t.Parallel()

	snap := parse(t, "- outer\n  - inner\n")
	items := mdast.FindByKind(snap.Root, mdast.NodeListItem)
	require.Len(t, items, 2)

	construct, ok := decorate.Classify(items[1], snap)
	require.True(t, ok)
	assert.Equal(t, 2, construct.Level)
	assert.Equal(t, []decorate.Marker{{Span: mdast.Span(10, 11), Role: decorate.MarkerBullet}}, construct.Markers)
}

func TestClassify_Task(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantChecked bool
	}{
		{"unchecked", "- [ ] Buy milk", false},
		{"checked", "- [x] Buy milk", true},
		{"checked upper", "- [X] Buy milk", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snap := parse(t, testCase.content)
			construct, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeListItem), snap)
			require.True(t, ok)

			assert.Equal(t, decorate.ConstructTask, construct.Kind)
			assert.Equal(t, testCase.wantChecked, construct.Checked)
			assert.Equal(t, []decorate.Marker{
				{Span: mdast.Span(0, 1), Role: decorate.MarkerSyntax},
				{Span: mdast.Span(2, 5), Role: decorate.MarkerCheckbox},
			}, construct.Markers)
			assert.Equal(t, mdast.Span(6, 14), construct.Content)
			assert.Equal(t, mdast.Span(0, 14), construct.Reference)
		})
	}
}

func TestClassify_CodeBlock(t *testing.T) {
	t.Parallel()

	snap := parse(t, "```go run\nx := 1\n```\n")
	construct, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeCodeBlock), snap)
	require.True(t, ok)

	assert.Equal(t, decorate.ConstructCodeBlock, construct.Kind)
	assert.Equal(t, "go", construct.Info)
	assert.Equal(t, []decorate.Marker{{Span: mdast.Span(0, 9)}, {Span: mdast.Span(17, 20)}}, construct.Markers)
	assert.Equal(t, mdast.Span(10, 16), construct.Content)
	assert.Equal(t, mdast.Span(0, 20), construct.Reference)
	assert.True(t, construct.Kind.LineScoped())
}

func TestClassify_IndentedCodeBlock(t *testing.T) {
	t.Parallel()

	snap := parse(t, "    code\n")
	_, ok := decorate.Classify(firstOfKind(t, snap, mdast.NodeCodeBlock), snap)
	assert.False(t, ok)
}

func TestClassify_IrrelevantAndNil(t *testing.T) {
	t.Parallel()

	snap := parse(t, "para [link](x)\n\n---\n")

	for _, kind := range []mdast.NodeKind{mdast.NodeParagraph, mdast.NodeLink, mdast.NodeText, mdast.NodeThematicBreak} {
		_, ok := decorate.Classify(firstOfKind(t, snap, kind), snap)
		assert.False(t, ok, "kind %v", kind)
	}

	_, ok := decorate.Classify(nil, snap)
	assert.False(t, ok)

	_, ok = decorate.Classify(mdast.NewNode(mdast.NodeStrong), snap)
	assert.False(t, ok, "unanchored node")
}

func TestConstructKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "heading", decorate.ConstructHeading.String())
	assert.Equal(t, "code-block", decorate.ConstructCodeBlock.String())
	assert.Equal(t, "ConstructKind(0)", decorate.ConstructKind(0).String())
}
