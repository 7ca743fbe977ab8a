package decorate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

func TestMarkersVisible(t *testing.T) {
	t.Parallel()

	ref := mdast.Span(10, 20)

	tests := []struct {
		name string
		sel  decorate.Selection
		want bool
	}{
		{"caret inside", decorate.Cursor(15), true},
		{"caret at start boundary", decorate.Cursor(10), true},
		{"caret at end boundary", decorate.Cursor(20), true},
		{"caret just before", decorate.Cursor(9), false},
		{"caret just after", decorate.Cursor(21), false},
		{"caret far away", decorate.Cursor(5), false},
		{"range ending at start", decorate.NewSelection(decorate.SelectionRange{Anchor: 2, Head: 10}), true},
		{"backwards range covering", decorate.NewSelection(decorate.SelectionRange{Anchor: 30, Head: 0}), true},
		{"range before", decorate.NewSelection(decorate.SelectionRange{Anchor: 0, Head: 9}), false},
		{
			"secondary caret inside",
			decorate.Selection{
				Ranges: []decorate.SelectionRange{{Anchor: 0, Head: 0}, {Anchor: 12, Head: 12}},
				Main:   0,
			},
			true,
		},
		{"empty selection", decorate.Selection{}, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, decorate.MarkersVisible(ref, testCase.sel))
		})
	}
}

func TestMarkersVisible_UnanchoredReference(t *testing.T) {
	t.Parallel()

	assert.True(t, decorate.MarkersVisible(mdast.NoSpan, decorate.Cursor(100)))
}

func TestSelection_MainRange(t *testing.T) {
	t.Parallel()

	sel := decorate.Selection{
		Ranges: []decorate.SelectionRange{{Anchor: 1, Head: 1}, {Anchor: 9, Head: 4}},
		Main:   1,
	}

	main := sel.MainRange()
	assert.Equal(t, 4, main.From())
	assert.Equal(t, 9, main.To())
	assert.False(t, main.IsEmpty())
	assert.Equal(t, mdast.Span(4, 9), main.Range())

	assert.Equal(t, decorate.SelectionRange{Anchor: 1, Head: 1}, decorate.Selection{Ranges: sel.Ranges, Main: 7}.MainRange())
	assert.Equal(t, decorate.SelectionRange{}, decorate.Selection{}.MainRange())
}

func TestSelection_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, decorate.Cursor(3).Equal(decorate.Cursor(3)))
	assert.False(t, decorate.Cursor(3).Equal(decorate.Cursor(4)))
	assert.False(t, decorate.Cursor(3).Equal(decorate.Selection{}))
}
