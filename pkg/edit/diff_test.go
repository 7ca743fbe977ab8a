package edit_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdlive/pkg/edit"
)

func TestNewDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit.TextEdit
		want    string
	}{
		{
			name:    "single toggle",
			content: "# Tasks\n\n- [ ] one\n- [ ] two\n",
			edits:   []edit.TextEdit{{StartOffset: 11, EndOffset: 14, NewText: "[x]", Expect: "[ ]"}},
			want: "--- a/todo.md\n+++ b/todo.md\n" +
				"@@ -3,1 +3,1 @@\n" +
				"-- [ ] one\n" +
				"+- [x] one\n",
		},
		{
			name:    "two lines give two hunks",
			content: "- [ ] one\n- [ ] two\n- [ ] three\n",
			edits: []edit.TextEdit{
				{StartOffset: 22, EndOffset: 25, NewText: "[x]"},
				{StartOffset: 2, EndOffset: 5, NewText: "[x]"},
			},
			want: "--- a/todo.md\n+++ b/todo.md\n" +
				"@@ -1,1 +1,1 @@\n" +
				"-- [ ] one\n" +
				"+- [x] one\n" +
				"@@ -3,1 +3,1 @@\n" +
				"-- [ ] three\n" +
				"+- [x] three\n",
		},
		{
			name:    "edits on one line share a hunk",
			content: "a b c\n",
			edits: []edit.TextEdit{
				{StartOffset: 0, EndOffset: 1, NewText: "A"},
				{StartOffset: 4, EndOffset: 5, NewText: "C"},
			},
			want: "--- a/todo.md\n+++ b/todo.md\n" +
				"@@ -1,1 +1,1 @@\n" +
				"-a b c\n" +
				"+A b C\n",
		},
		{
			name:    "inserted line shifts later hunks",
			content: "one\ntwo\nthree\n",
			edits: []edit.TextEdit{
				{StartOffset: 3, EndOffset: 3, NewText: "\nextra"},
				{StartOffset: 8, EndOffset: 13, NewText: "THREE"},
			},
			want: "--- a/todo.md\n+++ b/todo.md\n" +
				"@@ -1,1 +1,2 @@\n" +
				"-one\n" +
				"+one\n" +
				"+extra\n" +
				"@@ -3,1 +4,1 @@\n" +
				"-three\n" +
				"+THREE\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff, err := edit.NewDiff("/todo.md", []byte(tt.content), tt.edits)
			if err != nil {
				t.Fatalf("NewDiff() error = %v", err)
			}
			if got := diff.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestNewDiff_NoChanges(t *testing.T) {
	t.Parallel()

	diff, err := edit.NewDiff("a.md", []byte("same\n"), []edit.TextEdit{
		{StartOffset: 0, EndOffset: 4, NewText: "same"},
	})
	if err != nil {
		t.Fatalf("NewDiff() error = %v", err)
	}
	if diff.HasChanges() {
		t.Errorf("expected no changes, got %+v", diff.Hunks)
	}
	if diff.String() != "" {
		t.Errorf("String() = %q, want empty", diff.String())
	}

	var nilDiff *edit.Diff
	if nilDiff.HasChanges() || nilDiff.String() != "" {
		t.Error("nil diff should be empty")
	}
}

func TestNewDiff_Stale(t *testing.T) {
	t.Parallel()

	_, err := edit.NewDiff("a.md", []byte("- [x] a\n"), []edit.TextEdit{
		{StartOffset: 2, EndOffset: 5, NewText: "[x]", Expect: "[ ]"},
	})
	if !errors.Is(err, edit.ErrStaleText) {
		t.Errorf("NewDiff() error = %v, want ErrStaleText", err)
	}
}
