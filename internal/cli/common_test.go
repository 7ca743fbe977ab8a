package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/fsutil"
	"github.com/yaklabco/mdlive/pkg/parser/goldmark"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    lineSpan
		wantErr bool
	}{
		{value: "", want: lineSpan{}},
		{value: "3", want: lineSpan{first: 3, last: 3}},
		{value: "3:7", want: lineSpan{first: 3, last: 7}},
		{value: "3:", want: lineSpan{first: 3}},
		{value: ":7", want: lineSpan{last: 7}},
		{value: "7:3", wantErr: true},
		{value: "0", wantErr: true},
		{value: "a:b", wantErr: true},
		{value: "-2", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseLines(tt.value)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidUsage, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.want, got, "value %q", tt.value)
	}
}

func TestLineSpanResolve(t *testing.T) {
	t.Parallel()

	first, last := lineSpan{}.resolve(12)
	assert.Equal(t, [2]int{1, 12}, [2]int{first, last})

	first, last = lineSpan{first: 4}.resolve(12)
	assert.Equal(t, [2]int{4, 12}, [2]int{first, last})

	first, last = lineSpan{last: 2}.resolve(12)
	assert.Equal(t, [2]int{1, 2}, [2]int{first, last})
}

func TestParseCursor(t *testing.T) {
	t.Parallel()

	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "doc.md", []byte("# A\n\ntext\n"))
	require.NoError(t, err)

	sel, err := parseCursor(snap, "")
	require.NoError(t, err)
	assert.Empty(t, sel.Ranges)

	sel, err = parseCursor(snap, "2")
	require.NoError(t, err)
	assert.Equal(t, decorate.Cursor(2), sel)

	sel, err = parseCursor(snap, "3:2")
	require.NoError(t, err)
	assert.Equal(t, decorate.Cursor(6), sel)

	for _, bad := range []string{"-1", "99", "x", "1:x", "9:1", "1:99"} {
		_, err := parseCursor(snap, bad)
		require.ErrorIs(t, err, ErrInvalidUsage, "value %q", bad)
	}
}

func TestClassesFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, decorate.DefaultClasses(), classesFromConfig(config.ClassesConfig{}))

	got := classesFromConfig(config.ClassesConfig{Strong: "bold", Marker: "syntax"})
	assert.Equal(t, "bold", got.Strong)
	assert.Equal(t, "syntax", got.Marker)
	assert.Equal(t, decorate.DefaultClasses().Emphasis, got.Emphasis)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{fmt.Errorf("wrapped: %w", ErrInvalidUsage), ExitInvalidUsage},
		{fmt.Errorf("load: %w", config.ErrInvalidConfig), ExitConfigError},
		{fmt.Errorf("%w: a.md", fsutil.ErrNotFound), ExitIOError},
		{fmt.Errorf("%w: a.md", fsutil.ErrModified), ExitIOError},
		{errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "error %v", tt.err)
	}
}

func TestHelpFormatter_StyleFlagLine(t *testing.T) {
	t.Parallel()

	h := NewHelpFormatter("never", nil)

	line := "  -w, --write           write the result back to the file"
	assert.Equal(t, line, h.styleFlagLine(line))

	continuation := "                        (default 3)"
	assert.Equal(t, continuation, h.styleFlagLine(continuation))
}
