package decorate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/decorate"
	"github.com/yaklabco/mdlive/pkg/mdast"
)

func TestEngine_UpdateWithoutChangeIsNoop(t *testing.T) {
	t.Parallel()

	host := &fakeHost{snap: parse(t, "**x**"), sel: decorate.Cursor(0)}
	engine := decorate.NewEngine(host)

	require.NoError(t, engine.Update(0))
	assert.Zero(t, host.pulls, "no change must not pull a tree")
	assert.Zero(t, engine.Set().Len())
}

func TestEngine_RebuildsOnEveryChange(t *testing.T) {
	t.Parallel()

	host := &fakeHost{snap: parse(t, "plain tex **strong**"), sel: decorate.Cursor(0)}
	engine := decorate.NewEngine(host)

	require.NoError(t, engine.Update(decorate.DocChanged))
	assert.Equal(t, []decorate.Decoration{
		replace(10, 12, "md-hidden", nil),
		style(12, 18, "md-strong"),
		replace(18, 20, "md-hidden", nil),
	}, engine.Set().All())

	host.sel = decorate.Cursor(15)
	require.NoError(t, engine.Update(decorate.SelectionChanged))
	assert.Equal(t, 2, host.pulls)

	changes := engine.Changes()
	assert.Equal(t, 1, changes.Unchanged)
	assert.Equal(t, []decorate.Decoration{style(10, 12, "md-marker"), style(18, 20, "md-marker")}, changes.Added)
	assert.Equal(t, []decorate.Decoration{replace(10, 12, "md-hidden", nil), replace(18, 20, "md-hidden", nil)}, changes.Removed)

	host.viewport = []mdast.SourceRange{mdast.Span(0, 5)}
	require.NoError(t, engine.Update(decorate.ViewportChanged))
	assert.Zero(t, engine.Set().Len())
	assert.Equal(t, []mdast.SourceRange{mdast.Span(0, 5)}, engine.Set().Ranges())
}

func TestEngine_SameInputsProduceNoChanges(t *testing.T) {
	t.Parallel()

	host := &fakeHost{snap: parse(t, "# Title\n\n- [ ] task\n"), sel: decorate.Cursor(3)}
	engine := decorate.NewEngine(host)

	require.NoError(t, engine.Update(decorate.AllChanged))
	first := engine.Set()
	require.NoError(t, engine.Update(decorate.AllChanged))

	assert.True(t, first.Equal(engine.Set()))
	assert.True(t, engine.Changes().Empty())
	assert.Equal(t, first.Len(), engine.Changes().Unchanged)
}

func TestEngine_NoTreeKeepsPreviousSet(t *testing.T) {
	t.Parallel()

	host := &fakeHost{snap: parse(t, "*a*"), sel: decorate.Cursor(10)}
	engine := decorate.NewEngine(host)
	require.NoError(t, engine.Update(decorate.DocChanged))
	before := engine.Set()

	host.snap = nil
	err := engine.Update(decorate.DocChanged)

	require.ErrorIs(t, err, decorate.ErrNoTree)
	assert.Contains(t, err.Error(), "doc")
	assert.Same(t, before, engine.Set())
}

func TestEngine_Activate(t *testing.T) {
	t.Parallel()

	content := "- [ ] one\n- item\n"
	snap := parse(t, content)
	host := &fakeHost{snap: snap, sel: decorate.Cursor(len(content))}
	engine := decorate.NewEngine(host)
	require.NoError(t, engine.Update(decorate.AllChanged))

	editor := &fakeEditor{text: content, revision: snap.Revision}

	t.Run("checkbox toggles", func(t *testing.T) {
		require.NoError(t, engine.Activate(editor, 3))
		assert.Equal(t, "- [x] one\n- item\n", editor.text)
	})

	t.Run("bullet is not interactive", func(t *testing.T) {
		err := engine.Activate(editor, 10)
		require.ErrorIs(t, err, decorate.ErrNoWidget)
		assert.Contains(t, err.Error(), "bullet")
	})

	t.Run("plain text has no widget", func(t *testing.T) {
		require.ErrorIs(t, engine.Activate(editor, 13), decorate.ErrNoWidget)
	})

	t.Run("stale set after the toggle", func(t *testing.T) {
		// The set still describes the unchecked task.
		require.ErrorIs(t, engine.Activate(editor, 3), decorate.ErrStaleWidget)
		assert.Len(t, editor.calls, 1)
	})
}

func TestChange_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", decorate.Change(0).String())
	assert.Equal(t, "doc", decorate.DocChanged.String())
	assert.Equal(t, "doc|selection|viewport", decorate.AllChanged.String())
	assert.Equal(t, "selection|viewport", (decorate.SelectionChanged | decorate.ViewportChanged).String())
}
