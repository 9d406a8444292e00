package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
	"github.com/inamate/inamate/editor-go/internal/zorder"
)

type testEditor struct {
	*document.Store
	orderer  *zorder.Orderer
	selected selection.Snapshot
}

func (e *testEditor) Reorder(op zorder.Op, s selection.Snapshot) bool {
	return e.orderer.Mixed(op, s)
}

func (e *testEditor) Select(s selection.Snapshot) { e.selected = s }

func setup(t *testing.T) (*toolbar.Manager, *testEditor) {
	t.Helper()

	doc := document.NewEmptyDocument("doc", "plugins")
	doc.Paths = []document.Path{
		{
			Element:  document.Element{ID: "a", Transform: document.IdentityTransform, Style: document.Style{Fill: "#111111", StrokeWidth: 1}},
			SubPaths: []document.SubPath{{ID: "a1"}, {ID: "a2"}},
		},
		{Element: document.Element{ID: "b", Transform: document.IdentityTransform}},
	}
	doc.Texts = []document.Text{{Element: document.Element{ID: "t", Transform: document.IdentityTransform}, FontSize: 16}}

	store := document.NewStore(doc, nil)
	ed := &testEditor{Store: store, orderer: zorder.NewOrderer(store, nil)}
	m := toolbar.NewManager(toolbar.DefaultConfig(), nil)
	RegisterAll(m, ed, nil)
	return m, ed
}

func ids(actions []toolbar.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func invoke(t *testing.T, m *toolbar.Manager, s selection.Snapshot, id, arg string) error {
	t.Helper()
	a, ok := toolbar.Find(m.ActionsForSelection(s), id)
	require.True(t, ok, "action %s not offered", id)
	return toolbar.Invoke(a, arg)
}

func TestSinglePathActions(t *testing.T) {
	m, _ := setup(t)

	got := m.ActionsForSelection(selection.Snapshot{Paths: []string{"a"}})
	assert.Equal(t, []string{"fill-color", "duplicate", "arrange", "stroke-width", "lock", "delete"}, ids(got))
}

func TestMixedSelectionActions(t *testing.T) {
	m, _ := setup(t)

	got := m.ActionsForSelection(selection.Snapshot{Paths: []string{"a"}, Texts: []string{"t"}})
	assert.Equal(t, []string{"fill-color", "duplicate", "font-size", "group", "arrange", "stroke-width", "lock", "delete"}, ids(got))
}

func TestFillReflectsAndUpdatesDocument(t *testing.T) {
	m, ed := setup(t)
	s := selection.Snapshot{SubPaths: []string{"a2"}}

	a, ok := toolbar.Find(m.ActionsForSelection(s), "fill-color")
	require.True(t, ok)
	assert.Equal(t, "#111111", a.Color.Current)

	require.NoError(t, toolbar.Invoke(a, "#00ff00"))
	assert.Equal(t, "#00ff00", ed.Document().Paths[0].Style.Fill)

	label, ok := ed.Undo()
	require.True(t, ok)
	assert.Equal(t, "Fill", label)
	assert.Equal(t, "#111111", ed.Document().Paths[0].Style.Fill)
}

func TestStrokeWidthRejectsBadInput(t *testing.T) {
	m, ed := setup(t)
	s := selection.Snapshot{Paths: []string{"a"}}

	assert.Error(t, invoke(t, m, s, "stroke-width", "wide"))
	assert.Error(t, invoke(t, m, s, "stroke-width", "500"))
	assert.False(t, ed.CanUndo())

	require.NoError(t, invoke(t, m, s, "stroke-width", "4"))
	assert.Equal(t, 4.0, ed.Document().Paths[0].Style.StrokeWidth)
}

func TestFontSize(t *testing.T) {
	m, ed := setup(t)
	s := selection.Snapshot{Texts: []string{"t"}}

	a, ok := toolbar.Find(m.ActionsForSelection(s), "font-size")
	require.True(t, ok)
	assert.Equal(t, "16", a.Input.Value)

	require.NoError(t, toolbar.Invoke(a, "32"))
	assert.Equal(t, 32.0, ed.Document().Texts[0].FontSize)
}

func TestDuplicateSelectsCopies(t *testing.T) {
	m, ed := setup(t)

	require.NoError(t, invoke(t, m, selection.Snapshot{Paths: []string{"b"}}, "duplicate", ""))
	require.Len(t, ed.Document().Paths, 3)
	require.Len(t, ed.selected.Paths, 1)
	assert.Equal(t, ed.Document().Paths[2].ID, ed.selected.Paths[0])
}

func TestDeleteSubPathsAndElements(t *testing.T) {
	m, ed := setup(t)

	require.NoError(t, invoke(t, m, selection.Snapshot{SubPaths: []string{"a1"}}, "delete", ""))
	p, ok := ed.Document().Path("a")
	require.True(t, ok)
	assert.Len(t, p.SubPaths, 1)

	require.NoError(t, invoke(t, m, selection.Snapshot{Paths: []string{"b"}, Texts: []string{"t"}}, "delete", ""))
	assert.Len(t, ed.Document().Paths, 1)
	assert.Empty(t, ed.Document().Texts)
	assert.True(t, ed.selected.IsEmpty())
}

func TestDeleteSubPathKeepsOwningPath(t *testing.T) {
	m, ed := setup(t)

	require.NoError(t, invoke(t, m, selection.Snapshot{SubPaths: []string{"a1"}, Paths: []string{"a"}}, "delete", ""))
	p, ok := ed.Document().Path("a")
	require.True(t, ok)
	assert.Equal(t, "a2", p.SubPaths[0].ID)
	assert.Len(t, p.SubPaths, 1)
	assert.Len(t, ed.Document().Paths, 2)
}

func TestLockToggle(t *testing.T) {
	m, _ := setup(t)
	s := selection.Snapshot{Paths: []string{"b"}}

	a, ok := toolbar.Find(m.ActionsForSelection(s), "lock")
	require.True(t, ok)
	assert.False(t, a.IsActive())

	require.NoError(t, toolbar.Invoke(a, ""))
	assert.True(t, a.IsActive())
	require.NoError(t, toolbar.Invoke(a, ""))
	assert.False(t, a.IsActive())
}

func TestArrangeReorders(t *testing.T) {
	m, ed := setup(t)

	require.NoError(t, invoke(t, m, selection.Snapshot{Paths: []string{"a"}}, "arrange", string(zorder.BringToFront)))
	za, _ := zorder.ZIndexOf(ed.Document(), "a")
	zt, _ := zorder.ZIndexOf(ed.Document(), "t")
	assert.Greater(t, za, zt)
	assert.True(t, ed.CanUndo())

	assert.ErrorIs(t, invoke(t, m, selection.Snapshot{Paths: []string{"a"}}, "arrange", "sideways"), toolbar.ErrUnknownOption)
}

func TestGroupThenUngroup(t *testing.T) {
	m, ed := setup(t)

	require.NoError(t, invoke(t, m, selection.Snapshot{Paths: []string{"a", "b"}}, "group", ""))
	require.Len(t, ed.selected.Groups, 1)
	gid := ed.selected.Groups[0]
	g, ok := ed.Document().Group(gid)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, g.Children)

	require.NoError(t, invoke(t, m, ed.selected, "ungroup", ""))
	assert.Empty(t, ed.Document().Groups)
	assert.Equal(t, []string{"a", "b"}, ed.selected.Paths)
}

func TestUnregisterPlugin(t *testing.T) {
	m, _ := setup(t)

	require.True(t, m.UnregisterPlugin(Style))
	got := m.ActionsForSelection(selection.Snapshot{Paths: []string{"a"}})
	assert.NotContains(t, ids(got), "fill-color")
	assert.NotContains(t, ids(got), "stroke-width")
	assert.Equal(t, []string{Core, Arrange, Text}, m.Plugins())
}
