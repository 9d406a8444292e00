package toolbar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/inamate/editor-go/internal/selection"
)

var (
	subpathSingle = Definition{
		ElementTypes: []selection.ElementType{selection.TypeSubPath},
		Arities:      []selection.Arity{selection.Single},
	}
	anyArity = []selection.Arity{selection.Single, selection.Multiple}
)

func withActions(d Definition, actions ...Action) Definition {
	d.Actions = actions
	return d
}

func ids(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func TestEmptySelectionHasNoActions(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("core", Definition{
		ElementTypes: []selection.ElementType{selection.TypePath},
		Arities:      anyArity,
		Actions:      []Action{{ID: "delete", Kind: KindButton}},
	})

	assert.Empty(t, m.ActionsForSelection(selection.Snapshot{}))
}

func TestDedupeAndDestructiveLast(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("style", withActions(subpathSingle, Action{ID: "fill-color", Kind: KindColor, Priority: 100, Label: "winner"}))
	m.RegisterPlugin("core", withActions(subpathSingle, Action{ID: "delete", Kind: KindButton, Priority: 10, Destructive: true}))
	m.RegisterPlugin("legacy", withActions(subpathSingle, Action{ID: "fill-color", Kind: KindColor, Priority: 50, Label: "loser"}))

	got := m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp1"}})

	require.Equal(t, []string{"fill-color", "delete"}, ids(got))
	assert.Equal(t, "winner", got[0].Label)
	assert.Equal(t, 100, got[0].Priority)
}

func TestDedupeTieKeepsFirstSeen(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("a", withActions(subpathSingle, Action{ID: "x", Label: "first"}))
	m.RegisterPlugin("b", withActions(subpathSingle, Action{ID: "x", Label: "second"}))

	got := m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp"}})
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Label)
}

func TestOrderingProperties(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	var actions []Action
	for i := 0; i < 20; i++ {
		actions = append(actions, Action{
			ID:          fmt.Sprintf("a%d", i%13),
			Priority:    (i * 7) % 11,
			Destructive: i%3 == 0,
		})
	}
	m.RegisterPlugin("p", Definition{
		ElementTypes: []selection.ElementType{selection.TypePath},
		Arities:      anyArity,
		Actions:      actions,
	})

	got := m.ActionsForSelection(selection.Snapshot{Paths: []string{"p1", "p2"}})
	require.NotEmpty(t, got)

	seen := map[string]bool{}
	sawDestructive := false
	for i, a := range got {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true

		if a.Destructive {
			sawDestructive = true
		} else {
			assert.False(t, sawDestructive, "non-destructive %s after destructive", a.ID)
		}
		if i > 0 && got[i-1].Destructive == a.Destructive {
			assert.GreaterOrEqual(t, got[i-1].Priority, a.Priority)
		}
	}
}

func TestDisabledActionsAreDropped(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("p", withActions(subpathSingle,
		Action{ID: "on"},
		Action{ID: "off", Disabled: true},
	))

	got := m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp"}})
	assert.Equal(t, []string{"on"}, ids(got))
}

func TestInvisibleActionsAreStillResolved(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("p", withActions(subpathSingle, Action{ID: "hidden", Visible: Always(false)}))

	got := m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp"}})
	require.Len(t, got, 1)
	assert.False(t, got[0].Visible.Visible())
}

func TestMatchingRequiresTypeAndArity(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("p",
		Definition{
			ElementTypes: []selection.ElementType{selection.TypeText},
			Arities:      []selection.Arity{selection.Single},
			Actions:      []Action{{ID: "font-size"}},
		},
		Definition{
			ElementTypes: []selection.ElementType{selection.TypeMixed},
			Arities:      []selection.Arity{selection.Multiple},
			Actions:      []Action{{ID: "align"}},
		},
	)

	assert.Equal(t, []string{"font-size"}, ids(m.ActionsForSelection(selection.Snapshot{Texts: []string{"t"}})))
	assert.Empty(t, m.ActionsForSelection(selection.Snapshot{Texts: []string{"t1", "t2"}}))
	assert.Equal(t, []string{"align"}, ids(m.ActionsForSelection(selection.Snapshot{
		Texts:  []string{"t"},
		Images: []string{"i"},
	})))
}

func TestBuildReceivesSelection(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	var got selection.Snapshot
	m.RegisterPlugin("p", Definition{
		ElementTypes: []selection.ElementType{selection.TypePath},
		Arities:      anyArity,
		Actions:      []Action{{ID: "static"}},
		Build: func(s selection.Snapshot) []Action {
			got = s
			return []Action{{ID: "built"}}
		},
	})

	sel := selection.Snapshot{Paths: []string{"p1"}}
	assert.Equal(t, []string{"static", "built"}, ids(m.ActionsForSelection(sel)))
	assert.Equal(t, sel, got)
}

func TestDefinitionPriorityOrdersContributions(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	low := withActions(subpathSingle, Action{ID: "low"})
	high := withActions(subpathSingle, Action{ID: "high"})
	high.Priority = 5

	m.RegisterPlugin("low", low)
	m.RegisterPlugin("high", high)

	defs := m.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "high", defs[0].PluginID)

	// Equal action priorities keep definition order.
	assert.Equal(t, []string{"high", "low"}, ids(m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp"}})))
}

func TestRegisterAndUnregister(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("a", withActions(subpathSingle, Action{ID: "a1"}))
	m.RegisterPlugin("b", withActions(subpathSingle, Action{ID: "b1"}))
	m.RegisterPlugin("a", withActions(subpathSingle, Action{ID: "a2"}))

	assert.Equal(t, []string{"a", "b"}, m.Plugins())
	assert.Len(t, m.Definitions(), 2, "re-registration replaces")

	sel := selection.Snapshot{SubPaths: []string{"sp"}}
	assert.Equal(t, []string{"a2", "b1"}, ids(m.ActionsForSelection(sel)))

	assert.True(t, m.UnregisterPlugin("a"))
	assert.False(t, m.UnregisterPlugin("a"))
	assert.Equal(t, []string{"b"}, m.Plugins())
	assert.Equal(t, []string{"b1"}, ids(m.ActionsForSelection(sel)))
}

func TestEmptyDefinitionContributesNothing(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.RegisterPlugin("empty", subpathSingle)

	assert.Empty(t, m.ActionsForSelection(selection.Snapshot{SubPaths: []string{"sp"}}))
}

func TestUpdateConfigMergesPerProfile(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	five := 5
	vertical := LayoutVertical

	cfg := m.UpdateConfig(ConfigPatch{Desktop: &ProfilePatch{MaxVisibleButtons: &five, Layout: &vertical}})

	assert.Equal(t, 5, cfg.Desktop.MaxVisibleButtons)
	assert.Equal(t, LayoutVertical, cfg.Desktop.Layout)
	assert.Equal(t, DefaultConfig().Desktop.ButtonSize, cfg.Desktop.ButtonSize)
	assert.Equal(t, DefaultConfig().Mobile, cfg.Mobile)
	assert.Equal(t, cfg, m.Config())
}
