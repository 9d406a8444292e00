package toolbar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibility(t *testing.T) {
	assert.True(t, Visibility{}.Visible())
	assert.False(t, Always(false).Visible())
	assert.True(t, Always(true).Visible())

	on := false
	v := Computed(func() bool { return on })
	assert.False(t, v.Visible())
	on = true
	assert.True(t, v.Visible(), "evaluated lazily")
}

func TestPartition(t *testing.T) {
	actions := []Action{
		{ID: "a"}, {ID: "b", Visible: Always(false)}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}

	bar, overflow := Partition(actions, Profile{MaxVisibleButtons: 4})
	assert.Equal(t, []string{"a", "c", "d", "e"}, ids(bar))
	assert.Empty(t, overflow)

	bar, overflow = Partition(actions, Profile{MaxVisibleButtons: 3})
	assert.Equal(t, []string{"a", "c"}, ids(bar))
	assert.Equal(t, []string{"d", "e"}, ids(overflow))

	bar, overflow = Partition(actions, Profile{})
	assert.Len(t, bar, 4)
	assert.Empty(t, overflow)
}

func TestInvokeByKind(t *testing.T) {
	var log []string

	require.NoError(t, Invoke(Action{ID: "b", Kind: KindButton, OnClick: func() error { log = append(log, "click"); return nil }}, ""))
	require.NoError(t, Invoke(Action{ID: "t", Kind: KindToggle, Toggle: &ToggleConfig{OnToggle: func() error { log = append(log, "toggle"); return nil }}}, ""))
	require.NoError(t, Invoke(Action{ID: "c", Kind: KindColor, Color: &ColorConfig{OnChange: func(v string) error { log = append(log, v); return nil }}}, "#ff0000"))
	require.NoError(t, Invoke(Action{ID: "i", Kind: KindInput, Input: &InputConfig{OnChange: func(v string) error { log = append(log, v); return nil }}}, "12"))

	dd := Action{ID: "d", Kind: KindDropdown, Dropdown: &DropdownConfig{Options: []DropdownOption{
		{ID: "front", OnSelect: func() error { log = append(log, "front"); return nil }},
		{ID: "off", Disabled: true, OnSelect: func() error { log = append(log, "off"); return nil }},
	}}}
	require.NoError(t, Invoke(dd, "front"))
	assert.ErrorIs(t, Invoke(dd, "missing"), ErrUnknownOption)
	assert.ErrorIs(t, Invoke(dd, "off"), ErrNoHandler)

	assert.Equal(t, []string{"click", "toggle", "#ff0000", "12", "front"}, log)
}

func TestInvokeRecoversPanics(t *testing.T) {
	err := Invoke(Action{ID: "boom", Kind: KindButton, OnClick: func() error { panic("store failed") }}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store failed")

	sentinel := errors.New("rejected")
	err = Invoke(Action{ID: "c", Kind: KindColor, Color: &ColorConfig{OnChange: func(string) error { return sentinel }}}, "#000")
	assert.ErrorIs(t, err, sentinel)

	assert.ErrorIs(t, Invoke(Action{ID: "none", Kind: KindButton}, ""), ErrNoHandler)
}

func TestPointerGate(t *testing.T) {
	g := NewPointerGate()

	assert.Equal(t, Activate, g.Down(1))
	assert.Equal(t, Activate, g.Move(1))
	assert.Equal(t, Activate, g.Up(1))

	// Pinch: second pointer turns the gesture into pass-through.
	assert.Equal(t, Activate, g.Down(1))
	assert.Equal(t, PassThrough, g.Down(2))
	assert.Equal(t, PassThrough, g.Move(1))
	assert.Equal(t, PassThrough, g.Up(2))
	assert.Equal(t, PassThrough, g.Up(1), "stays pass-through until all pointers lift")

	assert.Equal(t, Activate, g.Down(3))
	g.Cancel()
	assert.Equal(t, PassThrough, g.Up(3), "unknown pointer after cancel")
	assert.Equal(t, PassThrough, g.Move(9))
}
