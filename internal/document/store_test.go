package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUndoRedo(t *testing.T) {
	s := NewStore(testDocument(), nil)
	assert.False(t, s.CanUndo())

	s.PushHistory("fill")
	s.Document().SetFill([]string{"p1"}, "#123456")

	label, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "fill", label)
	assert.Equal(t, "", s.Document().Paths[0].Style.Fill)
	assert.True(t, s.CanRedo())

	_, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, "#123456", s.Document().Paths[0].Style.Fill)

	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestStorePushClearsRedo(t *testing.T) {
	s := NewStore(testDocument(), nil)
	s.PushHistory("a")
	s.Undo()
	require.True(t, s.CanRedo())

	s.PushHistory("b")
	assert.False(t, s.CanRedo())
}

func TestStoreHistoryLimit(t *testing.T) {
	s := NewStore(testDocument(), nil)
	s.SetHistoryLimit(2)

	for _, l := range []string{"a", "b", "c"} {
		s.PushHistory(l)
	}

	var labels []string
	for {
		l, ok := s.Undo()
		if !ok {
			break
		}
		labels = append(labels, l)
	}
	assert.Equal(t, []string{"c", "b"}, labels)
}

func TestStoreMutateRollsBack(t *testing.T) {
	s := NewStore(testDocument(), nil)

	err := s.Mutate("delete", func(d *Document) error {
		d.Delete([]string{"p1"})
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Len(t, s.Document().Paths, 2)
	assert.False(t, s.CanUndo())

	err = s.Mutate("panic", func(d *Document) error {
		d.Delete([]string{"p2"})
		panic("bad")
	})
	require.ErrorContains(t, err, "panic")
	assert.Len(t, s.Document().Paths, 2)

	require.NoError(t, s.Mutate("ok", func(d *Document) error {
		d.Delete([]string{"p2"})
		return nil
	}))
	assert.Len(t, s.Document().Paths, 1)
	assert.True(t, s.CanUndo())
}

func TestStoreReplaceClearsHistory(t *testing.T) {
	s := NewStore(testDocument(), nil)
	s.PushHistory("x")

	s.Replace(NewEmptyDocument("d2", "Other"))
	assert.False(t, s.CanUndo())
	assert.Equal(t, "d2", s.Document().ID)
}
