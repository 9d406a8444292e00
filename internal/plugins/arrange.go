package plugins

import (
	"errors"
	"fmt"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
	"github.com/inamate/inamate/editor-go/internal/zorder"
)

var icons = map[zorder.Op]string{
	zorder.BringToFront: "bring-to-front",
	zorder.SendForward:  "bring-forward",
	zorder.SendBackward: "send-backward",
	zorder.SendToBack:   "send-to-back",
}

// ArrangeDefinitions returns the z-order menu and group/ungroup.
func ArrangeDefinitions(ed Editor) []toolbar.Definition {
	return []toolbar.Definition{
		{
			ElementTypes: objectTypes,
			Arities:      both,
			Priority:     50,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{arrangeAction(ed, s)}
			},
		},
		{
			ElementTypes: objectTypes,
			Arities:      []selection.Arity{selection.Multiple},
			Priority:     50,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{groupAction(ed, s)}
			},
		},
		{
			ElementTypes: []selection.ElementType{selection.TypeGroup},
			Arities:      []selection.Arity{selection.Single},
			Priority:     50,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{ungroupAction(ed, s)}
			},
		},
	}
}

func arrangeAction(ed Editor, s selection.Snapshot) toolbar.Action {
	options := make([]toolbar.DropdownOption, 0, len(zorder.Ops))
	for _, op := range zorder.Ops {
		options = append(options, toolbar.DropdownOption{
			ID:    string(op),
			Label: op.Label(),
			Icon:  icons[op],
			OnSelect: func() error {
				ed.Reorder(op, s)
				return nil
			},
		})
	}
	return toolbar.Action{
		ID:       "arrange",
		Label:    "Arrange",
		Icon:     "layers",
		Kind:     toolbar.KindDropdown,
		Priority: 60,
		Dropdown: &toolbar.DropdownConfig{Options: options},
	}
}

func groupAction(ed Editor, s selection.Snapshot) toolbar.Action {
	return toolbar.Action{
		ID:       "group",
		Label:    "Group",
		Icon:     "group",
		Tooltip:  "Group (Ctrl+G)",
		Kind:     toolbar.KindButton,
		Priority: 70,
		OnClick: func() error {
			var id string
			err := ed.Mutate("Group", func(d *document.Document) error {
				ids := elementIDs(d, s)
				if len(ids) < 2 {
					return errors.New("group needs at least two elements")
				}
				var err error
				id, err = d.GroupElements(ids)
				return err
			})
			if err != nil {
				return err
			}
			ed.Select(selection.Snapshot{Groups: []string{id}})
			return nil
		},
	}
}

func ungroupAction(ed Editor, s selection.Snapshot) toolbar.Action {
	return toolbar.Action{
		ID:       "ungroup",
		Label:    "Ungroup",
		Icon:     "ungroup",
		Tooltip:  "Ungroup (Ctrl+Shift+G)",
		Kind:     toolbar.KindButton,
		Priority: 70,
		OnClick: func() error {
			if len(s.Groups) != 1 {
				return fmt.Errorf("ungroup: expected one group, got %d", len(s.Groups))
			}
			var children []string
			err := ed.Mutate("Ungroup", func(d *document.Document) error {
				var err error
				children, err = d.Ungroup(s.Groups[0])
				return err
			})
			if err != nil {
				return err
			}
			ed.Select(snapshotOf(ed.Document(), children))
			return nil
		},
	}
}
