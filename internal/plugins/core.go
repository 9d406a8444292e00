package plugins

import (
	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

// CoreDefinitions returns duplicate, lock and delete.
func CoreDefinitions(ed Editor) []toolbar.Definition {
	return []toolbar.Definition{
		{
			ElementTypes: objectTypes,
			Arities:      both,
			Priority:     100,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{duplicateAction(ed, s), lockAction(ed, s)}
			},
		},
		{
			ElementTypes: objectTypes,
			Arities:      both,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{deleteAction(ed, s)}
			},
		},
	}
}

func duplicateAction(ed Editor, s selection.Snapshot) toolbar.Action {
	return toolbar.Action{
		ID:       "duplicate",
		Label:    "Duplicate",
		Icon:     "copy",
		Tooltip:  "Duplicate (Ctrl+D)",
		Kind:     toolbar.KindButton,
		Priority: 90,
		OnClick: func() error {
			var created []string
			err := ed.Mutate("Duplicate", func(d *document.Document) error {
				var err error
				created, err = d.Duplicate(elementIDs(d, s))
				return err
			})
			if err != nil {
				return err
			}
			ed.Select(snapshotOf(ed.Document(), created))
			return nil
		},
	}
}

func lockAction(ed Editor, s selection.Snapshot) toolbar.Action {
	ids := func() []string { return elementIDs(ed.Document(), s) }
	return toolbar.Action{
		ID:       "lock",
		Label:    "Lock",
		Icon:     "lock",
		Kind:     toolbar.KindToggle,
		Priority: 20,
		Toggle: &toolbar.ToggleConfig{
			IsActive: func() bool { return ed.Document().IsLocked(ids()) },
			OnToggle: func() error {
				return ed.Mutate("Toggle lock", func(d *document.Document) error {
					targets := elementIDs(d, s)
					d.SetLocked(targets, !d.IsLocked(targets))
					return nil
				})
			},
		},
	}
}

func deleteAction(ed Editor, s selection.Snapshot) toolbar.Action {
	return toolbar.Action{
		ID:          "delete",
		Label:       "Delete",
		Icon:        "trash",
		Tooltip:     "Delete (Del)",
		Kind:        toolbar.KindButton,
		Priority:    10,
		Destructive: true,
		OnClick: func() error {
			err := ed.Mutate("Delete", func(d *document.Document) error {
				// Owners of selected subpaths lose only those subpaths.
				owners := d.SubPathOwners(s.SubPaths)
				d.DeleteSubPaths(s.SubPaths)
				var ids []string
				for _, kind := range []selection.Kind{selection.KindPath, selection.KindText, selection.KindImage, selection.KindUse, selection.KindGroup} {
					for _, id := range s.IDs(kind) {
						if !owners[id] {
							ids = append(ids, id)
						}
					}
				}
				d.Delete(ids)
				return nil
			})
			if err != nil {
				return err
			}
			ed.Select(selection.Snapshot{})
			return nil
		},
	}
}
