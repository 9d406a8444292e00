// Package plugins contributes the editor's built-in toolbar actions.
//
// Each plugin registers its definitions under its own id so it can be
// unregistered on its own. Actions are built per selection and close over
// the snapshot they were resolved for.
package plugins

import (
	"log/slog"
	"slices"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
	"github.com/inamate/inamate/editor-go/internal/zorder"
)

// Plugin ids.
const (
	Core    = "core"
	Arrange = "arrange"
	Style   = "style"
	Text    = "text"
)

// Editor is what the built-in actions act on.
type Editor interface {
	Document() *document.Document
	// Mutate runs fn as one undoable edit.
	Mutate(label string, fn func(*document.Document) error) error
	Reorder(op zorder.Op, s selection.Snapshot) bool
	Select(s selection.Snapshot)
}

var (
	both = []selection.Arity{selection.Single, selection.Multiple}

	// objectTypes are the selections that resolve to whole elements or
	// subpaths.
	objectTypes = []selection.ElementType{
		selection.TypeText, selection.TypeSubPath, selection.TypeGroup,
		selection.TypeUse, selection.TypeImage, selection.TypePath, selection.TypeMixed,
	}
)

// RegisterAll registers every built-in plugin with m.
func RegisterAll(m *toolbar.Manager, ed Editor, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	m.RegisterPlugin(Core, CoreDefinitions(ed)...)
	m.RegisterPlugin(Arrange, ArrangeDefinitions(ed)...)
	m.RegisterPlugin(Style, StyleDefinitions(ed, logger)...)
	m.RegisterPlugin(Text, TextDefinitions(ed, logger)...)
}

// elementIDs returns the top-level element and group ids of s. Selected
// subpaths stand for their owning path.
func elementIDs(doc *document.Document, s selection.Snapshot) []string {
	var ids []string
	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	for _, kind := range []selection.Kind{selection.KindPath, selection.KindText, selection.KindImage, selection.KindUse, selection.KindGroup} {
		for _, id := range s.IDs(kind) {
			add(id)
		}
	}
	for _, id := range s.SubPaths {
		if p, _, ok := doc.SubPathOwner(id); ok {
			add(p.ID)
		}
	}
	return ids
}

// styleIDs returns the ids style actions apply to. Subpath ids are kept
// as is; the document resolves them to their path.
func styleIDs(s selection.Snapshot) []string {
	var ids []string
	for _, kind := range []selection.Kind{selection.KindPath, selection.KindSubPath, selection.KindText, selection.KindUse, selection.KindImage} {
		ids = append(ids, s.IDs(kind)...)
	}
	return ids
}

// snapshotOf builds a selection of the given document ids.
func snapshotOf(doc *document.Document, ids []string) selection.Snapshot {
	var s selection.Snapshot
	for _, id := range ids {
		k, ok := doc.Lookup(id)
		if !ok {
			continue
		}
		if sk, ok := selectionKind(k); ok {
			s = s.With(sk, id)
		}
	}
	return s
}

func selectionKind(k document.Kind) (selection.Kind, bool) {
	switch k {
	case document.KindPath:
		return selection.KindPath, true
	case document.KindText:
		return selection.KindText, true
	case document.KindImage:
		return selection.KindImage, true
	case document.KindUse:
		return selection.KindUse, true
	case document.KindGroup:
		return selection.KindGroup, true
	case document.KindGradient:
		return selection.KindGradient, true
	}
	return "", false
}
