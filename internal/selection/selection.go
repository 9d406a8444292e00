// Package selection describes what the user currently has selected in the
// editor: one id set per element kind, plus the derived element-type set
// and arity used to match toolbar actions.
package selection

import (
	"slices"

	"github.com/inamate/inamate/editor-go/internal/geometry"
)

// Kind is one of the selectable element kinds.
type Kind string

const (
	KindPath            Kind = "path"
	KindSubPath         Kind = "subpath"
	KindCommand         Kind = "command"
	KindText            Kind = "text"
	KindTextSpan        Kind = "text-span"
	KindTextPath        Kind = "text-path"
	KindGroup           Kind = "group"
	KindImage           Kind = "image"
	KindClipPath        Kind = "clip-path"
	KindMask            Kind = "mask"
	KindFilter          Kind = "filter"
	KindFilterPrimitive Kind = "filter-primitive"
	KindMarker          Kind = "marker"
	KindSymbol          Kind = "symbol"
	KindUse             Kind = "use"
	KindAnimation       Kind = "animation"
	KindGradient        Kind = "gradient"
	KindGradientStop    Kind = "gradient-stop"
)

// AllKinds lists every selectable kind.
var AllKinds = []Kind{
	KindPath, KindSubPath, KindCommand, KindText, KindTextSpan, KindTextPath,
	KindGroup, KindImage, KindClipPath, KindMask, KindFilter, KindFilterPrimitive,
	KindMarker, KindSymbol, KindUse, KindAnimation, KindGradient, KindGradientStop,
}

// ElementType is the coarse classification toolbar definitions match on.
type ElementType string

const (
	TypeText    ElementType = "text"
	TypeSubPath ElementType = "subpath"
	TypeCommand ElementType = "command"
	TypeGroup   ElementType = "group"
	TypeUse     ElementType = "use"
	TypeImage   ElementType = "image"
	TypePath    ElementType = "path"
	TypeMixed   ElementType = "mixed"
)

// Arity says whether a selection counts as one element or several.
type Arity string

const (
	Single   Arity = "single"
	Multiple Arity = "multiple"
)

// Snapshot is an immutable view of the selection. Order within each set
// carries no meaning.
type Snapshot struct {
	Paths            []string `json:"selectedPaths,omitempty"`
	SubPaths         []string `json:"selectedSubPaths,omitempty"`
	Commands         []string `json:"selectedCommands,omitempty"`
	Texts            []string `json:"selectedTexts,omitempty"`
	TextSpans        []string `json:"selectedTextSpans,omitempty"`
	TextPaths        []string `json:"selectedTextPaths,omitempty"`
	Groups           []string `json:"selectedGroups,omitempty"`
	Images           []string `json:"selectedImages,omitempty"`
	ClipPaths        []string `json:"selectedClipPaths,omitempty"`
	Masks            []string `json:"selectedMasks,omitempty"`
	Filters          []string `json:"selectedFilters,omitempty"`
	FilterPrimitives []string `json:"selectedFilterPrimitives,omitempty"`
	Markers          []string `json:"selectedMarkers,omitempty"`
	Symbols          []string `json:"selectedSymbols,omitempty"`
	Uses             []string `json:"selectedUses,omitempty"`
	Animations       []string `json:"selectedAnimations,omitempty"`
	Gradients        []string `json:"selectedGradients,omitempty"`
	GradientStops    []string `json:"selectedGradientStops,omitempty"`

	// SelectionBox is the document-space box of the selection, when the
	// store knows it.
	SelectionBox *geometry.Rect `json:"selectionBox,omitempty"`
}

func (s *Snapshot) field(k Kind) *[]string {
	switch k {
	case KindPath:
		return &s.Paths
	case KindSubPath:
		return &s.SubPaths
	case KindCommand:
		return &s.Commands
	case KindText:
		return &s.Texts
	case KindTextSpan:
		return &s.TextSpans
	case KindTextPath:
		return &s.TextPaths
	case KindGroup:
		return &s.Groups
	case KindImage:
		return &s.Images
	case KindClipPath:
		return &s.ClipPaths
	case KindMask:
		return &s.Masks
	case KindFilter:
		return &s.Filters
	case KindFilterPrimitive:
		return &s.FilterPrimitives
	case KindMarker:
		return &s.Markers
	case KindSymbol:
		return &s.Symbols
	case KindUse:
		return &s.Uses
	case KindAnimation:
		return &s.Animations
	case KindGradient:
		return &s.Gradients
	case KindGradientStop:
		return &s.GradientStops
	}
	return nil
}

// IDs returns the selected ids of the given kind.
func (s Snapshot) IDs(k Kind) []string {
	if f := s.field(k); f != nil {
		return *f
	}
	return nil
}

// With returns a copy of s with ids appended to the set of kind k.
func (s Snapshot) With(k Kind, ids ...string) Snapshot {
	if f := s.field(k); f != nil {
		*f = append(slices.Clone(*f), ids...)
	}
	return s
}

// IsEmpty reports whether nothing at all is selected.
func (s Snapshot) IsEmpty() bool {
	for _, k := range AllKinds {
		if len(s.IDs(k)) > 0 {
			return false
		}
	}
	return true
}

// Contains reports whether id is selected under any kind.
func (s Snapshot) Contains(id string) bool {
	for _, k := range AllKinds {
		if slices.Contains(s.IDs(k), id) {
			return true
		}
	}
	return false
}

// Count returns the number of selected ids across every kind.
func (s Snapshot) Count() int {
	n := 0
	for _, k := range AllKinds {
		n += len(s.IDs(k))
	}
	return n
}

// ElementTypes returns the coarse element types present in the selection.
// Paths are not reported when subpaths are selected, since selecting a
// subpath also marks its owning path. Mixed is added when more than one
// concrete type is present.
func (s Snapshot) ElementTypes() []ElementType {
	var types []ElementType
	if len(s.Texts) > 0 {
		types = append(types, TypeText)
	}
	if len(s.SubPaths) > 0 {
		types = append(types, TypeSubPath)
	}
	if len(s.Commands) > 0 {
		types = append(types, TypeCommand)
	}
	if len(s.Groups) > 0 {
		types = append(types, TypeGroup)
	}
	if len(s.Uses) > 0 {
		types = append(types, TypeUse)
	}
	if len(s.Images) > 0 {
		types = append(types, TypeImage)
	}
	if len(s.Paths) > 0 && len(s.SubPaths) == 0 {
		types = append(types, TypePath)
	}
	if len(types) > 1 {
		types = append(types, TypeMixed)
	}
	return types
}

// Arity counts paths, subpaths, commands, texts, groups, uses and images.
// Other kinds do not influence it.
func (s Snapshot) Arity() Arity {
	n := len(s.Paths) + len(s.SubPaths) + len(s.Commands) + len(s.Texts) +
		len(s.Groups) + len(s.Uses) + len(s.Images)
	if n <= 1 {
		return Single
	}
	return Multiple
}

// BoundsOrder is the order in which live element geometry is consulted
// when resolving the selection's on-screen bounds.
var BoundsOrder = []Kind{
	KindSubPath, KindText, KindCommand, KindImage, KindGroup, KindUse, KindPath,
}
