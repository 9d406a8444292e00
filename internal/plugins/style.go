package plugins

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

// MaxStrokeWidth bounds the stroke width input.
const MaxStrokeWidth = 100.0

// StyleDefinitions returns the fill color and stroke width controls.
func StyleDefinitions(ed Editor, logger *slog.Logger) []toolbar.Definition {
	return []toolbar.Definition{
		{
			ElementTypes: []selection.ElementType{selection.TypePath, selection.TypeSubPath, selection.TypeText, selection.TypeUse},
			Arities:      both,
			Priority:     80,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{fillAction(ed, s, logger)}
			},
		},
		{
			ElementTypes: []selection.ElementType{selection.TypePath, selection.TypeSubPath},
			Arities:      both,
			Priority:     80,
			Build: func(s selection.Snapshot) []toolbar.Action {
				return []toolbar.Action{strokeWidthAction(ed, s, logger)}
			},
		},
	}
}

// firstStyle returns the style of the first styled element in ids.
func firstStyle(doc *document.Document, ids []string) (document.Style, bool) {
	for _, id := range ids {
		if e, _, ok := doc.Element(id); ok {
			return e.Style, true
		}
		if p, _, ok := doc.SubPathOwner(id); ok {
			return p.Style, true
		}
	}
	return document.Style{}, false
}

func fillAction(ed Editor, s selection.Snapshot, logger *slog.Logger) toolbar.Action {
	ids := styleIDs(s)
	st, _ := firstStyle(ed.Document(), ids)
	return toolbar.Action{
		ID:       "fill-color",
		Label:    "Fill",
		Icon:     "palette",
		Kind:     toolbar.KindColor,
		Priority: 100,
		Color: &toolbar.ColorConfig{
			Current: st.Fill,
			OnChange: func(color string) error {
				return ed.Mutate("Fill", func(d *document.Document) error {
					n := d.SetFill(ids, color)
					logger.Debug("fill applied", "color", color, "elements", n)
					return nil
				})
			},
		},
	}
}

func strokeWidthAction(ed Editor, s selection.Snapshot, logger *slog.Logger) toolbar.Action {
	ids := styleIDs(s)
	st, _ := firstStyle(ed.Document(), ids)
	lo, hi := 0.0, MaxStrokeWidth
	return toolbar.Action{
		ID:       "stroke-width",
		Label:    "Stroke",
		Icon:     "line-width",
		Kind:     toolbar.KindInput,
		Priority: 40,
		Input: &toolbar.InputConfig{
			Value: strconv.FormatFloat(st.StrokeWidth, 'f', -1, 64),
			Type:  toolbar.InputNumber,
			Min:   &lo,
			Max:   &hi,
			OnChange: func(v string) error {
				w, err := parseBounded(v, lo, hi)
				if err != nil {
					return fmt.Errorf("stroke width: %w", err)
				}
				return ed.Mutate("Stroke width", func(d *document.Document) error {
					n := d.SetStrokeWidth(ids, w)
					logger.Debug("stroke width applied", "width", w, "elements", n)
					return nil
				})
			},
		},
	}
}

func parseBounded(v string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%g out of range [%g, %g]", f, lo, hi)
	}
	return f, nil
}
