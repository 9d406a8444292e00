package plugins

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/inamate/inamate/editor-go/internal/document"
	"github.com/inamate/inamate/editor-go/internal/selection"
	"github.com/inamate/inamate/editor-go/internal/toolbar"
)

const (
	MinFontSize = 1.0
	MaxFontSize = 512.0
)

// TextDefinitions returns the font size control.
func TextDefinitions(ed Editor, logger *slog.Logger) []toolbar.Definition {
	return []toolbar.Definition{{
		ElementTypes: []selection.ElementType{selection.TypeText},
		Arities:      both,
		Priority:     80,
		Build: func(s selection.Snapshot) []toolbar.Action {
			return []toolbar.Action{fontSizeAction(ed, s, logger)}
		},
	}}
}

func fontSizeAction(ed Editor, s selection.Snapshot, logger *slog.Logger) toolbar.Action {
	ids := s.Texts
	value := ""
	if len(ids) > 0 {
		if t, ok := ed.Document().Text(ids[0]); ok {
			value = strconv.FormatFloat(t.FontSize, 'f', -1, 64)
		}
	}
	lo, hi := MinFontSize, MaxFontSize
	return toolbar.Action{
		ID:       "font-size",
		Label:    "Size",
		Icon:     "text-size",
		Kind:     toolbar.KindInput,
		Priority: 85,
		Input: &toolbar.InputConfig{
			Value: value,
			Type:  toolbar.InputNumber,
			Min:   &lo,
			Max:   &hi,
			OnChange: func(v string) error {
				size, err := parseBounded(v, lo, hi)
				if err != nil {
					return fmt.Errorf("font size: %w", err)
				}
				return ed.Mutate("Font size", func(d *document.Document) error {
					n := d.SetFontSize(ids, size)
					logger.Debug("font size applied", "size", size, "texts", n)
					return nil
				})
			},
		},
	}
}
