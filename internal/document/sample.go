package document

import (
	"github.com/inamate/inamate/editor-go/internal/typeid"
)

func NewSampleDocument() *Document {
	doc := NewEmptyDocument(typeid.NewDocumentID(), "Untitled")

	rectID := typeid.NewPathID()
	triangleID := typeid.NewPathID()
	starID := typeid.NewPathID()
	titleID := typeid.NewTextID()
	logoID := typeid.NewImageID()
	badgeID := typeid.NewUseID()
	groupID := typeid.NewGroupID()
	gradientID := typeid.NewGradientID()

	doc.Paths = []Path{
		{
			Element: Element{
				ID:        rectID,
				Transform: Transform{X: 200, Y: 200, SX: 1, SY: 1},
				Style:     Style{Fill: "#e94560", Stroke: "#000000", StrokeWidth: 2, Opacity: 1},
			},
			SubPaths: []SubPath{{
				ID: typeid.NewSubPathID(),
				Commands: []PathCommand{
					{"M", 0, 0}, {"L", 200, 0}, {"L", 200, 150}, {"L", 0, 150}, {"Z"},
				},
			}},
		},
		{
			Element: Element{
				ID:        triangleID,
				Transform: Transform{X: 900, Y: 200, SX: 1, SY: 1},
				Style:     Style{Fill: "#53d769", Stroke: "#2d6a4f", StrokeWidth: 2, Opacity: 1},
			},
			SubPaths: []SubPath{{
				ID:       typeid.NewSubPathID(),
				Commands: []PathCommand{{"M", 0, 150}, {"L", 100, 0}, {"L", 200, 150}, {"Z"}},
			}},
		},
		{
			// Compound path: outer shape with a hole.
			Element: Element{
				ID:        starID,
				Transform: Transform{X: 560, Y: 420, SX: 1, SY: 1},
				Style:     Style{Fill: "#f5a623", Stroke: "#c78400", StrokeWidth: 2, Opacity: 1},
			},
			SubPaths: []SubPath{
				{
					ID: typeid.NewSubPathID(),
					Commands: []PathCommand{
						{"M", 0, 60}, {"C", 0, 0, 160, 0, 160, 60}, {"C", 160, 120, 0, 120, 0, 60}, {"Z"},
					},
				},
				{
					ID: typeid.NewSubPathID(),
					Commands: []PathCommand{
						{"M", 50, 60}, {"Q", 80, 30, 110, 60}, {"Q", 80, 90, 50, 60}, {"Z"},
					},
				},
			},
		},
	}

	doc.Texts = []Text{{
		Element: Element{
			ID:        titleID,
			Transform: IdentityTransform,
			Style:     Style{Fill: "#ffffff", Opacity: 1},
		},
		X: 200, Y: 120, Content: "Hello, SVG", FontSize: 48, FontFamily: "Inter",
	}}

	doc.Images = []Image{{
		Element: Element{ID: logoID, Transform: IdentityTransform, Style: Style{Opacity: 1}},
		X:       1000, Y: 480, Width: 160, Height: 160,
		Href: "/assets/logo.png",
	}}

	doc.Uses = []Use{{
		Element: Element{ID: badgeID, Transform: IdentityTransform, Style: Style{Fill: "#0f3460", Opacity: 1}},
		Href:    "#" + triangleID,
		X:       300, Y: 480, Width: 100, Height: 75,
	}}

	doc.Groups = []Group{{
		ID:        groupID,
		Children:  []string{rectID, titleID},
		Transform: IdentityTransform,
	}}

	doc.Gradients = []Gradient{{
		ID:   gradientID,
		Type: "linear",
		Stops: []GradientStop{
			{ID: typeid.NewStopID(), Offset: 0, Color: "#e94560"},
			{ID: typeid.NewStopID(), Offset: 1, Color: "#0f3460"},
		},
	}}

	return doc
}
