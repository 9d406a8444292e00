package placement

import "github.com/inamate/inamate/editor-go/internal/geometry"

// place runs the candidate search for a selection already in screen
// space. rot is the rotation handle box, nil when no handles are shown.
func place(sel, canvas geometry.Rect, size geometry.Size, rot *geometry.Rect) Position {
	for _, p := range sideCandidates(sel, size, rot) {
		if IsPositionValid(p.Rect(size), canvas) {
			return p
		}
	}

	for _, p := range anchorCandidates(sel, canvas, size) {
		if IsPositionValid(p.Rect(size), canvas) {
			return p
		}
	}

	return clampPosition(sel, canvas, size)
}

// sideCandidates returns the top, bottom, right and left placements in
// that order of preference.
func sideCandidates(sel geometry.Rect, size geometry.Size, rot *geometry.Rect) []Position {
	cx, cy := sel.Center()
	w, h := size.Width, size.Height

	top := Position{X: cx - w/2, Y: sel.Top() - h - Margin, Placement: Top}
	if rot != nil && top.Rect(size).Overlaps(*rot) {
		top.Y = rot.Top() - h - Margin
	}

	// The rotation handle is above the selection, so it never reaches
	// the bottom candidate.
	bottom := Position{X: cx - w/2, Y: sel.Bottom() + Margin, Placement: Bottom}

	right := Position{X: sel.Right() + Margin, Y: cy - h/2, Placement: Right}
	if rot != nil && right.Rect(size).Overlaps(*rot) {
		right.Y = rot.Bottom() + Margin
	}

	left := Position{X: sel.Left() - w - Margin, Y: cy - h/2, Placement: Left}
	if rot != nil && left.Rect(size).Overlaps(*rot) {
		left.Y = rot.Bottom() + Margin
	}

	return []Position{top, bottom, right, left}
}

// anchorCandidates returns the canvas-relative fallbacks.
func anchorCandidates(sel, canvas geometry.Rect, size geometry.Size) []Position {
	cx, _ := sel.Center()
	ccx, _ := canvas.Center()
	w, h := size.Width, size.Height
	top := canvas.Top() + AnchorOffset

	return []Position{
		{X: cx - w/2, Y: top, Placement: Top},
		{X: cx - w/2, Y: canvas.Bottom() - h - AnchorOffset, Placement: Bottom},
		{X: canvas.Left() + AnchorOffset, Y: top, Placement: Top},
		{X: canvas.Right() - w - AnchorOffset, Y: top, Placement: Top},
		{X: ccx - w/2, Y: top, Placement: Top},
	}
}

// clampPosition centers the toolbar above the selection and clamps it
// into the canvas. It cannot fail.
func clampPosition(sel, canvas geometry.Rect, size geometry.Size) Position {
	cx, _ := sel.Center()
	x := geometry.Clamp(cx-size.Width/2, canvas.Left()+Inset, canvas.Right()-size.Width-Inset)
	y := geometry.Clamp(sel.Top()-size.Height-Margin, canvas.Top()+Inset, canvas.Bottom()-size.Height-Inset)
	return Position{X: x, Y: y, Placement: Top}
}
