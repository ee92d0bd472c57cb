// Package crop implements the interactive resize outline used to adjust a
// captured region after the fact: edge hit-testing, the drag gesture and the
// per-edge update rules of the overlay.
package crop

import "github.com/soocke/snapcrop-go/domain/geometry"

// DefaultInset is the width of the grab band inside each outline edge.
const DefaultInset = 5.0

// Edge names an outline edge. None means no edge is grabbed.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// Bands are the four grab zones of an outline. Top and bottom span the full
// outline width, left and right the full height; where they overlap at the
// corners the horizontal edges win (bottom, top, right, left order).
type Bands struct {
	Core                     geometry.Rect
	Top, Bottom, Left, Right geometry.Rect
}

// BandsOf computes the core rectangle and the grab bands for outline.
func BandsOf(outline geometry.Rect, inset float64) Bands {
	core := outline.Shrink(inset).WithCenter(outline.Center())
	return Bands{
		Core:   core,
		Top:    geometry.FromTwoPoints(geometry.Pt(outline.Max.X, core.Min.Y), outline.Min),
		Bottom: geometry.FromTwoPoints(geometry.Pt(outline.Max.X, core.Max.Y), geometry.Pt(outline.Min.X, outline.Max.Y)),
		Right:  geometry.FromTwoPoints(geometry.Pt(core.Max.X, outline.Min.Y), outline.Max),
		Left:   geometry.FromTwoPoints(geometry.Pt(core.Min.X, outline.Min.Y), geometry.Pt(outline.Min.X, outline.Max.Y)),
	}
}

// ClassifyPoint returns the band containing p. Points inside the core and
// points outside the outline both yield EdgeNone; callers that need to tell
// them apart test outline containment themselves.
func ClassifyPoint(p geometry.Point, outline geometry.Rect, inset float64) Edge {
	b := BandsOf(outline, inset)
	switch {
	case b.Bottom.Contains(p):
		return EdgeBottom
	case b.Top.Contains(p):
		return EdgeTop
	case b.Right.Contains(p):
		return EdgeRight
	case b.Left.Contains(p):
		return EdgeLeft
	}
	return EdgeNone
}

// Grabbable reports whether p is on the outline ring: inside the outline and
// outside the core. With a zero inset the core is the outline itself, so
// nothing is grabbable.
func Grabbable(p geometry.Point, outline geometry.Rect, inset float64) bool {
	return outline.Contains(p) && !outline.Shrink(inset).Contains(p)
}

// Gesture tracks which edge is being dragged between drag-start and release.
// The zero value has no active edge.
type Gesture struct {
	active Edge
}

// Begin starts a drag at p. An edge becomes active only when p is on the
// outline ring; anything else leaves the gesture idle.
func (g *Gesture) Begin(p geometry.Point, outline geometry.Rect, inset float64) Edge {
	g.active = EdgeNone
	if Grabbable(p, outline, inset) {
		g.active = ClassifyPoint(p, outline, inset)
	}
	return g.active
}

// Active returns the edge being dragged.
func (g *Gesture) Active() Edge { return g.active }

// End clears the active edge.
func (g *Gesture) End() { g.active = EdgeNone }
