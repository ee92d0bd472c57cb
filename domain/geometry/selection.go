package geometry

import "math"

// FromTwoPoints returns the rectangle spanned by a and b regardless of which
// corner each one is. a == b yields a zero-size rectangle, which callers
// treat as "no region drawn".
func FromTwoPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Selection is the two-point region drawn by the user in monitor space.
// The zero value is the discarded region.
type Selection struct {
	P0, P1 Point
}

// Rect normalizes the two corners.
func (s Selection) Rect() Rect { return FromTwoPoints(s.P0, s.P1) }

// Degenerate reports whether the selection encloses no area.
func (s Selection) Degenerate() bool { return s.Rect().Empty() }

// SelectionOf stores r as a selection with P0 at the top-left corner.
func SelectionOf(r Rect) Selection { return Selection{P0: r.Min, P1: r.Max} }
