// Package geometry holds the value types shared by the selection, crop and
// session code together with the mappings between monitor, UV and display
// coordinate spaces.
package geometry

import "math"

// Point is a position in one of the coordinate spaces. The space is implied
// by the caller; no conversion happens implicitly.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(v Size) Point { return Point{X: p.X + v.W, Y: p.Y + v.H} }
func (p Point) Sub(q Point) Size { return Size{W: p.X - q.X, H: p.Y - q.Y} }
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair. It doubles as a drag delta.
type Size struct {
	W, H float64
}

// Scale multiplies both components by f.
func (s Size) Scale(f float64) Size { return Size{W: s.W * f, H: s.H * f} }

// IsZero reports whether both components are zero.
func (s Size) IsZero() bool { return s.W == 0 && s.H == 0 }

// Rect is an axis-aligned rectangle. Min is the top-left corner, Max the
// bottom-right one. Containment tests are inclusive on both ends.
type Rect struct {
	Min, Max Point
}

// RectFromMinSize builds a rectangle from its top-left corner and size.
func RectFromMinSize(min Point, size Size) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectFromCenterSize builds a rectangle of the given size centered on c.
func RectFromCenterSize(c Point, size Size) Rect {
	half := size.Scale(0.5)
	return Rect{
		Min: Point{X: c.X - half.W, Y: c.Y - half.H},
		Max: Point{X: c.X + half.W, Y: c.Y + half.H},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Size      { return Size{W: r.Width(), H: r.Height()} }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// AspectRatio is width divided by height. It is +Inf or NaN for a zero
// height rectangle; callers that care check with math.IsInf / math.IsNaN.
func (r Rect) AspectRatio() float64 { return r.Width() / r.Height() }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Shrink moves every edge inward by m. The center is unchanged.
func (r Rect) Shrink(m float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + m, Y: r.Min.Y + m},
		Max: Point{X: r.Max.X - m, Y: r.Max.Y - m},
	}
}

// WithCenter moves r so that its center is c, keeping its size.
func (r Rect) WithCenter(c Point) Rect { return RectFromCenterSize(c, r.Size()) }

// Translate shifts r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Min: r.Min.Translate(dx, dy), Max: r.Max.Translate(dx, dy)}
}

// ApproxEqual compares two rectangles component-wise within eps.
func (r Rect) ApproxEqual(o Rect, eps float64) bool {
	return math.Abs(r.Min.X-o.Min.X) <= eps && math.Abs(r.Min.Y-o.Min.Y) <= eps &&
		math.Abs(r.Max.X-o.Max.X) <= eps && math.Abs(r.Max.Y-o.Max.Y) <= eps
}
