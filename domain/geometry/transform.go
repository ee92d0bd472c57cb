package geometry

import (
	"errors"
	"math"
)

// ErrZeroMonitor is returned when a monitor frame has no width or height.
// Every mapping out of monitor space divides by those dimensions, so a zero
// frame is a configuration error rather than something to recover from.
var ErrZeroMonitor = errors.New("geometry: monitor frame has zero dimension")

// MonitorFrame describes the capturing monitor in its own pixel space.
type MonitorFrame struct {
	ID     int
	Origin Point
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are positive.
func (m MonitorFrame) Valid() bool { return m.Width > 0 && m.Height > 0 }

// Rect is the monitor area relative to its own origin.
func (m MonitorFrame) Rect() Rect {
	return Rect{Max: Point{X: m.Width, Y: m.Height}}
}

// UVOf maps a monitor-space rectangle to normalized texture coordinates.
func UVOf(sel Rect, m MonitorFrame) (Rect, error) {
	if !m.Valid() {
		return Rect{}, ErrZeroMonitor
	}
	return Rect{
		Min: Point{X: sel.Min.X / m.Width, Y: sel.Min.Y / m.Height},
		Max: Point{X: sel.Max.X / m.Width, Y: sel.Max.Y / m.Height},
	}, nil
}

// UVToDisplay places UV coordinates inside a display rectangle that shows the
// whole monitor image.
func UVToDisplay(uv Rect, display Rect) Rect {
	w, h := display.Width(), display.Height()
	return Rect{
		Min: Point{X: display.Min.X + uv.Min.X*w, Y: display.Min.Y + uv.Min.Y*h},
		Max: Point{X: display.Min.X + uv.Max.X*w, Y: display.Min.Y + uv.Max.Y*h},
	}
}

// ShrinkFactor is the display width divided by the monitor width.
func ShrinkFactor(display Rect, m MonitorFrame) (float64, error) {
	if !m.Valid() {
		return 0, ErrZeroMonitor
	}
	return display.Width() / m.Width, nil
}

// DisplayToMonitor maps a display-space point back to monitor space.
func DisplayToMonitor(p Point, display Rect, shrink float64) Point {
	return Point{
		X: (p.X - display.Min.X) / shrink,
		Y: (p.Y - display.Min.Y) / shrink,
	}
}

// MonitorToDisplay is the inverse of DisplayToMonitor.
func MonitorToDisplay(p Point, display Rect, shrink float64) Point {
	return Point{
		X: display.Min.X + p.X*shrink,
		Y: display.Min.Y + p.Y*shrink,
	}
}

// FitRect returns the rectangle of the given size to show inside available,
// centered on anchor. A target that already fits is returned unscaled and
// centered on anchor. Otherwise it is reduced to the largest rectangle with
// the target aspect ratio that fits: the limiting axis fills available and
// keeps available's own center, the other axis is centered on anchor.
// A non-finite aspect ratio (zero-height target) returns target unscaled.
func FitRect(available Rect, target Size, anchor Point) Rect {
	if target.W <= 0 || target.H <= 0 {
		return RectFromCenterSize(anchor, target)
	}
	aspect := target.W / target.H
	if math.IsInf(aspect, 0) || math.IsNaN(aspect) {
		return RectFromCenterSize(anchor, target)
	}
	space := RectFromCenterSize(anchor, target)
	if available.ContainsRect(space) {
		return space
	}
	aw, ah := available.Width(), available.Height()
	if aw <= 0 || ah <= 0 {
		return space
	}
	if w := ah * aspect; w <= aw {
		return RectFromCenterSize(Point{X: anchor.X, Y: available.Center().Y}, Size{W: w, H: ah})
	}
	h := aw / aspect
	return RectFromCenterSize(Point{X: available.Center().X, Y: anchor.Y}, Size{W: aw, H: h})
}
