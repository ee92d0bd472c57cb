package crop

import (
	"math"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

// DefaultMinEdge is the smallest width or height the outline may shrink to.
const DefaultMinEdge = 15.0

// Options tune the overlay. Zero fields fall back to the defaults.
type Options struct {
	Inset   float64
	MinEdge float64
}

func (o Options) withDefaults() Options {
	if o.Inset <= 0 {
		o.Inset = DefaultInset
	}
	if o.MinEdge <= 0 {
		o.MinEdge = DefaultMinEdge
	}
	return o
}

// Overlay is the resizable outline drawn over the capture while cropping.
// Position and Dimensions are in display space and always stay inside
// Display. Shrink is fixed at seed time so drag deltas keep one meaning for
// the whole edit.
type Overlay struct {
	Position   geometry.Point
	Dimensions geometry.Size
	Display    geometry.Rect
	Shrink     float64

	opts    Options
	gesture Gesture
}

// Seed projects the monitor-space selection into display, where display shows
// the whole monitor image.
func Seed(sel geometry.Rect, display geometry.Rect, m geometry.MonitorFrame, opts Options) (*Overlay, error) {
	shrink, err := geometry.ShrinkFactor(display, m)
	if err != nil {
		return nil, err
	}
	o := &Overlay{
		Position:   geometry.MonitorToDisplay(sel.Min, display, shrink),
		Dimensions: sel.Size().Scale(shrink),
		Display:    display,
		Shrink:     shrink,
		opts:       opts.withDefaults(),
	}
	o.clampInto()
	return o, nil
}

// clampInto enforces the minimum edge and containment after seeding, where
// rounding or a tiny selection could otherwise break them.
func (o *Overlay) clampInto() {
	minEdge := o.opts.MinEdge
	o.Dimensions.W = math.Min(math.Max(o.Dimensions.W, minEdge), o.Display.Width())
	o.Dimensions.H = math.Min(math.Max(o.Dimensions.H, minEdge), o.Display.Height())
	o.Position.X = math.Max(o.Display.Min.X, math.Min(o.Position.X, o.Display.Max.X-o.Dimensions.W))
	o.Position.Y = math.Max(o.Display.Min.Y, math.Min(o.Position.Y, o.Display.Max.Y-o.Dimensions.H))
}

// Rect is the outline in display space.
func (o *Overlay) Rect() geometry.Rect {
	return geometry.RectFromMinSize(o.Position, o.Dimensions)
}

// MinEdge returns the configured minimum edge length.
func (o *Overlay) MinEdge() float64 { return o.opts.MinEdge }

// Apply moves one edge by delta. The update is computed up front and rejected
// whole when the prospective outline would be smaller than the minimum edge
// or leave the display rectangle. It reports whether it was applied.
func (o *Overlay) Apply(edge Edge, delta geometry.Size) bool {
	minEdge := o.opts.MinEdge
	d := o.Display
	switch edge {
	case EdgeTop:
		h := o.Dimensions.H - delta.H
		y := o.Position.Y + delta.H
		if h < minEdge || y < d.Min.Y {
			return false
		}
		o.Position.Y, o.Dimensions.H = y, h
	case EdgeBottom:
		h := o.Dimensions.H + delta.H
		if h < minEdge || o.Position.Y+h > d.Max.Y {
			return false
		}
		o.Dimensions.H = h
	case EdgeRight:
		w := o.Dimensions.W + delta.W
		if w < minEdge || o.Position.X+w > d.Max.X {
			return false
		}
		o.Dimensions.W = w
	case EdgeLeft:
		w := o.Dimensions.W - delta.W
		x := o.Position.X + delta.W
		if w < minEdge || x < d.Min.X {
			return false
		}
		o.Position.X, o.Dimensions.W = x, w
	default:
		return false
	}
	return true
}

// BeginDrag starts a resize gesture at p and returns the grabbed edge.
func (o *Overlay) BeginDrag(p geometry.Point) Edge {
	return o.gesture.Begin(p, o.Rect(), o.opts.Inset)
}

// DragBy applies one frame's incremental delta to the grabbed edge.
func (o *Overlay) DragBy(delta geometry.Size) bool {
	return o.Apply(o.gesture.Active(), delta)
}

// EndDrag releases the grabbed edge.
func (o *Overlay) EndDrag() { o.gesture.End() }

// ActiveEdge is the edge currently being dragged.
func (o *Overlay) ActiveEdge() Edge { return o.gesture.Active() }

// Hover reports which edge a drag started at p would grab.
func (o *Overlay) Hover(p geometry.Point) Edge {
	outline := o.Rect()
	if !Grabbable(p, outline, o.opts.Inset) {
		return EdgeNone
	}
	return ClassifyPoint(p, outline, o.opts.Inset)
}

// Confirm maps the outline back to monitor space.
func (o *Overlay) Confirm() geometry.Rect {
	return geometry.Rect{
		Min: geometry.DisplayToMonitor(o.Position, o.Display, o.Shrink),
		Max: geometry.DisplayToMonitor(o.Position.Add(o.Dimensions), o.Display, o.Shrink),
	}
}
