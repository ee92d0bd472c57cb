// Package layout converts between Tk window geometry strings and the window
// and viewport rectangles the presenters work with.
package layout

import (
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

// BarHeight is the height reserved below the viewport for the control bar.
const BarHeight = 64

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string and returns the window rectangle
// in screen coordinates.
func ParseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// FormatGeometry is the inverse of ParseGeometry. Negative offsets are
// written as +-N, which Tk reads as an absolute position left of or above
// the primary screen.
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// MonitorGeometry is the geometry string covering a monitor.
func MonitorGeometry(m geometry.MonitorFrame) string {
	return FormatGeometry(image.Rect(
		int(math.Round(m.Origin.X)), int(math.Round(m.Origin.Y)),
		int(math.Round(m.Origin.X+m.Width)), int(math.Round(m.Origin.Y+m.Height)),
	))
}

// Split returns the window origin on screen and the viewport in window
// coordinates. The viewport is the window minus the control bar; it never
// collapses below one pixel.
func Split(window image.Rectangle) (geometry.Point, geometry.Rect) {
	origin := geometry.Pt(float64(window.Min.X), float64(window.Min.Y))
	h := window.Dy() - BarHeight
	if h < 1 {
		h = 1
	}
	w := window.Dx()
	if w < 1 {
		w = 1
	}
	return origin, geometry.Rect{Max: geometry.Pt(float64(w), float64(h))}
}
