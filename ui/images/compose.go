package images

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

// PixelRect rounds a geometry rectangle to whole pixels.
func PixelRect(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Min.X)), int(math.Round(r.Min.Y)),
		int(math.Round(r.Max.X)), int(math.Round(r.Max.Y)),
	)
}

// Fill paints r with c, replacing what is there.
func Fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// Shade blends c over r.
func Shade(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// ShadeOutside blends c over area except for the hole.
func ShadeOutside(dst draw.Image, area, hole image.Rectangle, c color.Color) {
	hole = hole.Intersect(area)
	if hole.Empty() {
		Shade(dst, area, c)
		return
	}
	Shade(dst, image.Rect(area.Min.X, area.Min.Y, area.Max.X, hole.Min.Y), c)
	Shade(dst, image.Rect(area.Min.X, hole.Max.Y, area.Max.X, area.Max.Y), c)
	Shade(dst, image.Rect(area.Min.X, hole.Min.Y, hole.Min.X, hole.Max.Y), c)
	Shade(dst, image.Rect(hole.Max.X, hole.Min.Y, area.Max.X, hole.Max.Y), c)
}

// Side selects one edge of a rectangle outline.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// SideRect is the band of the given width along one side of r, inside r.
func SideRect(r image.Rectangle, s Side, width int) image.Rectangle {
	switch s {
	case SideTop:
		return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	case SideBottom:
		return image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	case SideLeft:
		return image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	default:
		return image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	}
}

// StrokeRect draws the outline of r with the given line width.
func StrokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	if width < 1 {
		width = 1
	}
	for _, s := range []Side{SideTop, SideBottom, SideLeft, SideRight} {
		Fill(dst, SideRect(r, s, width), c)
	}
}

// DrawText writes s with its baseline-left corner at p.
func DrawText(dst draw.Image, p image.Point, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(s)
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Round()
}
