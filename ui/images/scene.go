package images

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"github.com/soocke/snapcrop-go/domain/crop"
	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/session"
)

// Style holds the colors and line widths used to composite a scene.
type Style struct {
	Background color.RGBA
	Veil       color.RGBA // overlay tint while choosing a mode or drawing
	Hole       color.RGBA // the live selection inside the veil
	Dim        color.RGBA // shading outside the crop outline
	Outline    color.RGBA
	Handle     color.RGBA // hovered or grabbed edge
	Text       color.RGBA
	Stroke     int
}

// DefaultStyle matches the light palette.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{0xf7, 0xf9, 0xfb, 0xff},
		Veil:       color.RGBA{0x0f, 0x17, 0x2a, 0xff},
		Hole:       color.RGBA{0x64, 0x74, 0x8b, 0xff},
		Dim:        color.RGBA{0, 0, 0, 0x80},
		Outline:    color.RGBA{0xff, 0xff, 0xff, 0xff},
		Handle:     color.RGBA{0x25, 0x63, 0xeb, 0xff},
		Text:       color.RGBA{0x1e, 0x29, 0x3b, 0xff},
		Stroke:     2,
	}
}

// SceneRenderer composites a session scene into an image the size of the
// viewport. Scene rectangles are in window coordinates.
type SceneRenderer struct {
	cache *ScaleCache
	style Style
}

// NewSceneRenderer returns a renderer backed by its own scale cache.
func NewSceneRenderer(cacheSize int, style Style) *SceneRenderer {
	return &SceneRenderer{cache: NewScaleCache(cacheSize), style: style}
}

// Render draws sc for the given viewport.
func (r *SceneRenderer) Render(sc session.Scene, viewport geometry.Rect) *image.RGBA {
	vp := PixelRect(viewport)
	w, h := vp.Dx(), vp.Dy()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(dst, dst.Bounds(), r.style.Background)
	off := vp.Min

	switch sc.Phase {
	case session.PhaseChoosingCaptureMode, session.PhaseDrawingSelection:
		Fill(dst, dst.Bounds(), r.style.Veil)
		if !sc.Region.Empty() {
			sel := PixelRect(sc.Region).Sub(off)
			Fill(dst, sel, r.style.Hole)
			StrokeRect(dst, sel, r.style.Stroke, r.style.Outline)
		}
	case session.PhaseAwaitingCapture:
		Fill(dst, dst.Bounds(), r.style.Veil)
	case session.PhaseEditing:
		if sc.Buffer == nil || sc.Buffer.Image == nil {
			break
		}
		r.blit(dst, sc.Buffer.Sequence, sc.Buffer.Image, sc.Buffer.PixelRect(sc.Region), PixelRect(sc.Display).Sub(off))
	case session.PhaseCroppingOverlay:
		if sc.Buffer == nil || sc.Buffer.Image == nil {
			break
		}
		display := PixelRect(sc.Display).Sub(off)
		r.blit(dst, sc.Buffer.Sequence, sc.Buffer.Image, sc.Buffer.Image.Bounds(), display)
		outline := PixelRect(sc.Outline).Sub(off)
		ShadeOutside(dst, display, outline, r.style.Dim)
		StrokeRect(dst, outline, r.style.Stroke, r.style.Outline)
		edge := sc.ActiveEdge
		if edge == crop.EdgeNone {
			edge = sc.HoverEdge
		}
		if side, ok := sideOf(edge); ok {
			Fill(dst, SideRect(outline, side, r.style.Stroke*2), r.style.Handle)
		}
	}

	if sc.Counting {
		msg := fmt.Sprintf("capturing in %d s", secondsCeil(sc))
		DrawText(dst, image.Pt((w-TextWidth(msg))/2, h/2), msg, r.style.Text)
	}
	return dst
}

func (r *SceneRenderer) blit(dst *image.RGBA, seq uint64, src image.Image, sr, dr image.Rectangle) {
	if sr.Empty() || dr.Empty() {
		return
	}
	scaled := r.cache.Scaled(seq, src, sr, dr.Dx(), dr.Dy())
	Paste(dst, scaled, dr.Min)
}

// Paste copies src onto dst with its top-left corner at p.
func Paste(dst *image.RGBA, src image.Image, p image.Point) {
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: p, Max: p.Add(b.Size())}, src, b.Min, draw.Src)
}

func sideOf(e crop.Edge) (Side, bool) {
	switch e {
	case crop.EdgeTop:
		return SideTop, true
	case crop.EdgeBottom:
		return SideBottom, true
	case crop.EdgeLeft:
		return SideLeft, true
	case crop.EdgeRight:
		return SideRight, true
	}
	return 0, false
}

func secondsCeil(sc session.Scene) int {
	s := int(sc.Remaining / time.Second)
	if sc.Remaining%time.Second > 0 {
		s++
	}
	return s
}
