package view

import (
	"github.com/soocke/snapcrop-go/domain/crop"
	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// frameKey identifies what a composited frame shows. Frames with equal keys
// are identical, so the photo is only rebuilt when the key changes.
type frameKey struct {
	phase      session.Phase
	seq        uint64
	region     geometry.Rect
	display    geometry.Rect
	outline    geometry.Rect
	hover      crop.Edge
	active     crop.Edge
	countdown  int
	viewport   geometry.Rect
	hasBuffer  bool
	showChoose bool
}

func keyOf(sc session.Scene, viewport geometry.Rect) frameKey {
	k := frameKey{
		phase:      sc.Phase,
		region:     sc.Region,
		display:    sc.Display,
		outline:    sc.Outline,
		hover:      sc.HoverEdge,
		active:     sc.ActiveEdge,
		viewport:   viewport,
		showChoose: sc.ShowChooser,
	}
	if sc.Buffer != nil {
		k.seq = sc.Buffer.Sequence
		k.hasBuffer = sc.Buffer.Image != nil
	}
	if sc.Counting {
		k.countdown = int(sc.Remaining.Seconds()) + 1
	}
	return k
}

// FrameView owns the label that shows the composited scene. It replaces the
// previous Tk photo on every change so old pixel data is released.
type FrameView struct {
	label     *LabelWidget
	renderer  *images.SceneRenderer
	prevPhoto *Img
	last      frameKey
	drawn     bool
}

// NewFrameView creates the frame label at the top-left cell of the window.
func NewFrameView(renderer *images.SceneRenderer) *FrameView {
	v := &FrameView{renderer: renderer}
	v.label = Label(Borderwidth(0), Anchor("nw"), Padx(0), Pady(0))
	Grid(v.label, Row(0), Column(0), Sticky("nw"))
	return v
}

// Render composites sc for the viewport and shows it when it changed.
func (v *FrameView) Render(sc session.Scene, viewport geometry.Rect) {
	if v == nil || v.label == nil || v.renderer == nil {
		return
	}
	k := keyOf(sc, viewport)
	if v.drawn && k == v.last {
		return
	}
	img := v.renderer.Render(sc, viewport)
	photo := NewPhoto(Data(images.EncodePNG(img)))
	v.label.Configure(Image(photo))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
	v.last = k
	v.drawn = true
}
