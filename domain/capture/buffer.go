package capture

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

// ErrEmptyRegion is returned when a crop region has no pixels after clamping.
var ErrEmptyRegion = errors.New("capture: empty region")

// ErrReleased is returned for a buffer whose pixels were already handed back
// to the frame pool.
var ErrReleased = errors.New("capture: buffer already released")

// Buffer is one captured monitor image. It is never mutated after capture; a
// new capture replaces it.
type Buffer struct {
	ID         uuid.UUID
	Sequence   uint64
	Image      *image.RGBA
	Monitor    geometry.MonitorFrame
	CapturedAt time.Time
}

// ShortID is the first block of the buffer ID, used in file names and logs.
func (b *Buffer) ShortID() string {
	return b.ID.String()[:8]
}

// Scale is buffer pixels per monitor unit. It differs from 1 when the backend
// returns physical pixels for a scaled monitor.
func (b *Buffer) Scale() float64 {
	if b == nil || b.Image == nil || b.Monitor.Width <= 0 {
		return 1
	}
	return float64(b.Image.Bounds().Dx()) / b.Monitor.Width
}

// PixelRect maps a monitor-space region to buffer pixels, clamped to the image.
func (b *Buffer) PixelRect(r geometry.Rect) image.Rectangle {
	s := b.Scale()
	bounds := b.Image.Bounds()
	out := image.Rect(
		bounds.Min.X+int(math.Round(r.Min.X*s)),
		bounds.Min.Y+int(math.Round(r.Min.Y*s)),
		bounds.Min.X+int(math.Round(r.Max.X*s)),
		bounds.Min.Y+int(math.Round(r.Max.Y*s)),
	)
	return out.Intersect(bounds)
}

// Crop copies the monitor-space region out of the buffer.
func (b *Buffer) Crop(r geometry.Rect) (*image.NRGBA, error) {
	if b == nil || b.Image == nil {
		return nil, ErrEmptyRegion
	}
	px := b.PixelRect(r)
	if px.Empty() {
		return nil, ErrEmptyRegion
	}
	return imaging.Crop(b.Image, px), nil
}

// Release hands the pixels back to the frame pool. The buffer must not be
// used afterwards.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	RecycleFrame(b.Image)
	b.Image = nil
}
