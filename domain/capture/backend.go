package capture

import (
	"errors"
	"fmt"
	"image"

	kscreenshot "github.com/kbinani/screenshot"
	"github.com/vova616/screenshot"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

var (
	// ErrNoMonitors is returned when monitor enumeration comes back empty.
	ErrNoMonitors = errors.New("capture: no active monitors")
	// ErrCaptureFailed wraps any backend grab failure.
	ErrCaptureFailed = errors.New("capture: grab failed")
)

// Backend enumerates monitors and grabs the pixels of one of them.
type Backend interface {
	Name() string
	Monitors() ([]geometry.MonitorFrame, error)
	Grab(m geometry.MonitorFrame) (*image.RGBA, error)
}

// NewBackend returns the backend registered under name. Unknown names fall
// back to the per-display backend.
func NewBackend(name string) Backend {
	if name == (PrimaryBackend{}).Name() {
		return PrimaryBackend{}
	}
	return DisplayBackend{}
}

// DisplayBackend captures any active display by index.
type DisplayBackend struct{}

func (DisplayBackend) Name() string { return "displays" }

func (DisplayBackend) Monitors() ([]geometry.MonitorFrame, error) {
	n := kscreenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoMonitors
	}
	out := make([]geometry.MonitorFrame, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, frameOf(i, kscreenshot.GetDisplayBounds(i)))
	}
	return out, nil
}

func (DisplayBackend) Grab(m geometry.MonitorFrame) (*image.RGBA, error) {
	img, err := kscreenshot.CaptureRect(boundsOf(m))
	if err != nil {
		return nil, fmt.Errorf("%w: display %d: %v", ErrCaptureFailed, m.ID, err)
	}
	return img, nil
}

// PrimaryBackend only knows the primary screen.
type PrimaryBackend struct{}

func (PrimaryBackend) Name() string { return "primary" }

func (PrimaryBackend) Monitors() ([]geometry.MonitorFrame, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMonitors, err)
	}
	if r.Empty() {
		return nil, ErrNoMonitors
	}
	return []geometry.MonitorFrame{frameOf(0, r)}, nil
}

func (PrimaryBackend) Grab(geometry.MonitorFrame) (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: primary screen: %v", ErrCaptureFailed, err)
	}
	return img, nil
}

func frameOf(id int, r image.Rectangle) geometry.MonitorFrame {
	return geometry.MonitorFrame{
		ID:     id,
		Origin: geometry.Pt(float64(r.Min.X), float64(r.Min.Y)),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

func boundsOf(m geometry.MonitorFrame) image.Rectangle {
	x, y := int(m.Origin.X), int(m.Origin.Y)
	return image.Rect(x, y, x+int(m.Width), y+int(m.Height))
}
