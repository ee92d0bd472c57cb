package session

import (
	"image"
	"time"

	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/crop"
	"github.com/soocke/snapcrop-go/domain/export"
	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/keybind"
)

// Phase enumerates the steps of the capture workflow. Exactly one is active.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseChoosingCaptureMode
	PhaseDrawingSelection
	PhaseAwaitingCapture
	PhaseEditing
	PhaseCroppingOverlay
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseChoosingCaptureMode:
		return "choosing"
	case PhaseDrawingSelection:
		return "drawing"
	case PhaseAwaitingCapture:
		return "awaiting"
	case PhaseEditing:
		return "editing"
	case PhaseCroppingOverlay:
		return "cropping"
	default:
		return "unknown"
	}
}

// PhaseListener is called on each phase transition.
type PhaseListener func(prev, next Phase)

// Pointer is the primary-button pointer state for one frame. Pos is in window
// coordinates, which equal monitor coordinates while the capture overlay
// covers the monitor.
type Pointer struct {
	Pos         geometry.Point
	Down        bool
	Pressed     bool
	Released    bool
	Delta       geometry.Size
	OverControl bool
}

// Dragging reports whether the button was already held before this frame.
func (p Pointer) Dragging() bool { return p.Down && !p.Pressed }

// Intents are the control activations of one frame.
type Intents struct {
	NewCapture bool // honours the configured delay
	CaptureNow bool // resets the delay to zero
	FullScreen bool
	Area       bool
	Crop       bool
	Confirm    bool
	Cancel     bool
	Save       bool
	Copy       bool

	// shortcut marks intents raised by an editing shortcut; they skip the
	// countdown but leave the configured delay alone.
	shortcut bool
}

// Input is everything the session reads in one frame.
type Input struct {
	Pointer  Pointer
	Keys     []keybind.KeyEvent
	Intents  Intents
	Viewport geometry.Rect
}

// Capturer is the screen-capture backend.
type Capturer interface {
	Monitor(id int) (geometry.MonitorFrame, error)
	Capture(id int) (*capture.Buffer, error)
}

// Exporter encodes a cropped image. An empty target means the default path.
type Exporter interface {
	Export(img image.Image, target string) (export.Result, error)
}

// Clipboard receives a cropped image.
type Clipboard interface {
	PutImage(img image.Image) error
}

// Window receives fire-and-forget presentation commands.
type Window interface {
	// EnterCaptureOverlay covers the monitor with a borderless, translucent
	// window so the user can pick a mode or draw a region.
	EnterCaptureOverlay(m geometry.MonitorFrame)
	// ClearOverlay makes the overlay fully transparent before the grab.
	ClearOverlay()
	RestorePresentation()
}

// Notifier shows non-fatal messages to the user.
type Notifier interface {
	Notify(msg string)
	Fail(msg string, err error)
}

// Scene is what the view renders for one frame.
type Scene struct {
	Phase   Phase
	Monitor geometry.MonitorFrame
	Buffer  *capture.Buffer

	// Region is the selection in monitor space. While drawing it is the live
	// preview from the press point to the pointer.
	Region      geometry.Rect
	ShowChooser bool

	// UV and Display place the region of Buffer on screen while editing. In
	// the crop phase Display shows the whole monitor and Outline is the
	// overlay.
	UV         geometry.Rect
	Display    geometry.Rect
	Outline    geometry.Rect
	HoverEdge  crop.Edge
	ActiveEdge crop.Edge

	Counting  bool
	Remaining time.Duration
	Delay     time.Duration
}
