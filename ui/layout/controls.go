package layout

import "github.com/soocke/snapcrop-go/domain/session"

// Control is a button or selector of the control bar.
type Control int

const (
	ControlNew Control = iota
	ControlNow
	ControlDelay
	ControlFullScreen
	ControlArea
	ControlCrop
	ControlSave
	ControlCopy
	ControlConfirm
	ControlCancel
	ControlSettings
)

var controlLabels = [...]string{
	"New capture", "Capture now", "Delay", "Full screen", "Area",
	"Crop", "Save", "Copy", "Confirm", "Cancel", "Keys",
}

// Controls lists the bar controls in display order.
func Controls() []Control {
	out := make([]Control, len(controlLabels))
	for i := range out {
		out[i] = Control(i)
	}
	return out
}

// Label is the button caption.
func (c Control) Label() string {
	if c < 0 || int(c) >= len(controlLabels) {
		return ""
	}
	return controlLabels[c]
}

// Offered reports whether c is enabled for the given scene. A running
// countdown only offers Cancel and Capture now.
func Offered(c Control, sc session.Scene) bool {
	if sc.Counting {
		return c == ControlCancel || c == ControlNow
	}
	switch sc.Phase {
	case session.PhaseIdle:
		switch c {
		case ControlNew, ControlNow, ControlDelay, ControlSettings:
			return true
		}
	case session.PhaseEditing:
		switch c {
		case ControlNew, ControlNow, ControlDelay, ControlSettings, ControlCrop, ControlSave, ControlCopy:
			return true
		}
	case session.PhaseChoosingCaptureMode:
		switch c {
		case ControlFullScreen, ControlCancel:
			return true
		case ControlArea:
			return sc.ShowChooser
		}
	case session.PhaseCroppingOverlay:
		return c == ControlConfirm || c == ControlCancel
	}
	return false
}
