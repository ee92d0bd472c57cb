package layout

import (
	"testing"

	"github.com/soocke/snapcrop-go/domain/session"
)

func offeredSet(sc session.Scene) map[Control]bool {
	out := map[Control]bool{}
	for _, c := range Controls() {
		if Offered(c, sc) {
			out[c] = true
		}
	}
	return out
}

func TestOffered(t *testing.T) {
	cases := []struct {
		name string
		sc   session.Scene
		want []Control
	}{
		{"idle", session.Scene{Phase: session.PhaseIdle}, []Control{ControlNew, ControlNow, ControlDelay, ControlSettings}},
		{"editing", session.Scene{Phase: session.PhaseEditing}, []Control{ControlNew, ControlNow, ControlDelay, ControlSettings, ControlCrop, ControlSave, ControlCopy}},
		{"chooser", session.Scene{Phase: session.PhaseChoosingCaptureMode, ShowChooser: true}, []Control{ControlFullScreen, ControlArea, ControlCancel}},
		{"chooser hidden", session.Scene{Phase: session.PhaseChoosingCaptureMode}, []Control{ControlFullScreen, ControlCancel}},
		{"drawing", session.Scene{Phase: session.PhaseDrawingSelection}, nil},
		{"awaiting", session.Scene{Phase: session.PhaseAwaitingCapture}, nil},
		{"cropping", session.Scene{Phase: session.PhaseCroppingOverlay}, []Control{ControlConfirm, ControlCancel}},
		{"countdown", session.Scene{Phase: session.PhaseEditing, Counting: true}, []Control{ControlNow, ControlCancel}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := offeredSet(tc.sc)
			if len(got) != len(tc.want) {
				t.Fatalf("offered %v, want %v", got, tc.want)
			}
			for _, c := range tc.want {
				if !got[c] {
					t.Fatalf("%s should be offered; got %v", c.Label(), got)
				}
			}
		})
	}
}

func TestControlLabels(t *testing.T) {
	for _, c := range Controls() {
		if c.Label() == "" {
			t.Fatalf("control %d has no label", c)
		}
	}
	if Control(99).Label() != "" {
		t.Fatalf("unknown control should have an empty label")
	}
}
