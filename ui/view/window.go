package view

import (
	"log/slog"

	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/ui/layout"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// overlayAlpha is the opacity of the window while it covers a monitor.
const overlayAlpha = 0.3

// OverlayWindow reshapes the main window between its normal presentation
// and a translucent cover over one monitor.
type OverlayWindow struct {
	logger *slog.Logger
	saved  string
	active bool
}

func NewOverlayWindow(logger *slog.Logger) *OverlayWindow {
	return &OverlayWindow{logger: logger}
}

// EnterCaptureOverlay implements session.Window.
func (w *OverlayWindow) EnterCaptureOverlay(m geometry.MonitorFrame) {
	if !w.active {
		w.saved = WmGeometry(App)
		w.active = true
	}
	geom := layout.MonitorGeometry(m)
	WmGeometry(App, geom)
	WmAttributes(App, "-topmost", 1)
	WmAttributes(App, "-alpha", overlayAlpha)
	WmAttributes(App, "-fullscreen", 1)
	if w.logger != nil {
		w.logger.Debug("overlay entered", "monitor", m.ID, "geometry", geom)
	}
}

// ClearOverlay implements session.Window.
func (w *OverlayWindow) ClearOverlay() {
	WmAttributes(App, "-alpha", 0)
}

// RestorePresentation implements session.Window.
func (w *OverlayWindow) RestorePresentation() {
	WmAttributes(App, "-fullscreen", 0)
	WmAttributes(App, "-topmost", 0)
	WmAttributes(App, "-alpha", 1)
	if w.active && w.saved != "" {
		WmGeometry(App, w.saved)
	}
	w.active = false
	if w.logger != nil {
		w.logger.Debug("presentation restored", "geometry", w.saved)
	}
}
