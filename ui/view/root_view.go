package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/images"
	"github.com/soocke/snapcrop-go/ui/layout"
	"github.com/soocke/snapcrop-go/ui/model"
	"github.com/soocke/snapcrop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// delayChoices are the countdown lengths offered by the delay selector.
var delayChoices = []int{0, 1, 2, 3, 5, 10, 15, 30, 60}

// Handlers are the user actions wired to the control bar.
type Handlers struct {
	NewCapture   func()
	CaptureNow   func()
	FullScreen   func()
	Area         func()
	Crop         func()
	Confirm      func()
	Cancel       func()
	Save         func()
	Copy         func()
	SetDelay     func(seconds int)
	OpenSettings func()
	Exit         func()
}

func (h Handlers) command(c layout.Control) func() {
	var f func()
	switch c {
	case layout.ControlNew:
		f = h.NewCapture
	case layout.ControlNow:
		f = h.CaptureNow
	case layout.ControlFullScreen:
		f = h.FullScreen
	case layout.ControlArea:
		f = h.Area
	case layout.ControlCrop:
		f = h.Crop
	case layout.ControlConfirm:
		f = h.Confirm
	case layout.ControlCancel:
		f = h.Cancel
	case layout.ControlSave:
		f = h.Save
	case layout.ControlCopy:
		f = h.Copy
	case layout.ControlSettings:
		f = h.OpenSettings
	}
	if f == nil {
		return func() {}
	}
	return f
}

// RootView composes the main window: the frame surface on top and the
// control bar with the status line below. It is the render target of the
// session presenter and the window the session reshapes for overlays.
type RootView struct {
	logger *slog.Logger

	Frame  *FrameView
	Status *StatusBar
	Window *OverlayWindow

	buttons  map[layout.Control]*ButtonWidget
	enabled  map[layout.Control]bool
	delaySel *TComboboxWidget
	phase    session.Phase
	viewport geometry.Rect
	focused  bool
	settings bool
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{
		logger:  logger,
		buttons: make(map[layout.Control]*ButtonWidget),
		enabled: make(map[layout.Control]bool),
		focused: true,
		Window:  NewOverlayWindow(logger),
	}
}

// Build constructs the layout. delaySeconds preselects the delay entry.
func (rv *RootView) Build(h Handlers, delaySeconds int) {
	if rv == nil {
		return
	}
	GridRowConfigure(App, 0, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	rv.Frame = NewFrameView(images.NewSceneRenderer(8, theme.SceneStyle()))

	bar := Frame(Height(layout.BarHeight))
	Grid(bar, Row(1), Column(0), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	for _, c := range layout.Controls() {
		if c == layout.ControlDelay {
			rv.buildDelay(bar, col, h, delaySeconds)
			col++
			continue
		}
		btn := Button(Txt(c.Label()), Command(h.command(c)))
		Grid(btn, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		rv.buttons[c] = btn
		rv.enabled[c] = true
		col++
	}
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.Exit))
	Grid(exitBtn, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.Status = NewStatusBar(bar, 1)

	Bind(App, "<FocusIn>", Command(func() { rv.focused = true }))
	Bind(App, "<FocusOut>", Command(func() { rv.focused = false }))
}

func (rv *RootView) buildDelay(bar *FrameWidget, col int, h Handlers, delaySeconds int) {
	values := make([]string, len(delayChoices))
	current := 0
	for i, s := range delayChoices {
		values[i] = strconv.Itoa(s)
		if s == delaySeconds {
			current = i
		}
	}
	rv.delaySel = TCombobox(Values(values), Width(4))
	Grid(rv.delaySel, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.delaySel.Current(current)
	Bind(rv.delaySel, "<<ComboboxSelected>>", Command(func() {
		if rv.delaySel == nil || h.SetDelay == nil {
			return
		}
		idx, err := strconv.Atoi(rv.delaySel.Current(nil))
		if err != nil || idx < 0 || idx >= len(delayChoices) {
			if rv.logger != nil {
				rv.logger.Error("delay selection parse error", "error", err)
			}
			return
		}
		h.SetDelay(delayChoices[idx])
	}))
}

// SettingsOpen marks whether the settings window is shown. Its focus counts
// as the application's focus.
func (rv *RootView) SettingsOpen(open bool) {
	if rv != nil {
		rv.settings = open
	}
}

// SetPhase implements presenter.PhaseView.
func (rv *RootView) SetPhase(p session.Phase) {
	if rv == nil {
		return
	}
	rv.phase = p
	if rv.logger != nil {
		rv.logger.Debug("phase shown", "phase", p.String())
	}
}

// Layout implements presenter.SceneView.
func (rv *RootView) Layout() (geometry.Point, geometry.Rect) {
	win, ok := layout.ParseGeometry(WmGeometry(App))
	if !ok {
		win = image.Rect(0, 0, 1, 1+layout.BarHeight)
	}
	origin, viewport := layout.Split(win)
	rv.viewport = viewport
	return origin, viewport
}

// Focused implements presenter.SceneView.
func (rv *RootView) Focused() bool { return rv.focused || rv.settings }

// Render implements presenter.SceneView.
func (rv *RootView) Render(sc session.Scene) {
	if rv == nil {
		return
	}
	rv.Frame.Render(sc, rv.viewport)
	for c, btn := range rv.buttons {
		on := layout.Offered(c, sc)
		if on == rv.enabled[c] {
			continue
		}
		rv.enabled[c] = on
		if on {
			btn.Configure(State("normal"))
		} else {
			btn.Configure(State("disabled"))
		}
	}
}

// SetStatus implements presenter.StatusView.
func (rv *RootView) SetStatus(st model.Status) { rv.Status.SetStatus(st) }

// SetNotice implements presenter.NoticeView.
func (rv *RootView) SetNotice(text string, failure bool) { rv.Status.SetNotice(text, failure) }
