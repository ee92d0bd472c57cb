// Package session drives the capture workflow one frame at a time: picking a
// capture mode, drawing a region, grabbing the monitor, and editing the
// result with the crop overlay.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/crop"
	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/keybind"
)

const (
	// DefaultCropMargin is removed from every side of the viewport before the
	// monitor image is fitted for cropping.
	DefaultCropMargin = 60.0
	// MaxDelay bounds the delayed-capture countdown.
	MaxDelay = 60 * time.Second
)

// Options configure a Session.
type Options struct {
	MonitorID  int
	Delay      time.Duration
	CropMargin float64
	Overlay    crop.Options
}

// Deps are the collaborators a Session calls at the edges of the workflow.
type Deps struct {
	Capturer  Capturer
	Exporter  Exporter
	Clipboard Clipboard
	Window    Window
	Notifier  Notifier
	Keys      *keybind.Bindings
}

// Session owns the region, the capture buffer and the crop overlay. It is not
// safe for concurrent use; call Frame from the UI thread only.
type Session struct {
	logger *slog.Logger
	opts   Options
	deps   Deps

	phase         Phase
	monitor       geometry.MonitorFrame
	region        geometry.Selection
	prevRegion    geometry.Selection
	chooserHidden bool
	buffer        *capture.Buffer
	overlay       *crop.Overlay
	countdown     Countdown
	delay         time.Duration
	listeners     []PhaseListener
}

// New constructs an idle session.
func New(logger *slog.Logger, deps Deps, opts Options) *Session {
	if opts.CropMargin < 0 {
		opts.CropMargin = 0
	}
	if deps.Keys == nil {
		deps.Keys = keybind.Default()
	}
	s := &Session{logger: logger, opts: opts, deps: deps, phase: PhaseIdle}
	s.SetDelay(opts.Delay)
	return s
}

func (s *Session) Phase() Phase                   { return s.phase }
func (s *Session) Region() geometry.Rect          { return s.region.Rect() }
func (s *Session) Monitor() geometry.MonitorFrame { return s.monitor }
func (s *Session) Buffer() *capture.Buffer        { return s.buffer }
func (s *Session) Overlay() *crop.Overlay         { return s.overlay }
func (s *Session) Delay() time.Duration           { return s.delay }
func (s *Session) Counting() bool                 { return s.countdown.Active() }

// SetDelay sets the delayed-capture countdown, clamped to [0, MaxDelay].
func (s *Session) SetDelay(d time.Duration) {
	switch {
	case d < 0:
		d = 0
	case d > MaxDelay:
		d = MaxDelay
	}
	s.delay = d
}

// AddListener registers l for phase transitions.
func (s *Session) AddListener(l PhaseListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Close cancels a running countdown, restores the window if an overlay is
// up and releases the capture buffer. The session is idle afterwards. A
// buffer that was released behind the session's back is reported.
func (s *Session) Close() error {
	var err error
	s.countdown.Cancel()
	overlay := s.phase == PhaseChoosingCaptureMode || s.phase == PhaseDrawingSelection || s.phase == PhaseAwaitingCapture
	if overlay && s.deps.Window != nil {
		s.deps.Window.RestorePresentation()
	}
	if s.buffer != nil {
		if s.buffer.Image == nil {
			err = fmt.Errorf("buffer %s: %w", s.buffer.ShortID(), capture.ErrReleased)
		}
		s.buffer.Release()
		s.buffer = nil
	}
	s.overlay = nil
	s.transition(PhaseIdle)
	return err
}

// Frame advances the session by one frame. The only error it returns is a
// monitor with zero dimensions, which the caller must treat as fatal; every
// other failure is reported through the Notifier and handled in place.
func (s *Session) Frame(in Input, now time.Time) (Scene, error) {
	intents := s.shortcuts(in.Intents, in.Keys)
	if err := s.step(in, intents, now); err != nil {
		return s.scene(in, now), err
	}
	return s.scene(in, now), nil
}

// shortcuts folds Ctrl+key presses into the frame's intents, gated by phase.
func (s *Session) shortcuts(it Intents, keys []keybind.KeyEvent) Intents {
	kb := s.deps.Keys
	for _, ev := range keys {
		switch {
		case s.countdown.Active():
			if kb.Triggered(keybind.ActionCancel, ev) {
				it.Cancel = true
			}
		case s.phase == PhaseEditing:
			switch {
			case kb.Triggered(keybind.ActionSave, ev):
				it.Save = true
			case kb.Triggered(keybind.ActionClipboard, ev):
				it.Copy = true
			case kb.Triggered(keybind.ActionCrop, ev):
				it.Crop = true
			case kb.Triggered(keybind.ActionNew, ev):
				it.CaptureNow, it.Area, it.shortcut = true, true, true
			case kb.Triggered(keybind.ActionFullscreen, ev):
				it.FullScreen, it.shortcut = true, true
			}
		case s.phase == PhaseCroppingOverlay:
			if kb.Triggered(keybind.ActionCancel, ev) {
				it.Cancel = true
			}
		}
	}
	return it
}

// step dispatches on the phase the frame started in, so a transition made
// during this frame is handled from the next one on.
func (s *Session) step(in Input, it Intents, now time.Time) error {
	if s.countdown.Active() {
		return s.stepCountdown(it, now)
	}
	switch s.phase {
	case PhaseIdle:
		return s.stepStart(it, now)
	case PhaseChoosingCaptureMode:
		s.stepChoosing(in, it)
	case PhaseDrawingSelection:
		s.stepDrawing(in, it)
	case PhaseAwaitingCapture:
		s.doCapture()
	case PhaseEditing:
		return s.stepEditing(in, it, now)
	case PhaseCroppingOverlay:
		s.stepCropping(in, it)
	}
	return nil
}

func (s *Session) stepCountdown(it Intents, now time.Time) error {
	switch {
	case it.Cancel:
		s.countdown.Cancel()
		if s.logger != nil {
			s.logger.Info("countdown cancelled")
		}
	case it.CaptureNow:
		s.countdown.Cancel()
		s.delay = 0
		return s.beginCapture()
	case s.countdown.Expired(now):
		return s.beginCapture()
	}
	return nil
}

// stepStart handles the intents that open the capture overlay. It reports
// via s.phase whether a transition happened.
func (s *Session) stepStart(it Intents, now time.Time) error {
	switch {
	case it.FullScreen:
		if err := s.beginCapture(); err != nil {
			return err
		}
		if s.phase == PhaseChoosingCaptureMode {
			s.chooseFullScreen()
		}
	case it.CaptureNow:
		if !it.shortcut {
			s.delay = 0
		}
		if err := s.beginCapture(); err != nil {
			return err
		}
		if s.phase == PhaseChoosingCaptureMode && it.Area {
			s.chooserHidden = true
		}
	case it.NewCapture:
		if s.delay > 0 {
			s.countdown.Start(now, s.delay)
			if s.logger != nil {
				s.logger.Info("countdown started", "delay", s.delay)
			}
			return nil
		}
		return s.beginCapture()
	}
	return nil
}

func (s *Session) stepChoosing(in Input, it Intents) {
	switch {
	case it.Cancel:
		s.leaveCapture()
	case it.FullScreen:
		s.chooseFullScreen()
	case in.Pointer.Pressed && !in.Pointer.OverControl:
		s.region = geometry.Selection{P0: in.Pointer.Pos, P1: in.Pointer.Pos}
		s.transition(PhaseDrawingSelection)
	case it.Area:
		s.chooserHidden = true
	}
}

func (s *Session) stepDrawing(in Input, it Intents) {
	if it.Cancel {
		s.transition(PhaseChoosingCaptureMode)
		return
	}
	s.region.P1 = in.Pointer.Pos
	if !in.Pointer.Released && in.Pointer.Down {
		return
	}
	if s.region.Degenerate() {
		if s.logger != nil {
			s.logger.Debug("selection discarded", "at", fmt.Sprint(s.region.P0))
		}
		s.transition(PhaseChoosingCaptureMode)
		return
	}
	s.transition(PhaseAwaitingCapture)
}

func (s *Session) stepEditing(in Input, it Intents, now time.Time) error {
	if err := s.stepStart(it, now); err != nil || s.phase != PhaseEditing || s.countdown.Active() {
		return err
	}
	switch {
	case it.Crop:
		return s.enterCrop(in.Viewport)
	case it.Save:
		s.save()
	case it.Copy:
		s.copy()
	}
	return nil
}

func (s *Session) stepCropping(in Input, it Intents) {
	o := s.overlay
	switch {
	case it.Cancel:
		s.overlay = nil
		s.transition(PhaseEditing)
		return
	case it.Confirm:
		s.region = geometry.SelectionOf(o.Confirm())
		s.overlay = nil
		if s.logger != nil {
			r := s.region.Rect()
			s.logger.Debug("crop confirmed", "width", r.Width(), "height", r.Height())
		}
		s.transition(PhaseEditing)
		return
	}
	p := in.Pointer
	switch {
	case p.Pressed && !p.OverControl:
		o.BeginDrag(p.Pos)
	case p.Dragging() && o.ActiveEdge() != crop.EdgeNone:
		o.DragBy(p.Delta)
	}
	if p.Released || !p.Down {
		o.EndDrag()
	}
}

func (s *Session) beginCapture() error {
	m, err := s.deps.Capturer.Monitor(s.opts.MonitorID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("monitor lookup", "monitor", s.opts.MonitorID, "error", err)
		}
		s.notifyFail("capture unavailable", err)
		return nil
	}
	if !m.Valid() {
		return fmt.Errorf("monitor %d: %w", m.ID, geometry.ErrZeroMonitor)
	}
	s.prevRegion = s.region
	s.monitor = m
	s.transition(PhaseChoosingCaptureMode)
	return nil
}

func (s *Session) chooseFullScreen() {
	s.region = geometry.SelectionOf(s.monitor.Rect())
	s.transition(PhaseAwaitingCapture)
}

// leaveCapture abandons the overlay and returns to the previous capture, if
// there is one.
func (s *Session) leaveCapture() {
	if s.deps.Window != nil {
		s.deps.Window.RestorePresentation()
	}
	if s.buffer != nil {
		s.region = s.prevRegion
		s.monitor = s.buffer.Monitor
		s.transition(PhaseEditing)
		return
	}
	s.transition(PhaseIdle)
}

func (s *Session) doCapture() {
	buf, err := s.deps.Capturer.Capture(s.opts.MonitorID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("capture failed", "monitor", s.opts.MonitorID, "error", err)
		}
		s.notifyFail("capture failed", err)
		s.transition(PhaseChoosingCaptureMode)
		return
	}
	if s.buffer != nil {
		s.buffer.Release()
	}
	s.buffer = buf
	if buf.Monitor.Valid() {
		s.monitor = buf.Monitor
	}
	if s.deps.Window != nil {
		s.deps.Window.RestorePresentation()
	}
	s.transition(PhaseEditing)
}

func (s *Session) enterCrop(viewport geometry.Rect) error {
	if s.buffer == nil {
		return nil
	}
	display := geometry.FitRect(viewport.Shrink(s.opts.CropMargin), s.monitor.Rect().Size(), viewport.Center())
	o, err := crop.Seed(s.region.Rect(), display, s.monitor, s.opts.Overlay)
	if err != nil {
		return err
	}
	s.overlay = o
	s.transition(PhaseCroppingOverlay)
	return nil
}

func (s *Session) save() {
	img, err := s.buffer.Crop(s.region.Rect())
	if err != nil {
		s.notifyFail("nothing to save", err)
		return
	}
	if s.deps.Exporter == nil {
		return
	}
	res, err := s.deps.Exporter.Export(img, "")
	if err != nil {
		if s.logger != nil {
			s.logger.Error("export failed", "error", err)
		}
		s.notifyFail("save failed", err)
		return
	}
	if s.logger != nil {
		s.logger.Info("capture saved", "path", res.Path, "bytes", res.Size)
	}
	s.notify("saved " + res.String())
}

func (s *Session) copy() {
	img, err := s.buffer.Crop(s.region.Rect())
	if err != nil {
		s.notifyFail("nothing to copy", err)
		return
	}
	if s.deps.Clipboard == nil {
		return
	}
	if err := s.deps.Clipboard.PutImage(img); err != nil {
		if s.logger != nil {
			s.logger.Error("clipboard failed", "error", err)
		}
		s.notifyFail("copy failed", err)
		return
	}
	b := img.Bounds()
	s.notify(fmt.Sprintf("copied %dx%d to clipboard", b.Dx(), b.Dy()))
}

func (s *Session) transition(next Phase) {
	prev := s.phase
	if prev == next {
		return
	}
	switch next {
	case PhaseChoosingCaptureMode:
		s.region = geometry.Selection{}
		s.chooserHidden = false
		s.overlay = nil
		if s.deps.Window != nil {
			s.deps.Window.EnterCaptureOverlay(s.monitor)
		}
	case PhaseAwaitingCapture:
		if s.deps.Window != nil {
			s.deps.Window.ClearOverlay()
		}
	}
	s.phase = next
	if s.logger != nil {
		s.logger.Debug("session phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}

func (s *Session) notify(msg string) {
	if s.deps.Notifier != nil {
		s.deps.Notifier.Notify(msg)
	}
}

func (s *Session) notifyFail(msg string, err error) {
	if s.deps.Notifier != nil {
		s.deps.Notifier.Fail(msg, err)
	}
}

func (s *Session) scene(in Input, now time.Time) Scene {
	sc := Scene{
		Phase:       s.phase,
		Monitor:     s.monitor,
		Buffer:      s.buffer,
		Region:      s.region.Rect(),
		ShowChooser: s.phase == PhaseChoosingCaptureMode && !s.chooserHidden,
		Counting:    s.countdown.Active(),
		Remaining:   s.countdown.Remaining(now),
		Delay:       s.delay,
	}
	switch s.phase {
	case PhaseEditing:
		if uv, err := geometry.UVOf(sc.Region, s.monitor); err == nil {
			sc.UV = uv
		}
		vp := in.Viewport
		sc.Display = geometry.FitRect(vp, sc.Region.Size(), vp.Center())
	case PhaseCroppingOverlay:
		sc.Display = s.overlay.Display
		sc.Outline = s.overlay.Rect()
		sc.ActiveEdge = s.overlay.ActiveEdge()
		if sc.ActiveEdge == crop.EdgeNone {
			sc.HoverEdge = s.overlay.Hover(in.Pointer.Pos)
		}
	}
	return sc
}
