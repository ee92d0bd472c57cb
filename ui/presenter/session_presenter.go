package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/keybind"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/input"
)

// SessionDriver is the part of the capture session the presenter drives.
type SessionDriver interface {
	Frame(in session.Input, now time.Time) (session.Scene, error)
	SetDelay(d time.Duration)
	Delay() time.Duration
}

// InputSource yields the pointer and keys gathered since the previous frame.
type InputSource interface {
	Snapshot(origin geometry.Point) input.Snapshot
}

// KeyFilter may consume key events before the session sees them.
type KeyFilter interface {
	Filter(keys []keybind.KeyEvent) []keybind.KeyEvent
}

// SceneView renders scenes and reports the window layout. origin is the
// window position on screen; viewport is the drawable area in window
// coordinates.
type SceneView interface {
	Layout() (origin geometry.Point, viewport geometry.Rect)
	Focused() bool
	Render(sc session.Scene)
}

// SessionPresenter assembles one session.Input per frame from the input
// collector and the control activations queued by the view, runs the session
// and hands the resulting scene to the view.
type SessionPresenter struct {
	logger  *slog.Logger
	sess    SessionDriver
	input   InputSource
	view    SceneView
	filter  KeyFilter
	hotkey  *keybind.Combo
	pending session.Intents
	last    session.Scene
	fatal   func(error)
	failed  bool
	foreign bool // button went down while another window had focus
}

// NewSessionPresenter returns a new SessionPresenter. filter may be nil.
func NewSessionPresenter(logger *slog.Logger, sess SessionDriver, in InputSource, view SceneView, filter KeyFilter) *SessionPresenter {
	return &SessionPresenter{logger: logger, sess: sess, input: in, view: view, filter: filter}
}

// SetHotkey installs the global "new capture" combo. It fires even when the
// window is not focused.
func (p *SessionPresenter) SetHotkey(c keybind.Combo) {
	if p == nil {
		return
	}
	p.hotkey = &c
}

// OnFatal registers the handler for errors the session cannot recover from.
func (p *SessionPresenter) OnFatal(f func(error)) {
	if p == nil {
		return
	}
	p.fatal = f
}

// Control activations. Each one is delivered with the next frame.
func (p *SessionPresenter) NewCapture() { p.queue(func(it *session.Intents) { it.NewCapture = true }) }
func (p *SessionPresenter) CaptureNow() { p.queue(func(it *session.Intents) { it.CaptureNow = true }) }
func (p *SessionPresenter) FullScreen() { p.queue(func(it *session.Intents) { it.FullScreen = true }) }
func (p *SessionPresenter) Area()       { p.queue(func(it *session.Intents) { it.Area = true }) }
func (p *SessionPresenter) Crop()       { p.queue(func(it *session.Intents) { it.Crop = true }) }
func (p *SessionPresenter) Confirm()    { p.queue(func(it *session.Intents) { it.Confirm = true }) }
func (p *SessionPresenter) Cancel()     { p.queue(func(it *session.Intents) { it.Cancel = true }) }
func (p *SessionPresenter) Save()       { p.queue(func(it *session.Intents) { it.Save = true }) }
func (p *SessionPresenter) Copy()       { p.queue(func(it *session.Intents) { it.Copy = true }) }

func (p *SessionPresenter) queue(set func(*session.Intents)) {
	if p == nil {
		return
	}
	set(&p.pending)
}

// SetDelaySeconds applies the delay chosen in the toolbar.
func (p *SessionPresenter) SetDelaySeconds(n int) {
	if p == nil || p.sess == nil {
		return
	}
	p.sess.SetDelay(time.Duration(n) * time.Second)
}

// DelaySeconds is the session delay in whole seconds.
func (p *SessionPresenter) DelaySeconds() int {
	if p == nil || p.sess == nil {
		return 0
	}
	return int(p.sess.Delay() / time.Second)
}

// Scene is the scene produced by the last frame.
func (p *SessionPresenter) Scene() session.Scene {
	if p == nil {
		return session.Scene{}
	}
	return p.last
}

// Tick runs one frame. It returns false once the session failed fatally;
// no further frames should be scheduled then.
func (p *SessionPresenter) Tick(now time.Time) bool {
	if p == nil || p.sess == nil || p.view == nil || p.input == nil {
		return true
	}
	if p.failed {
		return false
	}
	origin, viewport := p.view.Layout()
	snap := p.input.Snapshot(origin)

	focused := p.view.Focused()
	keys := p.hotkeyPass(snap.Keys)
	if !focused {
		keys = nil
	} else if p.filter != nil {
		keys = p.filter.Filter(keys)
	}
	ptr := p.ownPointer(snap.Pointer, focused)
	ptr.OverControl = !viewport.Contains(ptr.Pos)

	in := session.Input{Pointer: ptr, Keys: keys, Intents: p.pending, Viewport: viewport}
	p.pending = session.Intents{}

	sc, err := p.sess.Frame(in, now)
	if err != nil {
		p.failed = true
		if p.logger != nil {
			p.logger.Error("session frame failed", "error", err)
		}
		if p.fatal != nil {
			p.fatal(err)
		}
		return false
	}
	p.last = sc
	p.view.Render(sc)
	return true
}

// ownPointer hides a button press made while the window was not focused,
// along with the rest of that press until the button is released. The hook
// sees clicks in every application.
func (p *SessionPresenter) ownPointer(ptr session.Pointer, focused bool) session.Pointer {
	if ptr.Pressed {
		p.foreign = !focused
	}
	if !p.foreign {
		return ptr
	}
	if !ptr.Down {
		p.foreign = false
	}
	ptr.Down, ptr.Pressed, ptr.Released = false, false, false
	return ptr
}

// hotkeyPass queues a new capture for each hotkey press and removes those
// presses from keys so the editor shortcuts do not see them too.
func (p *SessionPresenter) hotkeyPass(keys []keybind.KeyEvent) []keybind.KeyEvent {
	if p.hotkey == nil || len(keys) == 0 {
		return keys
	}
	out := keys[:0:0]
	for _, ev := range keys {
		if p.hotkey.Matches(ev) {
			p.pending.NewCapture = true
			if p.logger != nil {
				p.logger.Debug("hotkey pressed", "combo", p.hotkey.String())
			}
			continue
		}
		out = append(out, ev)
	}
	return out
}
