// Package input turns global hook events into per-frame pointer and key
// snapshots for the session.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/keybind"
	"github.com/soocke/snapcrop-go/domain/session"
)

// leftButton is the gohook button number of the primary mouse button.
const leftButton = 1

// maxPending bounds the key events kept between two snapshots.
const maxPending = 64

// ErrHookUnavailable is reported by Stop when the global hook never delivered
// events.
var ErrHookUnavailable = errors.New("input: global hook unavailable")

// Snapshot is the input gathered since the previous call to Collector.Snapshot.
type Snapshot struct {
	Pointer session.Pointer
	Keys    []keybind.KeyEvent
}

// Collector accumulates hook events between frames. Feed runs on the hook
// goroutine; Snapshot runs on the UI thread.
type Collector struct {
	logger *slog.Logger

	mu       sync.Mutex
	pos      geometry.Point // screen coordinates
	lastPos  geometry.Point
	down     bool
	pressed  bool
	released bool
	keys     []keybind.KeyEvent
	held     map[keybind.Key]bool
	mods     keybind.Modifiers

	startHook func() chan hook.Event
	endHook   func()
	running   bool
	err       error
}

// NewCollector returns a collector reading from gohook once started.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		logger:    logger,
		held:      make(map[keybind.Key]bool),
		startHook: hook.Start,
		endHook:   hook.End,
	}
}

// Start launches the hook goroutine. It is a no-op when already running.
func (c *Collector) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.fail(fmt.Errorf("%w: panic: %v", ErrHookUnavailable, r))
				if c.logger != nil {
					c.logger.Error("input hook panic", "panic", r)
				}
			}
		}()
		events := c.startHook()
		if events == nil {
			c.fail(fmt.Errorf("%w: nil event channel", ErrHookUnavailable))
			if c.logger != nil {
				c.logger.Error("input hook returned nil channel")
			}
			return
		}
		if c.logger != nil {
			c.logger.Debug("input hook started")
		}
		for ev := range events {
			c.Feed(ev)
		}
		if c.logger != nil {
			c.logger.Debug("input hook channel closed")
		}
	}()
}

func (c *Collector) fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Stop ends the hook and reports whether it failed while running. Safe to
// call more than once; only the first call returns the failure.
func (c *Collector) Stop() error {
	c.mu.Lock()
	running := c.running
	c.running = false
	err := c.err
	c.err = nil
	c.mu.Unlock()
	if running {
		c.endHook()
	}
	return err
}

// Feed applies one hook event.
func (c *Collector) Feed(ev hook.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Kind {
	case hook.MouseMove, hook.MouseDrag:
		c.pos = geometry.Pt(float64(ev.X), float64(ev.Y))
	case hook.MouseDown:
		// uiohook's "pressed" event; gohook names it MouseDown.
		if ev.Button != leftButton {
			return
		}
		c.pos = geometry.Pt(float64(ev.X), float64(ev.Y))
		c.down = true
		c.pressed = true
	case hook.MouseHold:
		// uiohook's "released" event.
		if ev.Button != leftButton {
			return
		}
		c.pos = geometry.Pt(float64(ev.X), float64(ev.Y))
		if c.down {
			c.released = true
		}
		c.down = false
	case hook.KeyHold, hook.KeyDown:
		// Typed events follow the pressed event of the same key on most
		// platforms and come through as repeats.
		k, ok := keyOf(ev)
		if !ok {
			return
		}
		repeat := c.held[k]
		c.held[k] = true
		c.mods |= keybind.ModifierOf(k)
		c.push(keybind.KeyEvent{Key: k, Pressed: true, Repeat: repeat, Mods: c.mods})
	case hook.KeyUp:
		k, ok := keyOf(ev)
		if !ok {
			return
		}
		delete(c.held, k)
		c.mods = c.heldMods()
		c.push(keybind.KeyEvent{Key: k, Mods: c.mods})
	}
}

func (c *Collector) push(ev keybind.KeyEvent) {
	if len(c.keys) >= maxPending {
		return
	}
	c.keys = append(c.keys, ev)
}

func (c *Collector) heldMods() keybind.Modifiers {
	var m keybind.Modifiers
	for k := range c.held {
		m |= keybind.ModifierOf(k)
	}
	return m
}

// Snapshot drains the events gathered since the last call. origin is the
// screen position of the window's top-left corner; the returned pointer is in
// window coordinates.
func (c *Collector) Snapshot(origin geometry.Point) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Pointer: session.Pointer{
			Pos:      geometry.Pt(c.pos.X-origin.X, c.pos.Y-origin.Y),
			Down:     c.down,
			Pressed:  c.pressed,
			Released: c.released,
			Delta:    c.pos.Sub(c.lastPos),
		},
		Keys: c.keys,
	}
	c.lastPos = c.pos
	c.pressed, c.released = false, false
	c.keys = nil
	return s
}

var keycodeNames = func() map[uint16]string {
	m := make(map[uint16]string, len(hook.Keycode))
	for name, code := range hook.Keycode {
		if prev, ok := m[code]; ok && (len(prev) < len(name) || len(prev) == len(name) && prev < name) {
			continue
		}
		m[code] = name
	}
	return m
}()

// keyOf names the key of a key event. The uiohook keycode is tried first, the
// platform raw code second.
func keyOf(ev hook.Event) (keybind.Key, bool) {
	candidates := []string{keycodeNames[ev.Keycode], hook.RawcodetoKeychar(ev.Rawcode)}
	if ev.Keychar > ' ' && ev.Keychar < 0x7f {
		candidates = append(candidates, string(ev.Keychar))
	}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if k, err := keybind.ParseKey(strings.ToLower(name)); err == nil {
			return k, true
		}
	}
	return "", false
}
