package presenter

import (
	"errors"
	"testing"
	"time"

	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/geometry"
	"github.com/soocke/snapcrop-go/domain/keybind"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/input"
	"github.com/soocke/snapcrop-go/ui/model"
)

type mockSession struct {
	inputs []session.Input
	delay  time.Duration
	err    error
	phase  session.Phase
}

func (m *mockSession) Frame(in session.Input, now time.Time) (session.Scene, error) {
	m.inputs = append(m.inputs, in)
	if m.err != nil {
		return session.Scene{}, m.err
	}
	return session.Scene{Phase: m.phase}, nil
}
func (m *mockSession) SetDelay(d time.Duration) { m.delay = d }
func (m *mockSession) Delay() time.Duration     { return m.delay }

var _ SessionDriver = (*mockSession)(nil)

type mockInput struct {
	next    input.Snapshot
	origins []geometry.Point
}

func (m *mockInput) Snapshot(origin geometry.Point) input.Snapshot {
	m.origins = append(m.origins, origin)
	s := m.next
	m.next = input.Snapshot{}
	return s
}

var _ InputSource = (*mockInput)(nil)

type mockSceneView struct {
	origin   geometry.Point
	viewport geometry.Rect
	focused  bool
	rendered int
	last     session.Scene
}

func (v *mockSceneView) Layout() (geometry.Point, geometry.Rect) { return v.origin, v.viewport }
func (v *mockSceneView) Focused() bool                           { return v.focused }
func (v *mockSceneView) Render(sc session.Scene)                 { v.rendered++; v.last = sc }

var _ SceneView = (*mockSceneView)(nil)

type dropAll struct{ calls int }

func (d *dropAll) Filter(keys []keybind.KeyEvent) []keybind.KeyEvent { d.calls++; return nil }

func newSessionFixture() (*SessionPresenter, *mockSession, *mockInput, *mockSceneView) {
	sess := &mockSession{phase: session.PhaseEditing}
	in := &mockInput{}
	view := &mockSceneView{origin: geometry.Pt(100, 50), viewport: geometry.Rect{Max: geometry.Pt(800, 600)}, focused: true}
	return NewSessionPresenter(nil, sess, in, view, nil), sess, in, view
}

func ctrlKey(k keybind.Key) keybind.KeyEvent {
	return keybind.KeyEvent{Key: k, Pressed: true, Mods: keybind.ModCtrl}
}

func TestSessionPresenter_IntentsDeliveredOnce(t *testing.T) {
	p, sess, in, view := newSessionFixture()
	p.Save()
	p.Crop()
	if !p.Tick(time.Now()) {
		t.Fatalf("tick should succeed")
	}
	it := sess.inputs[0].Intents
	if !it.Save || !it.Crop || it.Copy {
		t.Fatalf("unexpected intents %+v", it)
	}
	p.Tick(time.Now())
	if sess.inputs[1].Intents != (session.Intents{}) {
		t.Fatalf("intents must not repeat: %+v", sess.inputs[1].Intents)
	}
	if in.origins[0] != view.origin {
		t.Fatalf("snapshot should use the window origin, got %v", in.origins[0])
	}
	if view.rendered != 2 || p.Scene().Phase != session.PhaseEditing {
		t.Fatalf("expected two renders of the editing scene, got %d %v", view.rendered, p.Scene().Phase)
	}
}

func TestSessionPresenter_KeysRequireFocus(t *testing.T) {
	p, sess, in, view := newSessionFixture()
	view.focused = false
	in.next = input.Snapshot{Keys: []keybind.KeyEvent{ctrlKey("s")}}
	p.Tick(time.Now())
	if len(sess.inputs[0].Keys) != 0 {
		t.Fatalf("keys must be dropped while unfocused")
	}
	view.focused = true
	in.next = input.Snapshot{Keys: []keybind.KeyEvent{ctrlKey("s")}}
	p.Tick(time.Now())
	if len(sess.inputs[1].Keys) != 1 {
		t.Fatalf("keys must pass while focused")
	}
}

func TestSessionPresenter_PressRequiresFocus(t *testing.T) {
	p, sess, in, view := newSessionFixture()
	view.focused = false
	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(10, 10), Down: true, Pressed: true}}
	p.Tick(time.Now())
	if ptr := sess.inputs[0].Pointer; ptr.Pressed || ptr.Down {
		t.Fatalf("press in another window must not reach the session: %+v", ptr)
	}

	// Focus arriving mid-press does not adopt it.
	view.focused = true
	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(20, 10), Down: true, Delta: geometry.Size{W: 10}}}
	p.Tick(time.Now())
	if sess.inputs[1].Pointer.Dragging() {
		t.Fatalf("foreign press must not turn into a drag")
	}
	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(20, 10), Released: true}}
	p.Tick(time.Now())
	if sess.inputs[2].Pointer.Released {
		t.Fatalf("foreign release must be hidden too")
	}

	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(30, 30), Down: true, Pressed: true}}
	p.Tick(time.Now())
	if !sess.inputs[3].Pointer.Pressed {
		t.Fatalf("focused press must pass")
	}
}

func TestSessionPresenter_FilterSeesKeysFirst(t *testing.T) {
	sess := &mockSession{}
	in := &mockInput{next: input.Snapshot{Keys: []keybind.KeyEvent{ctrlKey("s")}}}
	view := &mockSceneView{viewport: geometry.Rect{Max: geometry.Pt(10, 10)}, focused: true}
	f := &dropAll{}
	p := NewSessionPresenter(nil, sess, in, view, f)
	p.Tick(time.Now())
	if f.calls != 1 || len(sess.inputs[0].Keys) != 0 {
		t.Fatalf("filter should consume keys: calls=%d keys=%v", f.calls, sess.inputs[0].Keys)
	}
}

func TestSessionPresenter_HotkeyWorksUnfocused(t *testing.T) {
	p, sess, in, view := newSessionFixture()
	view.focused = false
	combo, err := keybind.ParseCombo("Ctrl+Shift+N")
	if err != nil {
		t.Fatalf("parse combo: %v", err)
	}
	p.SetHotkey(combo)
	in.next = input.Snapshot{Keys: []keybind.KeyEvent{{Key: "n", Pressed: true, Mods: keybind.ModCtrl | keybind.ModShift}}}
	p.Tick(time.Now())
	if !sess.inputs[0].Intents.NewCapture {
		t.Fatalf("hotkey should queue a new capture")
	}

	view.focused = true
	in.next = input.Snapshot{Keys: []keybind.KeyEvent{{Key: "n", Pressed: true, Mods: keybind.ModCtrl | keybind.ModShift}, ctrlKey("s")}}
	p.Tick(time.Now())
	keys := sess.inputs[1].Keys
	if len(keys) != 1 || keys[0].Key != "s" {
		t.Fatalf("hotkey press must be removed from the session keys: %+v", keys)
	}
}

func TestSessionPresenter_OverControlOutsideViewport(t *testing.T) {
	p, sess, in, _ := newSessionFixture()
	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(400, 620), Pressed: true, Down: true}}
	p.Tick(time.Now())
	if !sess.inputs[0].Pointer.OverControl {
		t.Fatalf("pointer below the viewport is over the control bar")
	}
	in.next = input.Snapshot{Pointer: session.Pointer{Pos: geometry.Pt(400, 300)}}
	p.Tick(time.Now())
	if sess.inputs[1].Pointer.OverControl {
		t.Fatalf("pointer inside the viewport is not over a control")
	}
	if sess.inputs[1].Viewport != (geometry.Rect{Max: geometry.Pt(800, 600)}) {
		t.Fatalf("viewport not forwarded: %v", sess.inputs[1].Viewport)
	}
}

func TestSessionPresenter_FatalStopsFrames(t *testing.T) {
	p, sess, _, view := newSessionFixture()
	sess.err = geometry.ErrZeroMonitor
	var got error
	p.OnFatal(func(err error) { got = err })
	if p.Tick(time.Now()) {
		t.Fatalf("tick should report failure")
	}
	if !errors.Is(got, geometry.ErrZeroMonitor) {
		t.Fatalf("fatal handler got %v", got)
	}
	if p.Tick(time.Now()) || len(sess.inputs) != 1 || view.rendered != 0 {
		t.Fatalf("no frames may run after a fatal error: frames=%d renders=%d", len(sess.inputs), view.rendered)
	}
}

func TestSessionPresenter_Delay(t *testing.T) {
	p, sess, _, _ := newSessionFixture()
	p.SetDelaySeconds(7)
	if sess.delay != 7*time.Second || p.DelaySeconds() != 7 {
		t.Fatalf("delay not applied: %v", sess.delay)
	}
}

func TestSessionPresenter_NilSafe(t *testing.T) {
	var p *SessionPresenter
	p.Save()
	p.SetDelaySeconds(3)
	if !p.Tick(time.Now()) || p.DelaySeconds() != 0 {
		t.Fatalf("nil presenter must be inert")
	}
}

type mockPhaseView struct{ shown []session.Phase }

func (v *mockPhaseView) SetPhase(p session.Phase) { v.shown = append(v.shown, p) }

func TestPhasePresenter_ShowsLatest(t *testing.T) {
	v := &mockPhaseView{}
	p := NewPhasePresenter(v)
	p.Tick(time.Now())
	if len(v.shown) != 1 || v.shown[0] != session.PhaseIdle {
		t.Fatalf("initial phase should be shown once: %v", v.shown)
	}
	p.Tick(time.Now())
	if len(v.shown) != 1 {
		t.Fatalf("unchanged phase must not be pushed again: %v", v.shown)
	}
	p.OnPhase(session.PhaseIdle, session.PhaseChoosingCaptureMode)
	p.OnPhase(session.PhaseChoosingCaptureMode, session.PhaseDrawingSelection)
	p.Tick(time.Now())
	if len(v.shown) != 2 || v.shown[1] != session.PhaseDrawingSelection {
		t.Fatalf("expected only the latest queued phase: %v", v.shown)
	}
}

type mockScenes struct{ sc session.Scene }

func (m *mockScenes) Scene() session.Scene { return m.sc }

type mockStats struct{ st capture.Stats }

func (m *mockStats) Stats() capture.Stats { return m.st }

type mockStatusView struct{ pushed []model.Status }

func (v *mockStatusView) SetStatus(s model.Status) { v.pushed = append(v.pushed, s) }

func TestStatusPresenter_CountdownAndStats(t *testing.T) {
	scenes := &mockScenes{sc: session.Scene{Phase: session.PhaseIdle, Counting: true, Remaining: 2100 * time.Millisecond}}
	stats := &mockStats{st: capture.Stats{Captures: 3, Failures: 1, AvgCapture: 40 * time.Millisecond}}
	v := &mockStatusView{}
	p := NewStatusPresenter(model.NewStatusModel(), scenes, stats, v)
	p.Tick(time.Now())
	if len(v.pushed) != 1 {
		t.Fatalf("expected one push, got %d", len(v.pushed))
	}
	s := v.pushed[0]
	if s.Countdown != 3 || s.Captures != 3 || s.Failures != 1 || s.Phase != "idle" {
		t.Fatalf("unexpected status %+v", s)
	}
	p.Tick(time.Now())
	if len(v.pushed) != 1 {
		t.Fatalf("unchanged status pushed again")
	}
	scenes.sc = session.Scene{Phase: session.PhaseEditing}
	p.Tick(time.Now())
	if len(v.pushed) != 2 || v.pushed[1].Countdown != 0 || v.pushed[1].Phase != "editing" {
		t.Fatalf("expected editing without countdown: %+v", v.pushed)
	}
}

type mockNoticeView struct {
	texts    []string
	failures []bool
}

func (v *mockNoticeView) SetNotice(text string, failure bool) {
	v.texts = append(v.texts, text)
	v.failures = append(v.failures, failure)
}

func TestNoticePresenter_ShowAndExpire(t *testing.T) {
	notices := model.NewNoticeModel(nil, time.Second)
	v := &mockNoticeView{}
	p := NewNoticePresenter(notices, v)
	now := time.Now()
	p.Tick(now)
	if len(v.texts) != 0 {
		t.Fatalf("nothing to show yet")
	}
	notices.Fail("capture failed", errors.New("boom"))
	p.Tick(now)
	if len(v.texts) != 1 || v.texts[0] != "capture failed: boom" || !v.failures[0] {
		t.Fatalf("unexpected notice push %v %v", v.texts, v.failures)
	}
	p.Tick(now)
	if len(v.texts) != 1 {
		t.Fatalf("same notice pushed twice")
	}
	p.Tick(now.Add(2 * time.Second))
	if len(v.texts) != 2 || v.texts[1] != "" {
		t.Fatalf("expired notice should clear: %v", v.texts)
	}
	notices.Fail("capture failed", errors.New("boom"))
	p.Tick(time.Now())
	if len(v.texts) != 3 {
		t.Fatalf("a repeated message is a new notice: %v", v.texts)
	}
}

type mockSettingsView struct{ rows [][]BindingRow }

func (v *mockSettingsView) ShowBindings(rows []BindingRow) { v.rows = append(v.rows, rows) }

func press(k keybind.Key) keybind.KeyEvent { return keybind.KeyEvent{Key: k, Pressed: true} }

func TestSettingsPresenter_Rebind(t *testing.T) {
	b := keybind.Default()
	p := NewSettingsPresenter(nil, b)
	v := &mockSettingsView{}

	keys := []keybind.KeyEvent{press("q")}
	if got := p.Filter(keys); len(got) != 1 {
		t.Fatalf("keys pass through when nobody listens")
	}
	p.Rebind(keybind.ActionSave)
	if _, ok := p.listener.Listening(); ok {
		t.Fatalf("rebind without an open panel must be ignored")
	}

	p.Open(v)
	if !p.IsOpen() || len(v.rows) != 1 || len(v.rows[0]) != len(keybind.Actions()) {
		t.Fatalf("open should list all actions: %v", v.rows)
	}
	p.Rebind(keybind.ActionSave)
	last := v.rows[len(v.rows)-1]
	if !last[0].Listening || last[0].Name != "save" {
		t.Fatalf("save row should be listening: %+v", last[0])
	}

	rest := p.Filter([]keybind.KeyEvent{press(keybind.KeyCtrl), press("q"), press("w")})
	if len(rest) != 2 || rest[0].Key != keybind.KeyCtrl || rest[1].Key != "w" {
		t.Fatalf("only the first non-modifier press is consumed: %+v", rest)
	}
	if b.Resolve(keybind.ActionSave) != "q" {
		t.Fatalf("save should be rebound to q, got %q", b.Resolve(keybind.ActionSave))
	}
	last = v.rows[len(v.rows)-1]
	if last[0].Key != "Q" || last[0].Listening {
		t.Fatalf("row should show Q and stop listening: %+v", last[0])
	}
}

func TestSettingsPresenter_ConflictConsumedSilently(t *testing.T) {
	b := keybind.Default()
	p := NewSettingsPresenter(nil, b)
	p.Open(&mockSettingsView{})
	p.Rebind(keybind.ActionSave)
	if rest := p.Filter([]keybind.KeyEvent{press("x")}); len(rest) != 0 {
		t.Fatalf("conflicting key should still be consumed")
	}
	if b.Resolve(keybind.ActionSave) != "s" || b.Resolve(keybind.ActionCrop) != "x" {
		t.Fatalf("bindings must be unchanged on conflict")
	}
	if _, ok := p.listener.Listening(); ok {
		t.Fatalf("listening must end after one key")
	}
}

func TestSettingsPresenter_CloseStopsListening(t *testing.T) {
	p := NewSettingsPresenter(nil, keybind.Default())
	p.Open(&mockSettingsView{})
	p.Rebind(keybind.ActionNew)
	p.Close()
	if p.IsOpen() {
		t.Fatalf("panel should be closed")
	}
	if rest := p.Filter([]keybind.KeyEvent{press("q")}); len(rest) != 1 {
		t.Fatalf("closed panel must not consume keys")
	}
}

func TestLoop_StopsSchedulingAfterFatal(t *testing.T) {
	p, sess, _, _ := newSessionFixture()
	scheduled := 0
	phaseView := &mockPhaseView{}
	l := NewLoop(p, NewPhasePresenter(phaseView), nil, nil, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 || len(phaseView.shown) != 1 {
		t.Fatalf("expected one scheduled frame, got %d", scheduled)
	}
	sess.err = errors.New("fatal")
	l.Tick()
	l.Tick()
	if scheduled != 1 {
		t.Fatalf("no frame may be scheduled after a fatal error, got %d", scheduled)
	}

	var nilLoop *Loop
	nilLoop.Tick()
}
