package keybind

// Listener is the rebind state of the settings panel. At most one action
// listens at a time; the next non-modifier key press ends listening and is
// applied to that action unless another action already owns the key.
type Listener struct {
	bindings  *Bindings
	action    Action
	listening bool
}

// NewListener returns an idle listener over b.
func NewListener(b *Bindings) *Listener {
	return &Listener{bindings: b}
}

// Listen makes a the listening action, replacing any previous listener.
func (l *Listener) Listen(a Action) {
	l.action = a
	l.listening = true
}

// Listening returns the listening action, if any.
func (l *Listener) Listening() (Action, bool) {
	return l.action, l.listening
}

// Stop ends listening without changing any binding.
func (l *Listener) Stop() { l.listening = false }

// Offer feeds one key event. It reports whether the event was consumed and
// whether a binding changed. Conflicts are dropped without error.
func (l *Listener) Offer(ev KeyEvent) (consumed, applied bool) {
	if !l.listening || !ev.Pressed || ev.Repeat || ev.Key.IsModifier() || ev.Key == "" {
		return false, false
	}
	l.listening = false
	if l.bindings.IsAssigned(ev.Key) {
		return true, false
	}
	return true, l.bindings.Rebind(l.action, ev.Key) == nil
}
