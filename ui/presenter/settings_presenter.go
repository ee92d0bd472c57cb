package presenter

import (
	"log/slog"

	"github.com/soocke/snapcrop-go/domain/keybind"
)

// BindingRow is one line of the settings panel.
type BindingRow struct {
	Action    keybind.Action
	Name      string
	Key       string
	Listening bool
}

// SettingsView lists the bindings. It exists only while the panel is open.
type SettingsView interface {
	ShowBindings(rows []BindingRow)
}

// SettingsPresenter owns the rebind flow of the settings panel. While an
// action listens, it consumes key presses before the session sees them.
type SettingsPresenter struct {
	logger   *slog.Logger
	bindings *keybind.Bindings
	listener *keybind.Listener
	view     SettingsView
}

func NewSettingsPresenter(logger *slog.Logger, bindings *keybind.Bindings) *SettingsPresenter {
	return &SettingsPresenter{logger: logger, bindings: bindings, listener: keybind.NewListener(bindings)}
}

// Open attaches the panel view and shows the current bindings. Idempotent.
func (p *SettingsPresenter) Open(v SettingsView) {
	if p == nil {
		return
	}
	p.view = v
	p.refresh()
}

// Close detaches the view and abandons a pending rebind.
func (p *SettingsPresenter) Close() {
	if p == nil {
		return
	}
	p.listener.Stop()
	p.view = nil
}

// IsOpen reports whether the panel is shown.
func (p *SettingsPresenter) IsOpen() bool { return p != nil && p.view != nil }

// Rebind makes a the single listening action.
func (p *SettingsPresenter) Rebind(a keybind.Action) {
	if p == nil || p.view == nil {
		return
	}
	p.listener.Listen(a)
	p.refresh()
}

// Filter offers each key to the listener and drops the consumed ones.
func (p *SettingsPresenter) Filter(keys []keybind.KeyEvent) []keybind.KeyEvent {
	if p == nil {
		return keys
	}
	if _, listening := p.listener.Listening(); !listening {
		return keys
	}
	out := keys[:0:0]
	for _, ev := range keys {
		a, _ := p.listener.Listening()
		consumed, applied := p.listener.Offer(ev)
		if !consumed {
			out = append(out, ev)
			continue
		}
		if p.logger != nil {
			if applied {
				p.logger.Info("key rebound", "action", a.String(), "key", string(ev.Key))
			} else {
				p.logger.Debug("rebind ignored, key in use", "action", a.String(), "key", string(ev.Key))
			}
		}
		p.refresh()
	}
	return out
}

// Rows returns the panel content.
func (p *SettingsPresenter) Rows() []BindingRow {
	if p == nil {
		return nil
	}
	keys := p.bindings.Snapshot()
	listening, ok := p.listener.Listening()
	rows := make([]BindingRow, 0, len(keys))
	for _, a := range keybind.Actions() {
		rows = append(rows, BindingRow{
			Action:    a,
			Name:      a.String(),
			Key:       keys[a].Label(),
			Listening: ok && listening == a,
		})
	}
	return rows
}

func (p *SettingsPresenter) refresh() {
	if p.view != nil {
		p.view.ShowBindings(p.Rows())
	}
}
