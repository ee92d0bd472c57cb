package view

import (
	"log/slog"

	"github.com/soocke/snapcrop-go/domain/keybind"
	"github.com/soocke/snapcrop-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPresenter is what the panel needs from the rebind presenter.
type SettingsPresenter interface {
	Open(v presenter.SettingsView)
	Close()
	IsOpen() bool
	Rebind(a keybind.Action)
	Rows() []presenter.BindingRow
}

// SettingsPanel is the key binding window: one row per action with its key
// and a Rebind button. Only one instance is open at a time.
type SettingsPanel struct {
	logger *slog.Logger
	pres   SettingsPresenter
	win    *ToplevelWidget
	keys   map[keybind.Action]*LabelWidget
	btns   map[keybind.Action]*ButtonWidget
	onOpen func(bool)
}

// NewSettingsPanel returns a closed panel. onOpen is told when the window
// opens or closes and may be nil.
func NewSettingsPanel(pres SettingsPresenter, logger *slog.Logger, onOpen func(bool)) *SettingsPanel {
	return &SettingsPanel{pres: pres, logger: logger, onOpen: onOpen}
}

// OpenOrFocus shows the panel, or raises it when already open.
func (v *SettingsPanel) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Key bindings")
	v.win = win
	v.keys = make(map[keybind.Action]*LabelWidget)
	v.btns = make(map[keybind.Action]*ButtonWidget)
	WmAttributes(win.Window, "-topmost", 1)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.Close)
	GridColumnConfigure(win.Window, 1, Weight(1))

	row := 0
	hdr := win.Label(Txt("Shortcuts fire with Ctrl held."), Anchor("w"))
	Grid(hdr, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++
	for _, r := range v.pres.Rows() {
		a := r.Action
		name := win.Label(Txt(r.Name), Anchor("w"), Width(12))
		Grid(name, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		key := win.Label(Txt(r.Key), Anchor("w"), Width(10), Borderwidth(1), Relief("sunken"))
		Grid(key, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		btn := win.Button(Txt("Rebind"), Command(func() { v.pres.Rebind(a) }))
		Grid(btn, Row(row), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.keys[a], v.btns[a] = key, btn
		row++
	}
	closeBtn := win.Button(Txt("Close"), Command(v.Close))
	Grid(closeBtn, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	v.pres.Open(v)
	if v.onOpen != nil {
		v.onOpen(true)
	}
	if v.logger != nil {
		v.logger.Debug("settings opened")
	}
}

// Close destroys the window and abandons a pending rebind.
func (v *SettingsPanel) Close() {
	if v.win == nil {
		return
	}
	v.pres.Close()
	Destroy(v.win)
	v.win = nil
	v.keys, v.btns = nil, nil
	if v.onOpen != nil {
		v.onOpen(false)
	}
}

// ShowBindings implements presenter.SettingsView.
func (v *SettingsPanel) ShowBindings(rows []presenter.BindingRow) {
	if v.win == nil {
		return
	}
	for _, r := range rows {
		lbl, btn := v.keys[r.Action], v.btns[r.Action]
		if lbl == nil || btn == nil {
			continue
		}
		if r.Listening {
			lbl.Configure(Txt("press a key"))
			btn.Configure(State("disabled"))
			continue
		}
		lbl.Configure(Txt(r.Key))
		btn.Configure(State("normal"))
	}
}
