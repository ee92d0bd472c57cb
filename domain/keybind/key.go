package keybind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a key name cannot be parsed.
var ErrUnknownKey = errors.New("keybind: unknown key")

// Key is a normalized, lowercase key name such as "s", "f5" or "space".
type Key string

// Modifier keys. They can be part of a Combo but never bound to an action.
const (
	KeyCtrl  Key = "ctrl"
	KeyShift Key = "shift"
	KeyAlt   Key = "alt"
	KeySuper Key = "super"
)

var aliases = map[string]Key{
	"control": KeyCtrl, "lctrl": KeyCtrl, "rctrl": KeyCtrl,
	"lshift": KeyShift, "rshift": KeyShift,
	"option": KeyAlt, "lalt": KeyAlt, "ralt": KeyAlt,
	"win": KeySuper, "cmd": KeySuper, "command": KeySuper, "meta": KeySuper,
	"lcmd": KeySuper, "rcmd": KeySuper,
	"esc": "escape", "return": "enter", "del": "delete", "ins": "insert",
	"pgup": "pageup", "pgdn": "pagedown",
	"arrowleft": "left", "arrowright": "right", "arrowup": "up", "arrowdown": "down",
}

var named = map[Key]bool{
	KeyCtrl: true, KeyShift: true, KeyAlt: true, KeySuper: true,
	"space": true, "enter": true, "escape": true, "tab": true, "backspace": true,
	"delete": true, "insert": true, "home": true, "end": true,
	"pageup": true, "pagedown": true,
	"left": true, "right": true, "up": true, "down": true,
}

// ParseKey normalizes a key name. Letters, digits, F1-F24 and the common
// named keys are accepted; anything else yields ErrUnknownKey.
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	k := Key(name)
	switch {
	case named[k]:
		return k, nil
	case len(name) == 1 && (name[0] >= 'a' && name[0] <= 'z' || name[0] >= '0' && name[0] <= '9'):
		return k, nil
	case isFunctionKey(name):
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || name[0] != 'f' {
		return false
	}
	n := 0
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= 1 && n <= 24 && name[1] != '0'
}

// IsModifier reports whether k is Ctrl, Shift, Alt or Super.
func (k Key) IsModifier() bool {
	switch k {
	case KeyCtrl, KeyShift, KeyAlt, KeySuper:
		return true
	}
	return false
}

// Label is the key as shown in the settings panel.
func (k Key) Label() string {
	if k == "" {
		return ""
	}
	if len(k) == 1 {
		return strings.ToUpper(string(k))
	}
	if isFunctionKey(string(k)) {
		return strings.ToUpper(string(k))
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m is set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// ModifierOf maps a modifier key to its bit. Non-modifiers map to zero.
func ModifierOf(k Key) Modifiers {
	switch k {
	case KeyCtrl:
		return ModCtrl
	case KeyShift:
		return ModShift
	case KeyAlt:
		return ModAlt
	case KeySuper:
		return ModSuper
	}
	return 0
}

// Combo is a key plus the modifiers that must be held with it.
type Combo struct {
	Mods Modifiers
	Key  Key
}

// ParseCombo parses strings like "Ctrl+Shift+N". Exactly one non-modifier key
// is required.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	for _, part := range strings.Split(s, "+") {
		k, err := ParseKey(part)
		if err != nil {
			return Combo{}, err
		}
		if k.IsModifier() {
			c.Mods |= ModifierOf(k)
			continue
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("%w: %q has more than one key", ErrUnknownKey, s)
		}
		c.Key = k
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key", ErrUnknownKey, s)
	}
	return c, nil
}

func (c Combo) String() string {
	var parts []string
	for _, m := range []struct {
		bit  Modifiers
		name string
	}{{ModCtrl, "Ctrl"}, {ModShift, "Shift"}, {ModAlt, "Alt"}, {ModSuper, "Super"}} {
		if c.Mods.Has(m.bit) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, c.Key.Label()), "+")
}

// Matches reports whether ev is a fresh press of the combo with exactly its
// modifiers held.
func (c Combo) Matches(ev KeyEvent) bool {
	return ev.Pressed && !ev.Repeat && ev.Key == c.Key && ev.Mods == c.Mods
}

// KeyEvent is one key transition from the input surface.
type KeyEvent struct {
	Key     Key
	Pressed bool
	Repeat  bool
	Mods    Modifiers
}
