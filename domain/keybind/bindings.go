// Package keybind holds the action to key mapping for editor shortcuts and the
// single-listener rebind flow used by the settings panel.
package keybind

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrConflict is returned when a key is already bound to another action.
var ErrConflict = errors.New("keybind: key already assigned")

// Action is an editor command that can be triggered by a shortcut.
type Action int

const (
	ActionSave Action = iota
	ActionCancel
	ActionNew
	ActionCrop
	ActionFullscreen
	ActionClipboard
)

var actionNames = [...]string{"save", "cancel", "new", "crop", "fullscreen", "clipboard"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions lists every bindable action in display order.
func Actions() []Action {
	return []Action{ActionSave, ActionCancel, ActionNew, ActionCrop, ActionFullscreen, ActionClipboard}
}

// ParseAction resolves an action by its config name.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("keybind: unknown action %q", s)
}

// Bindings maps each action to exactly one key. No two actions share a key.
type Bindings struct {
	mu   sync.RWMutex
	keys map[Action]Key
}

// Default returns the stock bindings: S save, Z cancel, N new, X crop,
// F fullscreen, C clipboard.
func Default() *Bindings {
	return &Bindings{keys: map[Action]Key{
		ActionSave:       "s",
		ActionCancel:     "z",
		ActionNew:        "n",
		ActionCrop:       "x",
		ActionFullscreen: "f",
		ActionClipboard:  "c",
	}}
}

// FromConfig starts from Default and applies overrides keyed by action name.
// Conflicts are checked on the final mapping, so a config may swap two keys;
// two actions ending up on the same key fail with ErrConflict.
func FromConfig(overrides map[string]string) (*Bindings, error) {
	b := Default()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		k, err := ParseKey(overrides[name])
		if err != nil {
			return nil, err
		}
		b.keys[a] = k
	}
	owner := make(map[Key]Action, len(b.keys))
	for _, a := range Actions() {
		k := b.keys[a]
		if prev, ok := owner[k]; ok {
			return nil, fmt.Errorf("bind %s to %s, already used by %s: %w", a, k, prev, ErrConflict)
		}
		owner[k] = a
	}
	return b, nil
}

// Resolve returns the key bound to a.
func (b *Bindings) Resolve(a Action) Key {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.keys[a]
}

// IsAssigned reports whether any action is bound to k.
func (b *Bindings) IsAssigned(k Key) bool {
	_, ok := b.ActionFor(k)
	return ok
}

// ActionFor returns the action bound to k.
func (b *Bindings) ActionFor(k Key) (Action, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range Actions() {
		if b.keys[a] == k {
			return a, true
		}
	}
	return 0, false
}

// Rebind binds a to k. Rebinding an action to its current key is a no-op.
// Modifier keys and keys owned by another action are rejected and the
// previous binding is kept.
func (b *Bindings) Rebind(a Action, k Key) error {
	if k == "" || k.IsModifier() {
		return fmt.Errorf("%w: %q cannot be bound", ErrUnknownKey, string(k))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for other, bound := range b.keys {
		if bound == k && other != a {
			return fmt.Errorf("%w: %s is used by %s", ErrConflict, k.Label(), other)
		}
	}
	b.keys[a] = k
	return nil
}

// Snapshot copies the current bindings.
func (b *Bindings) Snapshot() map[Action]Key {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[Action]Key, len(b.keys))
	for a, k := range b.keys {
		out[a] = k
	}
	return out
}

// Triggered reports whether ev is the shortcut for a: Ctrl held with the bound
// key, a fresh press and not an auto-repeat.
func (b *Bindings) Triggered(a Action, ev KeyEvent) bool {
	k := b.Resolve(a)
	return k != "" && ev.Pressed && !ev.Repeat && ev.Mods.Has(ModCtrl) && ev.Key == k
}
