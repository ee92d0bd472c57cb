package keybind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	b := Default()
	want := map[Action]Key{
		ActionSave: "s", ActionCancel: "z", ActionNew: "n",
		ActionCrop: "x", ActionFullscreen: "f", ActionClipboard: "c",
	}
	assert.Equal(t, want, b.Snapshot())
}

func TestIsAssigned_CoversEveryAction(t *testing.T) {
	b := Default()
	for _, a := range Actions() {
		assert.True(t, b.IsAssigned(b.Resolve(a)), "action %s", a)
	}
	assert.False(t, b.IsAssigned("q"))
}

func TestRebind_SaveToCropKeyRejected(t *testing.T) {
	b := Default()
	err := b.Rebind(ActionSave, b.Resolve(ActionCrop))
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, Key("s"), b.Resolve(ActionSave))
	assert.Equal(t, Key("x"), b.Resolve(ActionCrop))
}

func TestRebind(t *testing.T) {
	b := Default()
	require.NoError(t, b.Rebind(ActionSave, "q"))
	assert.Equal(t, Key("q"), b.Resolve(ActionSave))
	assert.False(t, b.IsAssigned("s"))

	require.NoError(t, b.Rebind(ActionSave, "q"), "own key is a no-op")
	assert.ErrorIs(t, b.Rebind(ActionSave, KeyCtrl), ErrUnknownKey)
}

func TestFromConfig(t *testing.T) {
	b, err := FromConfig(map[string]string{"save": "F5", "Clipboard": "y"})
	require.NoError(t, err)
	assert.Equal(t, Key("f5"), b.Resolve(ActionSave))
	assert.Equal(t, Key("y"), b.Resolve(ActionClipboard))

	_, err = FromConfig(map[string]string{"save": "x"})
	assert.ErrorIs(t, err, ErrConflict)

	b, err = FromConfig(map[string]string{"save": "z", "cancel": "s"})
	require.NoError(t, err, "swapping two keys leaves no conflict")
	assert.Equal(t, Key("z"), b.Resolve(ActionSave))
	assert.Equal(t, Key("s"), b.Resolve(ActionCancel))

	_, err = FromConfig(map[string]string{"paste": "v"})
	assert.Error(t, err)

	_, err = FromConfig(map[string]string{"save": "f99"})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestTriggered(t *testing.T) {
	b := Default()
	tests := []struct {
		name string
		ev   KeyEvent
		want bool
	}{
		{"ctrl+s", KeyEvent{Key: "s", Pressed: true, Mods: ModCtrl}, true},
		{"ctrl+shift+s", KeyEvent{Key: "s", Pressed: true, Mods: ModCtrl | ModShift}, true},
		{"plain s", KeyEvent{Key: "s", Pressed: true}, false},
		{"repeat", KeyEvent{Key: "s", Pressed: true, Repeat: true, Mods: ModCtrl}, false},
		{"release", KeyEvent{Key: "s", Mods: ModCtrl}, false},
		{"other key", KeyEvent{Key: "x", Pressed: true, Mods: ModCtrl}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Triggered(ActionSave, tt.ev))
		})
	}
}

func TestListener(t *testing.T) {
	b := Default()
	l := NewListener(b)

	consumed, applied := l.Offer(KeyEvent{Key: "q", Pressed: true})
	assert.False(t, consumed, "idle listener ignores keys")
	assert.False(t, applied)

	l.Listen(ActionCrop)
	consumed, _ = l.Offer(KeyEvent{Key: KeyShift, Pressed: true})
	assert.False(t, consumed, "modifiers keep listening")
	_, listening := l.Listening()
	assert.True(t, listening)

	consumed, applied = l.Offer(KeyEvent{Key: "q", Pressed: true})
	assert.True(t, consumed)
	assert.True(t, applied)
	assert.Equal(t, Key("q"), b.Resolve(ActionCrop))
	_, listening = l.Listening()
	assert.False(t, listening)
}

func TestListener_ConflictIgnoredSilently(t *testing.T) {
	b := Default()
	l := NewListener(b)
	l.Listen(ActionSave)
	consumed, applied := l.Offer(KeyEvent{Key: "x", Pressed: true})
	assert.True(t, consumed)
	assert.False(t, applied)
	assert.Equal(t, Key("s"), b.Resolve(ActionSave))
	_, listening := l.Listening()
	assert.False(t, listening)
}

func TestListener_SingleListener(t *testing.T) {
	b := Default()
	l := NewListener(b)
	l.Listen(ActionSave)
	l.Listen(ActionNew)
	l.Offer(KeyEvent{Key: "m", Pressed: true})
	assert.Equal(t, Key("s"), b.Resolve(ActionSave))
	assert.Equal(t, Key("m"), b.Resolve(ActionNew))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"S", "s"}, {" 7 ", "7"}, {"F12", "f12"}, {"f24", "f24"},
		{"Esc", "escape"}, {"Return", "enter"}, {"Win", KeySuper}, {"RCtrl", KeyCtrl},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	for _, bad := range []string{"", "f0", "f25", "f01", "ab", "ü"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrUnknownKey, "input %q", bad)
	}
}

func TestParseCombo(t *testing.T) {
	c, err := ParseCombo("Ctrl+Shift+N")
	require.NoError(t, err)
	assert.Equal(t, Combo{Mods: ModCtrl | ModShift, Key: "n"}, c)
	assert.Equal(t, "Ctrl+Shift+N", c.String())
	assert.True(t, c.Matches(KeyEvent{Key: "n", Pressed: true, Mods: ModCtrl | ModShift}))
	assert.False(t, c.Matches(KeyEvent{Key: "n", Pressed: true, Mods: ModCtrl}))

	_, err = ParseCombo("Ctrl+Shift")
	assert.ErrorIs(t, err, ErrUnknownKey)
	_, err = ParseCombo("Ctrl+a+b")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "fullscreen", ActionFullscreen.String())
	a, err := ParseAction("Crop")
	require.NoError(t, err)
	assert.Equal(t, ActionCrop, a)
}
