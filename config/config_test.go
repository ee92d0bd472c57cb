package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{DelaySeconds: 90, Backend: "gdi", SaveFormat: ".JPEG", JPEGQuality: 300, LogLevel: "LOUD", CropMargin: -1}
	require.NoError(t, c.Validate())
	assert.Equal(t, 60, c.DelaySeconds)
	assert.Equal(t, "displays", c.Backend)
	assert.Equal(t, "jpg", c.SaveFormat)
	assert.Equal(t, 95, c.JPEGQuality)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 60.0, c.CropMargin)
	assert.Equal(t, 15.0, c.MinEdge)
	assert.Equal(t, 5.0, c.HandleInset)
	assert.NotNil(t, c.Keys)

	c.DelaySeconds = -3
	_ = c.Validate()
	assert.Equal(t, 0, c.DelaySeconds)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.SaveFormat)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval())
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"delay_seconds": 5,
		"save_format": "gif",
		"monitor": 1,
		"keys": {"save": "q"},
		"hotkey": "Ctrl+Shift+N"
	}`)
	t.Setenv("SNAPCROP_SAVE_FORMAT", "bmp")
	t.Setenv("SNAPCROP_NOTICE_SECONDS", "9")
	t.Setenv("SNAPCROP_DARK", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("delay", 0, "")
	flags.String("backend", "displays", "")
	require.NoError(t, flags.Parse([]string{"--delay=7"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.DelaySeconds, "flag beats file")
	assert.Equal(t, 7*time.Second, cfg.Delay())
	assert.Equal(t, "bmp", cfg.SaveFormat, "env beats file")
	assert.Equal(t, 9, cfg.NoticeSeconds)
	assert.Equal(t, 1, cfg.Monitor)
	assert.Equal(t, "displays", cfg.Backend, "unset flag keeps default")
	assert.Equal(t, "q", cfg.Keys["save"])
	assert.Equal(t, "Ctrl+Shift+N", cfg.Hotkey)
	assert.True(t, cfg.Dark)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "backend: primary\nmin_edge: 20\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Backend)
	assert.Equal(t, 20.0, cfg.MinEdge)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeFile(t, "config.json", "{not json")
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig().SaveFormat, cfg.SaveFormat)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultConfig().WriteJSON(&buf))
	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "png", back["save_format"])
	assert.EqualValues(t, 15, back["min_edge"])
}
