package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SNAPCROP_DELAY_SECONDS.
const EnvPrefix = "SNAPCROP"

// Config holds runtime configuration. Values are layered: defaults, .env,
// config file, SNAPCROP_* environment, then command-line flags.
type Config struct {
	Debug    bool   `json:"debug" mapstructure:"debug"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// Capture
	DelaySeconds int    `json:"delay_seconds" mapstructure:"delay_seconds"`
	Monitor      int    `json:"monitor" mapstructure:"monitor"`
	Backend      string `json:"backend" mapstructure:"backend"`

	// Export
	SaveDir     string `json:"save_dir" mapstructure:"save_dir"`
	SaveFormat  string `json:"save_format" mapstructure:"save_format"`
	JPEGQuality int    `json:"jpeg_quality" mapstructure:"jpeg_quality"`

	// Editor
	FrameIntervalMS int               `json:"frame_interval_ms" mapstructure:"frame_interval_ms"`
	HandleInset     float64           `json:"handle_inset" mapstructure:"handle_inset"`
	MinEdge         float64           `json:"min_edge" mapstructure:"min_edge"`
	CropMargin      float64           `json:"crop_margin" mapstructure:"crop_margin"`
	NoticeSeconds   int               `json:"notice_seconds" mapstructure:"notice_seconds"`
	Keys            map[string]string `json:"keys" mapstructure:"keys"`
	Hotkey          string            `json:"hotkey" mapstructure:"hotkey"`
	Dark            bool              `json:"dark" mapstructure:"dark"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		LogLevel:        "info",
		DelaySeconds:    0,
		Monitor:         0,
		Backend:         "displays",
		SaveDir:         DefaultSaveDir(),
		SaveFormat:      "png",
		JPEGQuality:     95,
		FrameIntervalMS: 16,
		HandleInset:     5,
		MinEdge:         15,
		CropMargin:      60,
		NoticeSeconds:   4,
		Keys:            map[string]string{},
		Hotkey:          "",
		Dark:            false,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/snapcrop/config.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "snapcrop", "config.json")
}

// DefaultSaveDir is the user's pictures directory.
func DefaultSaveDir() string {
	if xdg.UserDirs.Pictures != "" {
		return xdg.UserDirs.Pictures
	}
	return xdg.Home
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.DelaySeconds < 0 {
		c.DelaySeconds = 0
	}
	if c.DelaySeconds > 60 {
		c.DelaySeconds = 60
	}
	if c.Monitor < 0 {
		c.Monitor = 0
	}
	if c.Backend != "displays" && c.Backend != "primary" {
		c.Backend = "displays"
	}
	if c.SaveDir == "" {
		c.SaveDir = DefaultSaveDir()
	}
	c.SaveFormat = strings.TrimPrefix(strings.ToLower(c.SaveFormat), ".")
	switch c.SaveFormat {
	case "png", "jpg", "gif", "bmp", "tiff":
	case "jpeg":
		c.SaveFormat = "jpg"
	default:
		c.SaveFormat = "png"
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = 95
	}
	if c.FrameIntervalMS < 5 {
		c.FrameIntervalMS = 16
	}
	if c.HandleInset <= 0 {
		c.HandleInset = 5
	}
	if c.MinEdge <= 0 {
		c.MinEdge = 15
	}
	if c.CropMargin < 0 {
		c.CropMargin = 60
	}
	if c.NoticeSeconds <= 0 {
		c.NoticeSeconds = 4
	}
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	c.Hotkey = strings.TrimSpace(c.Hotkey)
	return nil
}

// Delay is the configured capture countdown.
func (c *Config) Delay() time.Duration { return time.Duration(c.DelaySeconds) * time.Second }

// FrameInterval is the UI frame period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// NoticeDuration is how long a notification stays visible.
func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeSeconds) * time.Second
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"debug":     "debug",
	"log-level": "log_level",
	"delay":     "delay_seconds",
	"monitor":   "monitor",
	"backend":   "backend",
	"save-dir":  "save_dir",
	"format":    "save_format",
	"dark":      "dark",
}

// Load builds the configuration. path selects the config file; empty means
// DefaultPath. A missing file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	loadDotenv()

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("delay_seconds", def.DelaySeconds)
	v.SetDefault("monitor", def.Monitor)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("save_dir", def.SaveDir)
	v.SetDefault("save_format", def.SaveFormat)
	v.SetDefault("jpeg_quality", def.JPEGQuality)
	v.SetDefault("frame_interval_ms", def.FrameIntervalMS)
	v.SetDefault("handle_inset", def.HandleInset)
	v.SetDefault("min_edge", def.MinEdge)
	v.SetDefault("crop_margin", def.CropMargin)
	v.SetDefault("notice_seconds", def.NoticeSeconds)
	v.SetDefault("keys", def.Keys)
	v.SetDefault("hotkey", def.Hotkey)
	v.SetDefault("dark", def.Dark)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return DefaultConfig(), err
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// loadDotenv loads .env from the working directory and then from beside the
// executable. Variables already set in the environment win.
func loadDotenv() {
	paths := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// WriteJSON writes the configuration in JSON format.
func (c *Config) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
