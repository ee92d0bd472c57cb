//go:build !windows

package app

import "log/slog"

// enableDPIAwareness is a no-op; X11, Wayland and macOS report physical
// pixels to the capture backends already.
func enableDPIAwareness(*slog.Logger) {}
