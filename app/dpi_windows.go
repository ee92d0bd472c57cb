//go:build windows

package app

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

// processPerMonitorDPIAware is PROCESS_PER_MONITOR_DPI_AWARE.
const processPerMonitorDPIAware = 2

// enableDPIAwareness makes monitor bounds and captured pixels agree on
// scaled displays. Shcore is tried first, user32 is the fallback for systems
// without it.
func enableDPIAwareness(logger *slog.Logger) {
	shcore := windows.NewLazySystemDLL("Shcore.dll")
	if proc := shcore.NewProc("SetProcessDpiAwareness"); proc.Find() == nil {
		if hr, _, _ := proc.Call(uintptr(processPerMonitorDPIAware)); hr == 0 {
			if logger != nil {
				logger.Debug("dpi awareness enabled", "mode", "per-monitor")
			}
			return
		}
	}
	user32 := windows.NewLazySystemDLL("user32.dll")
	if proc := user32.NewProc("SetProcessDPIAware"); proc.Find() == nil {
		if ok, _, _ := proc.Call(); ok != 0 {
			if logger != nil {
				logger.Debug("dpi awareness enabled", "mode", "system")
			}
			return
		}
	}
	if logger != nil {
		logger.Warn("dpi awareness unavailable")
	}
}
