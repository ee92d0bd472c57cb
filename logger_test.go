package main

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name  string
		debug bool
		want  slog.Level
	}{
		{"debug", false, slog.LevelDebug},
		{" WARN ", false, slog.LevelWarn},
		{"warning", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"info", false, slog.LevelInfo},
		{"bogus", false, slog.LevelInfo},
		{"error", true, slog.LevelDebug},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseLevel(tc.name, tc.debug); got != tc.want {
				t.Fatalf("ParseLevel(%q, %v) = %v, want %v", tc.name, tc.debug, got, tc.want)
			}
		})
	}
}
