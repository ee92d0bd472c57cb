package model

import (
	"time"
)

// Status is the content of the status bar.
type Status struct {
	Phase      string
	Countdown  int // whole seconds left, 0 when no countdown runs
	Captures   uint64
	Failures   uint64
	AvgCapture time.Duration
}

// StatusModel tracks the status bar values and whether they changed since
// they were last shown. The zero value is ready to use.
type StatusModel struct {
	cur     Status
	shown   bool
	changed bool
}

// NewStatusModel returns a pointer to a ready-to-use StatusModel.
func NewStatusModel() *StatusModel { return &StatusModel{} }

// OnTick records the latest values. Call once per frame.
func (m *StatusModel) OnTick(s Status) {
	if m == nil {
		return
	}
	// average capture time is shown in milliseconds
	s.AvgCapture = s.AvgCapture.Round(time.Millisecond)
	if !m.shown || s != m.cur {
		m.cur = s
		m.changed = true
	}
}

// Take returns the current values and whether they changed since the last
// Take.
func (m *StatusModel) Take() (Status, bool) {
	if m == nil {
		return Status{}, false
	}
	changed := m.changed
	m.changed = false
	m.shown = true
	return m.cur, changed
}
