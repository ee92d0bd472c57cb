package capture

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

// Stats summarises capture behaviour for instrumentation.
type Stats struct {
	Captures    uint64
	Failures    uint64
	AvgCapture  time.Duration
	LastCapture time.Time
	Sequence    uint64
}

// CaptureService grabs single monitors on demand and records timing. Use
// NewCaptureService to construct an instance.
type CaptureService interface {
	Monitor(id int) (geometry.MonitorFrame, error)
	Capture(id int) (*Buffer, error)
	Stats() Stats
}

type captureService struct {
	backend      Backend
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	last         atomic.Int64
}

// NewCaptureService constructs a capture service on top of backend.
func NewCaptureService(logger *slog.Logger, backend Backend) CaptureService {
	return &captureService{backend: backend, logger: logger}
}

// Monitor resolves a monitor by index. Enumeration runs on every call so
// hot-plugged displays are picked up; an out-of-range index falls back to
// the first monitor.
func (s *captureService) Monitor(id int) (geometry.MonitorFrame, error) {
	monitors, err := s.backend.Monitors()
	if err != nil {
		return geometry.MonitorFrame{}, err
	}
	if len(monitors) == 0 {
		return geometry.MonitorFrame{}, ErrNoMonitors
	}
	if id < 0 || id >= len(monitors) {
		if s.logger != nil {
			s.logger.Warn("capture.monitor out of range", "monitor", id, "available", len(monitors))
		}
		id = 0
	}
	return monitors[id], nil
}

func (s *captureService) Capture(id int) (*Buffer, error) {
	m, err := s.Monitor(id)
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	start := time.Now()
	img, err := s.backend.Grab(m)
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("capture.grab", "backend", s.backend.Name(), "monitor", m.ID, "error", err)
		}
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		s.failures.Add(1)
		return nil, fmt.Errorf("%w: empty image from %s", ErrCaptureFailed, s.backend.Name())
	}
	buf := &Buffer{
		ID:         uuid.New(),
		Sequence:   s.sequence.Add(1),
		Image:      pooledCopy(img),
		Monitor:    m,
		CapturedAt: time.Now(),
	}
	elapsed := time.Since(start)
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	s.last.Store(buf.CapturedAt.UnixNano())
	if s.logger != nil {
		s.logger.Debug("capture.done",
			"id", buf.ShortID(),
			"monitor", m.ID,
			"width", buf.Image.Bounds().Dx(),
			"height", buf.Image.Bounds().Dy(),
			"elapsed", elapsed,
		)
	}
	return buf, nil
}

func (s *captureService) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	if ns := s.last.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return Stats{
		Captures:    captures,
		Failures:    s.failures.Load(),
		AvgCapture:  avg,
		LastCapture: last,
		Sequence:    s.sequence.Load(),
	}
}
