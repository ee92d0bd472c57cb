package model

import (
	"log/slog"
	"time"
)

// DefaultNoticeTTL is how long a notice stays visible when no TTL is given.
const DefaultNoticeTTL = 4 * time.Second

// Notice is one user-facing message.
type Notice struct {
	Text    string
	Failure bool
	At      time.Time
}

// NoticeModel keeps the latest non-fatal notification until it expires.
// No synchronization needed: notices are raised and read on the UI thread.
type NoticeModel struct {
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time
	latest Notice
	count  uint64
}

// NewNoticeModel returns a model whose notices expire after ttl.
func NewNoticeModel(logger *slog.Logger, ttl time.Duration) *NoticeModel {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeModel{logger: logger, ttl: ttl, now: time.Now}
}

// Notify shows an informational message.
func (m *NoticeModel) Notify(msg string) {
	if m == nil {
		return
	}
	if m.logger != nil {
		m.logger.Info("notice", "msg", msg)
	}
	m.set(Notice{Text: msg})
}

// Fail shows an error message. err is appended when present.
func (m *NoticeModel) Fail(msg string, err error) {
	if m == nil {
		return
	}
	text := msg
	if err != nil {
		text = msg + ": " + err.Error()
	}
	if m.logger != nil {
		m.logger.Warn("notice", "msg", msg, "error", err)
	}
	m.set(Notice{Text: text, Failure: true})
}

func (m *NoticeModel) set(n Notice) {
	n.At = m.now()
	m.latest = n
	m.count++
}

// Current returns the latest notice if it has not expired at now.
func (m *NoticeModel) Current(now time.Time) (Notice, bool) {
	if m == nil || m.count == 0 {
		return Notice{}, false
	}
	if now.Sub(m.latest.At) >= m.ttl {
		return Notice{}, false
	}
	return m.latest, true
}

// Count is the number of notices raised so far. It changes whenever a new
// notice replaces the current one, even with identical text.
func (m *NoticeModel) Count() uint64 {
	if m == nil {
		return 0
	}
	return m.count
}
