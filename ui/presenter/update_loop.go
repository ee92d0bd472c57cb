package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It runs the session frame first so the other presenters see the scene of
// the current frame, then invokes the scheduler callback. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Phase    *PhasePresenter
	Status   *StatusPresenter
	Notice   *NoticePresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, phase *PhasePresenter, status *StatusPresenter, notice *NoticePresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Phase: phase, Status: status, Notice: notice, Schedule: schedule}
}

// Tick runs one frame. Nothing is scheduled after a fatal session error.
func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Session != nil && !l.Session.Tick(now) {
		return
	}
	if l.Phase != nil {
		l.Phase.Tick(now)
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Notice != nil {
		l.Notice.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
