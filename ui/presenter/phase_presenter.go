package presenter

import (
	"time"

	"github.com/soocke/snapcrop-go/domain/session"
)

// PhaseView switches the controls offered for a phase.
type PhaseView interface{ SetPhase(session.Phase) }

// PhasePresenter receives phase transitions from the session listener and
// reflects the latest one in the view on the next tick.
type PhasePresenter struct {
	view    PhaseView
	latest  session.Phase
	shown   bool
	pending []session.Phase
}

func NewPhasePresenter(view PhaseView) *PhasePresenter {
	return &PhasePresenter{view: view}
}

// OnPhase queues a transition. It has the session.PhaseListener signature.
func (p *PhasePresenter) OnPhase(prev, next session.Phase) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick shows the most recent queued phase and clears the queue. The initial
// phase is shown on the first tick.
func (p *PhasePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	next := p.latest
	if len(p.pending) > 0 {
		next = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	if p.shown && next == p.latest {
		return
	}
	p.latest = next
	p.shown = true
	p.view.SetPhase(next)
}
