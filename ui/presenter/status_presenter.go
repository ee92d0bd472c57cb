package presenter

import (
	"time"

	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/model"
)

// StatsSource reports capture counters.
type StatsSource interface{ Stats() capture.Stats }

// SceneSource returns the scene of the last frame.
type SceneSource interface{ Scene() session.Scene }

// StatusView displays the status bar.
type StatusView interface{ SetStatus(model.Status) }

// StatusPresenter feeds the status model from the last scene and the capture
// counters and pushes changed values to the view.
type StatusPresenter struct {
	status *model.StatusModel
	scenes SceneSource
	stats  StatsSource
	view   StatusView
}

// NewStatusPresenter returns a new StatusPresenter. stats may be nil.
func NewStatusPresenter(status *model.StatusModel, scenes SceneSource, stats StatsSource, view StatusView) *StatusPresenter {
	return &StatusPresenter{status: status, scenes: scenes, stats: stats, view: view}
}

// Tick updates the model and the view.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.status == nil || p.scenes == nil || p.view == nil {
		return
	}
	sc := p.scenes.Scene()
	s := model.Status{Phase: sc.Phase.String()}
	if sc.Counting {
		s.Countdown = int((sc.Remaining + time.Second - 1) / time.Second)
	}
	if p.stats != nil {
		st := p.stats.Stats()
		s.Captures = st.Captures
		s.Failures = st.Failures
		s.AvgCapture = st.AvgCapture
	}
	p.status.OnTick(s)
	if cur, changed := p.status.Take(); changed {
		p.view.SetStatus(cur)
	}
}
