package presenter

import (
	"time"

	"github.com/soocke/snapcrop-go/ui/model"
)

// NoticeView shows or clears the notice line.
type NoticeView interface {
	SetNotice(text string, failure bool)
}

// NoticePresenter mirrors the current notice into the view, clearing it once
// it expires.
type NoticePresenter struct {
	notices *model.NoticeModel
	view    NoticeView
	count   uint64
	visible bool
}

func NewNoticePresenter(notices *model.NoticeModel, view NoticeView) *NoticePresenter {
	return &NoticePresenter{notices: notices, view: view}
}

// Tick updates the view when a new notice arrives or the shown one expires.
func (p *NoticePresenter) Tick(now time.Time) {
	if p == nil || p.notices == nil || p.view == nil {
		return
	}
	n, ok := p.notices.Current(now)
	switch {
	case ok && p.notices.Count() != p.count:
		p.count = p.notices.Count()
		p.visible = true
		p.view.SetNotice(n.Text, n.Failure)
	case !ok && p.visible:
		p.visible = false
		p.view.SetNotice("", false)
	}
}
