package view

import (
	"fmt"

	"github.com/soocke/snapcrop-go/ui/model"
	"github.com/soocke/snapcrop-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the phase, the countdown, capture counters and the latest
// notice.
type StatusBar struct {
	phaseLbl   *TLabelWidget
	counterLbl *LabelWidget
	noticeLbl  *TLabelWidget
}

// NewStatusBar creates the labels in row of parent.
func NewStatusBar(parent *FrameWidget, row int) *StatusBar {
	s := &StatusBar{
		phaseLbl:   TLabel(Txt("idle"), Style(theme.StyleStateLabel), Width(10)),
		counterLbl: Label(Width(28), Anchor("w")),
		noticeLbl:  TLabel(Txt(""), Style(theme.StyleNoticeLabel), Anchor("w")),
	}
	Grid(s.phaseLbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.2m"))
	Grid(s.counterLbl, In(parent), Row(row), Column(1), Columnspan(3), Sticky("w"), Padx("0.2m"))
	Grid(s.noticeLbl, In(parent), Row(row), Column(4), Columnspan(7), Sticky("we"), Padx("0.2m"))
	s.counterLbl.Configure(Txt(counterText(model.Status{})))
	return s
}

// SetStatus updates the phase and counter labels.
func (s *StatusBar) SetStatus(st model.Status) {
	if s == nil || s.phaseLbl == nil {
		return
	}
	phase := st.Phase
	if st.Countdown > 0 {
		phase = fmt.Sprintf("in %02d:%02d", st.Countdown/60, st.Countdown%60)
	}
	s.phaseLbl.Configure(Txt(phase))
	s.counterLbl.Configure(Txt(counterText(st)))
}

// SetNotice shows text, styled as an error when failure is set.
func (s *StatusBar) SetNotice(text string, failure bool) {
	if s == nil || s.noticeLbl == nil {
		return
	}
	style := theme.StyleNoticeLabel
	if failure {
		style = theme.StyleFailureLabel
	}
	s.noticeLbl.Configure(Txt(text), Style(style))
}

func counterText(st model.Status) string {
	text := fmt.Sprintf("Captures: %d", st.Captures)
	if st.Failures > 0 {
		text += fmt.Sprintf(" (%d failed)", st.Failures)
	}
	if st.AvgCapture > 0 {
		text += fmt.Sprintf(" avg %v", st.AvgCapture)
	}
	return text
}
