package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/snapcrop-go/config"
	"github.com/soocke/snapcrop-go/debug"
	"github.com/soocke/snapcrop-go/ui/theme"
)

type app struct {
	config    *config.Config
	logger    *slog.Logger
	container *AppContainer
	width     int
	height    int
	frame     time.Duration
	afterID   string
	closed    bool
}

// NewApp builds the container and sizes the main window. The window is not
// shown until Start.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) (*app, error) {
	enableDPIAwareness(logger)
	c, err := BuildContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &app{
		config:    cfg,
		logger:    logger,
		container: c,
		width:     width,
		height:    height,
		frame:     cfg.FrameInterval(),
	}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the UI, starts the input hook and the frame loop, and blocks
// in the Tk event loop until the window is destroyed.
func (a *app) Start() {
	if a.config.Debug {
		debug.StartGoroutineLogger(10*time.Second, a.logger)
		debug.StartMemLogger(10*time.Second, a.logger)
	}
	theme.InitStyles(a.config.Dark)

	c := a.container
	c.RootView.Build(c.Handlers(a.exitHandler), c.SessionPresenter.DelaySeconds())
	c.SessionPresenter.OnFatal(a.fatal)
	c.Loop.Schedule = a.scheduleUpdate
	c.Input.Start()

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	defer func() {
		if r := recover(); r != nil {
			if a.logger != nil {
				a.logger.Error("frame panic", "panic", r)
			}
			a.scheduleUpdate()
		}
	}()
	a.container.Loop.Tick()
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// TclAfter keeps every frame on Tk's event loop thread.
	a.afterID = TclAfter(a.frame, func() { a.update() })
}

// fatal ends the application after a session error it cannot recover from.
func (a *app) fatal(err error) {
	if a.logger != nil {
		a.logger.Error("fatal session error", "error", err)
	}
	a.exitHandler()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if err := a.container.Close(); err != nil && a.logger != nil {
		a.logger.Warn("shutdown errors", "error", err)
	}
	Destroy(App)
}
