package app

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/soocke/snapcrop-go/config"
	"github.com/soocke/snapcrop-go/domain/capture"
	"github.com/soocke/snapcrop-go/domain/crop"
	"github.com/soocke/snapcrop-go/domain/export"
	"github.com/soocke/snapcrop-go/domain/keybind"
	"github.com/soocke/snapcrop-go/domain/session"
	"github.com/soocke/snapcrop-go/ui/input"
	"github.com/soocke/snapcrop-go/ui/model"
	"github.com/soocke/snapcrop-go/ui/presenter"
	"github.com/soocke/snapcrop-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Keys       *keybind.Bindings
	CaptureSvc capture.CaptureService
	Exporter   *export.FileExporter
	Clipboard  *export.Clipboard
	Notices    *model.NoticeModel
	Status     *model.StatusModel
	Session    *session.Session
	Input      *input.Collector
	RootView   *view.RootView
	Settings   *view.SettingsPanel

	// Presenters
	SessionPresenter  *presenter.SessionPresenter
	PhasePresenter    *presenter.PhasePresenter
	StatusPresenter   *presenter.StatusPresenter
	NoticePresenter   *presenter.NoticePresenter
	SettingsPresenter *presenter.SettingsPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. No Tk widget is created here;
// RootView.Build runs once styles are initialised.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}

	keys, err := keybind.FromConfig(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	c.Keys = keys
	c.CaptureSvc = capture.NewCaptureService(logger, capture.NewBackend(cfg.Backend))
	c.Exporter, err = export.NewFileExporter(logger, export.FileOptions{
		Dir:         cfg.SaveDir,
		Format:      cfg.SaveFormat,
		JPEGQuality: cfg.JPEGQuality,
	})
	if err != nil {
		return nil, fmt.Errorf("exporter: %w", err)
	}
	c.Clipboard = export.NewClipboard(logger)
	c.Notices = model.NewNoticeModel(logger, cfg.NoticeDuration())
	c.Status = model.NewStatusModel()

	// View
	c.RootView = view.NewRootView(logger)

	c.Session = session.New(logger, session.Deps{
		Capturer:  c.CaptureSvc,
		Exporter:  c.Exporter,
		Clipboard: c.Clipboard,
		Window:    c.RootView.Window,
		Notifier:  c.Notices,
		Keys:      keys,
	}, session.Options{
		MonitorID:  cfg.Monitor,
		Delay:      cfg.Delay(),
		CropMargin: cfg.CropMargin,
		Overlay:    crop.Options{Inset: cfg.HandleInset, MinEdge: cfg.MinEdge},
	})
	c.Input = input.NewCollector(logger)

	// Presenters
	c.SettingsPresenter = presenter.NewSettingsPresenter(logger, keys)
	c.Settings = view.NewSettingsPanel(c.SettingsPresenter, logger, c.RootView.SettingsOpen)
	c.SessionPresenter = presenter.NewSessionPresenter(logger, c.Session, c.Input, c.RootView, c.SettingsPresenter)
	if cfg.Hotkey != "" {
		combo, err := keybind.ParseCombo(cfg.Hotkey)
		if err != nil {
			return nil, fmt.Errorf("hotkey %q: %w", cfg.Hotkey, err)
		}
		c.SessionPresenter.SetHotkey(combo)
	}
	c.PhasePresenter = presenter.NewPhasePresenter(c.RootView)
	c.Session.AddListener(c.PhasePresenter.OnPhase)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Status, c.SessionPresenter, c.CaptureSvc, c.RootView)
	c.NoticePresenter = presenter.NewNoticePresenter(c.Notices, c.RootView)
	// Schedule is installed by the app once the Tk loop is up.
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.PhasePresenter, c.StatusPresenter, c.NoticePresenter, nil)
	return c, nil
}

// Handlers binds the control bar to the presenters.
func (c *AppContainer) Handlers(exit func()) view.Handlers {
	p := c.SessionPresenter
	return view.Handlers{
		NewCapture:   p.NewCapture,
		CaptureNow:   p.CaptureNow,
		FullScreen:   p.FullScreen,
		Area:         p.Area,
		Crop:         p.Crop,
		Confirm:      p.Confirm,
		Cancel:       p.Cancel,
		Save:         p.Save,
		Copy:         p.Copy,
		SetDelay:     p.SetDelaySeconds,
		OpenSettings: c.Settings.OpenOrFocus,
		Exit:         exit,
	}
}

// Close stops the input hook and tears down the session.
func (c *AppContainer) Close() error {
	var result *multierror.Error
	if c.Input != nil {
		if err := c.Input.Stop(); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to stop the input hook: %w", err))
		}
	}
	if c.Session != nil {
		if err := c.Session.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to close the session: %w", err))
		}
	}
	if c.Settings != nil {
		c.Settings.Close()
	}
	if c.Logger != nil && c.CaptureSvc != nil {
		st := c.CaptureSvc.Stats()
		c.Logger.Info("shutdown", "captures", st.Captures, "failures", st.Failures)
	}
	return result.ErrorOrNil()
}
