package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	notifyinadapter "pomo/internal/modules/notify/adapter/in"
	notifyoutadapter "pomo/internal/modules/notify/adapter/out"
	notifydomain "pomo/internal/modules/notify/domain"
	notifyin "pomo/internal/modules/notify/port/in"
	notifyout "pomo/internal/modules/notify/port/out"
	notifyservice "pomo/internal/modules/notify/service"
	notifyusecase "pomo/internal/modules/notify/usecase"
	sessioninadapter "pomo/internal/modules/session/adapter/in"
	sessionoutadapter "pomo/internal/modules/session/adapter/out"
	sessionout "pomo/internal/modules/session/port/out"
	sessionusecase "pomo/internal/modules/session/usecase"
	settingsinadapter "pomo/internal/modules/settings/adapter/in"
	settingsoutadapter "pomo/internal/modules/settings/adapter/out"
	settingsdomain "pomo/internal/modules/settings/domain"
	settingsin "pomo/internal/modules/settings/port/in"
	settingsservice "pomo/internal/modules/settings/service"
	settingsusecase "pomo/internal/modules/settings/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	"pomo/internal/platform/logging"
	"pomo/internal/platform/tx"
	uiapp "pomo/internal/ui/app"
	"pomo/internal/ui/tray"
)

// Options are the process-level switches that sit above the config file.
type Options struct {
	Dir        string
	ConfigPath string
	// LogLevel overrides log.level from the config file when set.
	LogLevel  string
	LogOutput io.Writer
	// Ephemeral keeps the session record in memory only.
	Ephemeral bool
	// Notify sends alerts from the poller and the interactive shells.
	Notify  bool
	NoEmoji bool

	Clock clock.Clock
	GOOS  string
}

type App struct {
	Config      config.Config
	Logger      hclog.Logger
	SessionCLI  sessioninadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler
	Poller      *sessioninadapter.Poller
	HTTP        *sessioninadapter.HTTPHandler

	notify   notifyin.Usecase
	settings settingsin.Usecase
	opts     Options
	closers  []func() error
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.New(opts.Dir, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	logger := logging.New(logging.Options{Level: opts.LogLevel, Output: opts.LogOutput})

	settingsStore := settingsoutadapter.NewYAMLFileStore(cfg.ConfigPath, cfg.LegacyConfigPath)
	settingsSvc := settingsservice.NewSettingsService(settingsStore, logger.Named("settings"))
	settingsUC := settingsusecase.NewInteractor(settingsSvc, settingsStore)
	current := settingsUC.Current(ctx)
	if opts.LogLevel == "" {
		if level := hclog.LevelFromString(current.LogLevel); level != hclog.NoLevel {
			logger.SetLevel(level)
		}
	}

	app := &App{Config: cfg, Logger: logger, SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC), settings: settingsUC, opts: opts}

	store, err := app.statusStore(cfg, current.StoreBackend, opts)
	if err != nil {
		return nil, err
	}

	notifyUC := app.notifier(ctx, cfg, current.NotifierKind, current.NotifierPlugin, opts.GOOS)
	app.notify = notifyUC
	app.NotifyCLI = notifyinadapter.NewCLIHandler(notifyUC)

	sessionUC := sessionusecase.NewInteractor(sessionusecase.Deps{
		Clock:       opts.Clock,
		Store:       store,
		Preferences: sessionoutadapter.NewSettingsPreferences(settingsUC),
		Notifier:    sessionoutadapter.NewAlertNotifier(notifyUC),
		Tx:          &tx.Serial{},
		Logger:      logger.Named("session"),
	})
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.Poller = sessioninadapter.NewPoller(sessionUC, settingsUC, sessioninadapter.PollerOptions{Notify: opts.Notify}, logger.Named("poller"))
	app.HTTP = sessioninadapter.NewHTTPHandler(sessionUC, logger.Named("http"))
	return app, nil
}

func (a *App) statusStore(cfg config.Config, backend string, opts Options) (sessionout.StatusStore, error) {
	storeLogger := a.Logger.Named("store")
	switch {
	case opts.Ephemeral:
		return sessionoutadapter.NewMemoryStatusStore(opts.Clock), nil
	case backend == settingsdomain.StoreSQLite:
		store, err := sessionoutadapter.NewSQLiteStatusStore(cfg.DBPath, opts.Clock, storeLogger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite status store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return sessionoutadapter.NewFileStatusStore(cfg.StatusPath, opts.Clock, storeLogger), nil
	}
}

// notifier never fails: a backend that cannot be built degrades to the
// discard sink with a warning.
func (a *App) notifier(ctx context.Context, cfg config.Config, kind, pluginName, goos string) notifyin.Usecase {
	logger := a.Logger.Named("notify")
	host := notifyoutadapter.NewGRPCHost(logger.Named("plugin"))
	plugins := notifyservice.NewPluginService(notifyoutadapter.NewFileManifestStore(cfg.Dir, cfg.PluginsPath), host)

	resolved, err := notifydomain.ResolveKind(kind, goos)
	if err != nil {
		logger.Warn("notifier backend unusable, alerts disabled", "backend", kind, "error", err)
		resolved = notifydomain.KindNone
	}

	var sink notifyout.Sink
	switch resolved {
	case notifydomain.KindDBus:
		sink = notifyoutadapter.NewDBusSink()
	case notifydomain.KindOSAScript:
		sink = notifyoutadapter.NewOSAScriptSink()
	case notifydomain.KindPlugin:
		sink, err = plugins.Sink(ctx, pluginName, func(h notifyout.Host, m notifydomain.Manifest) notifyout.Sink {
			return notifyoutadapter.NewPluginSink(h, m)
		})
		if err != nil {
			logger.Warn("notifier plugin unusable, alerts disabled", "plugin", pluginName, "error", err)
			sink = nil
		}
	}
	if sink == nil {
		sink = notifyoutadapter.NewDiscardSink(logger)
	}

	dispatcher := notifyservice.NewDispatcher(sink, notifyservice.DefaultQueueDepth, logger)
	return notifyusecase.NewInteractor(dispatcher, plugins, kind, resolved, logger)
}

// Close drains queued alerts and releases stores.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.notify != nil {
		if err := a.notify.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain alerts: %w", err))
		}
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, uiapp.Options{
		Notify:   app.opts.Notify,
		NoEmoji:  app.opts.NoEmoji,
		Settings: app.settings,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunTray blocks on the menu-bar loop. Menu actions reuse the notify switch
// given to New.
func RunTray(ctx context.Context, app *App) {
	tray.New(app.Poller, trayCallbacks(ctx, app)).Run(ctx)
}

// trayCallbacks runs menu actions and publishes a fresh snapshot right
// after each one, so the title changes without waiting for the next tick.
func trayCallbacks(ctx context.Context, app *App) tray.Callbacks {
	notify := app.opts.Notify
	act := func(action string, run func() error) func() {
		return func() {
			if err := run(); err != nil {
				app.Logger.Warn("tray action failed", "action", action, "error", err)
			}
			app.Poller.Poll(ctx)
		}
	}
	return tray.Callbacks{
		OnFocus: act("focus", func() error {
			_, err := app.SessionCLI.Focus(ctx, "", false, notify)
			return err
		}),
		OnBreak: act("break", func() error {
			_, err := app.SessionCLI.Break(ctx, "", false, notify)
			return err
		}),
		OnStop: act("stop", func() error {
			_, err := app.SessionCLI.Stop(ctx, notify)
			return err
		}),
	}
}
