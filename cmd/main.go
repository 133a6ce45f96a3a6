package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"countdown/internal/audio"
	"countdown/internal/config"
	"countdown/internal/core/timekeeper"
	"countdown/internal/metrics"
	"countdown/internal/platform"
	"countdown/internal/remote"
	"countdown/internal/storage"
	"countdown/internal/ui/display"
	"countdown/internal/ui/preferences"
	"countdown/internal/ui/terminal"
	"countdown/internal/ui/tray"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const appName = "Countdown"

func main() {
	tuiMode := flag.Bool("tui", false, "run in the terminal instead of a window")
	dateFlag := flag.String("date", "", "target date (YYYY-MM-DD); defaults to COUNTDOWN_DEFAULT_DATE or 30 days ahead")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	cfg.ConfigureLogger(logrus.StandardLogger())
	logger := logrus.WithField("app", appName)

	registry := metrics.NewRegistry()
	recorder := metrics.NewRecorder(registry)
	if cfg.MetricsAddr != "" {
		metricsServer, err := metrics.Listen(cfg.MetricsAddr, registry, logger)
		if err != nil {
			logger.Errorf("metrics disabled: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = metricsServer.Shutdown(ctx)
			}()
		}
	}

	settings, err := storage.LoadSettings(appName, preferences.FromConfig(cfg))
	if err != nil {
		logger.Warnf("using default settings: %v", err)
	}

	keeper := timekeeper.New(settings.CountdownConfig(), timekeeper.Config{TickInterval: cfg.TickInterval}, newLookup(settings.Endpoint, logger))
	keeper.SetLogger(logger)
	keeper.SetRecorder(recorder)
	defer keeper.Close()

	initialDate := *dateFlag
	if initialDate == "" {
		initialDate = cfg.InitialDate(time.Now())
	}

	if *tuiMode {
		if err := runTerminal(keeper, initialDate, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("terminal: %v", err)
			os.Exit(1)
		}
		return
	}
	runDesktop(keeper, settings, initialDate, logger)
}

func newLookup(endpoint string, logger *logrus.Entry) timekeeper.Lookup {
	if endpoint == "" {
		return nil
	}
	return remote.NewClient(endpoint, &http.Client{}, logger)
}

func runTerminal(keeper *timekeeper.TimeKeeper, target string, logger *logrus.Entry) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// The screen owns the terminal; keep log lines from tearing the layout.
	logrus.SetOutput(discardUnlessDebug())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.New(screen, keeper, target, logger).Run(ctx)
}

func runDesktop(keeper *timekeeper.TimeKeeper, settings preferences.Settings, initialDate string, logger *logrus.Entry) {
	lock, err := platform.LockInstance(appName)
	if err != nil {
		logger.Errorf("single instance: %v", err)
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	fyneApp := app.NewWithID("com.countdown.widget")
	fyneApp.SetIcon(resources.Icon())

	chime := audio.NewChime(logger)
	if settings.ChimeOnExpiry {
		if err := chime.Initialize(); err != nil {
			logger.Warnf("audio unavailable: %v", err)
		}
	}
	defer chime.Close()

	view := display.New(fyneApp, initialDate, display.Callbacks{
		OnSubmit: func(date string) {
			go func() {
				_, _ = keeper.Submit(context.Background(), date)
			}()
		},
		OnStop:   keeper.Cancel,
		OnClosed: keeper.Close,
	})

	var prefsWindow *preferences.Window

	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayApp desktop.App
	if hasTray {
		trayApp = desktopApp
	}
	trayManager := tray.New(trayApp, tray.Callbacks{
		OnShow:        view.Show,
		OnStop:        keeper.Cancel,
		OnPreferences: func() { prefsWindow.Show() },
		OnQuit: func() {
			keeper.Close()
			fyneApp.Quit()
		},
	})
	trayManager.SetShowStatus(settings.TrayStatus)
	if hasTray {
		// With a tray the countdown keeps running while the window is hidden.
		view.Window().SetCloseIntercept(view.Window().Hide)
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Errorf("save settings: %v", err)
		}
		keeper.UpdateConfig(updated.CountdownConfig())
		keeper.SetLookup(newLookup(updated.Endpoint, logger))
		trayManager.SetShowStatus(updated.TrayStatus)
		if updated.ChimeOnExpiry {
			if err := chime.Initialize(); err != nil {
				logger.Warnf("audio unavailable: %v", err)
			}
		}
	})

	events := keeper.Subscribe(16)
	go func() {
		previous := timekeeper.PhaseInactive
		for event := range events {
			session := event.Session
			if reachedZero(previous, session.Phase) && keeper.Config().ChimeOnExpiry {
				chime.Play()
			}
			previous = session.Phase
			view.Update(session)
			fyne.Do(func() {
				trayManager.SetSession(session)
			})
		}
	}()

	view.Show()
	fyneApp.Run()
}

// reachedZero reports a countdown that ran out while being watched, as opposed
// to a target that was already in the past when submitted.
func reachedZero(previous, current timekeeper.Phase) bool {
	return previous == timekeeper.PhaseActive && current == timekeeper.PhaseExpired
}

func discardUnlessDebug() *os.File {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		return os.Stderr
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return devNull
}
