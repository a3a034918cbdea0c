package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/countdown-cli/internal/adapters/alert"
	"github.com/xvierd/countdown-cli/internal/adapters/git"
	"github.com/xvierd/countdown-cli/internal/adapters/notification"
	"github.com/xvierd/countdown-cli/internal/adapters/storage"
	"github.com/xvierd/countdown-cli/internal/config"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/logger"
	"github.com/xvierd/countdown-cli/internal/ports"
	"github.com/xvierd/countdown-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	log      *logger.Logger
	logClose func() error
	storage  ports.Storage
	git      ports.GitDetector
	notifier *notification.Notifier
	notes    *services.NotesService
	history  *services.HistoryService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		app.config = config.DefaultConfig()
	}

	dataDir, err := config.ExpandHome(app.config.Storage.DataDir)
	if err != nil {
		return err
	}
	app.config.Storage.DataDir = dataDir

	level := app.config.Log.Level
	if logLevel != "" {
		if !logger.ValidLevel(logLevel) {
			return fmt.Errorf("invalid --log-level %q (use debug, info, warn or error)", logLevel)
		}
		level = logLevel
	}
	app.log, app.logClose, err = logger.Open(dataDir, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	app.storage, err = openStorage(dbPath)
	if err != nil {
		return err
	}

	app.git = git.NewDetector()
	app.notifier = notification.New(&app.config.Notifications, app.log.Named("notify"))
	app.notes = services.NewNotesService(app.storage)
	app.history = services.NewHistoryService(app.storage)

	app.log.Debugw("services initialized", "db", dbPath, "level", level)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.storage != nil {
		err = app.storage.Close()
	}
	if app.logClose != nil {
		_ = app.logClose()
	}
	return err
}

// newTimerService builds a countdown controller from the loaded config. Runs
// are recorded in storage with git context from the working directory. The
// returned sink is the alert the service plays on expiry.
func newTimerService(ctx context.Context, sched ports.Scheduler) (*services.TimerService, ports.AlertSink) {
	timer := domain.NewTimer(app.config.TimerOptions())
	svc := services.NewTimerService(timer, sched, app.storage.Runs(), app.git)
	svc.SetLogger(app.log.Named("timer"))
	svc.SetContext(ctx)

	var sink ports.AlertSink = alert.Silent{}
	if app.config.Notifications.Sound {
		sink = alert.NewBeeper()
	}
	svc.SetAlertSink(sink)
	return svc, sink
}

// watchExpiry sends a desktop notification whenever a countdown expires.
func watchExpiry(svc ports.TimerController, notifier *notification.Notifier, log *logger.Logger) func() {
	last := svc.Snapshot().Phase
	return svc.Subscribe(func(snap domain.Snapshot) {
		prev := last
		last = snap.Phase
		if snap.Phase != domain.PhaseExpired || prev == domain.PhaseExpired {
			return
		}
		if err := notifier.NotifyExpired(snap.InitialSeconds); err != nil {
			log.Warnw("expiry notification failed", "error", err)
		}
	})
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// openStorage opens the database at path, creating its directory first.
func openStorage(path string) (ports.Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}
