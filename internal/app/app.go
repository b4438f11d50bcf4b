// Package app wires the stores, the query interpreter and the terminal UI
// together and runs them until the user quits.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"keydash/internal/apperr"
	"keydash/internal/config"
	"keydash/internal/eventbus"
	"keydash/internal/query"
	"keydash/internal/store"
	"keydash/internal/ui"
)

// Option configures Run
type Option func(*application)

type application struct {
	configPath  string
	dataPath    string
	page        string
	logFile     string
	programOpts []tea.ProgramOption
}

// WithConfigPath selects the TOML config file
func WithConfigPath(path string) Option {
	return func(a *application) { a.configPath = path }
}

// WithDataPath overrides the data file named in the config
func WithDataPath(path string) Option {
	return func(a *application) { a.dataPath = path }
}

// WithPage selects the page shown at startup
func WithPage(id string) Option {
	return func(a *application) { a.page = id }
}

// WithLogFile overrides the log destination
func WithLogFile(path string) Option {
	return func(a *application) { a.logFile = path }
}

// WithProgramOptions passes extra options to the bubbletea program
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(a *application) { a.programOpts = append(a.programOpts, opts...) }
}

// forwarded are the events the UI reacts to
var forwarded = []eventbus.EventType{
	eventbus.EventBookmarksChanged,
	eventbus.EventFindersChanged,
	eventbus.EventPageChanged,
	eventbus.EventDataReloaded,
	eventbus.EventSettingChanged,
	eventbus.EventError,
}

// Run starts the dashboard and blocks until it exits
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	svc := config.NewConfigServiceAt(app.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.dataPath != "" {
		cfg.DataFile = app.dataPath
	}

	logPath := app.logFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(svc.Path()), "keydash.log")
	}
	logger, closeLog := newLogger(logPath, cfg.LogLevel)
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("config", svc.Path()),
		slog.String("data_file", cfg.DataFile),
		slog.String("log_level", cfg.LogLevel))

	bus := eventbus.New()
	defer bus.Close()

	st, err := store.Open(cfg.DataFile, bus)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}

	page := app.page
	if page == "" {
		page = cfg.UI.CurrentPage
	}
	if page != "" {
		if err := st.SetCurrentPage(page); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			logger.Warn("unknown start page, using the first one", slog.String("page", page))
		}
	}

	settings := config.NewSettings(cfg, svc, bus)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Saves and deletes started just before quitting still get to finish
	runner := query.NewAsyncRunner(context.WithoutCancel(ctx), logger)

	model := ui.NewModel(ui.Options{
		Pages:    st,
		Settings: settings,
		Bus:      bus,
		Runner:   runner,
		Logger:   logger,
	})

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, app.programOpts...)
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	for _, t := range forwarded {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	// Remember the page for the next start
	bus.Subscribe(eventbus.EventPageChanged, func(e eventbus.DomainEvent) {
		ev, ok := e.(eventbus.PageChangedEvent)
		if !ok {
			return
		}
		runner.Go("save current page", func(ctx context.Context) error {
			return settings.Set(ctx, config.KeyPage, ev.To)
		})
	})

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return store.Watch(gCtx, st, bus, logger)
	})

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})

	err = g.Wait()
	runner.Wait()
	if err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped")
	return nil
}

// newLogger writes text logs to path. Stdout belongs to the TUI, so when
// the file cannot be opened logs are discarded.
func newLogger(path, level string) (*slog.Logger, func()) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
}
