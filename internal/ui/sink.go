package ui

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/browser"

	"keydash/internal/eventbus"
	"keydash/internal/query"
)

func init() {
	// xdg-open and friends would scribble over the TUI
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// SettingsWriter persists one settings field
type SettingsWriter interface {
	Set(ctx context.Context, key, value string) error
}

// Sink carries committed interpreter actions out to the host. Navigation
// and persistence leave the UI goroutine; live updates and the creation
// form are handed straight back to the model.
type Sink struct {
	settings SettingsWriter
	bus      eventbus.EventBus
	logger   *slog.Logger
	open     func(url string) error

	onApply  func(key, value string)
	onCreate func(c query.CreationContext)
}

// NewSink creates a sink that opens URLs in the system browser
func NewSink(settings SettingsWriter, bus eventbus.EventBus, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		settings: settings,
		bus:      bus,
		logger:   logger,
		open:     browser.OpenURL,
	}
}

// SetOpener replaces the function used to open URLs
func (s *Sink) SetOpener(open func(url string) error) {
	s.open = open
}

// Navigate opens url. A terminal has no tabs to reuse, so newTab only
// shows up in the log.
func (s *Sink) Navigate(url string, newTab bool) {
	open := s.open
	go func() {
		s.logger.Info("sink: opening url", slog.String("url", url), slog.Bool("new_tab", newTab))
		if err := open(url); err != nil {
			s.logger.Error("sink: open url failed",
				slog.String("url", url),
				slog.String("error", err.Error()))
			if s.bus != nil {
				s.bus.Publish(eventbus.ErrorEvent{Message: "could not open " + url, Err: err})
			}
		}
	}()
}

func (s *Sink) SetSetting(ctx context.Context, key, value string) error {
	if s.settings == nil {
		return nil
	}
	return s.settings.Set(ctx, key, value)
}

func (s *Sink) ApplySetting(key, value string) {
	if s.onApply != nil {
		s.onApply(key, value)
	}
}

func (s *Sink) OpenCreationForm(c query.CreationContext) {
	if s.onCreate != nil {
		s.onCreate(c)
	}
}
