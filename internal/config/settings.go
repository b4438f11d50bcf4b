package config

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"keydash/internal/apperr"
	"keydash/internal/domain"
	"keydash/internal/eventbus"
)

// Setting keys accepted by Settings.Set
const (
	KeyTheme    = "theme"
	KeyFontSize = "font_size"
	KeyColumns  = "columns"
	KeyPage     = "current_page"
)

// Settings is the runtime settings store. It applies single-field updates
// to the loaded config and persists the whole file through the service.
type Settings struct {
	mu  sync.Mutex
	cfg *Config
	svc ConfigService
	bus eventbus.EventBus
}

// NewSettings creates a settings store around an already loaded config
func NewSettings(cfg *Config, svc ConfigService, bus eventbus.EventBus) *Settings {
	return &Settings{cfg: cfg, svc: svc, bus: bus}
}

// Snapshot returns a copy of the current configuration
func (s *Settings) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *s.cfg
	c.Themes = append([]domain.Theme(nil), s.cfg.Themes...)
	return c
}

// Themes returns the built-in and custom themes
func (s *Settings) Themes() []domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Themes(s.cfg.Themes)
}

// Set validates and stores one setting, then writes the config file
func (s *Settings) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	next := *s.cfg
	if err := apply(&next, key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s=%q: %v", apperr.ErrInvalid, key, value, err)
	}
	*s.cfg = next
	snapshot := next
	s.mu.Unlock()

	if err := s.svc.Save(&snapshot); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	slog.Info("settings: saved", slog.String("key", key), slog.String("value", value))

	if s.bus != nil {
		s.bus.Publish(eventbus.SettingChangedEvent{Key: key, Value: value})
	}
	return nil
}

func apply(cfg *Config, key, value string) error {
	switch key {
	case KeyTheme:
		cfg.UI.Theme = value
	case KeyFontSize:
		cfg.UI.FontSize = value
	case KeyColumns:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: columns must be a number: %q", apperr.ErrInvalid, value)
		}
		cfg.UI.Columns = n
	case KeyPage:
		cfg.UI.CurrentPage = value
	default:
		return fmt.Errorf("%w: unknown setting %q", apperr.ErrInvalid, key)
	}
	return nil
}
