package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"keydash/internal/eventbus"
)

// reloadDelay coalesces the burst of events an editor produces on save
const reloadDelay = 200 * time.Millisecond

// Watch reloads the store whenever the data file changes on disk and
// publishes DataReloaded after each successful reload. It blocks until ctx
// is cancelled.
//
// The parent directory is watched rather than the file itself so that
// atomic replace-by-rename saves keep being observed.
func Watch(ctx context.Context, s *Store, bus eventbus.EventBus, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(s.Path())
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("path", target))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDelay)
			timerCh = timer.C
		} else {
			timer.Reset(reloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if err := s.Reload(); err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				if bus != nil {
					bus.Publish(eventbus.ErrorEvent{Message: "data file reload failed", Err: err})
				}
				continue
			}
			logger.Debug("watcher: reloaded", slog.String("path", target))
			if bus != nil {
				bus.Publish(eventbus.DataReloadedEvent{Path: target})
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
