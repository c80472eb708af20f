package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor produces for a
// single save.
const watchDebounce = 100 * time.Millisecond

// watchAndRun re-runs run whenever path is written. It watches the
// containing directory because editors typically replace files on save,
// which drops a watch held on the file itself. Rerun failures are
// logged and watching continues; the call returns when ctx is done.
func watchAndRun(ctx context.Context, path string, logger *slog.Logger, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				logger.Debug("source changed, re-running", "file", event.Name)
				if err := run(); err != nil {
					logger.Error("rerun failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			logger.Error("watcher error", "error", err)
		}
	}
}
