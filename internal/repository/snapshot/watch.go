package snapshot

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/logger"
)

// Watch calls onChange with the freshly loaded roster every time the
// snapshot file is written, created or renamed into place. It watches the
// parent directory so the file may appear after Watch starts. A snapshot that
// fails to load is logged and skipped. Watch returns when ctx is canceled.
func (r *FileRepository) Watch(ctx context.Context, onChange func(*health.Roster)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(r.path)
	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.InfoKV(ctx, "Watching snapshot file", "path", r.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != r.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			roster, err := r.Load(ctx)
			if err != nil {
				logger.WarnKV(ctx, "Snapshot reload failed, keeping previous report", "path", r.path, "error", err)

				continue
			}

			onChange(roster)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorKV(ctx, "Snapshot watcher error", "error", err)
		}
	}
}
