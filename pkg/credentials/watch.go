package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch calls onChange with the current active set, then again each time the
// active set changes on disk. A nil Active means no set is active. Watch
// blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func(*Active)) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Writes land via rename, so watch the directory rather than the file.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	last, _ := s.ActiveCredentials()
	onChange(last)

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}

			current, _ := s.ActiveCredentials()
			if sameActive(last, current) {
				continue
			}

			s.logger.Debug("active credentials changed", zap.String("event", event.Op.String()))
			last = current
			onChange(current)
		}
	}
}

func sameActive(a, b *Active) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
