package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/aretw0/jot/pkg/core"
)

// DebounceInterval coalesces the burst of events produced by one atomic write.
const DebounceInterval = 50 * time.Millisecond

// Watch implements core.Watchable. It signals when the slot file for key is
// replaced by another process; writes made through this Storage are filtered out.
// Only the OS filesystem can be watched.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return nil, fmt.Errorf("watch requires the OS filesystem: %w", core.ErrUnsupported)
	}
	path, err := s.slotPath(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan struct{}, 1)
	w := &slotWatcher{storage: s, key: key, name: filepath.Base(path), watcher: watcher, out: out}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return out, nil
}

type slotWatcher struct {
	storage *Storage
	key     string
	name    string
	watcher *fsnotify.Watcher
	out     chan struct{}
}

func (w *slotWatcher) run(ctx context.Context) (err error) {
	logger := w.storage.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.out)
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()

	timer := time.NewTimer(DebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("slot event received", "key", w.key, "op", event.Op.String())
			timer.Reset(DebounceInterval)

		case <-timer.C:
			if w.storage.isOwnWrite(w.key) {
				continue
			}
			select {
			case w.out <- struct{}{}:
			default:
				// a signal is already pending
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.storage.reportWatchError(wErr)
		}
	}
}

func (s *Storage) reportWatchError(err error) {
	s.config.Logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
