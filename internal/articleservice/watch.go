package articleservice

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/storage"
)

// DefaultDebounce is how long the watcher waits for events to settle
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// ReloadCallback is called after the watcher installs a new snapshot.
type ReloadCallback func(store *catalog.Store)

// Watch starts an fsnotify watcher on the content root and rebuilds the
// whole catalog whenever markdown files or directories change, until ctx
// is cancelled. Bursts of events are debounced into a single reload.
//
// New directories created at runtime are added to the watch list.
func (s *Service) Watch(ctx context.Context, root string, debounce time.Duration, cb ReloadCallback) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("articleservice: create watcher: %w", err)
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return fmt.Errorf("articleservice: watch %s: %w", root, err)
	}

	s.logger.Info("watcher: started", slog.String("root", root))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(debounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			s.logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			store, swapped, err := s.Reload(ctx)
			if err != nil {
				s.logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			if swapped && cb != nil {
				cb(store)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						s.logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleReload()
					continue
				}
			}

			// Removed or renamed directories carry no extension; reload to be safe.
			if storage.IsMarkdown(ev.Name) || (ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(ev.Name) == "") {
				s.logger.Debug("watcher: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its non-hidden subdirectories to the
// watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
