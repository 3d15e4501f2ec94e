package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// fileWatcher triggers a callback when any of a set of files changes.
//
// Parent directories are watched rather than the files, so saves that
// replace the file by rename are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	targets map[string]bool
}

func newFileWatcher(paths []string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize filesystem watcher: %w", err)
	}

	fw := &fileWatcher{watcher: w, targets: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		fw.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Run calls onChange after each debounced change until ctx is done.
// Callback errors are logged and watching continues.
func (fw *fileWatcher) Run(ctx context.Context, logger *logging.Logger, onChange func() error) error {
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce = time.After(watchDebounce)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "watch error", zap.Error(err))

		case <-debounce:
			debounce = nil
			if err := onChange(); err != nil {
				logger.Error(ctx, "re-run failed", zap.Error(err))
			}
		}
	}
}

// Close stops the underlying watcher.
func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}
