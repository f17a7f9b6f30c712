package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"mlibctl/internal/log"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces
const watchDebounce = 100 * time.Millisecond

// Watch reloads the config file whenever it changes and hands the result
// to fn until ctx is done. The parent directory is watched so that editors
// which replace the file on save are noticed too. fn runs on the watcher's
// goroutine.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	name := filepath.Clean(path)
	logger := log.LogWithFields(log.F("path", name))
	logger.Debug("watching config file")

	go func() {
		defer fsWatcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(watchDebounce)
			case <-pending:
				pending = nil
				cfg, err := LoadConfigFile(path)
				if err != nil {
					logger.WithError(err).Warn("reloading config failed")
				} else {
					logger.Debug("config reloaded")
				}
				fn(cfg, err)
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Error("config watcher error")
			}
		}
	}()
	return nil
}
