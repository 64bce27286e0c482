package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/patterngen/logger"
)

// watchDebounce coalesces the event bursts editors produce on save into
// a single regeneration.
const watchDebounce = 500 * time.Millisecond

// watchLoop runs regenerate whenever a class description under dir
// changes, until ctx is canceled. Generated .go files under the same
// directory never trigger a run; only .yaml/.yml events count.
func watchLoop(ctx context.Context, dir string, debounce time.Duration, regenerate func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debugw("watch stopped", "dir", dir)
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDescription(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugw("description changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watcher error", "error", err)
		case <-timer.C:
			regenerate()
		}
	}
}

// isDescription reports whether path names a YAML class description.
func isDescription(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
