package policy

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the policy directory for on-disk changes. Policy
// documents are frozen at startup, so the watcher does not reload
// anything; it logs that the running process has diverged from disk and
// a restart is required to apply the change. Events are debounced so an
// editor writing several times in quick succession produces one notice.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher over the given policy directory.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		debounce: 500 * time.Millisecond,
		logger:   slog.Default().With("component", "policy.watcher"),
		watcher:  fsw,
	}, nil
}

// Watch blocks until the context is cancelled, logging a notice whenever
// a policy file changes on disk.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	defer w.watcher.Close()

	w.logger.Info("policy watcher started", "dir", w.dir)

	var timer *time.Timer
	notify := func() {
		w.logger.Warn("policy files changed on disk; running process still uses the documents loaded at startup, restart to apply")
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("policy watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isPolicyFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, notify)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("policy watcher error", "error", err)
		}
	}
}

// isPolicyFile reports whether path looks like a policy source file.
func isPolicyFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
