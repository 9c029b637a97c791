package config

import (
	"context"
	"os"
	"time"
)

// Watcher polls config files for modification-time changes. A file that
// appears after the watcher was created counts as changed; one that
// disappears is ignored until it comes back.
type Watcher struct {
	paths    []string
	interval time.Duration
	seen     map[string]time.Time
}

// NewWatcher records the current mtimes of paths, so only later edits are
// reported.
func NewWatcher(interval time.Duration, paths ...string) *Watcher {
	w := &Watcher{paths: paths, interval: interval, seen: make(map[string]time.Time, len(paths))}
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			w.seen[p] = fi.ModTime()
		}
	}
	return w
}

// Poll stats every path once and returns those modified since the last poll.
func (w *Watcher) Poll() []string {
	var changed []string
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		if last, ok := w.seen[p]; ok && !fi.ModTime().After(last) {
			continue
		}
		w.seen[p] = fi.ModTime()
		changed = append(changed, p)
	}
	return changed
}

// Run polls until ctx is done and hands each non-empty batch of changed
// files to onChange. It blocks; start it in its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changed := w.Poll(); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}
