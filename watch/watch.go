// Package watch reloads posts when markdown files in a directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/mdblog/posts"
)

// Logger is the subset of echo.Logger the watcher reports to.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Watcher debounces filesystem events in a single directory and calls
// onChange once things settle.
type Watcher struct {
	fw       *fsnotify.Watcher
	dir      string
	delay    time.Duration
	onChange func() error
	log      Logger

	closeOnce sync.Once
}

// New starts watching dir. Call Run to process events.
func New(dir string, delay time.Duration, onChange func() error, logger Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	clean := filepath.Clean(dir)
	if err := fw.Add(clean); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", clean, err)
	}
	return &Watcher{
		fw:       fw,
		dir:      clean,
		delay:    delay,
		onChange: onChange,
		log:      logger,
	}, nil
}

// relevant reports whether an event can change the loaded post set.
func relevant(ev fsnotify.Event) bool {
	if !posts.IsMarkdown(filepath.Base(ev.Name)) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	// Armed on the first relevant event.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.log.Infof("watch: %s %s", ev.Op, filepath.Base(ev.Name))
			timer.Reset(w.delay)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("watch: %v", err)
		case <-timer.C:
			if err := w.onChange(); err != nil {
				w.log.Errorf("watch: reload %s: %v", w.dir, err)
				continue
			}
			w.log.Infof("watch: reloaded %s", w.dir)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fw.Close()
	})
	return err
}
