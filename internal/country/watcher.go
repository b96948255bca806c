package country

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/phonemask/internal/logging"
)

// Watcher reloads a Table whenever its catalog file changes. A catalog
// that fails to load is logged and the previous contents are kept.
type Watcher struct {
	table    *Table
	path     string
	log      *logging.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onReload func(n int, err error)

	closeOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithReloadHook registers a callback invoked after every reload attempt
// with the new country count or the load error.
func WithReloadHook(fn func(n int, err error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWatcher starts watching path for table. The containing directory is
// watched so that editors replacing the file by rename are noticed.
func NewWatcher(table *Table, path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating catalog watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", abs, err)
	}

	w := &Watcher{
		table:    table,
		path:     abs,
		log:      logging.Nop(),
		fsw:      fsw,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("catalog watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}

func (w *Watcher) reload() {
	countries, err := readCatalog(w.path)
	if err == nil {
		err = w.table.Replace(countries)
	}

	if err != nil {
		w.log.Error("catalog reload failed, keeping previous catalog: %v", err)
	} else {
		w.log.Info("catalog reloaded: %d countries", len(countries))
	}
	if w.onReload != nil {
		w.onReload(w.table.Len(), err)
	}
}
