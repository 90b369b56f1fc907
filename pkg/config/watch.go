package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// A Watcher reloads a settings file whenever it is written. The directory
// holding the file is watched rather than the file itself, so editors that
// save by renaming a temporary file over it are still noticed.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
}

// NewWatcher starts watching the directory of path. The directory must exist.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	path = filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watching %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{fsw: fsw, path: path}, nil
}

// Run calls fn with the reloaded settings each time the file is created or
// written, or with an error when loading or watching fails. It returns when
// ctx is done or the Watcher is closed. fn runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(Settings, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			fn(Load(w.path))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fn(Settings{}, fmt.Errorf("config: watching %s: %w", w.path, err))
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
