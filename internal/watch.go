package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	tt "github.com/eigengo/quality/internal/types"
)

// Watcher re-lints Java files as they change on disk.
type Watcher struct {
	engine     *Engine
	watcher    *fsnotify.Watcher
	onResult   func(path string, violations []tt.Violation)
	onError    func(err error)
	isWatching bool
	done       chan struct{}
}

func NewWatcher(
	engine *Engine,
	onResult func(path string, violations []tt.Violation),
	onError func(err error),
) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	return &Watcher{
		engine:   engine,
		watcher:  fsWatcher,
		onResult: onResult,
		onError:  onError,
		done:     make(chan struct{}),
	}, nil
}

// Watch adds the given directories (recursively) and starts the watch
// loop.
func (w *Watcher) Watch(dirs ...string) error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	if !w.isWatching {
		return nil
	}
	w.isWatching = false
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}
	if !strings.HasSuffix(event.Name, ".java") {
		return
	}

	violations, err := w.engine.Run(event.Name)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onResult != nil {
		w.onResult(event.Name, violations)
	}
}
