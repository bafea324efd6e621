package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kobzarvs/richpad/internal/logger"
)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	closed chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Watch calls onChange with the reloaded configuration each time path is
// written or recreated. The parent directory is watched so that editors
// which save by renaming a temp file are seen too. onChange runs on the
// watcher goroutine.
func Watch(path string, onChange func(Config, error)) (*Watcher, error) {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(path), err)
	}
	w := &Watcher{
		fw:     fw,
		path:   path,
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(Config, error)) {
	defer close(w.done)
	for {
		select {
		case <-w.closed:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				logger.Warn("config reload failed", "path", w.path, "error", err)
			} else {
				logger.Info("config reloaded", "path", w.path)
			}
			onChange(cfg, err)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closed)
		err = w.fw.Close()
		<-w.done
	})
	return err
}
