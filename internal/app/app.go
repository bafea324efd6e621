package app

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richpad/internal/config"
	"github.com/kobzarvs/richpad/internal/logger"
	"github.com/kobzarvs/richpad/internal/sanitize"
	"github.com/kobzarvs/richpad/internal/snippet"
	"github.com/kobzarvs/richpad/internal/storage"
)

// App is the top-level runtime for richpad.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		return err
	}
	defer logger.Close()

	kv, err := storage.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer kv.Close()
	store := snippet.Open(kv,
		snippet.WithKey(cfg.Store.Key),
		snippet.WithIDFunc(snippet.IDFor(cfg.Store.IDStrategy)),
	)

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.EnablePaste()
	defer s.Fini()

	h := NewHost(cfg, store, sanitize.New(cfg.Sanitize.Policy), s)
	if path, err := config.ConfigPath(); err == nil {
		w, err := config.Watch(path, func(cfg config.Config, err error) {
			s.PostEvent(newConfigEvent(cfg, err))
		})
		if err != nil {
			logger.Debug("config watch disabled", "error", err)
		} else {
			defer w.Close()
		}
	}
	if len(a.args) > 0 {
		id, err := strconv.ParseInt(a.args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snippet id %q", a.args[0])
		}
		if !h.EditSnippet(id) {
			return fmt.Errorf("no snippet with id %d", id)
		}
	}

	h.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		if h.HandleEvent(ev) {
			return nil
		}
		h.Render(s)
	}
}
