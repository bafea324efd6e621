package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richpad/internal/config"
	"github.com/kobzarvs/richpad/internal/dom"
	"github.com/kobzarvs/richpad/internal/editor"
	"github.com/kobzarvs/richpad/internal/export"
	"github.com/kobzarvs/richpad/internal/logger"
	"github.com/kobzarvs/richpad/internal/sanitize"
	"github.com/kobzarvs/richpad/internal/snippet"
)

type Mode int

// configEvent carries a reloaded configuration into the event loop.
type configEvent struct {
	tcell.EventTime
	cfg config.Config
	err error
}

func newConfigEvent(cfg config.Config, err error) *configEvent {
	ev := &configEvent{cfg: cfg, err: err}
	ev.SetEventNow()
	return ev
}

const (
	ModeEdit Mode = iota
	ModePrompt
)

// Host is the terminal side of the editor: it owns the document, turns
// terminal events into editor calls and draws the result.
type Host struct {
	cfg   config.Config
	doc   *dom.Document
	ed    *editor.Editor
	store *snippet.Store
	san   *sanitize.Sanitizer
	md    *export.Markdown
	clip  *termClipboard
	sess  snippet.Session

	mode         Mode
	prompt       []rune
	promptCursor int
	comp         []string
	compIndex    int

	status  string
	content string

	// anchor and head are the selection ends as plain-text offsets; head
	// is the end that moves.
	anchor, head int

	scroll     int
	freeScroll bool
	view       []line
	paneX      int
	pasting    bool
	pasteBuf   []rune
	dragging   bool

	styles styles
}

func NewHost(cfg config.Config, store *snippet.Store, san *sanitize.Sanitizer, scr clipboardScreen) *Host {
	h := &Host{
		cfg:    cfg,
		doc:    dom.New(),
		store:  store,
		san:    san,
		md:     export.NewMarkdown(),
		styles: newStyles(cfg.Theme),
	}
	h.clip = newTermClipboard(scr)
	h.ed = editor.New(h.doc, h.doc.Selection(), h, editor.Options{
		MaxLength: cfg.Editor.MaxLength,
		Clipboard: h.clip,
	})
	h.move(0, false)
	return h
}

// ContentChanged receives the markup after every mutation.
func (h *Host) ContentChanged(markup string) {
	h.content = markup
}

func (h *Host) Notify(msg string) {
	h.status = msg
}

func (h *Host) Content() string          { return h.content }
func (h *Host) Status() string           { return h.status }
func (h *Host) Session() snippet.Session { return h.sess }
func (h *Host) Mode() Mode               { return h.mode }

// HandleEvent processes one terminal event and reports whether the app
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			h.pasting = true
			h.pasteBuf = h.pasteBuf[:0]
			return false
		}
		h.pasting = false
		h.paste(string(h.pasteBuf))
	case *tcell.EventClipboard:
		h.clip.received(ev.Data())
	case *configEvent:
		h.Reconfigure(ev.cfg, ev.err)
	case *tcell.EventKey:
		if h.pasting {
			h.collectPaste(ev)
			return false
		}
		return h.HandleKey(ev)
	case *tcell.EventMouse:
		h.HandleMouse(ev)
	}
	return false
}

func (h *Host) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		h.pasteBuf = append(h.pasteBuf, ev.Rune())
	case tcell.KeyEnter:
		h.pasteBuf = append(h.pasteBuf, '\n')
	case tcell.KeyTab:
		h.pasteBuf = append(h.pasteBuf, '\t')
	}
}

func (h *Host) paste(text string) {
	if h.mode == ModePrompt {
		h.insertPrompt([]rune(strings.ReplaceAll(text, "\n", " "))...)
		return
	}
	h.ed.Paste(text)
	h.syncCaret()
}

func (h *Host) HandleKey(ev *tcell.EventKey) bool {
	if h.mode == ModePrompt {
		return h.handlePrompt(ev)
	}
	h.status = ""
	h.freeScroll = false
	name := keyName(ev)
	if action, ok := h.cfg.Keymap[name]; ok {
		logger.Debug("keymap action", "key", name, "action", action)
		return h.runAction(action)
	}
	h.handleEditKey(ev)
	return false
}

func (h *Host) handleEditKey(ev *tcell.EventKey) {
	extend := ev.Modifiers()&tcell.ModShift != 0
	lo, hi := h.anchor, h.head
	if lo > hi {
		lo, hi = hi, lo
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		if !extend && lo != hi {
			h.move(lo, false)
			return
		}
		h.move(h.head-1, extend)
	case tcell.KeyRight:
		if !extend && lo != hi {
			h.move(hi, false)
			return
		}
		h.move(h.head+1, extend)
	case tcell.KeyUp:
		h.moveVertical(-1, extend)
	case tcell.KeyDown:
		h.moveVertical(1, extend)
	case tcell.KeyHome:
		if li, _, ok := h.caretLine(); ok {
			h.move(h.view[li].start, extend)
		}
	case tcell.KeyEnd:
		if li, _, ok := h.caretLine(); ok {
			h.move(h.view[li].end, extend)
		}
	case tcell.KeyEscape:
		h.move(h.head, false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.typeKey(editor.KeyBackspace)
	case tcell.KeyDelete:
		h.typeKey(editor.KeyDelete)
	case tcell.KeyEnter:
		h.typeKey(editor.KeyEnter)
	case tcell.KeyTab:
		h.typeKey(editor.Key("\t"))
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
			return
		}
		h.typeKey(editor.Key(string(ev.Rune())))
	}
}

func (h *Host) typeKey(k editor.Key) {
	if !h.ed.KeyDown(k) {
		h.status = fmt.Sprintf("limit of %d characters reached", h.ed.Budget.Max())
		return
	}
	h.syncCaret()
}

// move places the head at off, keeping the anchor when extend is set, and
// records the selection with the editor.
func (h *Host) move(off int, extend bool) {
	n := h.doc.PlainTextLen()
	off = max(0, min(off, n))
	h.head = off
	if !extend {
		h.anchor = off
	}
	h.doc.Select(min(h.anchor, h.head), max(h.anchor, h.head))
	h.ed.SelectionChanged()
}

// syncCaret reads the selection back after the document changed it.
func (h *Host) syncCaret() {
	start, end, ok := h.doc.SelectionOffsets()
	if !ok {
		h.move(h.head, false)
		return
	}
	if h.anchor <= h.head {
		h.anchor, h.head = start, end
	} else {
		h.anchor, h.head = end, start
	}
}

func (h *Host) moveVertical(dir int, extend bool) {
	li, x, ok := h.caretLine()
	if !ok {
		return
	}
	target := li + dir
	switch {
	case target < 0:
		h.move(0, extend)
	case target >= len(h.view):
		h.move(h.doc.PlainTextLen(), extend)
	default:
		h.move(h.view[target].offsetAtX(x), extend)
	}
}

// runAction executes a keymap or prompt action and reports whether the app
// should quit.
func (h *Host) runAction(action string) bool {
	action = strings.TrimSpace(action)
	verb, arg, _ := strings.Cut(action, " ")
	switch verb {
	case "":
		return false
	case "quit", "q":
		return true
	case "save", "w":
		h.Save()
	case "new":
		h.NewSnippet()
	case "edit":
		if id, ok := h.resolveSnippet(arg); ok {
			h.EditSnippet(id)
		}
	case "delete":
		if id, ok := h.resolveSnippet(arg); ok {
			h.DeleteSnippet(id)
		}
	case "export":
		h.Export(arg)
	case "copy-format":
		if !h.ed.CopyFormat() {
			h.status = "nothing selected"
		}
	case "apply-format":
		if !h.ed.ApplyFormat() {
			h.status = "no format copied"
		}
		h.syncCaret()
	case "prompt":
		h.openPrompt(arg)
	default:
		if !strings.Contains(action, "=") && arg != "" {
			action = verb + "=" + arg
		}
		in, err := editor.ParseIntent(action)
		if err != nil {
			h.status = err.Error()
			return false
		}
		h.apply(in)
	}
	return false
}

func (h *Host) apply(in editor.Intent) {
	err := h.ed.Apply(in)
	var notice *editor.NoticeError
	switch {
	case errors.As(err, &notice):
	case err != nil:
		h.status = err.Error()
	}
	if h.doc.Selection().RangeCount() == 0 {
		h.ed.Selection.Restore()
	}
	h.syncCaret()
}

// Save stores the content and starts a fresh snippet. On a failed write the
// content stays in the editor.
func (h *Host) Save() {
	sess, err := h.store.Save(h.sess, h.ed.Content())
	h.sess = sess
	if err != nil {
		h.status = "save failed: " + err.Error()
		return
	}
	h.load("")
	h.status = fmt.Sprintf("saved (%d snippets)", h.store.Len())
}

func (h *Host) NewSnippet() {
	h.sess = snippet.Session{}
	h.load("")
	h.status = "new snippet"
}

// EditSnippet opens a saved snippet. The stored markup is loaded as is so
// that saving it again does not lose formatting; the editor only ever shows
// its text runs, and hidden elements such as scripts have none.
func (h *Host) EditSnippet(id int64) bool {
	sess, content, ok := h.store.Edit(h.sess, id)
	if !ok {
		h.status = fmt.Sprintf("no snippet %d", id)
		return false
	}
	h.sess = sess
	h.load(content)
	h.status = fmt.Sprintf("editing snippet %d", id)
	return true
}

func (h *Host) DeleteSnippet(id int64) {
	if _, ok := h.store.Get(id); !ok {
		h.status = fmt.Sprintf("no snippet %d", id)
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.status = "delete failed: " + err.Error()
		return
	}
	if h.sess.Editing() && h.sess.EditingID == id {
		h.sess = snippet.Session{}
	}
	h.status = "deleted"
}

// resolveSnippet accepts a 1-based position in the list or a snippet id.
func (h *Host) resolveSnippet(arg string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		h.status = fmt.Sprintf("invalid snippet %q", arg)
		return 0, false
	}
	list := h.store.List()
	if n >= 1 && n <= int64(len(list)) {
		return list[n-1].ID, true
	}
	return n, true
}

// Export writes a snippet as Markdown. arg is "[N] [path]"; without N the
// editor content is exported.
func (h *Host) Export(arg string) {
	fields := strings.Fields(arg)
	id := h.sess.EditingID
	markup := h.ed.Content()
	if len(fields) > 0 {
		if _, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			ref, _ := h.resolveSnippet(fields[0])
			it, ok := h.store.Get(ref)
			if !ok {
				h.status = fmt.Sprintf("no snippet %d", ref)
				return
			}
			id, markup = it.ID, h.san.Sanitize(it.Content)
			fields = fields[1:]
		}
	}
	var path string
	if len(fields) > 0 {
		path = fields[0]
	} else {
		dir, err := h.cfg.ExportDir()
		if err != nil {
			h.status = "export failed: " + err.Error()
			return
		}
		path = filepath.Join(dir, export.FileName(id))
	}
	if err := h.md.WriteFile(path, markup); err != nil {
		logger.Error("export failed", "path", path, "error", err)
		h.status = "export failed: " + err.Error()
		return
	}
	h.status = "exported to " + path
}

// Reconfigure applies a reloaded configuration. Storage, sanitizer policy
// and the character limit keep their startup values.
func (h *Host) Reconfigure(cfg config.Config, err error) {
	if err != nil {
		h.status = "config: " + err.Error()
		return
	}
	cfg.Editor.MaxLength = h.cfg.Editor.MaxLength
	cfg.Store = h.cfg.Store
	cfg.Sanitize = h.cfg.Sanitize
	h.cfg = cfg
	h.styles = newStyles(cfg.Theme)
	h.status = "config reloaded"
}

func (h *Host) load(markup string) {
	if err := h.ed.Load(markup); err != nil {
		h.status = err.Error()
		return
	}
	h.scroll = 0
	h.move(h.doc.PlainTextLen(), false)
}

func (h *Host) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		h.scroll = max(0, h.scroll-3)
		h.freeScroll = true
	case btn&tcell.WheelDown != 0:
		h.scroll = max(0, min(h.scroll+3, len(h.view)-1))
		h.freeScroll = true
	case btn&tcell.Button1 != 0:
		if h.mode == ModePrompt {
			return
		}
		if h.paneX > 0 && x >= h.paneX {
			if !h.dragging {
				h.clickPane(y)
			}
			return
		}
		off, ok := h.offsetAt(x, y)
		if !ok {
			return
		}
		h.freeScroll = false
		h.move(off, h.dragging)
		h.dragging = true
	default:
		h.dragging = false
	}
}

func (h *Host) clickPane(y int) {
	i := y - 1
	list := h.store.List()
	if i < 0 || i >= len(list) {
		return
	}
	h.EditSnippet(list[i].ID)
}
