package app

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richpad/internal/editor"
)

var hostCommands = []string{"save", "new", "edit", "delete", "export", "copy-format", "apply-format", "quit"}

// openPrompt moves focus to the command line. The terminal has no separate
// focus, so the live selection is dropped the way a browser drops it when
// a toolbar control takes focus; actions run from the prompt restore it.
func (h *Host) openPrompt(prefill string) {
	h.ed.SelectionChanged()
	h.doc.Selection().RemoveAllRanges()
	h.mode = ModePrompt
	h.prompt = []rune(prefill)
	h.promptCursor = len(h.prompt)
	h.comp = nil
}

func (h *Host) closePrompt() {
	h.mode = ModeEdit
	h.prompt = h.prompt[:0]
	h.promptCursor = 0
	h.comp = nil
}

func (h *Host) handlePrompt(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyTab {
		h.comp = nil
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.closePrompt()
		h.ed.Selection.Restore()
		h.syncCaret()
	case tcell.KeyEnter:
		line := strings.TrimSpace(string(h.prompt))
		h.closePrompt()
		h.status = ""
		quit := h.runAction(line)
		if h.doc.Selection().RangeCount() == 0 {
			h.ed.Selection.Restore()
			h.syncCaret()
		}
		return quit
	case tcell.KeyTab:
		h.complete()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.promptCursor > 0 {
			h.prompt = append(h.prompt[:h.promptCursor-1], h.prompt[h.promptCursor:]...)
			h.promptCursor--
		}
	case tcell.KeyDelete:
		if h.promptCursor < len(h.prompt) {
			h.prompt = append(h.prompt[:h.promptCursor], h.prompt[h.promptCursor+1:]...)
		}
	case tcell.KeyLeft, tcell.KeyCtrlB:
		if h.promptCursor > 0 {
			h.promptCursor--
		}
	case tcell.KeyRight, tcell.KeyCtrlF:
		if h.promptCursor < len(h.prompt) {
			h.promptCursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		h.promptCursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		h.promptCursor = len(h.prompt)
	case tcell.KeyCtrlU:
		h.prompt = h.prompt[:0]
		h.promptCursor = 0
	case tcell.KeyCtrlW:
		i := h.promptCursor
		for i > 0 && h.prompt[i-1] == ' ' {
			i--
		}
		for i > 0 && h.prompt[i-1] != ' ' && h.prompt[i-1] != '=' {
			i--
		}
		h.prompt = append(h.prompt[:i], h.prompt[h.promptCursor:]...)
		h.promptCursor = i
	case tcell.KeyRune:
		h.insertPrompt(ev.Rune())
	}
	return false
}

func (h *Host) insertPrompt(rs ...rune) {
	tail := append([]rune(nil), h.prompt[h.promptCursor:]...)
	h.prompt = append(append(h.prompt[:h.promptCursor], rs...), tail...)
	h.promptCursor += len(rs)
}

// complete replaces the prompt with the next candidate; repeated Tab
// presses cycle through them.
func (h *Host) complete() {
	if h.comp == nil {
		h.comp = h.completions(string(h.prompt[:h.promptCursor]))
		h.compIndex = 0
		if len(h.comp) == 0 {
			return
		}
	}
	if len(h.comp) == 0 {
		return
	}
	h.prompt = []rune(h.comp[h.compIndex%len(h.comp)])
	h.promptCursor = len(h.prompt)
	h.compIndex++
}

// completions lists command lines that extend prefix: host commands,
// intent names, and the configured values of intents that take one.
func (h *Host) completions(prefix string) []string {
	var out []string
	if name, partial, ok := strings.Cut(prefix, "="); ok {
		for _, v := range h.argChoices(name) {
			if strings.HasPrefix(v, partial) {
				out = append(out, name+"="+v)
			}
		}
		return out
	}
	for _, c := range hostCommands {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	for _, n := range editor.IntentNames() {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		if in, err := editor.ParseIntent(n); err == nil && in.Kind.NeedsArg() {
			n += "="
		}
		out = append(out, n)
	}
	sort.Strings(out)
	if len(out) == 1 && out[0] == prefix {
		return nil
	}
	return out
}

func (h *Host) argChoices(name string) []string {
	switch name {
	case "font-size":
		return h.cfg.Editor.FontSizes
	case "font-family":
		return h.cfg.Editor.FontFamilies
	case "heading":
		return h.cfg.Editor.Headings
	case "symbol":
		return h.cfg.Editor.Symbols
	case "fore-color", "back-color":
		return []string{"black", "red", "green", "blue", "yellow", "orange", "purple", "white"}
	case "link":
		return []string{"https://"}
	}
	return nil
}
