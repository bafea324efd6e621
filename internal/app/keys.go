package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyName renders a key event in keymap notation: "ctrl+b", "alt+s",
// "shift+left", "a".
func keyName(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if mods&tcell.ModAlt != 0 {
			return "alt+" + strings.ToLower(name)
		}
		if mods&tcell.ModMeta != 0 {
			return "cmd+" + strings.ToLower(name)
		}
		return name
	}
	// These share codes with ctrl+h, ctrl+i, ctrl+m and ctrl+[.
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyTab:
		if mods&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	var base string
	switch ev.Key() {
	case tcell.KeyUp:
		base = "up"
	case tcell.KeyDown:
		base = "down"
	case tcell.KeyLeft:
		base = "left"
	case tcell.KeyRight:
		base = "right"
	case tcell.KeyHome:
		base = "home"
	case tcell.KeyEnd:
		base = "end"
	case tcell.KeyPgUp:
		base = "pgup"
	case tcell.KeyPgDn:
		base = "pgdn"
	case tcell.KeyDelete:
		base = "del"
	default:
		return ""
	}
	prefix := ""
	if mods&tcell.ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if mods&tcell.ModAlt != 0 {
		prefix += "alt+"
	}
	if mods&tcell.ModShift != 0 {
		prefix += "shift+"
	}
	return prefix + base
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	switch key {
	case tcell.KeyCtrlBackslash:
		return "ctrl+\\"
	case tcell.KeyCtrlRightSq:
		return "ctrl+]"
	case tcell.KeyCtrlUnderscore:
		return "ctrl+_"
	}
	return ""
}
