package dom

import (
	"github.com/kobzarvs/richpad/internal/editor"
	"github.com/kobzarvs/richpad/internal/logger"
)

// Exec runs one native primitive against the current selection, the way
// execCommand does. It reports false when the command did not apply:
// there is no selection, the command needs a range and the selection is
// collapsed, or the command is unknown.
func (d *Document) Exec(cmd editor.Command, arg string) bool {
	d.flush()
	d.coalesce = false

	switch cmd {
	case editor.CmdUndo:
		return d.undo()
	case editor.CmdRedo:
		return d.redo()
	}

	start, end, ok := d.sel.Offsets()
	if !ok {
		logger.Debug("exec without selection", "command", string(cmd))
		return false
	}

	before := d.snapshot()
	sel, applied := d.run(cmd, arg, start, end)
	if !applied {
		return false
	}
	normalize(d.root)
	d.sel.Select(sel.start, sel.end)
	if d.HTML() != before.html {
		d.hist.record(before)
	}
	if cmd == editor.CmdFontSize {
		d.coalesce = true
	}
	return true
}

// span is a resulting selection.
type span struct{ start, end int }

func (d *Document) run(cmd editor.Command, arg string, start, end int) (span, bool) {
	keep := span{start, end}
	switch cmd {
	case editor.CmdBold, editor.CmdItalic, editor.CmdUnderline, editor.CmdStrikeThrough,
		editor.CmdSubscript, editor.CmdSuperscript:
		return keep, d.toggleInline(inlineFormats[cmd], start, end)
	case editor.CmdForeColor:
		return keep, d.applyFont("color", arg, start, end)
	case editor.CmdFontName:
		return keep, d.applyFont("face", arg, start, end)
	case editor.CmdFontSize:
		return keep, d.applyFont("size", arg, start, end)
	case editor.CmdHiliteColor:
		return keep, d.applyBackground(arg, start, end)
	case editor.CmdRemoveFormat:
		return keep, d.removeFormat(start, end)
	case editor.CmdJustifyLeft:
		return keep, d.justify("left", start, end)
	case editor.CmdJustifyCenter:
		return keep, d.justify("center", start, end)
	case editor.CmdJustifyRight:
		return keep, d.justify("right", start, end)
	case editor.CmdJustifyFull:
		return keep, d.justify("justify", start, end)
	case editor.CmdFormatBlock:
		return keep, d.formatBlock(arg, start, end)
	case editor.CmdIndent:
		return keep, d.indent(start, end)
	case editor.CmdOutdent:
		return keep, d.outdent(start, end)
	case editor.CmdInsertOrderedList:
		return keep, d.toggleList("ol", start, end)
	case editor.CmdInsertUnorderedList:
		return keep, d.toggleList("ul", start, end)
	case editor.CmdInsertText:
		caret := d.insertText(arg, start, end)
		return span{caret, caret}, true
	case editor.CmdInsertHTML:
		caret, ok := d.insertHTML(arg, start, end)
		return span{caret, caret}, ok
	case editor.CmdDelete:
		caret, ok := d.deleteBackward(start, end)
		return span{caret, caret}, ok
	case editor.CmdForwardDelete:
		caret, ok := d.deleteForward(start, end)
		return span{caret, caret}, ok
	}
	logger.Debug("unknown command", "command", string(cmd))
	return keep, false
}
