// Package editor is the headless core of the rich-text editor: it keeps the
// selection across toolbar interactions, maps formatting intents onto the
// surface's native primitives, enforces the character budget and carries
// the paint-format clipboard.
package editor

import "github.com/kobzarvs/richpad/internal/logger"

type Options struct {
	MaxLength int
	Clipboard Clipboard
}

// Editor wires the core components around one surface. Every content
// mutation republishes the serialized markup to the host and then captures
// the post-mutation selection.
type Editor struct {
	Selection *SelectionManager
	Commands  *Dispatcher
	Budget    *Guard
	Styles    *StyleClipboard

	surf Surface
	live Selection
	host Host
}

func New(surf Surface, live Selection, host Host, opts Options) *Editor {
	sel := NewSelectionManager(live)
	guard := NewGuard(opts.MaxLength)
	return &Editor{
		Selection: sel,
		Commands:  NewDispatcher(sel, live, surf, host, guard, opts.Clipboard),
		Budget:    guard,
		Styles:    NewStyleClipboard(live, surf),
		surf:      surf,
		live:      live,
		host:      host,
	}
}

// Apply runs a toolbar intent.
func (e *Editor) Apply(in Intent) error {
	logger.Debug("apply intent", "intent", in.String())
	return e.Commands.Dispatch(in)
}

// KeyDown feeds one key press. It returns false when the budget
// suppressed the key.
func (e *Editor) KeyDown(key Key) bool {
	if !e.Budget.AllowKeystroke(key, e.surf.PlainTextLen()) {
		logger.Debug("keystroke suppressed", "key", string(key), "max", e.Budget.Max())
		return false
	}
	switch key {
	case KeyBackspace:
		e.surf.Exec(CmdDelete, "")
	case KeyDelete:
		e.surf.Exec(CmdForwardDelete, "")
	default:
		text := key.Text()
		if text == "" {
			return true
		}
		e.surf.Exec(CmdInsertText, text)
	}
	e.Input()
	return true
}

// Type inserts typed text at the selection, cut to the remaining budget.
// It returns false when nothing fit.
func (e *Editor) Type(text string) bool {
	if text == "" {
		return true
	}
	clipped := e.Budget.ClipPaste(text, e.surf.PlainTextLen())
	if clipped == "" {
		logger.Debug("typing suppressed", "max", e.Budget.Max())
		return false
	}
	e.surf.Exec(CmdInsertText, clipped)
	e.Input()
	return true
}

// Paste inserts plain text from a paste event.
func (e *Editor) Paste(text string) {
	e.Commands.Paste(text)
}

// Input republishes after the surface changed on its own (typing).
func (e *Editor) Input() {
	e.Commands.Publish()
}

// SelectionChanged records a user selection change so a later toolbar
// action can restore it.
func (e *Editor) SelectionChanged() {
	e.Selection.Capture()
}

// Load replaces the content, e.g. when a saved snippet is opened for
// editing. The old snapshot refers to removed nodes and is dropped.
func (e *Editor) Load(markup string) error {
	if err := e.surf.SetHTML(markup); err != nil {
		return err
	}
	e.Selection.Reset()
	e.Commands.Publish()
	return nil
}

// CopyFormat restores the saved selection and snapshots the style under
// it. Like the formatting commands it works after focus left the text.
func (e *Editor) CopyFormat() bool {
	e.Selection.Restore()
	return e.Styles.Copy()
}

// ApplyFormat restores the saved selection, paints the copied style and
// republishes when something was written.
func (e *Editor) ApplyFormat() bool {
	e.Selection.Restore()
	if !e.Styles.Apply() {
		return false
	}
	e.Commands.Publish()
	return true
}

// Remaining is the number of characters still available.
func (e *Editor) Remaining() int {
	return e.Budget.Remaining(e.surf.PlainTextLen())
}

// Content returns the serialized markup.
func (e *Editor) Content() string {
	return e.surf.HTML()
}
