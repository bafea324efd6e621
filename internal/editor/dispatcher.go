package editor

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/kobzarvs/richpad/internal/logger"
)

// NoticeError is a failure the user is told about; nothing was mutated.
type NoticeError struct {
	Msg string
}

func (e *NoticeError) Error() string { return e.Msg }

var ErrSelectTextFirst = &NoticeError{Msg: "select text first"}

// fontSizeMarker is the largest size the native font-size primitive
// accepts. Its wrappers are rewritten to the requested size.
const fontSizeMarker = "7"

// Dispatcher turns intents into restore, mutate, republish sequences.
type Dispatcher struct {
	sel   *SelectionManager
	live  Selection
	surf  Surface
	host  Host
	guard *Guard
	clip  Clipboard
}

func NewDispatcher(sel *SelectionManager, live Selection, surf Surface, host Host, guard *Guard, clip Clipboard) *Dispatcher {
	return &Dispatcher{sel: sel, live: live, surf: surf, host: host, guard: guard, clip: clip}
}

// Dispatch runs one intent. Intents whose argument is required but empty
// are ignored, like an unset toolbar select.
func (d *Dispatcher) Dispatch(in Intent) error {
	if in.Kind.NeedsArg() && in.Arg == "" {
		logger.Debug("intent ignored", "intent", in.Kind.String(), "reason", "empty argument")
		return nil
	}
	if in.Kind == IntentPaste {
		return d.pasteFromClipboard()
	}

	d.sel.Restore()

	switch in.Kind {
	case IntentFontSize:
		d.fontSize(in.Arg)
	case IntentLink:
		if err := d.link(in.Arg); err != nil {
			return err
		}
	case IntentSymbol:
		d.exec(CmdInsertText, in.Arg)
	case IntentCut, IntentCopy:
		if err := d.copySelection(in.Kind == IntentCut); err != nil {
			return err
		}
		if in.Kind == IntentCopy {
			// Nothing changed; keep the caret where it is.
			d.sel.Capture()
			return nil
		}
	default:
		cmd, ok := nativeCommands[in.Kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
		}
		d.exec(cmd, in.Arg)
	}

	d.publish()
	return nil
}

// Paste inserts clipboard text as plain text, cut to the remaining budget.
func (d *Dispatcher) Paste(text string) {
	clipped := d.guard.ClipPaste(text, d.surf.PlainTextLen())
	if clipped == "" {
		logger.Debug("paste ignored", "reason", "no room", "length", len(text))
		return
	}
	d.sel.Restore()
	d.exec(CmdInsertText, clipped)
	d.publish()
}

// Publish emits the current content and captures the post-mutation caret.
func (d *Dispatcher) Publish() {
	d.publish()
}

func (d *Dispatcher) publish() {
	if d.host != nil {
		d.host.ContentChanged(d.surf.HTML())
	}
	d.sel.Capture()
}

func (d *Dispatcher) exec(cmd Command, arg string) bool {
	if !d.surf.Exec(cmd, arg) {
		logger.Debug("native command did not apply", "command", string(cmd), "arg", arg)
		return false
	}
	return true
}

// fontSize applies the largest native size, then rewrites the newest
// wrapper inside the selection to the requested size. With several
// wrappers only the last one in document order is adjusted.
func (d *Dispatcher) fontSize(size string) {
	if !d.exec(CmdFontSize, fontSizeMarker) {
		return
	}
	fonts := d.surf.Elements("font")
	for i := len(fonts) - 1; i >= 0; i-- {
		el := fonts[i]
		if v, ok := el.Attr("size"); !ok || v != fontSizeMarker {
			continue
		}
		if !d.live.ContainsNode(el, true) {
			continue
		}
		el.RemoveAttr("size")
		el.SetStyle(FontSize, size)
		return
	}
	logger.Debug("font size wrapper not found", "size", size)
}

func (d *Dispatcher) link(rawURL string) error {
	text := d.live.String()
	if d.live.RangeCount() == 0 || text == "" {
		d.notify(ErrSelectTextFirst)
		return ErrSelectTextFirst
	}
	// A selection across blocks reads with newlines; they stay line breaks
	// inside the anchor.
	label := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	markup := fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		html.EscapeString(NormalizeURL(rawURL)), label)
	d.exec(CmdInsertHTML, markup)
	return nil
}

func (d *Dispatcher) copySelection(cut bool) error {
	if d.clip == nil {
		return nil
	}
	text := d.live.String()
	if text == "" {
		return nil
	}
	if err := d.clip.WriteText(text); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	if cut {
		d.exec(CmdDelete, "")
	}
	return nil
}

func (d *Dispatcher) pasteFromClipboard() error {
	if d.clip == nil {
		return nil
	}
	text, err := d.clip.ReadText()
	if err != nil {
		return fmt.Errorf("clipboard: read: %w", err)
	}
	d.Paste(text)
	return nil
}

func (d *Dispatcher) notify(err error) {
	var notice *NoticeError
	if d.host != nil && errors.As(err, &notice) {
		d.host.Notify(notice.Msg)
	}
}

// NormalizeURL prefixes https:// unless the URL already names http or https.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
