package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richpad/internal/config"
	"github.com/kobzarvs/richpad/internal/sanitize"
	"github.com/kobzarvs/richpad/internal/snippet"
	"github.com/kobzarvs/richpad/internal/storage"
)

type harness struct {
	t     *testing.T
	h     *Host
	s     tcell.SimulationScreen
	store *snippet.Store
}

func newHarness(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(100, 20)

	n := int64(0)
	store := snippet.Open(storage.NewMemory(), snippet.WithIDFunc(func() int64 {
		n++
		return n
	}))
	h := NewHost(cfg, store, sanitize.New(config.PolicyUGC), s)
	h.Render(s)
	return &harness{t: t, h: h, s: s, store: store}
}

func (x *harness) key(k tcell.Key, r rune, mod tcell.ModMask) bool {
	quit := x.h.HandleEvent(tcell.NewEventKey(k, r, mod))
	x.h.Render(x.s)
	return quit
}

func (x *harness) typeText(text string) {
	for _, r := range text {
		x.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (x *harness) shiftLeft(n int) {
	for i := 0; i < n; i++ {
		x.key(tcell.KeyLeft, 0, tcell.ModShift)
	}
}

func (x *harness) ctrl(k tcell.Key) bool {
	return x.key(k, 0, tcell.ModCtrl)
}

func (x *harness) prompt(line string) bool {
	x.ctrl(tcell.KeyCtrlP)
	x.typeText(line)
	return x.key(tcell.KeyEnter, 0, tcell.ModNone)
}

func (x *harness) paste(text string) {
	x.h.HandleEvent(tcell.NewEventPaste(true))
	for _, r := range text {
		if r == '\n' {
			x.h.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
			continue
		}
		x.h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	x.h.HandleEvent(tcell.NewEventPaste(false))
	x.h.Render(x.s)
}

func (x *harness) row(y int) string {
	cells, w, _ := x.s.GetContents()
	var b strings.Builder
	for i := y * w; i < (y+1)*w; i++ {
		if len(cells[i].Runes) > 0 {
			b.WriteRune(cells[i].Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestTypingAndBold(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("hello world")
	if got := x.h.doc.PlainText(); got != "hello world" {
		t.Fatalf("PlainText = %q, want %q", got, "hello world")
	}
	x.shiftLeft(5)
	x.ctrl(tcell.KeyCtrlB)
	if got := x.h.Content(); got != "hello <b>world</b>" {
		t.Fatalf("Content = %q, want %q", got, "hello <b>world</b>")
	}
	if x.h.anchor != 11 || x.h.head != 6 {
		t.Fatalf("selection = %d..%d, want 11..6", x.h.anchor, x.h.head)
	}
}

func TestPromptKeepsSelection(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("hello world")
	x.shiftLeft(5)

	x.ctrl(tcell.KeyCtrlF)
	if x.h.Mode() != ModePrompt {
		t.Fatalf("mode = %v, want prompt", x.h.Mode())
	}
	if x.h.doc.Selection().RangeCount() != 0 {
		t.Fatalf("live selection kept while the prompt has focus")
	}
	if got := string(x.h.prompt); got != "font-size=" {
		t.Fatalf("prompt = %q, want %q", got, "font-size=")
	}
	x.typeText("18px")
	x.key(tcell.KeyEnter, 0, tcell.ModNone)

	content := x.h.Content()
	if !strings.Contains(content, "font-size: 18px") {
		t.Fatalf("Content = %q, want font-size: 18px", content)
	}
	if strings.Contains(content, `size="7"`) {
		t.Fatalf("Content = %q, size attribute left behind", content)
	}
	start, end, ok := x.h.doc.SelectionOffsets()
	if !ok || start != 6 || end != 11 {
		t.Fatalf("selection = %d..%d (%v), want 6..11", start, end, ok)
	}
}

func TestPromptCancelRestoresSelection(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	x.shiftLeft(2)
	x.ctrl(tcell.KeyCtrlT)
	x.key(tcell.KeyEscape, 0, tcell.ModNone)
	if x.h.Mode() != ModeEdit {
		t.Fatalf("mode = %v, want edit", x.h.Mode())
	}
	start, end, ok := x.h.doc.SelectionOffsets()
	if !ok || start != 1 || end != 3 {
		t.Fatalf("selection = %d..%d (%v), want 1..3", start, end, ok)
	}
}

func TestLinkWithoutSelectionNotifies(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	x.ctrl(tcell.KeyCtrlK)
	x.typeText("example.com")
	x.key(tcell.KeyEnter, 0, tcell.ModNone)

	if got := x.h.Status(); got != "select text first" {
		t.Fatalf("Status = %q, want %q", got, "select text first")
	}
	if strings.Contains(x.h.Content(), "<a") {
		t.Fatalf("Content = %q, link inserted", x.h.Content())
	}
	if !strings.Contains(x.row(18), "select text first") {
		t.Fatalf("status line = %q", x.row(18))
	}
}

func TestLinkWrapsSelection(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("go here")
	x.shiftLeft(4)
	x.ctrl(tcell.KeyCtrlK)
	x.typeText("example.com")
	x.key(tcell.KeyEnter, 0, tcell.ModNone)

	want := `go <a href="https://example.com" target="_blank" rel="noopener noreferrer">here</a>`
	if got := x.h.Content(); got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}

func TestSaveEditDelete(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("first")
	x.ctrl(tcell.KeyCtrlS)

	if x.store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", x.store.Len())
	}
	if x.h.doc.PlainText() != "" {
		t.Fatalf("editor not cleared after save: %q", x.h.doc.PlainText())
	}
	if !strings.Contains(x.row(1), "1 first") {
		t.Fatalf("pane row = %q, want preview", x.row(1))
	}

	x.prompt("edit 1")
	sess := x.h.Session()
	if !sess.Editing() || sess.EditingID != 1 {
		t.Fatalf("session = %+v, want edit of 1", sess)
	}
	if !strings.Contains(x.row(18), "EDIT 1") {
		t.Fatalf("status line = %q, want EDIT 1", x.row(18))
	}
	x.typeText("!")
	x.ctrl(tcell.KeyCtrlS)

	list := x.store.List()
	if len(list) != 1 || list[0].Content != "first!" {
		t.Fatalf("store = %+v, want one snippet first!", list)
	}
	if x.h.Session().Editing() {
		t.Fatalf("session not reset after save")
	}

	x.prompt("delete 1")
	if x.store.Len() != 0 {
		t.Fatalf("Len after delete = %d, want 0", x.store.Len())
	}
}

func TestEditLoadsStoredMarkup(t *testing.T) {
	x := newHarness(t, config.Default())
	raw := `<b>ok</b><script>alert(1)</script>`
	if _, err := x.store.Save(snippet.Session{}, raw); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	x.h.Render(x.s)
	if row := x.row(1); !strings.Contains(row, "1 ok") || strings.Contains(row, "alert") {
		t.Fatalf("pane row = %q, want sanitized preview", row)
	}
	if !x.h.EditSnippet(1) {
		t.Fatalf("EditSnippet failed")
	}
	if got := x.h.Content(); got != raw {
		t.Fatalf("Content = %q, want %q", got, raw)
	}
	if got := x.h.doc.PlainText(); got != "ok" {
		t.Fatalf("PlainText = %q, want %q", got, "ok")
	}
}

func TestSaveEditSaveKeepsFormatting(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("hello world")
	x.shiftLeft(5)
	x.ctrl(tcell.KeyCtrlB)
	x.key(tcell.KeyRune, 'c', tcell.ModAlt)
	x.key(tcell.KeyHome, 0, tcell.ModNone)
	for i := 0; i < 5; i++ {
		x.key(tcell.KeyRight, 0, tcell.ModShift)
	}
	x.key(tcell.KeyRune, 'v', tcell.ModAlt)
	x.ctrl(tcell.KeyCtrlS)

	first := x.store.List()[0].Content
	for _, decl := range []string{"font-weight: 700", "font-style: normal", "text-decoration: none"} {
		if !strings.Contains(first, decl) {
			t.Fatalf("saved = %q, missing %q", first, decl)
		}
	}

	x.prompt("edit 1")
	x.ctrl(tcell.KeyCtrlS)
	list := x.store.List()
	if len(list) != 1 || list[0].Content != first {
		t.Fatalf("after edit and save = %+v, want %q", list, first)
	}
}

func TestFormatPainterFromPrompt(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("hello world")
	x.shiftLeft(5)
	x.ctrl(tcell.KeyCtrlB)

	x.prompt("copy-format")
	if x.h.Status() != "" {
		t.Fatalf("Status = %q after copy-format", x.h.Status())
	}
	if got := x.h.ed.Styles.Copied().FontWeight; got != "700" {
		t.Fatalf("copied font-weight = %q, want 700", got)
	}

	x.key(tcell.KeyHome, 0, tcell.ModNone)
	for i := 0; i < 5; i++ {
		x.key(tcell.KeyRight, 0, tcell.ModShift)
	}
	x.prompt("apply-format")
	if x.h.Status() != "" {
		t.Fatalf("Status = %q after apply-format", x.h.Status())
	}
	content := x.h.Content()
	if !strings.HasPrefix(content, "<span style=\"font-weight: 700;") {
		t.Fatalf("Content = %q, want painted first word", content)
	}
	start, end, ok := x.h.doc.SelectionOffsets()
	if !ok || start != 0 || end != 5 {
		t.Fatalf("selection = %d..%d (%v), want 0..5", start, end, ok)
	}
}

func TestPasteIsClippedToBudget(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.MaxLength = 10
	x := newHarness(t, cfg)
	x.typeText("hello")
	x.paste("HELLO WORLD")
	if got := x.h.doc.PlainText(); got != "helloHELLO" {
		t.Fatalf("PlainText = %q, want %q", got, "helloHELLO")
	}
	x.typeText("x")
	if got := x.h.doc.PlainText(); got != "helloHELLO" {
		t.Fatalf("PlainText after full = %q", got)
	}
	if !strings.Contains(x.h.Status(), "limit") {
		t.Fatalf("Status = %q, want limit message", x.h.Status())
	}
	x.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	if got := x.h.doc.PlainText(); got != "helloHELL" {
		t.Fatalf("PlainText after backspace = %q", got)
	}
}

func TestCopyAndPasteThroughClipboard(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	x.shiftLeft(3)
	x.ctrl(tcell.KeyCtrlC)
	if got := string(x.s.GetClipboardData()); got != "abc" {
		t.Fatalf("clipboard = %q, want %q", got, "abc")
	}
	x.key(tcell.KeyRight, 0, tcell.ModNone)
	x.ctrl(tcell.KeyCtrlV)
	if got := x.h.doc.PlainText(); got != "abcabc" {
		t.Fatalf("PlainText = %q, want %q", got, "abcabc")
	}
}

func TestCutRemovesSelection(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abcd")
	x.shiftLeft(2)
	x.ctrl(tcell.KeyCtrlX)
	if got := x.h.doc.PlainText(); got != "ab" {
		t.Fatalf("PlainText = %q, want %q", got, "ab")
	}
	if got := string(x.s.GetClipboardData()); got != "cd" {
		t.Fatalf("clipboard = %q, want %q", got, "cd")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("ab")
	x.shiftLeft(2)
	x.ctrl(tcell.KeyCtrlB)
	x.ctrl(tcell.KeyCtrlZ)
	if got := x.h.Content(); got != "ab" {
		t.Fatalf("Content after undo = %q, want %q", got, "ab")
	}
	x.ctrl(tcell.KeyCtrlY)
	if got := x.h.Content(); got != "<b>ab</b>" {
		t.Fatalf("Content after redo = %q, want %q", got, "<b>ab</b>")
	}
}

func TestStatusShowsRemaining(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	if row := x.row(18); !strings.Contains(row, "ADD | 4997 left") {
		t.Fatalf("status line = %q", row)
	}
}

func TestQuit(t *testing.T) {
	x := newHarness(t, config.Default())
	if !x.ctrl(tcell.KeyCtrlQ) {
		t.Fatalf("ctrl+q did not quit")
	}
	x = newHarness(t, config.Default())
	if !x.prompt("quit") {
		t.Fatalf(":quit did not quit")
	}
}

func TestMouseClickMovesCaret(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("hello")
	x.h.HandleEvent(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone))
	x.h.HandleEvent(tcell.NewEventMouse(2, 0, tcell.ButtonNone, tcell.ModNone))
	if x.h.head != 2 || x.h.anchor != 2 {
		t.Fatalf("caret = %d..%d, want 2", x.h.anchor, x.h.head)
	}
	x.typeText("X")
	if got := x.h.doc.PlainText(); got != "heXllo" {
		t.Fatalf("PlainText = %q, want %q", got, "heXllo")
	}
}

func TestVerticalMovement(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	x.key(tcell.KeyEnter, 0, tcell.ModNone)
	x.typeText("defg")
	x.key(tcell.KeyUp, 0, tcell.ModNone)
	if x.h.head != 3 {
		t.Fatalf("head after up = %d, want 3", x.h.head)
	}
	x.key(tcell.KeyDown, 0, tcell.ModShift)
	if x.h.anchor != 3 || x.h.head != 7 {
		t.Fatalf("selection = %d..%d, want 3..7", x.h.anchor, x.h.head)
	}
}

func TestExportSnippet(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Dir = t.TempDir()
	x := newHarness(t, cfg)
	x.typeText("first")
	x.ctrl(tcell.KeyCtrlS)

	x.prompt("export 1")
	path := filepath.Join(cfg.Export.Dir, "snippet-1.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v (status %q)", err, x.h.Status())
	}
	if string(data) != "first\n" {
		t.Fatalf("export = %q, want %q", data, "first\n")
	}
	if x.h.Status() != "exported to "+path {
		t.Fatalf("Status = %q", x.h.Status())
	}
}

func TestExportDraftToPath(t *testing.T) {
	x := newHarness(t, config.Default())
	x.typeText("abc")
	x.shiftLeft(3)
	x.ctrl(tcell.KeyCtrlB)
	path := filepath.Join(t.TempDir(), "out.md")
	x.prompt("export " + path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v (status %q)", err, x.h.Status())
	}
	if string(data) != "**abc**\n" {
		t.Fatalf("export = %q, want %q", data, "**abc**\n")
	}
}

func TestReconfigureKeepsStartupLimits(t *testing.T) {
	x := newHarness(t, config.Default())
	next := config.Default()
	next.Editor.MaxLength = 3
	next.Keymap["ctrl+b"] = "italic"
	x.h.HandleEvent(newConfigEvent(next, nil))
	if x.h.Status() != "config reloaded" {
		t.Fatalf("Status = %q, want %q", x.h.Status(), "config reloaded")
	}
	x.typeText("abcd")
	x.shiftLeft(4)
	x.ctrl(tcell.KeyCtrlB)
	if got := x.h.Content(); got != "<i>abcd</i>" {
		t.Fatalf("Content = %q, want %q", got, "<i>abcd</i>")
	}
}
