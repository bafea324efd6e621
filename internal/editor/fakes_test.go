package editor

import (
	"fmt"
	"strings"
)

// trace records calls across fakes so tests can assert on ordering.
type trace struct {
	calls []string
}

func (t *trace) add(format string, args ...any) {
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
}

func (t *trace) String() string { return strings.Join(t.calls, ", ") }

type fakeRange struct {
	name      string
	collapsed bool
	detached  bool
}

func (r *fakeRange) Collapsed() bool { return r.collapsed }
func (r *fakeRange) Attached() bool  { return !r.detached }

type fakeElement struct {
	tag    string
	attrs  map[string]string
	styles map[StyleProp]string
}

func newElement(tag string, attrs ...string) *fakeElement {
	el := &fakeElement{tag: tag, attrs: map[string]string{}, styles: map[StyleProp]string{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.attrs[attrs[i]] = attrs[i+1]
	}
	return el
}

func (e *fakeElement) Tag() string { return e.tag }

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) RemoveAttr(name string) { delete(e.attrs, name) }

func (e *fakeElement) SetStyle(p StyleProp, v string) { e.styles[p] = v }

type fakeSelection struct {
	tr       *trace
	ranges   []Range
	text     string
	anchor   Element
	contains map[Element]bool
}

func (s *fakeSelection) RangeCount() int { return len(s.ranges) }

func (s *fakeSelection) RangeAt(i int) Range { return s.ranges[i] }

func (s *fakeSelection) RemoveAllRanges() {
	s.tr.add("removeAllRanges")
	s.ranges = nil
}

func (s *fakeSelection) AddRange(r Range) {
	name := ""
	if fr, ok := r.(*fakeRange); ok {
		name = fr.name
	}
	s.tr.add("addRange(%s)", name)
	s.ranges = append(s.ranges, r)
}

func (s *fakeSelection) String() string { return s.text }

func (s *fakeSelection) ContainsNode(el Element, partial bool) bool {
	return s.contains[el]
}

func (s *fakeSelection) AnchorElement() Element { return s.anchor }

type fakeSurface struct {
	tr       *trace
	html     string
	length   int
	elements map[string][]Element
	computed map[Element]Style
	reject   map[Command]bool
	onExec   func(cmd Command, arg string)
}

func (f *fakeSurface) Exec(cmd Command, arg string) bool {
	if arg == "" {
		f.tr.add("exec(%s)", cmd)
	} else {
		f.tr.add("exec(%s,%s)", cmd, arg)
	}
	if f.reject[cmd] {
		return false
	}
	if f.onExec != nil {
		f.onExec(cmd, arg)
	}
	return true
}

func (f *fakeSurface) HTML() string { return f.html }

func (f *fakeSurface) SetHTML(markup string) error {
	f.tr.add("setHTML")
	f.html = markup
	return nil
}

func (f *fakeSurface) PlainTextLen() int { return f.length }

func (f *fakeSurface) Elements(tag string) []Element { return f.elements[tag] }

func (f *fakeSurface) ComputedStyle(el Element) Style { return f.computed[el] }

type fakeHost struct {
	tr      *trace
	changes []string
	notices []string
}

func (h *fakeHost) ContentChanged(html string) {
	h.tr.add("contentChanged")
	h.changes = append(h.changes, html)
}

func (h *fakeHost) Notify(msg string) {
	h.tr.add("notify(%s)", msg)
	h.notices = append(h.notices, msg)
}

type fakeClipboard struct {
	text    string
	readErr error
	writes  []string
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, c.readErr }

func (c *fakeClipboard) WriteText(s string) error {
	c.writes = append(c.writes, s)
	c.text = s
	return nil
}

type fixture struct {
	tr   *trace
	sel  *fakeSelection
	surf *fakeSurface
	host *fakeHost
	clip *fakeClipboard
	ed   *Editor
}

func newFixture(max int) *fixture {
	tr := &trace{}
	f := &fixture{
		tr:   tr,
		sel:  &fakeSelection{tr: tr, contains: map[Element]bool{}},
		surf: &fakeSurface{tr: tr, html: "<p>x</p>", elements: map[string][]Element{}, computed: map[Element]Style{}, reject: map[Command]bool{}},
		host: &fakeHost{tr: tr},
		clip: &fakeClipboard{},
	}
	f.ed = New(f.surf, f.sel, f.host, Options{MaxLength: max, Clipboard: f.clip})
	return f
}

// selectRange makes r the live selection and captures it, as a host does
// on a selection change event.
func (f *fixture) selectRange(r *fakeRange, text string) {
	f.sel.ranges = []Range{r}
	f.sel.text = text
	f.ed.SelectionChanged()
	f.tr.calls = nil
}
