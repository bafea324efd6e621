package dom

import (
	"golang.org/x/net/html"

	"github.com/kobzarvs/richpad/internal/editor"
	"github.com/kobzarvs/richpad/internal/logger"
)

// Point is a boundary: a rune offset inside a text node, or a child index
// inside an element.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range is a start/end boundary pair. Ranges handed out by the selection
// are copies; edits to the document do not move them.
type Range struct {
	doc        *Document
	Start, End Point
}

func (r *Range) Collapsed() bool {
	s, e := r.offsets(r.doc.layout())
	return s == e
}

func (r *Range) Attached() bool {
	return r.doc.contains(r.Start.Node) && r.doc.contains(r.End.Node)
}

func (r *Range) offsets(l *layout) (int, int) {
	s, e := l.offsetOf(r.Start), l.offsetOf(r.End)
	if s > e {
		s, e = e, s
	}
	return s, e
}

// Selection holds at most one range.
type Selection struct {
	doc *Document
	rng *Range
}

func (s *Selection) RangeCount() int {
	if s.rng == nil {
		return 0
	}
	return 1
}

func (s *Selection) RangeAt(i int) editor.Range {
	if i != 0 || s.rng == nil {
		return nil
	}
	c := *s.rng
	return &c
}

func (s *Selection) RemoveAllRanges() {
	s.rng = nil
}

// AddRange installs a range of this document. Ranges from elsewhere or
// whose nodes were removed are ignored.
func (s *Selection) AddRange(r editor.Range) {
	rr, ok := r.(*Range)
	if !ok || rr == nil || rr.doc != s.doc {
		logger.Debug("add range ignored", "reason", "foreign range")
		return
	}
	if !rr.Attached() {
		logger.Debug("add range ignored", "reason", "detached range")
		return
	}
	s.doc.flush()
	s.doc.coalesce = false
	c := *rr
	c.Start = clampPoint(c.Start)
	c.End = clampPoint(c.End)
	s.rng = &c
}

func clampPoint(p Point) Point {
	limit := childCount(p.Node)
	if isText(p.Node) {
		limit = len([]rune(p.Node.Data))
	}
	if p.Offset > limit {
		p.Offset = limit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Offsets returns the selection as plain-text offsets, start first.
func (s *Selection) Offsets() (start, end int, ok bool) {
	if s.rng == nil {
		return 0, 0, false
	}
	start, end = s.rng.offsets(s.doc.layout())
	return start, end, true
}

// Select sets the selection to the plain-text range [start, end). Equal
// offsets place a caret.
func (s *Selection) Select(start, end int) {
	s.doc.flush()
	s.doc.coalesce = false
	l := s.doc.layout()
	start, end = l.clamp(start), l.clamp(end)
	if start > end {
		start, end = end, start
	}
	if start == end {
		p := l.pointAt(s.doc.root, start, false)
		s.rng = &Range{doc: s.doc, Start: p, End: p}
		return
	}
	s.rng = &Range{
		doc:   s.doc,
		Start: l.pointAt(s.doc.root, start, true),
		End:   l.pointAt(s.doc.root, end, false),
	}
}

// SelectAll selects the whole content.
func (s *Selection) SelectAll() {
	s.Select(0, s.doc.PlainTextLen())
}

func (s *Selection) String() string {
	if s.rng == nil {
		return ""
	}
	l := s.doc.layout()
	start, end := s.rng.offsets(l)
	return string(l.text[start:end])
}

func (s *Selection) ContainsNode(el editor.Element, partial bool) bool {
	e, ok := el.(*Element)
	if !ok || e == nil || s.rng == nil || !s.doc.contains(e.n) {
		return false
	}
	l := s.doc.layout()
	start, end := s.rng.offsets(l)
	a, b := l.span(e.n)
	if partial {
		return a < end && start < b
	}
	return start <= a && b <= end
}

// AnchorElement returns the element enclosing the start of the range.
func (s *Selection) AnchorElement() editor.Element {
	if s.rng == nil {
		return nil
	}
	n := s.rng.Start.Node
	target := n
	if isText(n) {
		target = n.Parent
	}
	if target == nil || !s.doc.contains(target) {
		return nil
	}
	if target == s.doc.root {
		if isText(n) {
			return &Element{doc: s.doc, n: n}
		}
		return nil
	}
	return &Element{doc: s.doc, n: target}
}
