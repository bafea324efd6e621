// Package dom is an in-memory editable surface: an HTML fragment under a
// single container element with a selection and the native editing
// primitives a browser's contenteditable offers.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kobzarvs/richpad/internal/editor"
)

const historyLimit = 100

var (
	_ editor.Surface   = (*Document)(nil)
	_ editor.Selection = (*Selection)(nil)
	_ editor.Range     = (*Range)(nil)
	_ editor.Element   = (*Element)(nil)
)

type Document struct {
	root *html.Node
	sel  *Selection
	hist *history

	// group holds the state before the first direct element edit since
	// the last command; it becomes one undo step.
	group *snapshot
	// coalesce folds element edits into the preceding font-size command.
	coalesce bool
}

func New() *Document {
	d := &Document{
		root: newElement("div"),
		hist: newHistory(historyLimit),
	}
	d.sel = &Selection{doc: d}
	return d
}

// Parse returns a document holding markup.
func Parse(markup string) (*Document, error) {
	d := New()
	if err := d.SetHTML(markup); err != nil {
		return nil, err
	}
	return d, nil
}

func parseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return nodes, nil
}

// SetHTML replaces the content. The selection and undo history are reset.
func (d *Document) SetHTML(markup string) error {
	nodes, err := parseFragment(markup)
	if err != nil {
		return err
	}
	d.replace(nodes)
	d.sel.rng = nil
	d.group = nil
	d.coalesce = false
	d.hist.reset()
	return nil
}

func (d *Document) replace(nodes []*html.Node) {
	for d.root.FirstChild != nil {
		d.root.RemoveChild(d.root.FirstChild)
	}
	for _, n := range nodes {
		d.root.AppendChild(detach(n))
	}
	dropLayoutWhitespace(d.root)
	normalize(d.root)
}

// HTML serializes the content, i.e. the container's innerHTML.
func (d *Document) HTML() string {
	var b strings.Builder
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (d *Document) Selection() *Selection { return d.sel }

// Select selects the plain-text range [start, end).
func (d *Document) Select(start, end int) { d.sel.Select(start, end) }

func (d *Document) SelectionOffsets() (start, end int, ok bool) { return d.sel.Offsets() }

func (d *Document) AnchorElement() editor.Element { return d.sel.AnchorElement() }

func (d *Document) PlainText() string {
	return string(d.layout().text)
}

func (d *Document) PlainTextLen() int {
	return d.layout().len()
}

// Elements lists elements with the given tag in document order.
func (d *Document) Elements(tag string) []editor.Element {
	var out []editor.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElement(c, tag) {
				out = append(out, &Element{doc: d, n: c})
			}
			walk(c)
		}
	}
	walk(d.root)
	return out
}

func (d *Document) contains(n *html.Node) bool {
	return n != nil && ancestorOf(d.root, n)
}

// touch opens an element edit group unless one is open or the edit
// belongs to the preceding command.
func (d *Document) touch() {
	if d.coalesce || d.group != nil {
		return
	}
	s := d.snapshot()
	d.group = &s
}

// flush records the open element edit group as one undo step.
func (d *Document) flush() {
	if d.group == nil {
		return
	}
	if d.group.html != d.HTML() {
		d.hist.record(*d.group)
	}
	d.group = nil
}

// Element is an element of the document. An Element may also stand for a
// bare text node sitting directly in the container; it reads as an
// unstyled span and becomes one on the first style write.
type Element struct {
	doc *Document
	n   *html.Node
}

func (e *Element) Node() *html.Node { return e.n }

func (e *Element) Tag() string {
	if isText(e.n) {
		return "span"
	}
	return e.n.Data
}

func (e *Element) Attr(name string) (string, bool) {
	if isText(e.n) {
		return "", false
	}
	return getAttr(e.n, name)
}

func (e *Element) RemoveAttr(name string) {
	if isText(e.n) {
		return
	}
	if _, ok := getAttr(e.n, name); !ok {
		return
	}
	e.doc.touch()
	removeAttr(e.n, name)
}

func (e *Element) SetStyle(p editor.StyleProp, value string) {
	e.doc.touch()
	if isText(e.n) {
		span := newElement("span")
		wrap(e.n, span)
		e.n = span
	}
	setStyleValue(e.n, p.CSSName(), value)
}

// Style returns one inline style declaration.
func (e *Element) Style(prop string) string {
	if isText(e.n) {
		return ""
	}
	return styleValue(e.n, prop)
}
