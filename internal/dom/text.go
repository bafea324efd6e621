package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// insertNodes places nodes at the caret offset, splitting a text node when
// the caret is inside one.
func (d *Document) insertNodes(off int, nodes []*html.Node) {
	p := d.layout().pointAt(d.root, off, false)
	parent, ref := p.Node, (*html.Node)(nil)
	if isText(p.Node) {
		r := []rune(p.Node.Data)
		parent = p.Node.Parent
		switch {
		case p.Offset <= 0:
			ref = p.Node
		case p.Offset >= len(r):
			ref = p.Node.NextSibling
		default:
			p.Node.Data = string(r[:p.Offset])
			tail := newText(string(r[p.Offset:]))
			insertAfter(tail, p.Node)
			ref = tail
		}
	} else {
		ref = childAt(parent, p.Offset)
	}
	for _, n := range nodes {
		parent.InsertBefore(detach(n), ref)
	}
}

// textNodes converts plain text to text nodes with <br> for newlines.
func textNodes(s string) []*html.Node {
	var out []*html.Node
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out = append(out, newElement("br"))
		}
		if line != "" {
			out = append(out, newText(line))
		}
	}
	return out
}

// insertText replaces the selection with s and returns the caret after it.
func (d *Document) insertText(s string, start, end int) int {
	start = d.deleteRange(start, end)
	normalize(d.root)
	n := d.PlainTextLen()
	d.insertNodes(start, textNodes(s))
	return start + d.PlainTextLen() - n
}

func (d *Document) insertHTML(markup string, start, end int) (int, bool) {
	nodes, err := parseFragment(markup)
	if err != nil {
		return start, false
	}
	start = d.deleteRange(start, end)
	normalize(d.root)
	n := d.PlainTextLen()
	d.insertNodes(start, nodes)
	return start + d.PlainTextLen() - n, true
}

// deleteRange removes the content between start and end and joins the
// blocks at both edges. It returns the collapsed caret.
func (d *Document) deleteRange(start, end int) int {
	if start >= end {
		return start
	}
	d.splitTextAt(end)
	d.splitTextAt(start)
	l := d.layout()

	var head, tail *html.Node
	if n := l.leafAt(start, false); n != nil {
		head = d.nearestBlock(n)
	}
	if n := l.leafAt(end, true); n != nil {
		tail = d.nearestBlock(n)
	}

	for _, lf := range l.leaves {
		if lf.start >= start && lf.end <= end && lf.end > lf.start {
			detach(lf.n)
		}
	}

	switch {
	case head != nil && tail != nil && head != tail && !ancestorOf(head, tail) && !ancestorOf(tail, head):
		for tail.FirstChild != nil {
			c := tail.FirstChild
			tail.RemoveChild(c)
			head.AppendChild(c)
		}
		detach(tail)
	case head == nil && tail != nil && tail.Parent == d.root:
		unwrap(tail)
	}
	return start
}

func (d *Document) deleteBackward(start, end int) (int, bool) {
	if start != end {
		return d.deleteRange(start, end), true
	}
	if start == 0 {
		return 0, false
	}
	return d.deleteRange(start-1, start), true
}

func (d *Document) deleteForward(start, end int) (int, bool) {
	if start != end {
		return d.deleteRange(start, end), true
	}
	if start >= d.PlainTextLen() {
		return start, false
	}
	return d.deleteRange(start, start+1), true
}
