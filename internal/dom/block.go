package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// IndentStyle is the inline style of the blockquote used for indentation.
const IndentStyle = "margin: 0 0 0 40px; border: none; padding: 0px;"

var formatBlockTags = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// blockFor returns the block holding n. Inline content sitting directly in
// the container, a blockquote or a list is first wrapped in a <div>.
func (d *Document) blockFor(n *html.Node) *html.Node {
	x := n
	for p := n.Parent; p != nil; x, p = p, p.Parent {
		if p == d.root || isElement(p, "blockquote", "ul", "ol") {
			if isBlock(x) {
				return x
			}
			return wrapInlineRun(x)
		}
		if isBlock(p) {
			return p
		}
	}
	return nil
}

func wrapInlineRun(x *html.Node) *html.Node {
	first, last := x, x
	for first.PrevSibling != nil && !isBlock(first.PrevSibling) {
		first = first.PrevSibling
	}
	for last.NextSibling != nil && !isBlock(last.NextSibling) {
		last = last.NextSibling
	}
	div := newElement("div")
	first.Parent.InsertBefore(div, first)
	for c := first; ; {
		next := c.NextSibling
		detach(c)
		div.AppendChild(c)
		if c == last {
			break
		}
		c = next
	}
	return div
}

// nearestBlock returns the block ancestor of n without changing the tree.
func (d *Document) nearestBlock(n *html.Node) *html.Node {
	for p := n.Parent; p != nil && p != d.root; p = p.Parent {
		if isBlock(p) && !isElement(p, "ul", "ol") {
			return p
		}
	}
	return nil
}

// blocks returns the distinct blocks the range touches, in order.
func (d *Document) blocks(start, end int) []*html.Node {
	l := d.layout()
	var leaves []*html.Node
	if start == end {
		if n := l.leafAt(start, false); n != nil {
			leaves = append(leaves, n)
		}
	} else {
		for _, lf := range l.leaves {
			if lf.start < end && lf.end > start {
				leaves = append(leaves, lf.n)
			}
		}
	}
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range leaves {
		b := d.blockFor(n)
		if b == nil || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

func (d *Document) justify(align string, start, end int) bool {
	bs := d.blocks(start, end)
	for _, b := range bs {
		setStyleValue(b, "text-align", align)
	}
	return len(bs) > 0
}

// formatBlock renames the touched blocks. The tag may be given bare or in
// angle brackets.
func (d *Document) formatBlock(arg string, start, end int) bool {
	tag := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(arg), "<>")))
	if !formatBlockTags[tag] {
		return false
	}
	applied := false
	for _, b := range d.blocks(start, end) {
		if isElement(b, "li") {
			continue
		}
		rename(b, tag)
		applied = true
	}
	return applied
}

// outerBlocks maps list items to their list so indentation moves the
// whole list.
func (d *Document) outerBlocks(start, end int) []*html.Node {
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, b := range d.blocks(start, end) {
		if isElement(b, "li") && b.Parent != nil {
			b = b.Parent
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

func isIndent(n *html.Node) bool {
	if !isElement(n, "blockquote") {
		return false
	}
	v, _ := getAttr(n, "style")
	return v == IndentStyle
}

func (d *Document) indent(start, end int) bool {
	bs := d.outerBlocks(start, end)
	for _, b := range bs {
		if prev := b.PrevSibling; isIndent(prev) {
			prev.AppendChild(detach(b))
			continue
		}
		wrap(b, newElement("blockquote", "style", IndentStyle))
	}
	return len(bs) > 0
}

func (d *Document) outdent(start, end int) bool {
	applied := false
	for _, b := range d.outerBlocks(start, end) {
		q := b.Parent
		if q == nil || q == d.root || !isElement(q, "blockquote") {
			continue
		}
		splitAround(q, b)
		unwrap(q)
		applied = true
	}
	return applied
}

// toggleList turns the touched blocks into items of a list with the given
// tag, switches the type of lists they already belong to, or lifts them
// out when they all are items of such a list.
func (d *Document) toggleList(tag string, start, end int) bool {
	bs := d.blocks(start, end)
	if len(bs) == 0 {
		return false
	}
	all := true
	for _, b := range bs {
		if !isElement(b, "li") || !isElement(b.Parent, tag) {
			all = false
			break
		}
	}
	if all {
		for _, b := range bs {
			list := b.Parent
			splitAround(list, b)
			rename(b, "div")
			unwrap(list)
		}
		return true
	}
	var list *html.Node
	for _, b := range bs {
		if isElement(b, "li") {
			if !isElement(b.Parent, tag) {
				rename(b.Parent, tag)
			}
			continue
		}
		if list == nil || b.PrevSibling != list {
			list = newElement(tag)
			b.Parent.InsertBefore(list, b)
		}
		detach(b)
		if isElement(b, "p", "div") {
			rename(b, "li")
			list.AppendChild(b)
			continue
		}
		li := newElement("li")
		li.AppendChild(b)
		list.AppendChild(li)
	}
	return true
}
