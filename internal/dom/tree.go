package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
}

// containerTags hold blocks rather than inline content.
var containerTags = map[string]bool{"blockquote": true, "ul": true, "ol": true}

// hiddenTags never render, so they take no part in the plain text.
var hiddenTags = map[string]bool{"script": true, "style": true, "template": true, "noscript": true, "head": true, "title": true}

var voidTags = map[string]bool{"br": true, "img": true, "hr": true, "input": true, "wbr": true}

func isElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

func isBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockTags[n.Data]
}

func isHidden(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && hiddenTags[n.Data]
}

func isText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

func newElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		setAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func shallowClone(n *html.Node) *html.Node {
	return &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
}

func rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func indexOf(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

func childCount(n *html.Node) int {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		i++
	}
	return i
}

func ancestorOf(a, n *html.Node) bool {
	for x := n; x != nil; x = x.Parent {
		if x == a {
			return true
		}
	}
	return false
}

func detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// insertAfter places n right after ref.
func insertAfter(n, ref *html.Node) {
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// wrap replaces n with w and moves n inside it.
func wrap(n, w *html.Node) {
	n.Parent.InsertBefore(w, n)
	detach(n)
	w.AppendChild(n)
}

// unwrap replaces e with its children.
func unwrap(e *html.Node) {
	p := e.Parent
	for e.FirstChild != nil {
		c := e.FirstChild
		e.RemoveChild(c)
		p.InsertBefore(c, e)
	}
	p.RemoveChild(e)
}

// splitAround splits e so that c is its only child. Siblings before and
// after c move into shallow clones of e placed around it.
func splitAround(e, c *html.Node) {
	if c.PrevSibling != nil {
		before := shallowClone(e)
		for e.FirstChild != c {
			x := e.FirstChild
			e.RemoveChild(x)
			before.AppendChild(x)
		}
		e.Parent.InsertBefore(before, e)
	}
	if c.NextSibling != nil {
		after := shallowClone(e)
		for c.NextSibling != nil {
			x := c.NextSibling
			e.RemoveChild(x)
			after.AppendChild(x)
		}
		insertAfter(after, e)
	}
}

// isolate splits every ancestor of n up to and including top so that top
// contains only the branch leading to n.
func isolate(n, top *html.Node) {
	for x := n; x != top && x.Parent != nil; x = x.Parent {
		splitAround(x.Parent, x)
		if x.Parent == top {
			return
		}
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func sameAttrs(a, b *html.Node) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, x := range a.Attr {
		v, ok := getAttr(b, x.Key)
		if !ok || v != x.Val {
			return false
		}
	}
	return true
}

// normalize drops empty elements and empty text, then merges adjacent
// text nodes and adjacent inline elements with identical attributes.
func normalize(n *html.Node) {
	prune(n)
	merge(n)
}

func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			prune(c)
			if c.FirstChild == nil && !voidTags[c.Data] {
				n.RemoveChild(c)
			}
		case html.TextNode:
			if c.Data == "" {
				n.RemoveChild(c)
			}
		case html.CommentNode:
			n.RemoveChild(c)
		}
		c = next
	}
}

func merge(n *html.Node) {
	for c := n.FirstChild; c != nil && c.NextSibling != nil; {
		nx := c.NextSibling
		switch {
		case isText(c) && isText(nx):
			c.Data += nx.Data
			n.RemoveChild(nx)
		case mergeable(c, nx):
			for nx.FirstChild != nil {
				x := nx.FirstChild
				nx.RemoveChild(x)
				c.AppendChild(x)
			}
			n.RemoveChild(nx)
		default:
			c = nx
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			merge(c)
		}
	}
}

func mergeable(a, b *html.Node) bool {
	if a.Type != html.ElementNode || b.Type != html.ElementNode {
		return false
	}
	if a.Data != b.Data || isBlock(a) || voidTags[a.Data] {
		return false
	}
	return sameAttrs(a, b)
}

// dropLayoutWhitespace removes whitespace-only text between blocks, the
// indentation a serializer leaves behind.
func dropLayoutWhitespace(n *html.Node) {
	hasBlock := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			hasBlock = true
			break
		}
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if hasBlock && isText(c) && strings.TrimSpace(c.Data) == "" {
			n.RemoveChild(c)
		} else if c.Type == html.ElementNode {
			dropLayoutWhitespace(c)
		}
		c = next
	}
}
