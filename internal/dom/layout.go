package dom

import "golang.org/x/net/html"

// leaf is a run of the plain-text projection backed by one node: a text
// node, or a <br> counting as one newline.
type leaf struct {
	n          *html.Node
	start, end int
}

// layout maps the tree onto plain-text offsets. Blocks are separated by a
// single newline that belongs to no node, the way innerText reads.
type layout struct {
	text   []rune
	leaves []leaf
	index  map[*html.Node]int
	order  map[*html.Node]int
	after  map[*html.Node]int
}

func (d *Document) layout() *layout {
	l := &layout{
		index: make(map[*html.Node]int),
		order: make(map[*html.Node]int),
		after: make(map[*html.Node]int),
	}
	seq := 0
	pending := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			l.order[c] = seq
			seq++
			switch {
			case isHidden(c):
			case isText(c):
				if c.Data != "" {
					l.emit(c, []rune(c.Data), &pending)
				}
			case isElement(c, "br"):
				l.emit(c, []rune{'\n'}, &pending)
			case isBlock(c):
				pending = true
				walk(c)
				pending = true
			case c.Type == html.ElementNode:
				walk(c)
			}
			l.after[c] = seq
		}
	}
	l.order[d.root] = seq
	seq++
	walk(d.root)
	l.after[d.root] = seq
	return l
}

func (l *layout) emit(n *html.Node, runes []rune, pending *bool) {
	if *pending && len(l.text) > 0 {
		l.text = append(l.text, '\n')
	}
	*pending = false
	start := len(l.text)
	l.text = append(l.text, runes...)
	l.index[n] = len(l.leaves)
	l.leaves = append(l.leaves, leaf{n: n, start: start, end: len(l.text)})
}

func (l *layout) len() int { return len(l.text) }

func (l *layout) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if off > len(l.text) {
		return len(l.text)
	}
	return off
}

// offsetOf converts a boundary point to a plain-text offset.
func (l *layout) offsetOf(p Point) int {
	if p.Node == nil {
		return 0
	}
	if isText(p.Node) {
		if i, ok := l.index[p.Node]; ok {
			lf := l.leaves[i]
			off := p.Offset
			if off < 0 {
				off = 0
			}
			if off > lf.end-lf.start {
				off = lf.end - lf.start
			}
			return lf.start + off
		}
		o, ok := l.order[p.Node]
		if !ok {
			return 0
		}
		return l.before(o)
	}
	var o int
	if c := childAt(p.Node, p.Offset); c != nil {
		o = l.order[c]
	} else if a, ok := l.after[p.Node]; ok {
		o = a
	}
	return l.before(o)
}

// before returns the end of the last leaf preceding the given preorder
// position.
func (l *layout) before(order int) int {
	pos := 0
	for _, lf := range l.leaves {
		if l.order[lf.n] >= order {
			break
		}
		pos = lf.end
	}
	return pos
}

type candidate struct {
	leaf  leaf
	point Point
}

// candidates lists the boundary points that sit at off, in document
// order. Adjacent leaves share an offset, so there may be two.
func (l *layout) candidates(off int) []candidate {
	var out []candidate
	for _, lf := range l.leaves {
		if lf.start > off {
			break
		}
		if off > lf.end {
			continue
		}
		if isText(lf.n) {
			out = append(out, candidate{lf, Point{Node: lf.n, Offset: off - lf.start}})
			continue
		}
		idx := indexOf(lf.n)
		if off == lf.start {
			out = append(out, candidate{lf, Point{Node: lf.n.Parent, Offset: idx}})
		}
		if off == lf.end {
			out = append(out, candidate{lf, Point{Node: lf.n.Parent, Offset: idx + 1}})
		}
	}
	return out
}

// pointAt converts an offset back to a boundary point. At a shared
// boundary preferNext picks the following node, which is what a range
// start wants; carets and range ends stay with the preceding node.
func (l *layout) pointAt(root *html.Node, off int, preferNext bool) Point {
	cands := l.candidates(l.clamp(off))
	if len(cands) == 0 {
		return Point{Node: root, Offset: childCount(root)}
	}
	if preferNext {
		return cands[len(cands)-1].point
	}
	return cands[0].point
}

// leafAt returns the node owning the boundary at off, or nil.
func (l *layout) leafAt(off int, preferNext bool) *html.Node {
	cands := l.candidates(l.clamp(off))
	if len(cands) == 0 {
		return nil
	}
	if preferNext {
		return cands[len(cands)-1].leaf.n
	}
	return cands[0].leaf.n
}

// span returns the offsets a node covers.
func (l *layout) span(n *html.Node) (int, int) {
	if n.Parent == nil {
		return 0, l.len()
	}
	i := indexOf(n)
	return l.offsetOf(Point{Node: n.Parent, Offset: i}), l.offsetOf(Point{Node: n.Parent, Offset: i + 1})
}
