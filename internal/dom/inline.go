package dom

import (
	"golang.org/x/net/html"

	"github.com/kobzarvs/richpad/internal/editor"
)

type inlineFormat struct {
	tag  string
	tags []string
	// active reports whether a text node already shows the format.
	active func(d *Document, t *html.Node) bool
	// prop, when set, is the style property that carries the format and
	// reset is the value that switches it off inside an element that
	// implies it.
	prop  editor.StyleProp
	reset string
}

var inlineFormats = map[editor.Command]*inlineFormat{
	editor.CmdBold: {
		tag:  "b",
		tags: []string{"b", "strong"},
		active: func(d *Document, t *html.Node) bool {
			return IsBold(d.computed(t.Parent).FontWeight)
		},
		prop:  editor.FontWeight,
		reset: "normal",
	},
	editor.CmdItalic: {
		tag:  "i",
		tags: []string{"i", "em"},
		active: func(d *Document, t *html.Node) bool {
			s := d.computed(t.Parent).FontStyle
			return s == "italic" || s == "oblique"
		},
		prop:  editor.FontStyle,
		reset: "normal",
	},
	editor.CmdUnderline: {
		tag:  "u",
		tags: []string{"u", "ins"},
		active: func(d *Document, t *html.Node) bool {
			return d.decorated(t.Parent, "underline")
		},
		prop: editor.TextDecoration,
	},
	editor.CmdStrikeThrough: {
		tag:  "s",
		tags: []string{"s", "strike", "del"},
		active: func(d *Document, t *html.Node) bool {
			return d.decorated(t.Parent, "line-through")
		},
		prop: editor.TextDecoration,
	},
	editor.CmdSubscript: {
		tag:  "sub",
		tags: []string{"sub"},
		active: func(d *Document, t *html.Node) bool {
			return d.insideTag(t, "sub")
		},
	},
	editor.CmdSuperscript: {
		tag:  "sup",
		tags: []string{"sup"},
		active: func(d *Document, t *html.Node) bool {
			return d.insideTag(t, "sup")
		},
	},
}

// formattingTags are unwrapped by removeFormat. Links survive.
var formattingTags = []string{
	"b", "strong", "i", "em", "u", "ins", "s", "strike", "del",
	"sub", "sup", "font", "span", "mark", "small", "big",
}

func (d *Document) insideTag(n *html.Node, tag string) bool {
	for x := n.Parent; x != nil && x != d.root && !isBlock(x); x = x.Parent {
		if isElement(x, tag) {
			return true
		}
	}
	return false
}

// splitTextAt makes off a node boundary by splitting the text node that
// straddles it.
func (d *Document) splitTextAt(off int) {
	l := d.layout()
	for _, lf := range l.leaves {
		if !isText(lf.n) || off <= lf.start || off >= lf.end {
			continue
		}
		r := []rune(lf.n.Data)
		k := off - lf.start
		lf.n.Data = string(r[:k])
		insertAfter(newText(string(r[k:])), lf.n)
		return
	}
}

// coveredTexts splits at the range boundaries and returns the text nodes
// lying fully inside it.
func (d *Document) coveredTexts(start, end int) []*html.Node {
	d.splitTextAt(end)
	d.splitTextAt(start)
	l := d.layout()
	var out []*html.Node
	for _, lf := range l.leaves {
		if isText(lf.n) && lf.start >= start && lf.end <= end && lf.end > lf.start {
			out = append(out, lf.n)
		}
	}
	return out
}

func (d *Document) toggleInline(f *inlineFormat, start, end int) bool {
	if f == nil || start == end {
		return false
	}
	texts := d.coveredTexts(start, end)
	if len(texts) == 0 {
		return false
	}
	all := true
	for _, t := range texts {
		if !f.active(d, t) {
			all = false
			break
		}
	}
	for _, t := range texts {
		switch {
		case all:
			d.removeInline(f, t)
		case !f.active(d, t):
			wrap(t, newElement(f.tag))
		}
	}
	return true
}

// removeInline strips the format from one text node: carrying elements
// are split around it and unwrapped, carrying inline styles are dropped,
// and a reset span covers formats implied by the block.
func (d *Document) removeInline(f *inlineFormat, t *html.Node) {
	for a := t.Parent; a != nil && a != d.root && !isBlock(a); {
		next := a.Parent
		switch {
		case isElement(a, f.tags...):
			isolate(t, a)
			unwrap(a)
		case f.reset != "" && f.active(d, t) && ownsStyle(a, f.prop):
			isolate(t, a)
			setStyleValue(a, f.prop.CSSName(), "")
			if isElement(a, "span") && len(a.Attr) == 0 {
				unwrap(a)
			}
		}
		a = next
	}
	if f.reset != "" && f.active(d, t) {
		w := newElement("span")
		setStyleValue(w, f.prop.CSSName(), f.reset)
		wrap(t, w)
	}
}

func ownsStyle(n *html.Node, p editor.StyleProp) bool {
	return styleValue(n, p.CSSName()) != ""
}

// applyFont sets a <font> attribute on the selected text. A font element
// that already wraps exactly one text node is reused.
func (d *Document) applyFont(attr, value string, start, end int) bool {
	if start == end || value == "" {
		return false
	}
	texts := d.coveredTexts(start, end)
	if len(texts) == 0 {
		return false
	}
	for _, t := range texts {
		if p := t.Parent; isElement(p, "font") && p.FirstChild == t && p.LastChild == t {
			setAttr(p, attr, value)
			continue
		}
		wrap(t, newElement("font", attr, value))
	}
	return true
}

func (d *Document) applyBackground(value string, start, end int) bool {
	if start == end || value == "" {
		return false
	}
	texts := d.coveredTexts(start, end)
	if len(texts) == 0 {
		return false
	}
	for _, t := range texts {
		p := t.Parent
		if !(isElement(p, "span") && p.FirstChild == t && p.LastChild == t) {
			p = newElement("span")
			wrap(t, p)
		}
		setStyleValue(p, editor.BackgroundColor.CSSName(), value)
	}
	return true
}

func (d *Document) removeFormat(start, end int) bool {
	if start == end {
		return false
	}
	texts := d.coveredTexts(start, end)
	if len(texts) == 0 {
		return false
	}
	for _, t := range texts {
		for a := t.Parent; a != nil && a != d.root && !isBlock(a); {
			next := a.Parent
			if isElement(a, formattingTags...) {
				isolate(t, a)
				unwrap(a)
			}
			a = next
		}
	}
	return true
}
