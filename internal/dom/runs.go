package dom

import (
	"golang.org/x/net/html"

	"github.com/kobzarvs/richpad/internal/editor"
)

// Run is a stretch of plain text with uniform presentation.
type Run struct {
	Text      string
	Start     int
	Style     editor.Style
	Underline bool
	Strike    bool
	Link      bool
	Indent    int
	Align     string
}

// Runs splits the plain-text projection into styled runs. Block
// separators and <br> come out as "\n" runs.
func (d *Document) Runs() []Run {
	l := d.layout()
	var out []Run
	prev := 0
	for _, lf := range l.leaves {
		if lf.start > prev {
			out = append(out, Run{Text: "\n", Start: prev})
		}
		prev = lf.end
		if !isText(lf.n) {
			out = append(out, Run{Text: "\n", Start: lf.start})
			continue
		}
		p := lf.n.Parent
		out = append(out, Run{
			Text:      lf.n.Data,
			Start:     lf.start,
			Style:     d.computed(p),
			Underline: d.decorated(p, "underline"),
			Strike:    d.decorated(p, "line-through"),
			Link:      d.insideTag(lf.n, "a"),
			Indent:    d.indentLevel(lf.n),
			Align:     d.alignment(lf.n),
		})
	}
	return out
}

func (d *Document) indentLevel(n *html.Node) int {
	level := 0
	for x := n.Parent; x != nil && x != d.root; x = x.Parent {
		if isElement(x, "blockquote", "ul", "ol") {
			level++
		}
	}
	return level
}

func (d *Document) alignment(n *html.Node) string {
	for x := n.Parent; x != nil && x != d.root; x = x.Parent {
		if isBlock(x) {
			if v := styleValue(x, "text-align"); v != "" {
				return v
			}
		}
	}
	return ""
}
