package dom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"

	"github.com/kobzarvs/richpad/internal/editor"
	"github.com/kobzarvs/richpad/internal/logger"
)

// Root defaults, as a browser computes them for unstyled body text.
var rootStyle = editor.Style{
	FontWeight:     "400",
	FontStyle:      "normal",
	TextDecoration: "none",
	FontSize:       "16px",
	Color:          "rgb(0, 0, 0)",
}

// FontSizes maps the legacy <font size> scale to pixels.
var FontSizes = map[string]string{
	"1": "10px",
	"2": "13px",
	"3": "16px",
	"4": "18px",
	"5": "24px",
	"6": "32px",
	"7": "48px",
}

var headingSizes = map[string]string{
	"h1": "32px",
	"h2": "24px",
	"h3": "18.72px",
	"h4": "16px",
	"h5": "13.28px",
	"h6": "10.72px",
}

func styleDecls(n *html.Node) []*css.Declaration {
	v, ok := getAttr(n, "style")
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	// The parser drops the value of an unterminated last declaration.
	if !strings.HasSuffix(v, ";") {
		v += ";"
	}
	decls, err := parser.ParseDeclarations(v)
	if err != nil {
		logger.Debug("style attribute ignored", "style", v, "err", err)
		return nil
	}
	return decls
}

// styleValue returns the last declaration of prop in the style attribute.
func styleValue(n *html.Node, prop string) string {
	v := ""
	for _, d := range styleDecls(n) {
		if strings.EqualFold(d.Property, prop) {
			v = strings.TrimSpace(d.Value)
		}
	}
	return v
}

// setStyleValue writes or, with an empty value, removes one declaration.
func setStyleValue(n *html.Node, prop, value string) {
	decls := styleDecls(n)
	out := decls[:0]
	done := false
	for _, d := range decls {
		if strings.EqualFold(d.Property, prop) {
			if value == "" || done {
				continue
			}
			d.Value = value
			done = true
		}
		out = append(out, d)
	}
	if !done && value != "" {
		out = append(out, &css.Declaration{Property: prop, Value: value})
	}
	if len(out) == 0 {
		removeAttr(n, "style")
		return
	}
	parts := make([]string, len(out))
	for i, d := range out {
		parts[i] = d.String()
	}
	setAttr(n, "style", strings.Join(parts, " "))
}

// ownValue returns what n itself declares for p: inline style first, then
// presentational attributes, then tag defaults.
func ownValue(n *html.Node, p editor.StyleProp) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if v := styleValue(n, p.CSSName()); v != "" {
		return v
	}
	switch p {
	case editor.FontWeight:
		if isElement(n, "b", "strong", "h1", "h2", "h3", "h4", "h5", "h6") {
			return "700"
		}
	case editor.FontStyle:
		if isElement(n, "i", "em") {
			return "italic"
		}
	case editor.TextDecoration:
		switch {
		case isElement(n, "u", "ins", "a"):
			return "underline"
		case isElement(n, "s", "strike", "del"):
			return "line-through"
		}
	case editor.FontSize:
		if isElement(n, "font") {
			if v, ok := getAttr(n, "size"); ok {
				if px, ok := FontSizes[strings.TrimSpace(v)]; ok {
					return px
				}
			}
		}
		if px, ok := headingSizes[n.Data]; ok {
			return px
		}
	case editor.Color:
		if isElement(n, "font") {
			if v, ok := getAttr(n, "color"); ok {
				return v
			}
		}
		if isElement(n, "a") {
			return "rgb(0, 0, 238)"
		}
	}
	return ""
}

func inherited(p editor.StyleProp) bool {
	return p != editor.TextDecoration && p != editor.BackgroundColor
}

// ComputedStyle resolves the carried properties of an element. Inherited
// properties come from the nearest declaring ancestor; text decoration
// and background are the element's own.
func (d *Document) ComputedStyle(el editor.Element) editor.Style {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return editor.Style{}
	}
	n := e.n
	if isText(n) {
		n = n.Parent
	}
	return d.computed(n)
}

func (d *Document) computed(n *html.Node) editor.Style {
	var st editor.Style
	for _, p := range editor.StyleProps {
		v := ""
		if inherited(p) {
			for x := n; x != nil && x != d.root; x = x.Parent {
				if v = ownValue(x, p); v != "" {
					break
				}
			}
		} else if n != d.root {
			v = ownValue(n, p)
		}
		if v == "" {
			v = rootStyle.Get(p)
		}
		st.Set(p, normalizeValue(p, v))
	}
	return st
}

// decorated reports whether n or an inline ancestor below its block draws
// the given decoration.
func (d *Document) decorated(n *html.Node, line string) bool {
	for x := n; x != nil && x != d.root; x = x.Parent {
		if strings.Contains(ownValue(x, editor.TextDecoration), line) {
			return true
		}
	}
	return false
}

func normalizeValue(p editor.StyleProp, v string) string {
	v = strings.TrimSpace(v)
	switch p {
	case editor.FontWeight:
		switch strings.ToLower(v) {
		case "bold", "bolder":
			return "700"
		case "normal", "lighter":
			return "400"
		}
	case editor.Color, editor.BackgroundColor:
		return normalizeColor(v)
	}
	return v
}

// normalizeColor rewrites hex colors in rgb() notation.
func normalizeColor(v string) string {
	if !strings.HasPrefix(v, "#") {
		return v
	}
	c, err := colorful.Hex(expandHex(v))
	if err != nil {
		return v
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func expandHex(v string) string {
	if len(v) != 4 {
		return v
	}
	return string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
}

// IsBold reports whether a computed font-weight draws bold glyphs.
func IsBold(weight string) bool {
	n, err := strconv.Atoi(weight)
	if err != nil {
		return weight == "bold" || weight == "bolder"
	}
	return n >= 600
}

// ParseRGB parses the rgb() notation produced by ComputedStyle.
func ParseRGB(v string) (r, g, b int32, ok bool) {
	v = normalizeColor(strings.TrimSpace(v))
	if _, err := fmt.Sscanf(v, "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
