package editor

import "github.com/kobzarvs/richpad/internal/logger"

// StyleProp is one of the properties the paint-format tool carries.
type StyleProp uint8

const (
	FontWeight StyleProp = iota
	FontStyle
	TextDecoration
	FontSize
	Color
	BackgroundColor
	styleCount
)

// StyleProps lists every carried property.
var StyleProps = [styleCount]StyleProp{FontWeight, FontStyle, TextDecoration, FontSize, Color, BackgroundColor}

var cssNames = [styleCount]string{
	FontWeight:      "font-weight",
	FontStyle:       "font-style",
	TextDecoration:  "text-decoration",
	FontSize:        "font-size",
	Color:           "color",
	BackgroundColor: "background-color",
}

// CSSName returns the CSS property name.
func (p StyleProp) CSSName() string {
	if p < styleCount {
		return cssNames[p]
	}
	return ""
}

func (p StyleProp) String() string { return p.CSSName() }

// StylePropByName maps a CSS property name back to a StyleProp.
func StylePropByName(name string) (StyleProp, bool) {
	for i, n := range cssNames {
		if n == name {
			return StyleProp(i), true
		}
	}
	return 0, false
}

// Style is a fixed record of carried style values. Empty fields are
// absent and are not written on apply.
type Style struct {
	FontWeight      string
	FontStyle       string
	TextDecoration  string
	FontSize        string
	Color           string
	BackgroundColor string
}

func (s Style) Get(p StyleProp) string {
	switch p {
	case FontWeight:
		return s.FontWeight
	case FontStyle:
		return s.FontStyle
	case TextDecoration:
		return s.TextDecoration
	case FontSize:
		return s.FontSize
	case Color:
		return s.Color
	case BackgroundColor:
		return s.BackgroundColor
	}
	return ""
}

func (s *Style) Set(p StyleProp, v string) {
	switch p {
	case FontWeight:
		s.FontWeight = v
	case FontStyle:
		s.FontStyle = v
	case TextDecoration:
		s.TextDecoration = v
	case FontSize:
		s.FontSize = v
	case Color:
		s.Color = v
	case BackgroundColor:
		s.BackgroundColor = v
	}
}

func (s Style) IsZero() bool { return s == Style{} }

// StyleClipboard copies the computed style under the caret and paints it
// onto another element later. It works at element granularity: the
// nearest element enclosing the anchor point.
type StyleClipboard struct {
	live   Selection
	surf   Surface
	copied Style
}

func NewStyleClipboard(live Selection, surf Surface) *StyleClipboard {
	return &StyleClipboard{live: live, surf: surf}
}

// Copy snapshots the anchor element's computed style, replacing the
// previous snapshot. It reports false when there is no selection.
func (c *StyleClipboard) Copy() bool {
	el := c.anchor()
	if el == nil {
		logger.Debug("style copy skipped", "reason", "no selection")
		return false
	}
	c.copied = c.surf.ComputedStyle(el)
	return true
}

// Apply writes every copied property onto the anchor element as inline
// overrides.
func (c *StyleClipboard) Apply() bool {
	if c.copied.IsZero() {
		logger.Debug("style apply skipped", "reason", "nothing copied")
		return false
	}
	el := c.anchor()
	if el == nil {
		logger.Debug("style apply skipped", "reason", "no selection")
		return false
	}
	for _, p := range StyleProps {
		if v := c.copied.Get(p); v != "" {
			el.SetStyle(p, v)
		}
	}
	return true
}

// Copied returns the current snapshot.
func (c *StyleClipboard) Copied() Style { return c.copied }

func (c *StyleClipboard) anchor() Element {
	if c.live == nil || c.live.RangeCount() == 0 {
		return nil
	}
	return c.live.AnchorElement()
}
