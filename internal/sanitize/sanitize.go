// Package sanitize turns previously saved editor markup into markup that is
// safe to display.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kobzarvs/richpad/internal/config"
)

var (
	colorRe  = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\(\d+,\s*\d+,\s*\d+(,\s*[0-9.]+)?\)|[a-zA-Z]+|inherit)$`)
	sizeRe   = regexp.MustCompile(`^(\d+(\.\d+)?(px|em|rem|pt|%)?|xx-small|x-small|small|medium|large|x-large|xx-large|xxx-large|inherit)$`)
	boxRe    = regexp.MustCompile(`^(none|auto|0|-?\d+(\.\d+)?(px|em|rem|pt|%)?)(\s+(none|auto|0|-?\d+(\.\d+)?(px|em|rem|pt|%)?)){0,3}$`)
	familyRe = regexp.MustCompile(`^[\p{L}\p{N} ,'"_-]+$`)
	legacyRe = regexp.MustCompile(`^[1-7]$`)
	weightRe = regexp.MustCompile(`^(normal|bold|bolder|lighter|[1-9]00|inherit)$`)
	slantRe  = regexp.MustCompile(`^(normal|italic|oblique|inherit)$`)
	decoRe   = regexp.MustCompile(`^(none|inherit|(underline|line-through|overline)(\s+(underline|line-through|overline)){0,2})$`)
	targetRe = regexp.MustCompile(`^_blank$`)
)

// Sanitizer applies one bluemonday policy.
type Sanitizer struct {
	p *bluemonday.Policy
}

// New builds a sanitizer for the named policy. Unknown names fall back to
// the user-content policy.
func New(policy string) *Sanitizer {
	if policy == config.PolicyStrict {
		return &Sanitizer{p: bluemonday.StrictPolicy()}
	}
	return &Sanitizer{p: editorPolicy()}
}

// editorPolicy extends the UGC policy with the markup the formatting
// commands produce: font wrappers, inline styles and new-tab links.
func editorPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("font")
	p.AllowAttrs("color").Matching(colorRe).OnElements("font")
	p.AllowAttrs("face").Matching(familyRe).OnElements("font")
	p.AllowAttrs("size").Matching(legacyRe).OnElements("font")

	p.AllowAttrs("target").Matching(targetRe).OnElements("a")
	p.AllowAttrs("rel").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")

	p.AllowStyles("color", "background-color").Matching(colorRe).Globally()
	p.AllowStyles("font-size").Matching(sizeRe).Globally()
	p.AllowStyles("font-family").Matching(familyRe).Globally()
	p.AllowStyles("font-weight").Matching(weightRe).Globally()
	p.AllowStyles("font-style").Matching(slantRe).Globally()
	p.AllowStyles("text-decoration").Matching(decoRe).Globally()
	p.AllowStyles("text-align").Matching(bluemonday.CellAlign).Globally()
	p.AllowStyles("margin", "padding").Matching(boxRe).Globally()
	p.AllowStyles("border").Matching(regexp.MustCompile(`^none$`)).Globally()

	return p
}

func (s *Sanitizer) Sanitize(raw string) string {
	return s.p.Sanitize(raw)
}
