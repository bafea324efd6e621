package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kobzarvs/richpad/internal/config"
	"github.com/kobzarvs/richpad/internal/dom"
	"github.com/kobzarvs/richpad/internal/snippet"
)

// defaultTextColor is the computed color of unstyled text; it is drawn in
// the theme foreground instead.
const defaultTextColor = "rgb(0, 0, 0)"

type styles struct {
	base       tcell.Style
	status     tcell.Style
	command    tcell.Style
	selection  tcell.Style
	pane       tcell.Style
	paneActive tcell.Style
	link       tcell.Color
}

func newStyles(t config.Theme) styles {
	fg := parseColor(t.Foreground, tcell.ColorDefault)
	bg := parseColor(t.Background, tcell.ColorDefault)
	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	return styles{
		base:       base,
		status:     tcell.StyleDefault.Foreground(parseColor(t.StatuslineForeground, fg)).Background(parseColor(t.StatuslineBackground, bg)),
		command:    base,
		selection:  tcell.StyleDefault.Foreground(parseColor(t.SelectionForeground, fg)).Background(parseColor(t.SelectionBackground, tcell.ColorNavy)),
		pane:       base.Foreground(parseColor(t.PanelForeground, fg)),
		paneActive: base.Foreground(parseColor(t.PanelActive, fg)).Bold(true),
		link:       parseColor("#39BAE6", tcell.ColorBlue),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return fallback
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// cssColor converts a computed color to a terminal color.
func cssColor(v string) (tcell.Color, bool) {
	if r, g, b, ok := dom.ParseRGB(v); ok {
		return tcell.NewRGBColor(r, g, b), true
	}
	if v == "" {
		return tcell.ColorDefault, false
	}
	c := parseColor(v, tcell.ColorDefault)
	return c, c != tcell.ColorDefault
}

func (st styles) run(r dom.Run) tcell.Style {
	s := st.base
	if r.Style.Color != "" && r.Style.Color != defaultTextColor {
		if c, ok := cssColor(r.Style.Color); ok {
			s = s.Foreground(c)
		}
	}
	if c, ok := cssColor(r.Style.BackgroundColor); ok {
		s = s.Background(c)
	}
	if r.Link {
		s = s.Foreground(st.link)
	}
	return s.
		Bold(dom.IsBold(r.Style.FontWeight)).
		Italic(r.Style.FontStyle == "italic").
		Underline(r.Underline || r.Link).
		StrikeThrough(r.Strike)
}

type cell struct {
	r     rune
	off   int
	style tcell.Style
}

// line is one screen row of the document. end is the caret offset after
// its last cell; soft lines were wrapped and share end with the next
// line's start.
type line struct {
	cells      []cell
	start, end int
	soft       bool
	indent     int
	align      string
	x0         int
}

func (ln line) offsetAtX(x int) int {
	col := x - ln.x0
	switch {
	case col <= 0 || len(ln.cells) == 0:
		return ln.start
	case col >= len(ln.cells):
		return ln.end
	}
	return ln.cells[col].off
}

// layoutLines wraps styled runs to width.
func layoutLines(runs []dom.Run, total, width int, st styles) []line {
	if width < 1 {
		width = 1
	}
	var lines []line
	cur := line{}
	begin := func(r dom.Run) {
		if len(cur.cells) == 0 {
			cur.indent = r.Indent
			cur.align = r.Align
		}
	}
	for _, r := range runs {
		if r.Text == "\n" {
			cur.end = r.Start
			lines = append(lines, cur)
			cur = line{start: r.Start + 1}
			continue
		}
		begin(r)
		style := st.run(r)
		i := 0
		for _, ch := range r.Text {
			off := r.Start + i
			i++
			room := width - min(cur.indent*2, width/2)
			if len(cur.cells) >= room {
				cur.end = off
				cur.soft = true
				next := line{start: off, indent: cur.indent, align: cur.align}
				lines = append(lines, cur)
				cur = next
			}
			if ch == '\t' || ch == '\n' || ch == '\r' {
				ch = ' '
			}
			cur.cells = append(cur.cells, cell{r: ch, off: off, style: style})
		}
	}
	cur.end = total
	lines = append(lines, cur)
	for i := range lines {
		lines[i].x0 = lineX0(lines[i], width)
	}
	return lines
}

func lineX0(ln line, width int) int {
	indent := min(ln.indent*2, width/2)
	free := width - indent - len(ln.cells)
	if free < 0 {
		free = 0
	}
	switch ln.align {
	case "center":
		return indent + free/2
	case "right":
		return indent + free
	}
	return indent
}

// caretLine locates the head in the last rendered layout.
func (h *Host) caretLine() (li, x int, ok bool) {
	for i, ln := range h.view {
		for j, c := range ln.cells {
			if c.off == h.head {
				return i, ln.x0 + j, true
			}
		}
		if !ln.soft && ln.end == h.head {
			return i, ln.x0 + len(ln.cells), true
		}
	}
	return 0, 0, false
}

func (h *Host) offsetAt(x, y int) (int, bool) {
	if len(h.view) == 0 {
		return 0, false
	}
	li := y + h.scroll
	if li < 0 {
		return 0, false
	}
	if li >= len(h.view) {
		return h.doc.PlainTextLen(), true
	}
	return h.view[li].offsetAtX(x), true
}

func paneWidth(w int) int {
	if w < 60 {
		return 0
	}
	return min(40, w/3)
}

func (h *Host) Render(s tcell.Screen) {
	w, ht := s.Size()
	if w <= 0 || ht <= 0 {
		return
	}
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, y, ' ', nil, h.styles.base)
		}
	}

	viewH := max(ht-2, 0)
	paneW := paneWidth(w)
	editW := w - paneW
	h.paneX = editW
	if paneW == 0 {
		h.paneX = 0
	}

	h.view = layoutLines(h.doc.Runs(), h.doc.PlainTextLen(), max(editW-1, 1), h.styles)
	li, cx, caretOK := h.caretLine()
	if caretOK && !h.freeScroll {
		if li < h.scroll {
			h.scroll = li
		} else if viewH > 0 && li >= h.scroll+viewH {
			h.scroll = li - viewH + 1
		}
	}

	lo, hi := min(h.anchor, h.head), max(h.anchor, h.head)
	for row := 0; row < viewH; row++ {
		i := row + h.scroll
		if i >= len(h.view) {
			break
		}
		ln := h.view[i]
		for j, c := range ln.cells {
			style := c.style
			if lo < hi && c.off >= lo && c.off < hi {
				style = h.styles.selection
			}
			s.SetContent(ln.x0+j, row, c.r, nil, style)
		}
	}

	if paneW > 0 {
		h.renderPane(s, editW, paneW, viewH)
	}
	h.renderStatusline(s, w, ht-2)
	px := h.renderCommandline(s, w, ht-1)

	switch {
	case h.mode == ModePrompt:
		s.ShowCursor(px, ht-1)
	case caretOK && li >= h.scroll && li-h.scroll < viewH:
		s.ShowCursor(cx, li-h.scroll)
	default:
		s.HideCursor()
	}
	s.Show()
}

func (h *Host) renderPane(s tcell.Screen, x0, width, height int) {
	for y := 0; y < height; y++ {
		s.SetContent(x0, y, '│', nil, h.styles.pane)
	}
	list := h.store.List()
	drawText(s, x0+2, 0, width-2, fmt.Sprintf("Snippets (%d)", len(list)), h.styles.pane.Bold(true))
	for i, it := range list {
		y := i + 1
		if y >= height {
			break
		}
		style := h.styles.pane
		if h.sess.Editing() && h.sess.EditingID == it.ID {
			style = h.styles.paneActive
		}
		preview := snippet.TruncatedPreview(h.san.Sanitize(it.Content), h.cfg.Editor.PreviewLength)
		preview = strings.Join(strings.Fields(preview), " ")
		drawText(s, x0+2, y, width-2, fmt.Sprintf("%d %s", i+1, preview), style)
	}
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= width {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (h *Host) renderStatusline(s tcell.Screen, w, y int) {
	if y < 0 {
		return
	}
	mode := h.sess.Mode.String()
	if h.sess.Editing() {
		mode = fmt.Sprintf("%s %d", mode, h.sess.EditingID)
	}
	left := fmt.Sprintf(" %s | %d left ", mode, h.ed.Remaining())
	if h.status != "" {
		left += "| " + h.status + " "
	}
	right := fmt.Sprintf(" %d ", h.head)
	if h.anchor != h.head {
		right = fmt.Sprintf(" %d-%d ", min(h.anchor, h.head), max(h.anchor, h.head))
	}
	line := composeStatusLine(left, right, w)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		s.SetContent(x, y, r, nil, h.styles.status)
	}
}

// renderCommandline draws the prompt and returns the cursor column.
func (h *Host) renderCommandline(s tcell.Screen, w, y int) int {
	var text []rune
	cursor := 0
	if h.mode == ModePrompt {
		text = append([]rune{':'}, h.prompt...)
		cursor = h.promptCursor + 1
		if cursor >= w && w > 0 {
			shift := cursor - w + 1
			text = text[shift:]
			cursor -= shift
		}
	} else {
		text = []rune(" ctrl+p command  ctrl+s save  ctrl+q quit")
	}
	style := h.styles.command
	if h.mode != ModePrompt {
		style = h.styles.pane
	}
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		s.SetContent(x, y, r, nil, style)
	}
	return cursor
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for len(line) < width-len(rightRunes) {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}
