package app

// clipboardScreen is the part of tcell.Screen that reaches the terminal
// clipboard (OSC 52).
type clipboardScreen interface {
	SetClipboard([]byte)
	GetClipboard()
}

// termClipboard is a local register mirrored to the terminal clipboard.
// Terminal reads arrive asynchronously as clipboard events and replace the
// register.
type termClipboard struct {
	scr  clipboardScreen
	text string
}

func newTermClipboard(scr clipboardScreen) *termClipboard {
	c := &termClipboard{scr: scr}
	if scr != nil {
		scr.GetClipboard()
	}
	return c
}

func (c *termClipboard) ReadText() (string, error) {
	return c.text, nil
}

func (c *termClipboard) WriteText(s string) error {
	c.text = s
	if c.scr != nil {
		c.scr.SetClipboard([]byte(s))
	}
	return nil
}

func (c *termClipboard) received(data []byte) {
	if len(data) > 0 {
		c.text = string(data)
	}
}
