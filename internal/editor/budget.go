package editor

import "unicode/utf8"

const DefaultMaxLength = 5000

// Key is a keyboard key name as the host reports it ("a", "Enter",
// "Backspace", "ArrowLeft", ...).
type Key string

const (
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyEnter     Key = "Enter"
)

// IsDeletion reports whether the key shrinks content.
func (k Key) IsDeletion() bool {
	return k == KeyBackspace || k == KeyDelete
}

// Text returns the characters the key inserts, or "" for keys that do not
// insert anything.
func (k Key) Text() string {
	if k == KeyEnter {
		return "\n"
	}
	if utf8.RuneCountInString(string(k)) == 1 {
		return string(k)
	}
	return ""
}

// Guard enforces the character budget on typing and pasting. Lengths are
// plain-text character counts, markup excluded.
type Guard struct {
	max int
}

func NewGuard(max int) *Guard {
	if max <= 0 {
		max = DefaultMaxLength
	}
	return &Guard{max: max}
}

func (g *Guard) Max() int { return g.max }

// AllowKeystroke reports whether a key may reach the surface. Deletion keys
// always pass so a full editor can still be shrunk.
func (g *Guard) AllowKeystroke(key Key, currentLength int) bool {
	if key.IsDeletion() {
		return true
	}
	return currentLength < g.max
}

// ClipPaste returns the prefix of text that fits in the remaining room.
// The rest is dropped silently.
func (g *Guard) ClipPaste(text string, currentLength int) string {
	room := g.max - currentLength
	if room <= 0 {
		return ""
	}
	i := 0
	for n := 0; i < len(text); n++ {
		if n == room {
			return text[:i]
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text
}

// Remaining is the number of characters still available.
func (g *Guard) Remaining(currentLength int) int {
	return g.max - currentLength
}
