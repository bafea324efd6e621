package editor

import "testing"

func TestGuardAllowKeystroke(t *testing.T) {
	g := NewGuard(5000)
	cases := []struct {
		key    Key
		length int
		want   bool
	}{
		{"a", 0, true},
		{"a", 4999, true},
		{"a", 5000, false},
		{"a", 5200, false},
		{KeyEnter, 5000, false},
		{KeyBackspace, 5000, true},
		{KeyDelete, 5000, true},
		{KeyBackspace, 6000, true},
	}
	for _, tc := range cases {
		if got := g.AllowKeystroke(tc.key, tc.length); got != tc.want {
			t.Fatalf("AllowKeystroke(%q, %d) = %v, want %v", tc.key, tc.length, got, tc.want)
		}
	}
}

func TestGuardClipPaste(t *testing.T) {
	g := NewGuard(5000)
	cases := []struct {
		text   string
		length int
		want   string
	}{
		{"HELLO WORLD", 4995, "HELLO"},
		{"HELLO", 0, "HELLO"},
		{"HELLO", 4995, "HELLO"},
		{"HELLO", 4996, "HELL"},
		{"anything", 5000, ""},
		{"anything", 5001, ""},
		{"äöü€x", 4997, "äöü"},
		{"", 10, ""},
	}
	for _, tc := range cases {
		if got := g.ClipPaste(tc.text, tc.length); got != tc.want {
			t.Fatalf("ClipPaste(%q, %d) = %q, want %q", tc.text, tc.length, got, tc.want)
		}
	}
}

func TestGuardDefaultsAndRemaining(t *testing.T) {
	g := NewGuard(0)
	if g.Max() != DefaultMaxLength {
		t.Fatalf("Max = %d, want %d", g.Max(), DefaultMaxLength)
	}
	if got := g.Remaining(4990); got != 10 {
		t.Fatalf("Remaining = %d, want 10", got)
	}
	if got := g.Remaining(5010); got != -10 {
		t.Fatalf("Remaining = %d, want -10", got)
	}
}

func TestKeyText(t *testing.T) {
	cases := map[Key]string{
		"a":          "a",
		"é":          "é",
		KeyEnter:     "\n",
		KeyBackspace: "",
		"ArrowLeft":  "",
	}
	for k, want := range cases {
		if got := k.Text(); got != want {
			t.Fatalf("Key(%q).Text() = %q, want %q", k, got, want)
		}
	}
}
