package snippet

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kobzarvs/richpad/internal/storage"
)

type failingKV struct {
	getErr error
	putErr error
	data   []byte
	puts   int
}

func (f *failingKV) Get(string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.data, f.data != nil, nil
}

func (f *failingKV) Put(_ string, v []byte) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.data = v
	return nil
}

func counter() IDFunc {
	n := int64(0)
	return func() int64 {
		n++
		return n
	}
}

func persisted(t *testing.T, kv storage.KV) []Snippet {
	t.Helper()
	data, ok, err := kv.Get(DefaultKey)
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	var out []Snippet
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return out
}

func TestSaveAddThenEditKeepsOneSnippet(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv, WithIDFunc(counter()))

	sess, err := s.Save(Session{}, "<b>first</b>")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if sess.Editing() {
		t.Fatalf("session after save = %+v, want add mode", sess)
	}
	items := s.List()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	id := items[0].ID

	sess, content, ok := s.Edit(sess, id)
	if !ok || content != "<b>first</b>" {
		t.Fatalf("Edit = %q, %v", content, ok)
	}
	if !sess.Editing() || sess.EditingID != id {
		t.Fatalf("session = %+v, want edit of %d", sess, id)
	}

	sess, err = s.Save(sess, "<i>second</i>")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if sess != (Session{}) {
		t.Fatalf("session = %+v, want reset to add", sess)
	}
	got := persisted(t, kv)
	if len(got) != 1 || got[0].ID != id || got[0].Content != "<i>second</i>" {
		t.Fatalf("persisted = %+v", got)
	}
}

func TestPersistedFormat(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv, WithIDFunc(func() int64 { return 1700000000000 }))
	if _, err := s.Save(Session{}, "hi"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, _, _ := kv.Get(DefaultKey)
	want := `[{"id":1700000000000,"content":"hi"}]`
	if string(data) != want {
		t.Fatalf("persisted = %s, want %s", data, want)
	}
}

func TestEditUnknownIDIsNoop(t *testing.T) {
	s := Open(storage.NewMemory())
	before := Session{Mode: ModeEdit, EditingID: 7}
	sess, content, ok := s.Edit(before, 42)
	if ok || content != "" || sess != before {
		t.Fatalf("Edit unknown = %+v %q %v", sess, content, ok)
	}
}

func TestSaveEditOfVanishedIDAppends(t *testing.T) {
	s := Open(storage.NewMemory(), WithIDFunc(counter()))
	_, _ = s.Save(Session{}, "a")
	sess, err := s.Save(Session{Mode: ModeEdit, EditingID: 99}, "b")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if sess.Editing() {
		t.Fatalf("session not reset")
	}
	items := s.List()
	if len(items) != 2 || items[1].Content != "b" || items[1].ID == 99 {
		t.Fatalf("items = %+v", items)
	}
}

func TestDelete(t *testing.T) {
	kv := &failingKV{}
	s := Open(kv, WithIDFunc(counter()))
	_, _ = s.Save(Session{}, "a")
	_, _ = s.Save(Session{}, "b")
	puts := kv.puts

	if err := s.Delete(404); err != nil {
		t.Fatalf("Delete unknown error: %v", err)
	}
	if kv.puts != puts {
		t.Fatalf("Delete unknown wrote to the store")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if kv.puts != puts+1 {
		t.Fatalf("puts = %d, want %d", kv.puts, puts+1)
	}
	if string(kv.data) != `[{"id":2,"content":"b"}]` {
		t.Fatalf("persisted = %s", kv.data)
	}

	_ = s.Delete(2)
	if string(kv.data) != `[]` {
		t.Fatalf("persisted after last delete = %s, want []", kv.data)
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	boom := errors.New("disk full")
	kv := &failingKV{putErr: boom}
	s := Open(kv)

	sess, err := s.Save(Session{Mode: ModeEdit, EditingID: 5}, "x")
	if !errors.Is(err, boom) {
		t.Fatalf("Save error = %v, want %v", err, boom)
	}
	if !strings.HasPrefix(err.Error(), "snippet: persist:") {
		t.Fatalf("Save error = %q, want snippet: persist prefix", err)
	}
	if sess.Editing() {
		t.Fatalf("session not reset after failed save")
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	cases := map[string]*failingKV{
		"read error":  {getErr: errors.New("io")},
		"unparsable":  {data: []byte("{not json")},
		"wrong shape": {data: []byte(`{"id":1}`)},
		"null":        {data: []byte("null")},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			s := Open(kv)
			if s.Len() != 0 {
				t.Fatalf("Len = %d, want 0", s.Len())
			}
		})
	}
}

func TestLoadExisting(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Put("custom", []byte(`[{"id":10,"content":"<p>x</p>"},{"id":11,"content":"y"}]`))
	s := Open(kv, WithKey("custom"))
	got, ok := s.Get(11)
	if !ok || got.Content != "y" {
		t.Fatalf("Get(11) = %+v, %v", got, ok)
	}
	if _, ok := s.Get(12); ok {
		t.Fatalf("Get(12) found")
	}
}

func TestFreshIDSkipsCollisions(t *testing.T) {
	ids := []int64{5, 5, 0, 6}
	i := 0
	s := Open(storage.NewMemory(), WithIDFunc(func() int64 {
		id := ids[i]
		i++
		return id
	}))
	_, _ = s.Save(Session{}, "a")
	_, _ = s.Save(Session{}, "b")
	items := s.List()
	if items[0].ID != 5 || items[1].ID != 6 {
		t.Fatalf("ids = %d, %d; want 5, 6", items[0].ID, items[1].ID)
	}
}
