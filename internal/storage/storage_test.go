package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kobzarvs/richpad/internal/config"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Backend{
		"file":   NewFile(t.TempDir()),
		"sqlite": db,
		"memory": NewMemory(),
	}
}

func TestBackendRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("savedContents"); err != nil || ok {
				t.Fatalf("Get on empty store = ok %v, err %v; want miss", ok, err)
			}
			if err := kv.Put("savedContents", []byte(`[{"id":1,"content":"a"}]`)); err != nil {
				t.Fatalf("Put error: %v", err)
			}
			if err := kv.Put("savedContents", []byte(`[]`)); err != nil {
				t.Fatalf("Put error: %v", err)
			}
			got, ok, err := kv.Get("savedContents")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v", ok, err)
			}
			if string(got) != "[]" {
				t.Fatalf("Get = %q, want %q", got, "[]")
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	_ = m.Put("k", buf)
	buf[0] = 'x'
	got, _, _ := m.Get("k")
	if string(got) != "abc" {
		t.Fatalf("Get = %q, want %q", got, "abc")
	}
	got[1] = 'y'
	again, _, _ := m.Get("k")
	if string(again) != "abc" {
		t.Fatalf("Get after caller mutation = %q, want %q", again, "abc")
	}
}

func TestFileLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	f := NewFile(dir)
	if err := f.Put("savedContents", []byte("[]")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "savedContents.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("file = %q, want %q", data, "[]")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	f := NewFile(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := f.Put(key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Put(%q) error = %v, want ErrInvalidKey", key, err)
		}
		if _, _, err := f.Get(key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Get(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "richpad.db")
	db, err := OpenSQLite(path, WithTable("snippets_kv"), WithBusyTimeout(1000))
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	if err := db.Put("savedContents", []byte("[1]")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(path, WithTable("snippets_kv"))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db.Close()
	got, ok, err := db.Get("savedContents")
	if err != nil || !ok || string(got) != "[1]" {
		t.Fatalf("Get = %q ok %v err %v, want %q", got, ok, err, "[1]")
	}
}

func TestSQLiteRejectsTableName(t *testing.T) {
	if _, err := OpenSQLite(":memory:", WithTable("kv; DROP TABLE x")); err == nil {
		t.Fatalf("OpenSQLite with bad table name succeeded")
	}
}

func TestOpenDefaultsUnderStateDir(t *testing.T) {
	state := t.TempDir()
	t.Setenv("RICHPAD_STATE_HOME", state)

	kv, err := Open(config.Store{Backend: config.BackendFile})
	if err != nil {
		t.Fatalf("Open file error: %v", err)
	}
	f, ok := kv.(*File)
	if !ok {
		t.Fatalf("Open file = %T, want *File", kv)
	}
	if f.Dir() != state {
		t.Fatalf("Dir = %q, want %q", f.Dir(), state)
	}

	kv, err = Open(config.Store{Backend: config.BackendSQLite})
	if err != nil {
		t.Fatalf("Open sqlite error: %v", err)
	}
	defer kv.Close()
	if _, err := os.Stat(filepath.Join(state, "richpad.db")); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	if _, err := Open(config.Store{Backend: "redis"}); err == nil {
		t.Fatalf("Open unknown backend succeeded")
	}
}
