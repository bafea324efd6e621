// Package snippet keeps the collection of saved editor contents and the
// add/edit session that decides what a save does.
package snippet

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kobzarvs/richpad/internal/logger"
	"github.com/kobzarvs/richpad/internal/storage"
)

const DefaultKey = "savedContents"

type Snippet struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "ADD"
}

// Session says whether the next save appends or replaces. The zero value
// is add mode.
type Session struct {
	Mode      Mode
	EditingID int64
}

func (s Session) Editing() bool { return s.Mode == ModeEdit }

type Option func(*Store)

// WithKey sets the persistence key. Default: "savedContents".
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDFunc sets the id generator for new snippets. Default: IDTimestamp.
func WithIDFunc(f IDFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// Store is the in-memory collection, written through to a KV after every
// change.
type Store struct {
	mu    sync.RWMutex
	kv    storage.KV
	key   string
	newID IDFunc
	items []Snippet
}

// Open reads the collection from kv. A missing or unreadable value starts
// an empty collection.
func Open(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey, newID: IDTimestamp}
	for _, o := range opts {
		o(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		logger.Warn("snippet: load failed, starting empty", "key", s.key, "error", err)
		return
	}
	if !ok || len(data) == 0 {
		return
	}
	var items []Snippet
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("snippet: unparsable collection, starting empty", "key", s.key, "error", err)
		return
	}
	s.items = items
	logger.Debug("snippet: loaded", "count", len(items))
}

func (s *Store) persist() error {
	items := s.items
	if items == nil {
		items = []Snippet{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("snippet: encode: %w", err)
	}
	if err := s.kv.Put(s.key, data); err != nil {
		logger.Error("snippet: write-through failed", "key", s.key, "error", err)
		return fmt.Errorf("snippet: persist: %w", err)
	}
	return nil
}

func (s *Store) index(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) freshID() int64 {
	id := s.newID()
	for id == 0 || s.index(id) >= 0 {
		id = s.newID()
	}
	return id
}

// Save replaces the snippet being edited or appends a new one, then writes
// the whole collection. The returned session is always add mode, also when
// the write fails.
func (s *Store) Save(sess Session, content string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	if sess.Editing() {
		i = s.index(sess.EditingID)
		if i < 0 {
			logger.Debug("snippet: edited id vanished, appending", "id", sess.EditingID)
		}
	}
	if i >= 0 {
		s.items[i].Content = content
	} else {
		s.items = append(s.items, Snippet{ID: s.freshID(), Content: content})
	}
	return Session{}, s.persist()
}

// Edit binds the session to id and returns the snippet's content. An
// unknown id leaves the session as it was.
func (s *Store) Edit(sess Session, id int64) (Session, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		logger.Debug("snippet: edit of unknown id", "id", id)
		return sess, "", false
	}
	return Session{Mode: ModeEdit, EditingID: id}, s.items[i].Content, true
}

// Delete removes id and writes the collection. An unknown id writes
// nothing.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		logger.Debug("snippet: delete of unknown id", "id", id)
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

func (s *Store) List() []Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Snippet(nil), s.items...)
}

func (s *Store) Get(id int64) (Snippet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return Snippet{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
