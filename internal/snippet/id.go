package snippet

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kobzarvs/richpad/internal/config"
)

// IDFunc produces snippet ids. Ids are positive and fit in 53 bits so the
// persisted JSON numbers stay exact for any reader.
type IDFunc func() int64

const maxSafeID = 1<<53 - 1

var (
	clockMu sync.Mutex
	lastID  int64
)

// IDTimestamp returns the creation time in Unix milliseconds, bumped past
// the previous id when two saves land in the same millisecond.
func IDTimestamp() int64 {
	clockMu.Lock()
	defer clockMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// IDRandom draws 53 bits from a random UUID. Use it when more than one
// writer shares a store.
func IDRandom() int64 {
	u := uuid.New()
	id := int64(binary.BigEndian.Uint64(u[:8]) & maxSafeID)
	if id == 0 {
		return 1
	}
	return id
}

// IDFor maps the id-strategy config value to a generator.
func IDFor(strategy string) IDFunc {
	if strategy == config.IDRandom {
		return IDRandom
	}
	return IDTimestamp
}
