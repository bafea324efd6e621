// Package storage provides the key/value persistence backends snippets
// are written through to.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/kobzarvs/richpad/internal/config"
)

// KV is a durable string-keyed byte store. Put replaces the whole value.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Backend is a KV holding resources that must be released.
type Backend interface {
	KV
	Close() error
}

var ErrInvalidKey = errors.New("storage: invalid key")

var safeKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

func validKey(key string) bool {
	return len(key) > 0 && len(key) <= 128 && safeKeyRe.MatchString(key)
}

// Open builds the backend named in the store configuration. An empty path
// resolves under the state directory.
func Open(cfg config.Store) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite:
		path, err := resolvePath(cfg.Path, "richpad.db")
		if err != nil {
			return nil, err
		}
		return OpenSQLite(path)
	case config.BackendFile, "":
		dir, err := resolvePath(cfg.Path, "")
		if err != nil {
			return nil, err
		}
		return NewFile(dir), nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
}

func resolvePath(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := config.StateDir()
	if err != nil {
		return "", fmt.Errorf("storage: state dir: %w", err)
	}
	if name == "" {
		return dir, nil
	}
	return filepath.Join(dir, name), nil
}
