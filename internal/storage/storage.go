// Package storage provides the backends that hold overlay documents.
//
// An overlay is a named JSON document (one per data class, e.g. "playlists" or
// "search_records") that supersedes the bundled seed once it exists. Backends
// replace a document as a whole: a reader sees either the previous or the new
// content, never a partial write.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Read when no overlay exists under a name.
	ErrNotFound = errors.New("overlay not found")

	// ErrPersistence marks a failed write. Callers must treat the mutation as not applied.
	ErrPersistence = errors.New("persistence failed")
)

// Backend stores overlay documents by name.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// Kind selects a backend implementation.
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
)

// Open creates the backend of the given kind rooted at dataDir.
func Open(kind Kind, dataDir string) (Backend, error) {
	switch kind {
	case KindJSON, "":
		return NewDir(dataDir)
	case KindSQLite:
		return OpenSQLite(SQLitePath(dataDir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// PersistenceError wraps err so that errors.Is(result, ErrPersistence) holds.
func PersistenceError(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: write %s: %w", ErrPersistence, name, err)
}
