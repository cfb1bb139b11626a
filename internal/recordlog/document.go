// Package recordlog persists JSON-array documents on top of a storage backend.
//
// A Document is one overlay: it reads the overlay when present, falls back to
// a bundled seed before the first write, and always rewrites the whole array.
// Log builds the append-only activity log on the same primitive.
package recordlog

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/storage"
)

// SeedSource supplies read-only bundled documents by overlay name.
type SeedSource interface {
	Seed(name string) ([]byte, bool)
}

// Document is a typed JSON array stored under one overlay name.
// It does no locking of its own; callers serialize writes.
type Document[T any] struct {
	name    string
	backend storage.Backend
	seeds   SeedSource
	logger  *zap.Logger
}

// NewDocument creates a document. seeds and logger may be nil.
func NewDocument[T any](name string, backend storage.Backend, seeds SeedSource, logger *zap.Logger) *Document[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document[T]{
		name:    name,
		backend: backend,
		seeds:   seeds,
		logger:  logger.With(zap.String("overlay", name)),
	}
}

// Name returns the overlay name.
func (d *Document[T]) Name() string {
	return d.name
}

// Load returns the overlay contents, or the seed when no overlay exists yet.
// Unreadable or malformed data yields an empty slice.
func (d *Document[T]) Load(ctx context.Context) []T {
	items, err := d.Current(ctx)
	if err != nil {
		d.logger.Warn("read overlay failed", zap.Error(err))
		return []T{}
	}
	return items
}

// Current is Load for the write path: a failed read is returned as a
// persistence error instead of an empty slice, so callers never rewrite
// the overlay from data they could not see. Malformed data still reads as
// empty.
func (d *Document[T]) Current(ctx context.Context) ([]T, error) {
	data, err := d.backend.Read(ctx, d.name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return d.loadSeed(), nil
	case err != nil:
		return nil, storage.PersistenceError(d.name, err)
	}
	return d.decode(data, "overlay"), nil
}

// Save replaces the overlay with items.
func (d *Document[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return storage.PersistenceError(d.name, err)
	}
	if err := d.backend.Write(ctx, d.name, data); err != nil {
		return storage.PersistenceError(d.name, err)
	}
	return nil
}

func (d *Document[T]) loadSeed() []T {
	if d.seeds == nil {
		return []T{}
	}
	data, ok := d.seeds.Seed(d.name)
	if !ok {
		return []T{}
	}
	return d.decode(data, "seed")
}

func (d *Document[T]) decode(data []byte, source string) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		d.logger.Warn("malformed document, treating as empty",
			zap.String("source", source),
			zap.Error(err),
		)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}
