package recordlog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/storage"
)

// Log is an append-only list of records of one kind.
// Writes hold the write lock across the whole read-modify-write.
type Log[T any] struct {
	mu  sync.RWMutex
	doc *Document[T]
}

// New creates a log over the named overlay.
func New[T any](name string, backend storage.Backend, seeds SeedSource, logger *zap.Logger) *Log[T] {
	return &Log[T]{doc: NewDocument[T](name, backend, seeds, logger)}
}

// Name returns the overlay name backing the log.
func (l *Log[T]) Name() string {
	return l.doc.Name()
}

// LoadAll returns every record in append order.
func (l *Log[T]) LoadAll(ctx context.Context) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Load(ctx)
}

// Len returns the number of stored records.
func (l *Log[T]) Len(ctx context.Context) int {
	return len(l.LoadAll(ctx))
}

// Append adds record to the end of the log and persists it.
func (l *Log[T]) Append(ctx context.Context, record T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.doc.Current(ctx)
	if err != nil {
		return err
	}
	return l.doc.Save(ctx, append(records, record))
}

// Clear empties the log.
func (l *Log[T]) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Save(ctx, []T{})
}

// Replace rewrites the log with records.
func (l *Log[T]) Replace(ctx context.Context, records []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Save(ctx, records)
}

// Update applies fn to the current records and persists the result, all
// under the write lock.
func (l *Log[T]) Update(ctx context.Context, fn func([]T) []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.doc.Current(ctx)
	if err != nil {
		return err
	}
	return l.doc.Save(ctx, fn(records))
}
