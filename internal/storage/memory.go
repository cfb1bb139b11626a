package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is returned by Memory when failures are enabled.
var ErrInjected = errors.New("injected failure")

// Memory is an in-process backend for tests.
type Memory struct {
	mu         sync.RWMutex
	docs       map[string][]byte
	failWrites bool
	failReads  bool
	writes     int
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failReads {
		return nil, ErrInjected
	}
	data, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrInjected
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.docs[name] = stored
	m.writes++
	return nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, name)
	return nil
}

func (m *Memory) Close() error { return nil }

// Test helpers

// SetFailWrites makes every subsequent Write fail with ErrInjected.
func (m *Memory) SetFailWrites(fail bool) {
	m.mu.Lock()
	m.failWrites = fail
	m.mu.Unlock()
}

// SetFailReads makes every subsequent Read fail with ErrInjected.
func (m *Memory) SetFailReads(fail bool) {
	m.mu.Lock()
	m.failReads = fail
	m.mu.Unlock()
}

// Put stores raw bytes without going through Write.
func (m *Memory) Put(name string, data []byte) {
	m.mu.Lock()
	m.docs[name] = data
	m.mu.Unlock()
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Verify Memory implements Backend at compile time.
var _ Backend = (*Memory)(nil)
