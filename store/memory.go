package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Memory is a Store kept in memory, mostly for tests.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
	err   error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{blobs: make(map[string][]byte)} }

// FailWith makes every following Put return err. A nil err restores normal
// operation.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, notFound(key)
	}
	return slices.Clone(blob), nil
}

func (m *Memory) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.blobs[key] = slices.Clone(blob)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Keys returns the stored keys, sorted.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.blobs))
}
