package repository

import (
	"context"
	"sync"
)

// MemoryStore is a process local Store.
type MemoryStore struct {
	mu     sync.RWMutex
	opts   options
	snaps  []Snapshot
	nextID int64
	closed bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{opts: o, nextID: 1}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, source string, body []byte) (Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Snapshot{}, false, ErrClosed
	}

	sum := Checksum(body)
	if n := len(m.snaps); n > 0 && m.snaps[n-1].Checksum == sum {
		return m.snaps[n-1], false, nil
	}
	s := Snapshot{
		ID:        m.nextID,
		FetchedAt: m.opts.now().UTC(),
		Source:    source,
		Checksum:  sum,
		Body:      append([]byte(nil), body...),
	}
	m.nextID++
	m.snaps = append(m.snaps, s)
	if r := m.opts.retention; r > 0 && len(m.snaps) > r {
		m.snaps = append([]Snapshot(nil), m.snaps[len(m.snaps)-r:]...)
	}
	return s, true, nil
}

// Latest implements Store.
func (m *MemoryStore) Latest(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Snapshot{}, ErrClosed
	}
	if len(m.snaps) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return m.snaps[len(m.snaps)-1], nil
}

// Count implements Store.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snaps), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
