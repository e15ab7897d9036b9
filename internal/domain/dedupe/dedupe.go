// Package dedupe tracks keys that were already inserted.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen keys so an item is inserted at most once.
type Deduper interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(ctx context.Context, key string) bool
}

type keySet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an in-memory deduper. Keys are never forgotten.
func NewInMemoryDeduper() Deduper {
	return &keySet{seen: make(map[string]struct{})}
}

func (d *keySet) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
