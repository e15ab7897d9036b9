// Package repository keeps the last known good feed documents.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Snapshot is one stored feed document.
type Snapshot struct {
	ID        int64
	FetchedAt time.Time
	Source    string
	Checksum  string
	Body      []byte
}

// Store persists feed snapshots.
type Store interface {
	// Save stores body unless it equals the latest snapshot. It reports
	// whether a new snapshot was written.
	Save(ctx context.Context, source string, body []byte) (Snapshot, bool, error)
	// Latest returns the newest snapshot or ErrNotFound.
	Latest(ctx context.Context) (Snapshot, error)
	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int, error)
	Close() error
}

// Checksum is the hex SHA-256 of body.
func Checksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
