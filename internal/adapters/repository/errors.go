package repository

import "errors"

// Sentinel errors of the snapshot store.
var (
	ErrNotFound = errors.New("snapshot not found")
	ErrClosed   = errors.New("snapshot store closed")
)
