package types

import "errors"

// ErrNotFound marks a lookup of a read model that does not exist.
var ErrNotFound = errors.New("not found")
