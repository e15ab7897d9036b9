package model

import "errors"

// ErrMalformedScore is returned when a score text is not two non-negative integers.
var ErrMalformedScore = errors.New("malformed score")
