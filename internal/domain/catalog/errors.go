package catalog

import "errors"

var (
	// ErrMalformedSchedule is returned when a feed date or time cannot be parsed.
	ErrMalformedSchedule = errors.New("malformed schedule")
	// ErrMalformedOverride is returned for a configured override that is not "h-a".
	ErrMalformedOverride = errors.New("malformed score override")
)
