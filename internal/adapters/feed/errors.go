package feed

import "errors"

var (
	// ErrFeedUnavailable means the feed could not be fetched. Callers fall back
	// to a stored snapshot.
	ErrFeedUnavailable = errors.New("feed unavailable")
	// ErrMalformedFeed means the document is not an openfootball tournament.
	ErrMalformedFeed = errors.New("malformed feed")
)
