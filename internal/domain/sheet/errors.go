package sheet

import "errors"

var (
	// ErrMalformedGuess is returned for a guess line that does not decode.
	ErrMalformedGuess = errors.New("malformed guess")
	// ErrMissingField is returned when a field window lies past the end of the sheet.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidSchema is returned by Schema.Validate.
	ErrInvalidSchema = errors.New("invalid sheet schema")
	// ErrUnknownSchema is returned when a schema name is not registered.
	ErrUnknownSchema = errors.New("unknown sheet schema")
)
