package teams

import "errors"

// ErrUnknownTeam is returned when a team has no known code.
var ErrUnknownTeam = errors.New("unknown team")
