package service

import (
	"errors"
	"fmt"

	"github.com/okian/porra/internal/domain/types"
)

var (
	// ErrParticipantNotFound is returned for a name with no prediction sheet.
	ErrParticipantNotFound = fmt.Errorf("participant %w", types.ErrNotFound)
	// ErrNotStarted is returned by runs before Start.
	ErrNotStarted = errors.New("service not started")
)
