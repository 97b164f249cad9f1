package fantaleague

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by a league operation matches one of them
// with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrClubNotFound     = fmt.Errorf("club %w", ErrNotFound)
	ErrPlayerNotFound   = fmt.Errorf("player %w", ErrNotFound)
	ErrContractNotFound = fmt.Errorf("contract %w", ErrNotFound)
	ErrDivisionNotFound = fmt.Errorf("division %w", ErrNotFound)

	ErrInvalidDuration = fmt.Errorf("%w: contract duration must be 1-4 years", ErrInvalidInput)
	ErrInvalidSign     = fmt.Errorf("%w: sign must be '+' or '-'", ErrInvalidInput)
	ErrInvalidSeason   = fmt.Errorf("%w: season", ErrInvalidInput)
	ErrInvalidRole     = fmt.Errorf("%w: role", ErrInvalidInput)

	ErrRosterFull            = fmt.Errorf("%w: roster full", ErrConflict)
	ErrPositionQuotaExceeded = fmt.Errorf("%w: goalkeeper quota exceeded", ErrConflict)
	ErrPlayerAssigned        = fmt.Errorf("%w: player has an active contract", ErrConflict)
	ErrAlreadySigned         = fmt.Errorf("%w: player already active in this club", ErrConflict)
	ErrDuplicateOriginal     = fmt.Errorf("%w: player already signed elsewhere, only a 1 year contract is allowed", ErrConflict)
)

// durationError is returned when a duplicate signing asks for more than one
// season: it is both an invalid duration and a duplicate-original conflict.
type durationError struct{ years int }

func (e durationError) Error() string {
	return fmt.Sprintf("duplicate signing for %d years: %v", e.years, ErrDuplicateOriginal)
}

func (e durationError) Is(target error) bool {
	return target == ErrInvalidDuration || target == ErrInvalidInput ||
		target == ErrDuplicateOriginal || target == ErrConflict
}
