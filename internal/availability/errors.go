package availability

import (
	"errors"
	"fmt"
)

// Validation outcomes for a prospective booking. All are deterministic,
// locally recoverable results of pure checks; the handler layer maps them to
// HTTP statuses and user-facing messages.
var (
	// ErrInvalidInterval signals a candidate whose end is not after its start
	// or whose bounds are not well-formed "HH:MM" strings.
	ErrInvalidInterval = errors.New("end time must be after start time")

	// ErrPastDate signals a booking request for a calendar day before today,
	// independent of time-of-day.
	ErrPastDate = errors.New("cannot book for past dates")

	// ErrTurfClosed signals a request on a day the turf does not operate:
	// the weekly schedule marks it closed, the date is a holiday or
	// maintenance day, or the requested interval falls outside open hours.
	ErrTurfClosed = errors.New("turf is closed at the requested time")

	// ErrCapacityExceeded signals a player count above the turf's maximum.
	ErrCapacityExceeded = errors.New("player count exceeds turf capacity")
)

// ConflictError reports that the candidate interval overlaps existing
// bookings. It carries the conflicting reservations so the caller can show
// the user exactly what is blocking the slot.
type ConflictError struct {
	Conflicts []Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot is already booked (%d conflicting bookings)", len(e.Conflicts))
}

// IsConflict unwraps err as a *ConflictError if it is one.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
