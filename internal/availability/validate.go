package availability

import "time"

// BookingRequest is a candidate reservation to validate before persistence.
// The caller supplies the turf's schedule, capacity and the existing
// reservations for the requested date; validation itself performs no I/O.
type BookingRequest struct {
	Date        time.Time
	Interval    Interval
	PlayerCount int
}

// ValidateBookingRequest runs every pure admission check for a prospective
// booking, in order: interval shape, past date, schedule/closure gate,
// capacity, then conflicts. The first failure wins. now anchors the
// past-date check; callers pass time.Now() outside tests.
//
// A nil error means the request may be handed to the persistence layer,
// which still re-checks conflicts under a row lock before inserting.
func ValidateBookingRequest(req BookingRequest, sched WeeklySchedule, maxPlayers int, existing []Reservation, now time.Time) error {
	if !req.Interval.Valid() {
		return ErrInvalidInterval
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrPastDate
	}

	if sched.ClosedOn(req.Date) {
		return ErrTurfClosed
	}
	entry, ok := sched.DayFor(req.Date)
	if !ok || !entry.IsOpen {
		return ErrTurfClosed
	}
	if req.Interval.Start < entry.OpenTime || req.Interval.End > entry.CloseTime {
		return ErrTurfClosed
	}

	if maxPlayers > 0 && req.PlayerCount > maxPlayers {
		return ErrCapacityExceeded
	}

	if conflicts := FindConflicts(existing, req.Date, req.Interval); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}
