// Package availability implements the booking-availability engine: interval
// overlap detection, daily slot computation and price quoting for a turf.
// Everything in this package is a pure function over data the caller has
// already fetched; there is no I/O and no shared state.
package availability

import (
	"fmt"
	"time"
)

// Booking status values. Only pending and confirmed reservations block a
// time slot; the terminal states release it.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// Interval is a half-open [Start, End) time-of-day range. Both bounds are
// zero-padded 24h "HH:MM" strings, so lexicographic comparison orders them
// correctly and no clock parsing is needed for the overlap test.
type Interval struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// Valid reports whether both bounds are well-formed clock strings and
// Start < End.
func (iv Interval) Valid() bool {
	return validClock(iv.Start) && validClock(iv.End) && iv.Start < iv.End
}

// Overlaps applies the half-open interval overlap test. Two intervals
// [a,b) and [c,d) intersect iff a < d && b > c, which treats back-to-back
// bookings (one ending exactly when the next starts) as non-overlapping.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// DurationHours returns the exact length of the interval in hours. Minutes
// are kept fractional (a 90-minute booking is 1.5 hours), matching how
// prices are derived from the requested range.
func (iv Interval) DurationHours() float64 {
	return float64(minutesOf(iv.End)-minutesOf(iv.Start)) / 60.0
}

func (iv Interval) String() string { return iv.Start + "-" + iv.End }

// Reservation is the engine's read-only view of a persisted booking. The
// caller fetches reservations for one turf and one date; the engine only
// inspects status, date and the booked interval.
type Reservation struct {
	ID       uint64    `json:"id"`
	UserID   uint64    `json:"userId"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Interval Interval  `json:"timeSlot"`
}

// blocks reports whether the reservation participates in conflict checks.
// Cancelled, completed and no-show bookings never block a new request.
func (r Reservation) blocks() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CheckOverlap reports whether any blocking reservation overlaps the
// candidate interval.
func CheckOverlap(existing []Reservation, candidate Interval) bool {
	for _, r := range existing {
		if r.blocks() && r.Interval.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// FindConflicts returns every blocking reservation on the given calendar day
// that overlaps the candidate interval. It is used instead of a boolean
// short-circuit so callers can tell the user exactly which bookings are in
// the way. A zero date matches reservations on any day.
func FindConflicts(existing []Reservation, date time.Time, candidate Interval) []Reservation {
	var out []Reservation
	for _, r := range existing {
		if !r.blocks() {
			continue
		}
		if !date.IsZero() && !SameDay(r.Date, date) {
			continue
		}
		if r.Interval.Overlaps(candidate) {
			out = append(out, r)
		}
	}
	return out
}

// SameDay reports whether two timestamps fall on the same calendar day.
// Time-of-day is ignored, so values stored at midnight compare equal to any
// instant within the day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// minutesOf converts "HH:MM" to minutes since midnight. Callers validate
// the format first; malformed input maps to 0.
func minutesOf(clock string) int {
	if !validClock(clock) {
		return 0
	}
	h := int(clock[0]-'0')*10 + int(clock[1]-'0')
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return h*60 + m
}

// formatClock renders minutes since midnight as a zero-padded "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// validClock reports whether s is a zero-padded 24h "HH:MM" string.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}
