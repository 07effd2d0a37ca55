package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func res(status, start, end string, day time.Time) Reservation {
	return Reservation{Status: status, Date: day, Interval: Interval{Start: start, End: end}}
}

func TestIntervalValid(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"normal", Interval{"09:00", "10:00"}, true},
		{"fractional", Interval{"09:30", "10:15"}, true},
		{"equal bounds", Interval{"09:00", "09:00"}, false},
		{"reversed", Interval{"10:00", "09:00"}, false},
		{"bad hour", Interval{"25:00", "26:00"}, false},
		{"bad minute", Interval{"09:61", "10:00"}, false},
		{"not zero padded", Interval{"9:00", "10:00"}, false},
		{"garbage", Interval{"morning", "noon"}, false},
		{"empty", Interval{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.iv.Valid())
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{"10:00", "12:00"}
	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{"10:00", "12:00"}, true},
		{"nested", Interval{"10:30", "11:30"}, true},
		{"overlap from left", Interval{"09:00", "10:30"}, true},
		{"overlap from right", Interval{"11:30", "13:00"}, true},
		{"touching before", Interval{"09:00", "10:00"}, false},
		{"touching after", Interval{"12:00", "13:00"}, false},
		{"disjoint before", Interval{"07:00", "08:00"}, false},
		{"disjoint after", Interval{"13:00", "14:00"}, false},
		{"contains base", Interval{"09:00", "13:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestIntervalDurationHours(t *testing.T) {
	assert.InDelta(t, 1.0, Interval{"09:00", "10:00"}.DurationHours(), 1e-9)
	assert.InDelta(t, 2.5, Interval{"09:30", "12:00"}.DurationHours(), 1e-9)
	assert.InDelta(t, 0.5, Interval{"18:00", "18:30"}.DurationHours(), 1e-9)
}

func TestCheckOverlapStatusFilter(t *testing.T) {
	day := date(2026, time.September, 5)
	candidate := Interval{"09:00", "10:00"}

	for _, status := range []string{StatusCancelled, StatusCompleted, StatusNoShow} {
		t.Run(status, func(t *testing.T) {
			existing := []Reservation{res(status, "09:00", "10:00", day)}
			assert.False(t, CheckOverlap(existing, candidate),
				"%s booking must not block the slot", status)
		})
	}
	for _, status := range []string{StatusPending, StatusConfirmed} {
		t.Run(status, func(t *testing.T) {
			existing := []Reservation{res(status, "09:00", "10:00", day)}
			assert.True(t, CheckOverlap(existing, candidate))
		})
	}
}

func TestCheckOverlapAdjacent(t *testing.T) {
	day := date(2026, time.September, 5)
	existing := []Reservation{res(StatusConfirmed, "09:00", "10:00", day)}

	assert.False(t, CheckOverlap(existing, Interval{"10:00", "11:00"}),
		"back-to-back bookings must not conflict")
	assert.False(t, CheckOverlap(existing, Interval{"08:00", "09:00"}))
	assert.True(t, CheckOverlap(existing, Interval{"09:59", "11:00"}))
}

func TestFindConflictsRoundTrip(t *testing.T) {
	booked := date(2026, time.September, 5)
	otherDay := date(2026, time.September, 6)
	existing := []Reservation{
		{ID: 41, UserID: 7, Status: StatusConfirmed, Date: booked, Interval: Interval{"10:00", "12:00"}},
	}

	got := FindConflicts(existing, booked, Interval{"11:00", "13:00"})
	require.Len(t, got, 1)
	assert.Equal(t, uint64(41), got[0].ID)

	assert.Empty(t, FindConflicts(existing, otherDay, Interval{"11:00", "13:00"}),
		"a booking on another date must not conflict")
	assert.Empty(t, FindConflicts(existing, booked, Interval{"12:00", "13:00"}),
		"a non-overlapping interval must not conflict")
}

func TestFindConflictsReturnsAllMatches(t *testing.T) {
	day := date(2026, time.September, 5)
	existing := []Reservation{
		{ID: 1, Status: StatusPending, Date: day, Interval: Interval{"09:00", "10:00"}},
		{ID: 2, Status: StatusConfirmed, Date: day, Interval: Interval{"10:00", "11:00"}},
		{ID: 3, Status: StatusCancelled, Date: day, Interval: Interval{"09:00", "11:00"}},
	}

	got := FindConflicts(existing, day, Interval{"09:30", "10:30"})
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestSameDay(t *testing.T) {
	midnight := date(2026, time.September, 5)
	evening := time.Date(2026, time.September, 5, 21, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(midnight, evening))
	assert.False(t, SameDay(midnight, date(2026, time.September, 6)))
}

func TestClockHelpers(t *testing.T) {
	assert.Equal(t, 0, minutesOf("00:00"))
	assert.Equal(t, 390, minutesOf("06:30"))
	assert.Equal(t, 1439, minutesOf("23:59"))
	assert.Equal(t, "06:30", formatClock(390))
	assert.Equal(t, "00:05", formatClock(5))
}
