package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAllWeek(open, close string) WeeklySchedule {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	ws := WeeklySchedule{}
	for _, d := range days {
		ws.Days = append(ws.Days, DaySchedule{Day: d, IsOpen: true, OpenTime: open, CloseTime: close})
	}
	return ws
}

func TestValidateBookingRequestInvalidInterval(t *testing.T) {
	now := date(2026, time.September, 1)
	sched := openAllWeek("06:00", "22:00")

	for _, iv := range []Interval{
		{"10:00", "10:00"},
		{"11:00", "10:00"},
		{"", ""},
		{"10am", "11am"},
	} {
		req := BookingRequest{Date: now, Interval: iv, PlayerCount: 4}
		err := ValidateBookingRequest(req, sched, 10, nil, now)
		assert.ErrorIs(t, err, ErrInvalidInterval, "interval %v", iv)
	}
}

func TestValidateBookingRequestPastDate(t *testing.T) {
	// Late in the evening, yesterday is still rejected while today is fine.
	now := time.Date(2026, time.September, 5, 23, 30, 0, 0, time.UTC)
	sched := openAllWeek("00:00", "23:59")
	req := BookingRequest{Date: date(2026, time.September, 4), Interval: Interval{"09:00", "10:00"}, PlayerCount: 2}

	assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrPastDate)

	req.Date = date(2026, time.September, 5)
	assert.NoError(t, ValidateBookingRequest(req, sched, 10, nil, now))

	req.Date = date(2026, time.September, 6)
	assert.NoError(t, ValidateBookingRequest(req, sched, 10, nil, now))
}

func TestValidateBookingRequestClosed(t *testing.T) {
	now := date(2026, time.September, 1)
	req := BookingRequest{Date: saturday(), Interval: Interval{"09:00", "10:00"}, PlayerCount: 2}

	t.Run("day marked closed", func(t *testing.T) {
		sched := weekendSchedule(DaySchedule{IsOpen: false, OpenTime: "06:00", CloseTime: "22:00"})
		assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrTurfClosed)
	})
	t.Run("no schedule entry", func(t *testing.T) {
		assert.ErrorIs(t, ValidateBookingRequest(req, WeeklySchedule{}, 10, nil, now), ErrTurfClosed)
	})
	t.Run("holiday", func(t *testing.T) {
		sched := openAllWeek("06:00", "22:00")
		sched.Holidays = []time.Time{saturday()}
		assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrTurfClosed)
	})
	t.Run("maintenance", func(t *testing.T) {
		sched := openAllWeek("06:00", "22:00")
		sched.Maintenance = []time.Time{saturday()}
		assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrTurfClosed)
	})
	t.Run("before opening", func(t *testing.T) {
		sched := openAllWeek("10:00", "22:00")
		assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrTurfClosed)
	})
	t.Run("past closing", func(t *testing.T) {
		sched := openAllWeek("06:00", "09:30")
		assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrTurfClosed)
	})
	t.Run("exactly at bounds", func(t *testing.T) {
		sched := openAllWeek("09:00", "10:00")
		assert.NoError(t, ValidateBookingRequest(req, sched, 10, nil, now))
	})
}

func TestValidateBookingRequestCapacity(t *testing.T) {
	now := date(2026, time.September, 1)
	sched := openAllWeek("06:00", "22:00")
	req := BookingRequest{Date: saturday(), Interval: Interval{"09:00", "10:00"}, PlayerCount: 12}

	assert.ErrorIs(t, ValidateBookingRequest(req, sched, 10, nil, now), ErrCapacityExceeded)
	assert.NoError(t, ValidateBookingRequest(req, sched, 12, nil, now))
	// Zero capacity means unlimited.
	assert.NoError(t, ValidateBookingRequest(req, sched, 0, nil, now))
}

func TestValidateBookingRequestConflict(t *testing.T) {
	now := date(2026, time.September, 1)
	sched := openAllWeek("06:00", "22:00")
	existing := []Reservation{
		{ID: 9, Status: StatusConfirmed, Date: saturday(), Interval: Interval{"09:00", "11:00"}},
	}
	req := BookingRequest{Date: saturday(), Interval: Interval{"10:00", "12:00"}, PlayerCount: 4}

	err := ValidateBookingRequest(req, sched, 10, existing, now)
	require.Error(t, err)
	ce, ok := IsConflict(err)
	require.True(t, ok, "expected a ConflictError, got %v", err)
	require.Len(t, ce.Conflicts, 1)
	assert.Equal(t, uint64(9), ce.Conflicts[0].ID)

	// The adjacent slot right after the existing booking is free.
	req.Interval = Interval{"11:00", "12:00"}
	assert.NoError(t, ValidateBookingRequest(req, sched, 10, existing, now))
}

func TestValidateBookingRequestCancelledDoesNotConflict(t *testing.T) {
	now := date(2026, time.September, 1)
	sched := openAllWeek("06:00", "22:00")
	existing := []Reservation{
		{ID: 3, Status: StatusCancelled, Date: saturday(), Interval: Interval{"09:00", "10:00"}},
	}
	req := BookingRequest{Date: saturday(), Interval: Interval{"09:00", "10:00"}, PlayerCount: 4}

	assert.NoError(t, ValidateBookingRequest(req, sched, 10, existing, now))
}
