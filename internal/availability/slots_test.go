package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saturday returns a date known to fall on a Saturday.
func saturday() time.Time { return date(2026, time.September, 5) }

func weekendSchedule(day DaySchedule) WeeklySchedule {
	day.Day = "saturday"
	return WeeklySchedule{Days: []DaySchedule{day}}
}

func TestComputeDailySlotsClosedDay(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: false, OpenTime: "06:00", CloseTime: "22:00"})
	existing := []Reservation{res(StatusConfirmed, "09:00", "10:00", saturday())}

	got := ComputeDailySlots(sched, saturday(), existing, PricingRule{HourlyRate: 1000})
	assert.False(t, got.IsOpen)
	assert.Empty(t, got.Slots, "closed day must yield no slots regardless of reservations")
}

func TestComputeDailySlotsMissingDayEntry(t *testing.T) {
	sched := WeeklySchedule{Days: []DaySchedule{{Day: "monday", IsOpen: true, OpenTime: "06:00", CloseTime: "22:00"}}}
	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 1000})
	assert.False(t, got.IsOpen)
	assert.Empty(t, got.Slots)
}

func TestComputeDailySlotsGeneratesHourlyBuckets(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "06:00", CloseTime: "09:00"})

	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 1000})
	require.True(t, got.IsOpen)
	assert.Equal(t, "06:00", got.OpenTime)
	assert.Equal(t, "09:00", got.CloseTime)
	require.Len(t, got.Slots, 3)

	want := []Interval{{"06:00", "07:00"}, {"07:00", "08:00"}, {"08:00", "09:00"}}
	for i, s := range got.Slots {
		assert.Equal(t, want[i].Start, s.StartTime)
		assert.Equal(t, want[i].End, s.EndTime)
		assert.True(t, s.IsAvailable)
		assert.False(t, s.IsPeakHour)
		assert.Equal(t, 1000.0, s.Price)
	}
}

func TestComputeDailySlotsDropsPartialTrailingBucket(t *testing.T) {
	// 06:30 open with a 09:00 close fits only two full hour slots.
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "06:30", CloseTime: "09:00"})

	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 500})
	require.Len(t, got.Slots, 2)
	assert.Equal(t, "06:30", got.Slots[0].StartTime)
	assert.Equal(t, "07:30", got.Slots[1].StartTime)
	assert.Equal(t, "08:30", got.Slots[1].EndTime)
}

func TestComputeDailySlotsMarksBookedBuckets(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "13:00"})
	existing := []Reservation{
		res(StatusConfirmed, "10:00", "11:00", saturday()),
		res(StatusCancelled, "11:00", "12:00", saturday()), // released slot
	}

	got := ComputeDailySlots(sched, saturday(), existing, PricingRule{HourlyRate: 800})
	require.Len(t, got.Slots, 4)
	assert.True(t, got.Slots[0].IsAvailable)  // 09:00
	assert.False(t, got.Slots[1].IsAvailable) // 10:00 booked
	assert.True(t, got.Slots[2].IsAvailable)  // 11:00 cancelled booking does not block
	assert.True(t, got.Slots[3].IsAvailable)  // 12:00

	require.Len(t, got.Booked, 1)
	assert.Equal(t, Interval{"10:00", "11:00"}, got.Booked[0])
}

func TestComputeDailySlotsPartialOverlapBlocksBothBuckets(t *testing.T) {
	// A 10:30-11:30 booking intersects both the 10:00 and 11:00 buckets.
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "10:00", CloseTime: "13:00"})
	existing := []Reservation{res(StatusPending, "10:30", "11:30", saturday())}

	got := ComputeDailySlots(sched, saturday(), existing, PricingRule{HourlyRate: 800})
	require.Len(t, got.Slots, 3)
	assert.False(t, got.Slots[0].IsAvailable)
	assert.False(t, got.Slots[1].IsAvailable)
	assert.True(t, got.Slots[2].IsAvailable)
}

func TestComputeDailySlotsIgnoresOtherDayReservations(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "11:00"})
	existing := []Reservation{res(StatusConfirmed, "09:00", "10:00", date(2026, time.September, 6))}

	got := ComputeDailySlots(sched, saturday(), existing, PricingRule{HourlyRate: 800})
	for _, s := range got.Slots {
		assert.True(t, s.IsAvailable)
	}
	assert.Empty(t, got.Booked)
}

func TestComputeDailySlotsPeakWindowPricing(t *testing.T) {
	sched := weekendSchedule(DaySchedule{
		IsOpen:    true,
		OpenTime:  "16:00",
		CloseTime: "21:00",
		Peak:      &PeakWindow{Start: "18:00", End: "20:00"},
	})
	pricing := PricingRule{HourlyRate: 1000, PeakHourRate: 1800}

	got := ComputeDailySlots(sched, saturday(), nil, pricing)
	require.Len(t, got.Slots, 5)

	byStart := map[string]Slot{}
	for _, s := range got.Slots {
		byStart[s.StartTime] = s
	}
	assert.False(t, byStart["17:00"].IsPeakHour)
	assert.Equal(t, 1000.0, byStart["17:00"].Price)
	assert.True(t, byStart["18:00"].IsPeakHour)
	assert.Equal(t, 1800.0, byStart["18:00"].Price)
	assert.True(t, byStart["19:00"].IsPeakHour)
	assert.False(t, byStart["20:00"].IsPeakHour, "peak window end is exclusive")
}

func TestComputeDailySlotsDerivedPeakRate(t *testing.T) {
	sched := weekendSchedule(DaySchedule{
		IsOpen:    true,
		OpenTime:  "18:00",
		CloseTime: "20:00",
		Peak:      &PeakWindow{Start: "18:00", End: "20:00"},
	})
	// No explicit peak rate: 1.5x default applies.
	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 1000})
	require.Len(t, got.Slots, 2)
	assert.Equal(t, 1500.0, got.Slots[0].Price)
}

func TestComputeDailySlotsHolidayOverride(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "06:00", CloseTime: "22:00"})
	sched.Holidays = []time.Time{saturday()}

	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 1000})
	assert.False(t, got.IsOpen, "holiday closes the day regardless of the weekly schedule")
	assert.Empty(t, got.Slots)
}

func TestComputeDailySlotsMaintenanceOverride(t *testing.T) {
	sched := weekendSchedule(DaySchedule{IsOpen: true, OpenTime: "06:00", CloseTime: "22:00"})
	sched.Maintenance = []time.Time{saturday()}

	got := ComputeDailySlots(sched, saturday(), nil, PricingRule{HourlyRate: 1000})
	assert.False(t, got.IsOpen)
}

func TestDayNameUsesCalendarWeekday(t *testing.T) {
	assert.Equal(t, "saturday", DayName(saturday()))
	assert.Equal(t, "sunday", DayName(date(2026, time.September, 6)))
	assert.Equal(t, "monday", DayName(date(2026, time.September, 7)))
}
