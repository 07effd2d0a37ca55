package availability

import "time"

// slotMinutes is the fixed width of a display slot. Availability is shown in
// one-hour buckets; bookings themselves may span any exact interval.
const slotMinutes = 60

// Slot is one fixed-width bucket within a turf's open hours, annotated for
// display: whether it can still be booked, whether the peak rate applies and
// the per-hour price for it.
type Slot struct {
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
	IsPeakHour  bool    `json:"isPeakHour"`
	Price       float64 `json:"price"`
}

// DayAvailability is the result of ComputeDailySlots. When the turf is
// closed on the requested day the slot list is empty and the open/close
// times are omitted.
type DayAvailability struct {
	IsOpen    bool       `json:"isOpen"`
	OpenTime  string     `json:"openTime,omitempty"`
	CloseTime string     `json:"closeTime,omitempty"`
	Slots     []Slot     `json:"slots"`
	Booked    []Interval `json:"bookedSlots"`
}

// ComputeDailySlots partitions a turf's open hours on the given date into
// one-hour slots and annotates each with availability and pricing. The
// weekday is resolved from the calendar date; holidays and maintenance dates
// close the whole day regardless of the weekly entry.
//
// A slot is unavailable when any pending or confirmed reservation on the
// same day overlaps the slot's [start, end) range. The overlap predicate is
// the same one used for booking conflict checks, so a 10:30-11:30 booking
// marks both the 10:00 and 11:00 buckets as taken.
func ComputeDailySlots(sched WeeklySchedule, date time.Time, existing []Reservation, pricing PricingRule) DayAvailability {
	if sched.ClosedOn(date) {
		return DayAvailability{IsOpen: false, Slots: []Slot{}, Booked: []Interval{}}
	}
	day, ok := sched.DayFor(date)
	if !ok || !day.IsOpen {
		return DayAvailability{IsOpen: false, Slots: []Slot{}, Booked: []Interval{}}
	}

	open := minutesOf(day.OpenTime)
	close := minutesOf(day.CloseTime)

	slots := []Slot{}
	for start := open; start+slotMinutes <= close; start += slotMinutes {
		iv := Interval{Start: formatClock(start), End: formatClock(start + slotMinutes)}

		booked := false
		for _, r := range existing {
			if r.blocks() && SameDay(r.Date, date) && r.Interval.Overlaps(iv) {
				booked = true
				break
			}
		}

		peak := day.Peak != nil && day.Peak.Start <= iv.Start && iv.Start < day.Peak.End

		price := pricing.HourlyRate
		if peak {
			price = pricing.EffectivePeakRate()
		}

		slots = append(slots, Slot{
			StartTime:   iv.Start,
			EndTime:     iv.End,
			IsAvailable: !booked,
			IsPeakHour:  peak,
			Price:       price,
		})
	}

	booked := []Interval{}
	for _, r := range existing {
		if r.blocks() && SameDay(r.Date, date) {
			booked = append(booked, r.Interval)
		}
	}

	return DayAvailability{
		IsOpen:    true,
		OpenTime:  day.OpenTime,
		CloseTime: day.CloseTime,
		Slots:     slots,
		Booked:    booked,
	}
}
