package availability

import (
	"strings"
	"time"
)

// PeakWindow marks a sub-range of a day's open hours during which the peak
// hourly rate applies. Both bounds are "HH:MM" strings.
type PeakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule describes one weekday of a turf's opening hours. OpenTime and
// CloseTime are "HH:MM" with OpenTime < CloseTime when the day is open.
type DaySchedule struct {
	Day       string      `json:"day"` // lowercase weekday name (monday..sunday)
	IsOpen    bool        `json:"isOpen"`
	OpenTime  string      `json:"openTime"`
	CloseTime string      `json:"closeTime"`
	Peak      *PeakWindow `json:"peakHours,omitempty"`
}

// WeeklySchedule is the availability aggregate owned by a turf: at most one
// entry per weekday plus date-level closures for holidays and maintenance.
type WeeklySchedule struct {
	Days        []DaySchedule `json:"days"`
	Holidays    []time.Time   `json:"holidays,omitempty"`
	Maintenance []time.Time   `json:"maintenanceDates,omitempty"`
}

// DayName returns the lowercase weekday name of a date, matching the Day
// field of DaySchedule entries.
func DayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// DayFor resolves the schedule entry for the calendar weekday of date. The
// weekday comes from the date itself, never from caller-supplied strings.
func (ws WeeklySchedule) DayFor(date time.Time) (DaySchedule, bool) {
	name := DayName(date)
	for _, d := range ws.Days {
		if d.Day == name {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// ClosedOn reports whether date is a holiday or maintenance day. Closures
// override the weekly schedule entirely.
func (ws WeeklySchedule) ClosedOn(date time.Time) bool {
	for _, h := range ws.Holidays {
		if SameDay(h, date) {
			return true
		}
	}
	for _, m := range ws.Maintenance {
		if SameDay(m, date) {
			return true
		}
	}
	return false
}

// PricingRule carries a turf's rates. PeakHourRate falls back to 1.5x the
// base rate when the owner never set one, mirroring the turf model default.
type PricingRule struct {
	HourlyRate   float64 `json:"hourlyRate"`
	PeakHourRate float64 `json:"peakHourRate"`
}

// peakRateMultiplier derives the default peak rate from the base rate.
const peakRateMultiplier = 1.5

// EffectivePeakRate returns the configured peak rate, or the derived
// default when unset.
func (p PricingRule) EffectivePeakRate() float64 {
	if p.PeakHourRate > 0 {
		return p.PeakHourRate
	}
	return p.HourlyRate * peakRateMultiplier
}
