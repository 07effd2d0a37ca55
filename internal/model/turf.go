package model

import "time"

// Turf represents a sports facility listed by an owner, mirroring the
// `turfs` table. Sports and amenities are stored as comma-separated values
// in the database and exposed as slices here.
//
// Fields:
//
//	ID           – primary key identifier.
//	OwnerID      – user who listed the turf.
//	Name         – display name of the facility.
//	Description  – free-form description.
//	Address      – street address.
//	City         – city used for search filters.
//	Latitude     – geographic latitude (0 when unknown).
//	Longitude    – geographic longitude (0 when unknown).
//	Sports       – sports playable at the turf (football, cricket, ...).
//	Amenities    – facilities offered (parking, lighting, ...).
//	HourlyRate   – base price per hour.
//	PeakHourRate – price per hour inside the peak window; 0 means derive 1.5x.
//	Currency     – ISO-ish currency label for display.
//	MaxPlayers   – capacity cap enforced at booking time.
//	ContactPhone – phone number shown to customers.
//	ContactEmail – email shown to customers (optional).
//	RatingAvg    – denormalized average review rating.
//	RatingCount  – denormalized number of reviews.
//	IsActive     – owner can deactivate a listing without deleting it.
//	IsVerified   – set by an admin after reviewing the listing.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type Turf struct {
	ID           uint64
	OwnerID      uint64
	Name         string
	Description  string
	Address      string
	City         string
	Latitude     float64
	Longitude    float64
	Sports       []string
	Amenities    []string
	HourlyRate   float64
	PeakHourRate float64
	Currency     string
	MaxPlayers   int
	ContactPhone string
	ContactEmail string
	RatingAvg    float64
	RatingCount  int
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScheduleEntry mirrors one row of `turf_schedules`: the opening hours of a
// turf on one weekday. At most one row exists per (turf, weekday). Times are
// zero-padded "HH:MM" strings so lexicographic comparison is valid.
//
// Fields:
//
//	TurfID    – owning turf.
//	Day       – lowercase weekday name (monday..sunday).
//	IsOpen    – whether the turf operates on this weekday.
//	OpenTime  – opening time, inclusive.
//	CloseTime – closing time, exclusive.
//	PeakStart – start of the peak-rate window (nil when no window).
//	PeakEnd   – end of the peak-rate window (nil when no window).
type ScheduleEntry struct {
	TurfID    uint64
	Day       string
	IsOpen    bool
	OpenTime  string
	CloseTime string
	PeakStart *string
	PeakEnd   *string
}

// Closure kinds stored in turf_closures.kind.
const (
	ClosureHoliday     = "HOLIDAY"
	ClosureMaintenance = "MAINTENANCE"
)

// Closure mirrors one row of `turf_closures`: a single calendar date on
// which the turf does not operate, overriding the weekly schedule.
//
// Fields:
//
//	ID     – primary key identifier.
//	TurfID – owning turf.
//	Date   – the closed calendar day (time-of-day zeroed).
//	Kind   – HOLIDAY or MAINTENANCE.
//	Reason – optional human-readable explanation.
type Closure struct {
	ID     uint64
	TurfID uint64
	Date   time.Time
	Kind   string
	Reason string
}
