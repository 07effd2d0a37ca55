package model

import "time"

// Booking records a user's reservation of a turf for an exact time interval
// on one calendar day, mirroring the `bookings` table. Bookings are never
// physically deleted; their lifecycle is tracked through Status
// (pending -> confirmed -> completed, or cancelled / no_show).
//
// Fields:
//
//	ID            – primary key identifier.
//	UserID        – user who made the booking.
//	TurfID        – turf being booked.
//	Date          – calendar day of play, stored at midnight UTC.
//	StartTime     – "HH:MM" start of the booked interval, inclusive.
//	EndTime       – "HH:MM" end of the booked interval, exclusive.
//	DurationHours – exact fractional length of the interval in hours.
//	PlayerCount   – number of players, validated against turf capacity.
//	BaseAmount    – hourly rate times duration.
//	Taxes         – tax portion of the price.
//	TotalAmount   – base plus taxes minus any discount.
//	PaymentMethod – card, upi, netbanking, wallet or cash.
//	PaymentStatus – pending, completed, failed or refunded.
//	TransactionID – external payment reference (empty until paid).
//	PaidAt        – when the payment completed (nil if unpaid).
//	Status        – pending, confirmed, cancelled, completed or no_show.
//	CancelledBy   – user, owner or admin (empty unless cancelled).
//	CancelledAt   – when the booking was cancelled.
//	CancelReason  – free-form cancellation reason.
//	RefundAmount  – amount refunded on cancellation of a paid booking.
//	CreatedAt     – timestamp of creation.
//	UpdatedAt     – timestamp of last update.
type Booking struct {
	ID            uint64
	UserID        uint64
	TurfID        uint64
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	PlayerCount   int
	BaseAmount    float64
	Taxes         float64
	TotalAmount   float64
	PaymentMethod string
	PaymentStatus string
	TransactionID string
	PaidAt        *time.Time
	Status        string
	CancelledBy   string
	CancelledAt   *time.Time
	CancelReason  string
	RefundAmount  float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Payment status values stored in bookings.payment_status.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// BookingAnalytics aggregates booking counts and revenue for the admin
// dashboard. Revenue counts completed bookings only.
type BookingAnalytics struct {
	TotalBookings     int64
	ConfirmedBookings int64
	CancelledBookings int64
	CompletedBookings int64
	TotalRevenue      float64
}
