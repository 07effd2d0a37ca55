// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// BookingConfirmedEvent is published when a booking reaches the confirmed
// state, either through payment or an owner confirming a pending request.
// It carries enough context for downstream consumers to log and notify
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	BookingRef  string  `json:"booking_ref"`
	UserID      uint64  `json:"user_id"`
	OwnerID     uint64  `json:"owner_id"`
	TurfID      uint64  `json:"turf_id"`
	TurfName    string  `json:"turf_name"`
	Date        string  `json:"date"`       // YYYY-MM-DD
	StartTime   string  `json:"start_time"` // HH:MM
	EndTime     string  `json:"end_time"`   // HH:MM
	TotalAmount float64 `json:"total_amount"`
	ConfirmedAt string  `json:"confirmed_at"` // RFC 3339, UTC
}
