package model

import "time"

// Notification is an in-app message delivered to a user, mirroring the
// `notifications` table. Rows are written by handlers on booking state
// changes and by the queue consumer for confirmed bookings.
//
// Fields:
//
//	ID          – primary key identifier.
//	RecipientID – user who receives the notification.
//	Type        – one of the Notify* constants below.
//	Title       – short headline shown in the notification list.
//	Message     – body text.
//	BookingID   – related booking, when applicable (nil otherwise).
//	TurfID      – related turf, when applicable (nil otherwise).
//	IsRead      – whether the recipient has opened it.
//	ReadAt      – when it was read (nil while unread).
//	CreatedAt   – timestamp of creation.
type Notification struct {
	ID          uint64
	RecipientID uint64
	Type        string
	Title       string
	Message     string
	BookingID   *uint64
	TurfID      *uint64
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Notification types stored in notifications.type.
const (
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyBookingCancelled = "booking_cancelled"
	NotifyPaymentSuccess   = "payment_success"
	NotifyReviewRequest    = "review_request"
	NotifyTurfApproved     = "turf_approved"
	NotifyTurfRejected     = "turf_rejected"
	NotifySystem           = "system_update"
)
