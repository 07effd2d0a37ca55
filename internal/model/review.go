package model

import "time"

// Review is a rating left by a user for a turf they have played at,
// mirroring the `reviews` table. A review is tied to a completed booking
// and each booking can be reviewed once (unique index on booking_id).
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – author of the review.
//	TurfID    – turf being reviewed.
//	BookingID – completed booking that entitles the user to review.
//	Rating    – 1 to 5 stars.
//	Comment   – optional free-form text.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type Review struct {
	ID        uint64
	UserID    uint64
	TurfID    uint64
	BookingID uint64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
