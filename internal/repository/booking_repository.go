package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/model"
)

// BookingRepo provides persistence for bookings. Bookings carry a soft
// lifecycle in their status column and are never deleted; every state
// change is an UPDATE guarded by the states it is legal from.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = `id,user_id,turf_id,booking_date,start_time,end_time,duration_hours,
player_count,base_amount,taxes,total_amount,payment_method,payment_status,
transaction_id,paid_at,status,cancelled_by,cancelled_at,cancel_reason,refund_amount,
created_at,updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b           model.Booking
		txID        sql.NullString
		paidAt      sql.NullTime
		cancelledBy sql.NullString
		cancelledAt sql.NullTime
		reason      sql.NullString
		refund      sql.NullFloat64
	)
	err := row.Scan(&b.ID, &b.UserID, &b.TurfID, &b.Date, &b.StartTime, &b.EndTime,
		&b.DurationHours, &b.PlayerCount, &b.BaseAmount, &b.Taxes, &b.TotalAmount,
		&b.PaymentMethod, &b.PaymentStatus, &txID, &paidAt, &b.Status,
		&cancelledBy, &cancelledAt, &reason, &refund, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.TransactionID = txID.String
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	b.CancelledBy = cancelledBy.String
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	b.CancelReason = reason.String
	b.RefundAmount = refund.Float64
	return b, nil
}

// Create inserts a booking after re-running the conflict check inside the
// same transaction with SELECT ... FOR UPDATE. Two concurrent requests for
// overlapping intervals serialize on the locked rows: the loser of the race
// observes the winner's insert and gets ErrSlotTaken. This closes the
// check-then-act gap left open by validating against data read earlier.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	day := b.Date.Format("2006-01-02")

	var conflictID uint64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM bookings
		WHERE turf_id=? AND booking_date=? AND status IN ('pending','confirmed')
		  AND start_time < ? AND end_time > ?
		LIMIT 1 FOR UPDATE`,
		b.TurfID, day, b.EndTime, b.StartTime).Scan(&conflictID)
	if err == nil {
		return ErrSlotTaken
	}
	if err != sql.ErrNoRows {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (user_id, turf_id, booking_date, start_time, end_time,
			duration_hours, player_count, base_amount, taxes, total_amount,
			payment_method, payment_status, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.TurfID, day, b.StartTime, b.EndTime,
		b.DurationHours, b.PlayerCount, b.BaseAmount, b.Taxes, b.TotalAmount,
		b.PaymentMethod, model.PaymentPending, availability.StatusPending)
	if err != nil {
		// A racing insert into the same empty range deadlocks on the gap
		// lock; the loser keeps no row, so it gets the conflict outcome.
		if isLockConflict(err) {
			return ErrSlotTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.PaymentStatus = model.PaymentPending
	b.Status = availability.StatusPending

	// Query back timestamps so the caller returns a fully populated record.
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		if isLockConflict(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

// ReservationsFor loads the availability engine's view of all bookings for
// one turf on one calendar day. Terminal statuses are included; the engine
// filters them itself so display code can still show released slots.
func (r *BookingRepo) ReservationsFor(ctx context.Context, turfID uint64, date time.Time) ([]availability.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, status, booking_date, start_time, end_time
		FROM bookings WHERE turf_id=? AND booking_date=?
		ORDER BY start_time`,
		turfID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []availability.Reservation
	for rows.Next() {
		var rv availability.Reservation
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Status, &rv.Date,
			&rv.Interval.Start, &rv.Interval.End); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// GetByID fetches a booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return b, ErrBookingNotFound
	}
	return b, err
}

// BookingFilter narrows list queries over bookings.
type BookingFilter struct {
	UserID uint64
	TurfID uint64
	Status string
	Date   *time.Time
	Limit  int
	Offset int
}

// List returns a page of bookings matching the filter, newest first, plus
// the total count for pagination.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.UserID != 0 {
		where = append(where, "user_id=?")
		args = append(args, f.UserID)
	}
	if f.TurfID != 0 {
		where = append(where, "turf_id=?")
		args = append(args, f.TurfID)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	if f.Date != nil {
		where = append(where, "booking_date=?")
		args = append(args, f.Date.Format("2006-01-02"))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE "+cond+
			" ORDER BY booking_date DESC, start_time LIMIT ? OFFSET ?",
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// Cancel marks a booking cancelled, recording who cancelled it and why.
// Completed and no-show bookings cannot be cancelled; a paid booking is
// flagged refunded for the full amount.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64, cancelledBy, reason string) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1 FOR UPDATE", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return b, ErrBookingNotFound
	}
	if err != nil {
		return b, err
	}
	switch b.Status {
	case availability.StatusCancelled, availability.StatusCompleted, availability.StatusNoShow:
		return b, ErrConflict
	}

	now := time.Now().UTC()
	refund := 0.0
	payment := b.PaymentStatus
	if b.PaymentStatus == model.PaymentCompleted {
		payment = model.PaymentRefunded
		refund = b.TotalAmount
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status=?, cancelled_by=?, cancelled_at=?, cancel_reason=?,
			payment_status=?, refund_amount=?
		WHERE id=?`,
		availability.StatusCancelled, cancelledBy, now, reason, payment, refund, id); err != nil {
		return b, err
	}
	if err := tx.Commit(); err != nil {
		return b, err
	}

	b.Status = availability.StatusCancelled
	b.CancelledBy = cancelledBy
	b.CancelledAt = &now
	b.CancelReason = reason
	b.PaymentStatus = payment
	b.RefundAmount = refund
	return b, nil
}

// SetStatus moves a booking into status, but only from one of the allowed
// source states. Used for confirm, complete and no-show transitions.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string, from ...string) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
	args := []any{status, id}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status IN ("+placeholders+")", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing row from an illegal transition.
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookings WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrBookingNotFound
		}
		return ErrConflict
	}
	return nil
}

// MarkPaid records a completed payment and confirms the booking.
func (r *BookingRepo) MarkPaid(ctx context.Context, id uint64, transactionID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET payment_status=?, transaction_id=?, paid_at=NOW(), status=?
		WHERE id=? AND payment_status<>? AND status<>?`,
		model.PaymentCompleted, transactionID, availability.StatusConfirmed,
		id, model.PaymentCompleted, availability.StatusCancelled)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// HasCompletedFor reports whether the user has a completed booking at the
// turf, and returns the most recent one's ID. Reviews require one.
func (r *BookingRepo) HasCompletedFor(ctx context.Context, userID, turfID uint64) (uint64, bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx, `
		SELECT id FROM bookings
		WHERE user_id=? AND turf_id=? AND status=?
		ORDER BY booking_date DESC LIMIT 1`,
		userID, turfID, availability.StatusCompleted).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Analytics aggregates counts and revenue for the admin dashboard.
func (r *BookingRepo) Analytics(ctx context.Context) (model.BookingAnalytics, error) {
	var a model.BookingAnalytics
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(status='confirmed'),0),
			COALESCE(SUM(status='cancelled'),0),
			COALESCE(SUM(status='completed'),0),
			COALESCE(SUM(CASE WHEN status='completed' THEN total_amount ELSE 0 END),0)
		FROM bookings`).
		Scan(&a.TotalBookings, &a.ConfirmedBookings, &a.CancelledBookings,
			&a.CompletedBookings, &a.TotalRevenue)
	return a, err
}
