package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/turfease/turf-booking/internal/model"
)

// NotificationRepo provides persistence for in-app notifications.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

const notificationColumns = "id,recipient_id,type,title,message,booking_id,turf_id,is_read,read_at,created_at"

func scanNotification(row interface{ Scan(...any) error }) (model.Notification, error) {
	var (
		n         model.Notification
		bookingID sql.NullInt64
		turfID    sql.NullInt64
		readAt    sql.NullTime
	)
	err := row.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message,
		&bookingID, &turfID, &n.IsRead, &readAt, &n.CreatedAt)
	if bookingID.Valid {
		v := uint64(bookingID.Int64)
		n.BookingID = &v
	}
	if turfID.Valid {
		v := uint64(turfID.Int64)
		n.TurfID = &v
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return n, err
}

// Create inserts a notification row.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (recipient_id, type, title, message, booking_id, turf_id) VALUES (?,?,?,?,?,?)",
		n.RecipientID, n.Type, n.Title, n.Message, nullID(n.BookingID), nullID(n.TurfID))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// CreateBatch inserts one notification per recipient in a single
// transaction, so an admin broadcast is all-or-nothing. Returns the number
// of rows written.
func (r *NotificationRepo) CreateBatch(ctx context.Context, recipients []uint64, typ, title, message string) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO notifications (recipient_id, type, title, message) VALUES (?,?,?,?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rid := range recipients {
		if _, err := stmt.ExecContext(ctx, rid, typ, title, message); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(recipients), nil
}

// AllRecipientIDs returns the ids of every active user, the target set of a
// broadcast without explicit recipients.
func (r *NotificationRepo) AllRecipientIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM users WHERE is_active=1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// NotificationFilter narrows listing queries.
type NotificationFilter struct {
	RecipientID uint64 // 0 for the admin all-users view
	Type        string
	Unread      *bool
	Limit       int
	Offset      int
}

// List returns a page of notifications, newest first, plus the total count.
func (r *NotificationRepo) List(ctx context.Context, f NotificationFilter) ([]model.Notification, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.RecipientID != 0 {
		where = append(where, "recipient_id=?")
		args = append(args, f.RecipientID)
	}
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, f.Type)
	}
	if f.Unread != nil {
		where = append(where, "is_read=?")
		args = append(args, !*f.Unread)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// AdminNotification decorates a notification with its recipient for the
// admin listing.
type AdminNotification struct {
	model.Notification
	RecipientName  string
	RecipientEmail string
}

// ListAll is the admin view across every user, newest first, with the
// recipient resolved by joining users.
func (r *NotificationRepo) ListAll(ctx context.Context, f NotificationFilter) ([]AdminNotification, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Type != "" {
		where = append(where, "n.type=?")
		args = append(args, f.Type)
	}
	if f.Unread != nil {
		where = append(where, "n.is_read=?")
		args = append(args, !*f.Unread)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications n WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT n.id, n.recipient_id, n.type, n.title, n.message, n.booking_id,
		       n.turf_id, n.is_read, n.read_at, n.created_at, u.name, u.email
		FROM notifications n JOIN users u ON u.id = n.recipient_id
		WHERE `+cond+` ORDER BY n.created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []AdminNotification
	for rows.Next() {
		var (
			an        AdminNotification
			bookingID sql.NullInt64
			turfID    sql.NullInt64
			readAt    sql.NullTime
		)
		err := rows.Scan(&an.ID, &an.RecipientID, &an.Type, &an.Title, &an.Message,
			&bookingID, &turfID, &an.IsRead, &readAt, &an.CreatedAt,
			&an.RecipientName, &an.RecipientEmail)
		if err != nil {
			return nil, 0, err
		}
		if bookingID.Valid {
			v := uint64(bookingID.Int64)
			an.BookingID = &v
		}
		if turfID.Valid {
			v := uint64(turfID.Int64)
			an.TurfID = &v
		}
		if readAt.Valid {
			t := readAt.Time
			an.ReadAt = &t
		}
		out = append(out, an)
	}
	return out, total, rows.Err()
}

// NotificationAnalytics summarizes delivery for the admin dashboard.
type NotificationAnalytics struct {
	Total  int64
	Read   int64
	Unread int64
	ByType map[string]int64
}

// Analytics aggregates total/read counts and the per-type breakdown.
func (r *NotificationRepo) Analytics(ctx context.Context) (NotificationAnalytics, error) {
	a := NotificationAnalytics{ByType: map[string]int64{}}
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_read),0) FROM notifications").
		Scan(&a.Total, &a.Read)
	if err != nil {
		return a, err
	}
	a.Unread = a.Total - a.Read

	rows, err := r.DB.QueryContext(ctx,
		"SELECT type, COUNT(*) FROM notifications GROUP BY type")
	if err != nil {
		return a, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			typ string
			n   int64
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return a, err
		}
		a.ByType[typ] = n
	}
	return a, rows.Err()
}

// UnreadCount returns the number of unread notifications for a user.
func (r *NotificationRepo) UnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id=? AND is_read=0",
		recipientID).Scan(&n)
	return n, err
}

// MarkRead flags one notification as read, enforcing ownership.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID uint64) (model.Notification, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1, read_at=NOW() WHERE id=? AND recipient_id=?",
		id, recipientID)
	if err != nil {
		return model.Notification{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the row is missing or it belongs to someone else.
		var owner uint64
		err := r.DB.QueryRowContext(ctx,
			"SELECT recipient_id FROM notifications WHERE id=?", id).Scan(&owner)
		if err == sql.ErrNoRows {
			return model.Notification{}, ErrNotificationNotFound
		}
		if err != nil {
			return model.Notification{}, err
		}
		if owner != recipientID {
			return model.Notification{}, ErrForbidden
		}
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id=? LIMIT 1", id)
	return scanNotification(row)
}

// MarkAllRead flags every unread notification of a user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1, read_at=NOW() WHERE recipient_id=? AND is_read=0",
		recipientID)
	return err
}

// Delete removes a notification owned by recipientID.
func (r *NotificationRepo) Delete(ctx context.Context, id, recipientID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM notifications WHERE id=? AND recipient_id=?", id, recipientID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func nullID(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}
