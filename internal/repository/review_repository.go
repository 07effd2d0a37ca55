package repository

import (
	"context"
	"database/sql"

	"github.com/turfease/turf-booking/internal/model"
)

// ReviewRepo provides CRUD for reviews. The denormalized rating columns on
// turfs are recomputed by TurfRepo.UpdateRating after every mutation here;
// handlers call both so the listing stays consistent with the review rows.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = "id,user_id,turf_id,booking_id,rating,comment,created_at,updated_at"

func scanReview(row interface{ Scan(...any) error }) (model.Review, error) {
	var (
		rv      model.Review
		comment sql.NullString
	)
	err := row.Scan(&rv.ID, &rv.UserID, &rv.TurfID, &rv.BookingID, &rv.Rating,
		&comment, &rv.CreatedAt, &rv.UpdatedAt)
	rv.Comment = comment.String
	return rv, err
}

// Create inserts a review. The unique index on booking_id enforces one
// review per booking; a duplicate maps to ErrConflict.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (user_id, turf_id, booking_id, rating, comment) VALUES (?,?,?,?,?)",
		rv.UserID, rv.TurfID, rv.BookingID, rv.Rating, rv.Comment)
	if err != nil {
		if isDupEntry(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID fetches a review.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1", id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return rv, ErrReviewNotFound
	}
	return rv, err
}

// Update rewrites the rating and comment of a review owned by userID.
func (r *ReviewRepo) Update(ctx context.Context, id, userID uint64, rating int, comment string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=? WHERE id=? AND user_id=?",
		rating, comment, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Delete removes a review. Pass userID 0 to skip the ownership check
// (admin operation).
func (r *ReviewRepo) Delete(ctx context.Context, id, userID uint64) error {
	q := "DELETE FROM reviews WHERE id=?"
	args := []any{id}
	if userID != 0 {
		q += " AND user_id=?"
		args = append(args, userID)
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ReviewWithAuthor joins the author's display name onto a review for the
// public listing.
type ReviewWithAuthor struct {
	model.Review
	AuthorName string
}

// ListByTurf returns a page of reviews for a turf, newest first, with the
// author names resolved, plus the total count.
func (r *ReviewRepo) ListByTurf(ctx context.Context, turfID uint64, limit, offset int) ([]ReviewWithAuthor, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE turf_id=?", turfID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.turf_id, r.booking_id, r.rating, r.comment,
			r.created_at, r.updated_at, u.name
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.turf_id=? ORDER BY r.created_at DESC LIMIT ? OFFSET ?`,
		turfID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []ReviewWithAuthor
	for rows.Next() {
		var (
			rv      ReviewWithAuthor
			comment sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.TurfID, &rv.BookingID, &rv.Rating,
			&comment, &rv.CreatedAt, &rv.UpdatedAt, &rv.AuthorName); err != nil {
			return nil, 0, err
		}
		rv.Comment = comment.String
		out = append(out, rv)
	}
	return out, total, rows.Err()
}
