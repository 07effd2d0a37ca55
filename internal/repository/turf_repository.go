package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/turfease/turf-booking/internal/availability"
	"github.com/turfease/turf-booking/internal/geo"
	"github.com/turfease/turf-booking/internal/model"
)

// TurfRepo encapsulates all database queries for turfs, their weekly
// schedules and their date-level closures. The schedule lives in the
// turf_schedules table (one row per weekday) and closures in turf_closures;
// both are loaded together with the turf when availability is computed.
type TurfRepo struct{ DB *sql.DB }

func NewTurfRepo(db *sql.DB) *TurfRepo { return &TurfRepo{DB: db} }

// TurfFilter narrows List queries. Zero values mean "no filter".
type TurfFilter struct {
	City        string
	Sport       string
	MinPrice    float64
	MaxPrice    float64
	Search      string
	OwnerID     uint64
	OnlyVisible bool // restrict to active + verified listings
	OnlyPending bool // restrict to unverified listings (admin review queue)
	Limit       int
	Offset      int
	SortBy      string // created_at | hourly_rate | rating_avg
	SortDesc    bool
}

const turfColumns = `id,owner_id,name,description,address,city,latitude,longitude,
sports,amenities,hourly_rate,peak_hour_rate,currency,max_players,
contact_phone,contact_email,rating_avg,rating_count,is_active,is_verified,created_at,updated_at`

func scanTurf(row interface{ Scan(...any) error }) (model.Turf, error) {
	var (
		t                 model.Turf
		sports, amenities string
		peakRate          sql.NullFloat64
		contactEmail      sql.NullString
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.Address, &t.City,
		&t.Latitude, &t.Longitude, &sports, &amenities, &t.HourlyRate, &peakRate,
		&t.Currency, &t.MaxPlayers, &t.ContactPhone, &contactEmail,
		&t.RatingAvg, &t.RatingCount, &t.IsActive, &t.IsVerified, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.Sports = splitCSV(sports)
	t.Amenities = splitCSV(amenities)
	t.PeakHourRate = peakRate.Float64
	t.ContactEmail = contactEmail.String
	return t, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinCSV(vals []string) string { return strings.Join(vals, ",") }

// Create inserts a turf and populates its generated ID.
func (r *TurfRepo) Create(ctx context.Context, t *model.Turf) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO turfs (owner_id, name, description, address, city, latitude, longitude,
			sports, amenities, hourly_rate, peak_hour_rate, currency, max_players,
			contact_phone, contact_email)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.OwnerID, t.Name, t.Description, t.Address, t.City, t.Latitude, t.Longitude,
		joinCSV(t.Sports), joinCSV(t.Amenities), t.HourlyRate, nullFloat(t.PeakHourRate),
		t.Currency, t.MaxPlayers, t.ContactPhone, nullStr(t.ContactEmail))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a single turf.
func (r *TurfRepo) GetByID(ctx context.Context, id uint64) (model.Turf, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+turfColumns+" FROM turfs WHERE id=? LIMIT 1", id)
	t, err := scanTurf(row)
	if err == sql.ErrNoRows {
		return t, ErrTurfNotFound
	}
	return t, err
}

// Update rewrites the mutable listing fields of a turf owned by ownerID.
// Admins bypass the ownership check by passing ownerID 0.
func (r *TurfRepo) Update(ctx context.Context, t *model.Turf, ownerID uint64) error {
	q := `UPDATE turfs SET name=?, description=?, address=?, city=?, latitude=?, longitude=?,
		sports=?, amenities=?, hourly_rate=?, peak_hour_rate=?, currency=?, max_players=?,
		contact_phone=?, contact_email=?, is_active=? WHERE id=?`
	args := []any{t.Name, t.Description, t.Address, t.City, t.Latitude, t.Longitude,
		joinCSV(t.Sports), joinCSV(t.Amenities), t.HourlyRate, nullFloat(t.PeakHourRate),
		t.Currency, t.MaxPlayers, t.ContactPhone, nullStr(t.ContactEmail), t.IsActive, t.ID}
	if ownerID != 0 {
		q += " AND owner_id=?"
		args = append(args, ownerID)
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTurfNotFound
	}
	return nil
}

// Delete removes a turf listing together with its schedule and closures.
// Bookings are kept: their lifecycle is soft and history must survive.
func (r *TurfRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q := "DELETE FROM turfs WHERE id=?"
	args := []any{id}
	if ownerID != 0 {
		q += " AND owner_id=?"
		args = append(args, ownerID)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTurfNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM turf_schedules WHERE turf_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM turf_closures WHERE turf_id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns a page of turfs matching the filter plus the total count.
func (r *TurfRepo) List(ctx context.Context, f TurfFilter) ([]model.Turf, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.OnlyVisible {
		where = append(where, "is_active=1 AND is_verified=1")
	}
	if f.OnlyPending {
		where = append(where, "is_verified=0")
	}
	if f.OwnerID != 0 {
		where = append(where, "owner_id=?")
		args = append(args, f.OwnerID)
	}
	if f.City != "" {
		where = append(where, "city LIKE ?")
		args = append(args, "%"+f.City+"%")
	}
	if f.Sport != "" {
		where = append(where, "FIND_IN_SET(?, sports) > 0")
		args = append(args, f.Sport)
	}
	if f.MinPrice > 0 {
		where = append(where, "hourly_rate >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where = append(where, "hourly_rate <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.Search != "" {
		where = append(where, "(name LIKE ? OR description LIKE ? OR address LIKE ? OR city LIKE ?)")
		s := "%" + f.Search + "%"
		args = append(args, s, s, s, s)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM turfs WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	switch f.SortBy {
	case "hourly_rate", "rating_avg", "created_at":
		sortBy = f.SortBy
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM turfs WHERE %s ORDER BY %s %s LIMIT ? OFFSET ?",
			turfColumns, cond, sortBy, dir),
		append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Turf
	for rows.Next() {
		t, err := scanTurf(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// NearbyTurf pairs a listing with its distance from a search point.
type NearbyTurf struct {
	model.Turf
	DistanceKm float64
}

// Nearby returns visible turfs within radiusKm of (lat, lng), nearest
// first. A bounding-box prefilter keeps the query on the indexed lat/lng
// range; the exact great-circle distance is then computed per candidate.
// Listings that never set coordinates sit at the (0,0) default and are
// excluded outright.
func (r *TurfRepo) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]NearbyTurf, error) {
	box := geo.BoundingBox(lat, lng, radiusKm)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+turfColumns+` FROM turfs
		WHERE is_active=1 AND is_verified=1
		  AND NOT (latitude=0 AND longitude=0)
		  AND latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?`,
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NearbyTurf
	for rows.Next() {
		t, err := scanTurf(rows)
		if err != nil {
			return nil, err
		}
		d := geo.HaversineKm(lat, lng, t.Latitude, t.Longitude)
		if d <= radiusKm {
			out = append(out, NearbyTurf{Turf: t, DistanceKm: d})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SetVerified flips the admin verification flag.
func (r *TurfRepo) SetVerified(ctx context.Context, id uint64, verified bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE turfs SET is_verified=? WHERE id=?", verified, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTurfNotFound
	}
	return nil
}

// UpdateRating rewrites the denormalized rating columns from the reviews
// table. Called after every review create/update/delete.
func (r *TurfRepo) UpdateRating(ctx context.Context, turfID uint64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE turfs SET
			rating_avg = COALESCE((SELECT AVG(rating) FROM reviews WHERE turf_id=?), 0),
			rating_count = (SELECT COUNT(*) FROM reviews WHERE turf_id=?)
		WHERE id=?`, turfID, turfID, turfID)
	return err
}

// ReplaceSchedule rewrites the full weekly schedule of a turf in one
// transaction so readers never observe a half-updated week.
func (r *TurfRepo) ReplaceSchedule(ctx context.Context, turfID uint64, entries []model.ScheduleEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM turf_schedules WHERE turf_id=?", turfID); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO turf_schedules (turf_id, day, is_open, open_time, close_time, peak_start, peak_end)
			VALUES (?,?,?,?,?,?,?)`,
			turfID, e.Day, e.IsOpen, e.OpenTime, e.CloseTime, e.PeakStart, e.PeakEnd); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSchedule loads the weekly schedule rows of a turf.
func (r *TurfRepo) GetSchedule(ctx context.Context, turfID uint64) ([]model.ScheduleEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT turf_id, day, is_open, open_time, close_time, peak_start, peak_end
		FROM turf_schedules WHERE turf_id=?`, turfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := rows.Scan(&e.TurfID, &e.Day, &e.IsOpen, &e.OpenTime, &e.CloseTime, &e.PeakStart, &e.PeakEnd); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AddClosure records a holiday or maintenance date. The unique index on
// (turf_id, closure_date) makes repeated submissions idempotent failures.
func (r *TurfRepo) AddClosure(ctx context.Context, c *model.Closure) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO turf_closures (turf_id, closure_date, kind, reason) VALUES (?,?,?,?)",
		c.TurfID, c.Date.Format("2006-01-02"), c.Kind, c.Reason)
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
	c.ID = uint64(id)
	return nil
}

// DeleteClosure removes a closure row belonging to the turf.
func (r *TurfRepo) DeleteClosure(ctx context.Context, turfID, closureID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM turf_closures WHERE id=? AND turf_id=?", closureID, turfID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListClosures returns all closures of a turf ordered by date.
func (r *TurfRepo) ListClosures(ctx context.Context, turfID uint64) ([]model.Closure, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, turf_id, closure_date, kind, reason FROM turf_closures WHERE turf_id=? ORDER BY closure_date",
		turfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Closure
	for rows.Next() {
		var (
			c      model.Closure
			reason sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.TurfID, &c.Date, &c.Kind, &reason); err != nil {
			return nil, err
		}
		c.Reason = reason.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// WeeklySchedule assembles the availability engine's schedule aggregate for
// a turf: the weekday rows plus holiday/maintenance dates. This is the read
// the engine's callers perform before computing slots or validating a
// booking.
func (r *TurfRepo) WeeklySchedule(ctx context.Context, turfID uint64) (availability.WeeklySchedule, error) {
	entries, err := r.GetSchedule(ctx, turfID)
	if err != nil {
		return availability.WeeklySchedule{}, err
	}
	closures, err := r.ListClosures(ctx, turfID)
	if err != nil {
		return availability.WeeklySchedule{}, err
	}

	ws := availability.WeeklySchedule{}
	for _, e := range entries {
		d := availability.DaySchedule{
			Day:       e.Day,
			IsOpen:    e.IsOpen,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
		}
		if e.PeakStart != nil && e.PeakEnd != nil {
			d.Peak = &availability.PeakWindow{Start: *e.PeakStart, End: *e.PeakEnd}
		}
		ws.Days = append(ws.Days, d)
	}
	for _, c := range closures {
		switch c.Kind {
		case model.ClosureMaintenance:
			ws.Maintenance = append(ws.Maintenance, c.Date)
		default:
			ws.Holidays = append(ws.Holidays, c.Date)
		}
	}
	return ws, nil
}

// ClosedOn reports whether the turf has a closure on the given date without
// loading the whole aggregate.
func (r *TurfRepo) ClosedOn(ctx context.Context, turfID uint64, date time.Time) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM turf_closures WHERE turf_id=? AND closure_date=?",
		turfID, date.Format("2006-01-02")).Scan(&n)
	return n > 0, err
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
