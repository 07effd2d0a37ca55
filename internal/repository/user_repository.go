package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/turfease/turf-booking/internal/model"
	"github.com/turfease/turf-booking/internal/utils"
)

// UserRepo provides CRUD over the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,phone,role,avatar_url,is_active,is_verified,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u      model.User
		phone  sql.NullString
		avatar sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.Role,
		&avatar, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	u.Phone = phone.String
	u.AvatarURL = avatar.String
	return u, err
}

// Create inserts a user with a freshly hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, name, email, password, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, phone, role) VALUES (?,?,?,?,?)",
		name, email, hash, phone, role)
	if err != nil {
		// Duplicate key on the unique email index.
		if isDupEntry(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, phone, avatarURL string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, phone=?, avatar_url=? WHERE id=?",
		name, phone, avatarURL, id)
	return err
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// List returns a page of users for the admin view, newest first.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// Preferences loads the users.preferences JSON blob, falling back to the
// defaults for users who never saved any.
func (r *UserRepo) Preferences(ctx context.Context, id uint64) (model.Preferences, error) {
	var raw sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT preferences FROM users WHERE id=? LIMIT 1", id).Scan(&raw)
	if err != nil {
		return model.Preferences{}, err
	}
	if !raw.Valid || raw.String == "" {
		return model.DefaultPreferences(), nil
	}
	var p model.Preferences
	if err := json.Unmarshal([]byte(raw.String), &p); err != nil {
		return model.Preferences{}, err
	}
	return p, nil
}

// UpdatePreferences replaces the whole preferences blob.
func (r *UserRepo) UpdatePreferences(ctx context.Context, id uint64, p model.Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET preferences=? WHERE id=?", string(raw), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddFavorite bookmarks a turf for the user. Re-adding a favorite is a
// no-op; an unknown turf id trips the foreign key and maps to
// ErrTurfNotFound.
func (r *UserRepo) AddFavorite(ctx context.Context, userID, turfID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_favorite_turfs (user_id, turf_id) VALUES (?,?)",
		userID, turfID)
	if isDupEntry(err) {
		return nil
	}
	if isFKViolation(err) {
		return ErrTurfNotFound
	}
	return err
}

// RemoveFavorite drops a bookmark. Removing one that was never set is a
// no-op, mirroring AddFavorite.
func (r *UserRepo) RemoveFavorite(ctx context.Context, userID, turfID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_favorite_turfs WHERE user_id=? AND turf_id=?",
		userID, turfID)
	return err
}

// FavoriteTurfs returns the user's bookmarked listings. Delisted turfs drop
// out silently rather than surfacing dead entries.
func (r *UserRepo) FavoriteTurfs(ctx context.Context, userID uint64) ([]model.Turf, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+turfColumns+` FROM turfs
		WHERE is_active=1
		  AND id IN (SELECT turf_id FROM user_favorite_turfs WHERE user_id=?)
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Turf
	for rows.Next() {
		t, err := scanTurf(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateRole changes a user's role (admin operation).
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus activates or deactivates an account (admin operation).
func (r *UserRepo) UpdateStatus(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
