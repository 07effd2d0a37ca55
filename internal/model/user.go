package model

import "time"

// User represents an application user record as stored in the `users`
// table. The json tags are omitted because these structs are used by the
// repository layer; handlers define separate response types with the JSON
// shapes they need.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Phone        – contact phone number (optional).
//	Role         – USER, OWNER or ADMIN.
//	AvatarURL    – profile image URL (optional).
//	IsActive     – whether the account is active; deactivated users cannot log in.
//	IsVerified   – whether the email address has been verified.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         string
	AvatarURL    string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role names stored in users.role and in the JWT role claim.
const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
)

// Preferences is the users.preferences JSON blob: per-channel notification
// switches plus discovery defaults the frontend seeds searches with. Unlike
// the other models it carries json tags, because the struct itself is the
// storage format.
type Preferences struct {
	Notifications     NotificationChannels `json:"notifications"`
	FavoriteLocations []string             `json:"favorite_locations,omitempty"`
	PreferredSports   []string             `json:"preferred_sports,omitempty"`
}

// NotificationChannels selects delivery channels for a user's notifications.
type NotificationChannels struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// DefaultPreferences applies to users who never saved any: email and push
// on, SMS off.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: NotificationChannels{Email: true, Push: true}}
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user; only the SHA-256 hash of the raw token is stored.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
