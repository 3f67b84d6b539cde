package domain

import "time"

// Role is the authorization level carried by a user and its tokens.
type Role string

const (
	RoleNormal Role = "NORMAL"
	RoleAdmin  Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleNormal, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// TimestampLayout renders creation times as ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp converts t to the canonical creation timestamp string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// User models a registered account. It only lives for the duration of a request.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	CreatedAt    string `json:"created_at"`
}

// UserRecord is the storage form of a User.
type UserRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ToRecord maps the user onto its storage form.
func (u *User) ToRecord() UserRecord {
	return UserRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// UserFromRecord rebuilds a User from its storage form.
func UserFromRecord(r UserRecord) *User {
	return &User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

// TokenPayload holds the claims embedded in an issued token.
type TokenPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// TokenPayload returns the claims identifying u.
func (u *User) TokenPayload() TokenPayload {
	return TokenPayload{ID: u.ID, Name: u.Name, Role: u.Role}
}
