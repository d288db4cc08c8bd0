// Package model defines domain entities for the application.
package model

import "time"

// Column widths of the users table.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNicknameLength = 30
)

// User is a registered account. Users own boards and memos.
type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Nickname          string     `json:"nickname"`
	PasswordHash      string     `json:"-"` // Never serialize
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TokenRevoked reports whether a token issued at issuedAt predates the
// user's last password change. Token timestamps carry second precision,
// so the comparison is done on Unix seconds.
func (u *User) TokenRevoked(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// AuthContext holds the authenticated identity for a request.
// It is injected into the request context by the auth middleware.
type AuthContext struct {
	UserID            string
	Username          string
	Nickname          string
	Email             string
	PasswordChangedAt *time.Time
}

// NewAuthContext builds an AuthContext from a user row.
func NewAuthContext(u *User) *AuthContext {
	return &AuthContext{
		UserID:            u.ID,
		Username:          u.Username,
		Nickname:          u.Nickname,
		Email:             u.Email,
		PasswordChangedAt: u.PasswordChangedAt,
	}
}

// TokenRevoked mirrors User.TokenRevoked for cached identities.
func (a *AuthContext) TokenRevoked(issuedAt time.Time) bool {
	if a.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < a.PasswordChangedAt.Unix()
}
