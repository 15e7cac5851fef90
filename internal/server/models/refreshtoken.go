package models

import "time"

// RefreshToken is an opaque token that lets a client get a new access token
// without sending the password again. Tokens are single use: refreshing
// deletes the old one.
type RefreshToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token can no longer be exchanged at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
