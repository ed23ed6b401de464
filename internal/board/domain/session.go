package domain

import "time"

// Session is the server-side half of a login. The cookie the browser holds
// is a signed token whose jti points at one of these rows; revoking the row
// kills the cookie no matter how long its signature stays valid.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
