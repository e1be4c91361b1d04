package domain

import "time"

// Identity is the authenticated caller as carried by a bearer token.
// TokenID and ExpiresAt are only set on identities produced by verification.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string

	TokenID   string
	ExpiresAt time.Time
}
