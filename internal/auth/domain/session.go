package domain

import "time"

// DefaultSessionTTL is how long a session issued at register or login stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Session grants the bearer of a token the identity of UserID until
// ExpiresAt. Only the token fingerprint is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpiredAt reports whether the session is dead at now. A session is valid
// only while now is strictly before ExpiresAt.
func (s Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AuthResult is what register and login hand back: the user and the raw
// bearer token. The token is not recoverable after this point.
type AuthResult struct {
	User  User
	Token string
}
