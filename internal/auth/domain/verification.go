package domain

import "time"

// DefaultVerificationCodeTTL is how long a generated email code stays usable.
const DefaultVerificationCodeTTL = 10 * time.Minute

// VerificationCode is a single use code bound to an email address. Only the
// latest code per email is kept.
type VerificationCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpiredAt reports whether the code can no longer be redeemed at now.
func (c VerificationCode) IsExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
