package domain

import "time"

// User is a storefront account. Email is the login identifier and is unique
// exactly as stored (no case folding).
type User struct {
	ID           string
	Email        string
	Phone        string // "" when not provided
	FullName     string
	PasswordHash string // argon2id PHC string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserChanges is a set of column updates for a single user. A nil field is
// left untouched, a non-nil field is written as is (an empty Phone clears it).
type UserChanges struct {
	FullName     *string
	Email        *string
	Phone        *string
	PasswordHash *string
	IsAdmin      *bool
}

// IsEmpty reports whether no column would change.
func (c UserChanges) IsEmpty() bool {
	return c.FullName == nil && c.Email == nil && c.Phone == nil && c.PasswordHash == nil && c.IsAdmin == nil
}

// Apply returns a copy of u with the changes applied and UpdatedAt set to now.
func (u User) Apply(c UserChanges, now time.Time) User {
	if c.FullName != nil {
		u.FullName = *c.FullName
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Phone != nil {
		u.Phone = *c.Phone
	}
	if c.PasswordHash != nil {
		u.PasswordHash = *c.PasswordHash
	}
	if c.IsAdmin != nil {
		u.IsAdmin = *c.IsAdmin
	}
	u.UpdatedAt = now
	return u
}
