package domain

import (
	"strings"
)

// ProfilePatch is a partial update of the caller's own profile. Presence is
// decided by the pointer, not by the value: a nil field is not touched.
// Name, Email and Password may not be set to blank. Phone may be set to ""
// to clear it.
type ProfilePatch struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
}

// UserPatch is the admin variant which can also flip the admin flag.
type UserPatch struct {
	ProfilePatch
	IsAdmin *bool
}

// IsEmpty reports whether no field was supplied.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.Password == nil
}

// IsEmpty reports whether no field was supplied.
func (p UserPatch) IsEmpty() bool {
	return p.ProfilePatch.IsEmpty() && p.IsAdmin == nil
}

// Normalize trims the text fields and rejects blanks. The password is checked
// for emptiness but kept verbatim.
func (p ProfilePatch) Normalize() (ProfilePatch, error) {
	if p.IsEmpty() {
		return p, ErrNothingToUpdate
	}

	var out ProfilePatch
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return p, Validationf("name must not be empty")
		}
		out.Name = &name
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if email == "" {
			return p, Validationf("email must not be empty")
		}
		if !ValidEmail(email) {
			return p, ErrInvalidEmail
		}
		out.Email = &email
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		out.Phone = &phone
	}
	if p.Password != nil {
		if strings.TrimSpace(*p.Password) == "" {
			return p, Validationf("password must not be empty")
		}
		pw := *p.Password
		out.Password = &pw
	}
	return out, nil
}

// Registration is the input for creating an account.
type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
	IsAdmin  bool
}

// Normalize trims the text fields and checks the required ones.
func (r Registration) Normalize() (Registration, error) {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Email == "" || r.Name == "" || strings.TrimSpace(r.Password) == "" {
		return r, ErrRegistrationFields
	}
	if !ValidEmail(r.Email) {
		return r, ErrInvalidEmail
	}
	return r, nil
}

// ValidEmail is a shape check only: one "@" with something on both sides and
// no whitespace. Deliverability is not our problem.
func ValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}
