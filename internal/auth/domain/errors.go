package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure. The HTTP layer maps each kind to exactly
// one status code.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindConflict
	KindNotFound
	KindMethodNotAllowed
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// Error is a typed failure whose Message is safe to show to the caller.
// Err carries the underlying cause for logs and is never serialized.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and message, so the shared
// values below work with errors.Is even after wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// Internal wraps an unexpected cause. The caller only ever sees the generic
// message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, treating anything that is not a *Error as
// internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	// Unknown email and wrong password share this value so the two cannot be
	// told apart.
	ErrInvalidCredentials = &Error{Kind: KindAuthentication, Message: "invalid email or password"}
	ErrTokenMissing       = &Error{Kind: KindAuthentication, Message: "token not provided"}
	// Unknown and expired tokens share this value.
	ErrTokenInvalid = &Error{Kind: KindAuthentication, Message: "invalid or expired token"}

	ErrForbidden = &Error{Kind: KindAuthorization, Message: "forbidden"}

	ErrNothingToUpdate     = &Error{Kind: KindValidation, Message: "nothing to update"}
	ErrRegistrationFields  = &Error{Kind: KindValidation, Message: "email, name and password are required"}
	ErrLoginFields         = &Error{Kind: KindValidation, Message: "email and password are required"}
	ErrUserIDRequired      = &Error{Kind: KindValidation, Message: "user id is required"}
	ErrSelfDemotion        = &Error{Kind: KindValidation, Message: "cannot revoke your own admin rights"}
	ErrInvalidEmail        = &Error{Kind: KindValidation, Message: "invalid email"}
	ErrVerificationFields  = &Error{Kind: KindValidation, Message: "email and code are required"}
	ErrVerificationEmail   = &Error{Kind: KindValidation, Message: "email is required"}
	ErrCodeNotFound        = &Error{Kind: KindValidation, Message: "code not found or expired"}
	ErrCodeMismatch        = &Error{Kind: KindValidation, Message: "invalid code"}
	ErrCodeExpired         = &Error{Kind: KindValidation, Message: "code expired"}
	ErrUnknownVerification = &Error{Kind: KindValidation, Message: "action must be generate or verify"}

	ErrEmailTaken = &Error{Kind: KindConflict, Message: "user with this email already exists"}

	ErrUserNotFound     = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrUnknownAction    = &Error{Kind: KindNotFound, Message: "endpoint not found"}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Message: "method not allowed"}
)
