package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a transaction can never be opened inside another one.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// back, nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the login lookup. The match is exact.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). A taken
	// email returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies the non-nil changes in a single statement, sets
	// updated_at to now and returns the resulting row. Unknown id returns
	// ErrNotFound, a taken email ErrAlreadyExists.
	UpdateUser(ctx context.Context, id string, c domain.UserChanges, now time.Time) (domain.User, error)

	// ListUsers returns users newest first. A non-empty search keeps only
	// users whose full name contains it, ignoring case.
	ListUsers(ctx context.Context, search string) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession stores a new session. Only the token fingerprint is kept.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetValidSessionByTokenHash returns the session whose token hashes to
	// hash and which is still alive at now. Unknown and expired both return
	// ErrNotFound.
	GetValidSessionByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Session, error)

	// DeleteExpiredSessions removes sessions dead at now and reports how many.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// VerificationCodes holds the short lived email codes. It lives outside the
// relational Store since codes never need to survive a restart.
type VerificationCodes interface {
	// PutCode stores c, replacing any previous code for the same email.
	PutCode(ctx context.Context, c domain.VerificationCode) error

	// GetCode returns the code for email, expired or not. Missing returns
	// ErrNotFound.
	GetCode(ctx context.Context, email string) (domain.VerificationCode, error)

	DeleteCode(ctx context.Context, email string) error

	// DeleteExpiredCodes removes codes expired at now and reports how many.
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}
