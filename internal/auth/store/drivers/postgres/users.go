package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
)

const userColumns = `id, email, phone, full_name, password_hash, is_admin, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

// GetUserByID retrieves a user by id.
func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, oops.Code("USER_NOT_FOUND").With("id", id).Wrap(store.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, oops.Code("USER_GET_FAILED").
			With("operation", "get user by id").
			With("id", id).
			Wrap(err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by exact email.
func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, oops.Code("USER_NOT_FOUND").Wrap(store.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, oops.Code("USER_GET_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}
	return u, nil
}

// CreateUser inserts u. A taken email maps to store.ErrAlreadyExists.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, phone, full_name, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		u.ID,
		u.Email,
		nullableString(u.Phone),
		u.FullName,
		u.PasswordHash,
		u.IsAdmin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return oops.Code("USER_EMAIL_TAKEN").With("id", u.ID).Wrap(store.ErrAlreadyExists)
	}
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("id", u.ID).
			Wrap(err)
	}
	return nil
}

// UpdateUser applies c in one statement. NULL parameters keep the column.
func (r *usersRepo) UpdateUser(ctx context.Context, id string, c domain.UserChanges, now time.Time) (domain.User, error) {
	var phone *string
	if c.Phone != nil {
		phone = nullableString(*c.Phone)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET full_name     = COALESCE($1, full_name),
		    email         = COALESCE($2, email),
		    phone         = CASE WHEN $3::boolean THEN $4 ELSE phone END,
		    password_hash = COALESCE($5, password_hash),
		    is_admin      = COALESCE($6, is_admin),
		    updated_at    = $7
		WHERE id = $8
		RETURNING `+userColumns,
		c.FullName,
		c.Email,
		c.Phone != nil,
		phone,
		c.PasswordHash,
		c.IsAdmin,
		now,
		id,
	)

	u, err := scanUser(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.User{}, oops.Code("USER_NOT_FOUND").With("id", id).Wrap(store.ErrNotFound)
	case isUniqueViolation(err):
		return domain.User{}, oops.Code("USER_EMAIL_TAKEN").With("id", id).Wrap(store.ErrAlreadyExists)
	case err != nil:
		return domain.User{}, oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", id).
			Wrap(err)
	}
	return u, nil
}

// ListUsers returns users newest first, optionally filtered by a case
// insensitive substring of full_name.
func (r *usersRepo) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE $1 = '' OR full_name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`, escapeLike(search))
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_SCAN_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_ROWS_ERROR").
			With("operation", "iterate user rows").
			Wrap(err)
	}
	return users, nil
}

// IsEmpty reports whether the users table has no rows.
func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool
	if err := r.db.QueryRow(ctx, `SELECT NOT EXISTS (SELECT 1 FROM users)`).Scan(&empty); err != nil {
		return false, oops.Code("USER_COUNT_FAILED").
			With("operation", "check users empty").
			Wrap(err)
	}
	return empty, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u     domain.User
		phone *string
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&phone,
		&u.FullName,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	if phone != nil {
		u.Phone = *phone
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
