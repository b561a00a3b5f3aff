package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		Phone:        mapStringNull(u.Phone),
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, c domain.UserChanges, now time.Time) (domain.User, error) {
	params := gen.UpdateUserParams{
		FullName:     mapOptionalString(c.FullName),
		Email:        mapOptionalString(c.Email),
		SetPhone:     c.Phone != nil,
		PasswordHash: mapOptionalString(c.PasswordHash),
		IsAdmin:      mapOptionalBool(c.IsAdmin),
		UpdatedAt:    now.UTC(),
		ID:           id,
	}
	if c.Phone != nil {
		params.Phone = mapStringNull(*c.Phone)
	}

	row, err := r.q.UpdateUser(ctx, params)
	if err != nil {
		return domain.User{}, mapConstraint(mapNotFound(err))
	}
	return mapUser(row), nil
}

// ListUsers filters in Go because sqlite's LOWER only folds ASCII and most
// customer names are not.
func (r *usersRepo) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(search)
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !strings.Contains(strings.ToLower(row.FullName), needle) {
			continue
		}
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
