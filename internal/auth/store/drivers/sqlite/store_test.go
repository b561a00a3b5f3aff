package sqlite_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s store.Store, email, name string, at time.Time) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.NewAt(at).String(),
		Email:        email,
		FullName:     name,
		PasswordHash: "hash",
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, s.Users().CreateUser(t.Context(), u))
	return u
}

func ptr[T any](v T) *T { return &v }

func TestUsers_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := seedUser(t, s, "a@x.com", "Ann", now)

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, byID)

	byEmail, err := s.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetUserByEmail(ctx, "A@x.com")
	require.ErrorIs(t, err, store.ErrNotFound, "emails match exactly as stored")

	_, err = s.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	seedUser(t, s, "a@x.com", "Ann", now)
	dup := domain.User{ID: idx.New().String(), Email: "a@x.com", FullName: "Other", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.ErrorIs(t, s.Users().CreateUser(t.Context(), dup), store.ErrAlreadyExists)

	other := seedUser(t, s, "b@x.com", "Bob", now)
	_, err := s.Users().UpdateUser(t.Context(), other.ID, domain.UserChanges{Email: ptr("a@x.com")}, now)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_UpdatePartial(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	u := seedUser(t, s, "a@x.com", "Ann", created)

	got, err := s.Users().UpdateUser(ctx, u.ID, domain.UserChanges{Phone: ptr("555")}, later)
	require.NoError(t, err)
	assert.Equal(t, "555", got.Phone)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.FullName, got.FullName)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)

	got, err = s.Users().UpdateUser(ctx, u.ID, domain.UserChanges{Phone: ptr(""), IsAdmin: ptr(true), FullName: ptr("Anna")}, later)
	require.NoError(t, err)
	assert.Empty(t, got.Phone)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, "Anna", got.FullName)

	_, err = s.Users().UpdateUser(ctx, idx.New().String(), domain.UserChanges{FullName: ptr("x")}, later)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_ListOrderAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seedUser(t, s, "1@x.com", "John Smith", base)
	seedUser(t, s, "2@x.com", "Ann Lee", base.Add(time.Minute))
	seedUser(t, s, "3@x.com", "mary SMITHSON", base.Add(2*time.Minute))
	seedUser(t, s, "4@x.com", "Иван Смит", base.Add(3*time.Minute))

	all, err := s.Users().ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"4@x.com", "3@x.com", "2@x.com", "1@x.com"}, emails(all))

	smith, err := s.Users().ListUsers(ctx, "Smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"3@x.com", "1@x.com"}, emails(smith))

	cyr, err := s.Users().ListUsers(ctx, "СМИТ")
	require.NoError(t, err)
	assert.Equal(t, []string{"4@x.com"}, emails(cyr))

	none, err := s.Users().ListUsers(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func emails(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}

func TestSessions_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	u := seedUser(t, s, "a@x.com", "Ann", now)

	live := domain.Session{ID: idx.New().String(), UserID: u.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	dead := domain.Session{ID: idx.New().String(), UserID: u.ID, TokenHash: "dead", ExpiresAt: now.Add(-time.Second), CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, dead))

	got, err := s.Sessions().GetValidSessionByTokenHash(ctx, "live", now)
	require.NoError(t, err)
	assert.Equal(t, live, got)

	_, err = s.Sessions().GetValidSessionByTokenHash(ctx, "dead", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Sessions().GetValidSessionByTokenHash(ctx, "live", live.ExpiresAt)
	require.ErrorIs(t, err, store.ErrNotFound, "a session is dead at its expiry instant")

	_, err = s.Sessions().GetValidSessionByTokenHash(ctx, "missing", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Sessions().GetValidSessionByTokenHash(ctx, "live", now)
	require.NoError(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	now := time.Now().UTC()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{ID: idx.New().String(), Email: "tx@x.com", FullName: "Tx", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, tx.Users().CreateUser(ctx, u))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = s.Users().GetUserByEmail(ctx, "tx@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{ID: idx.New().String(), Email: "tx@x.com", FullName: "Tx", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
		return tx.Users().CreateUser(ctx, u)
	}))

	_, err = s.Users().GetUserByEmail(ctx, "tx@x.com")
	require.NoError(t, err)
}
