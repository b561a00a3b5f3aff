//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

var testURL string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("storefront"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	testURL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newStore(t *testing.T) *postgres.Store {
	t.Helper()

	s, err := postgres.NewStore(t.Context(), testURL)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suffix := idx.New().String()

	ann := domain.User{ID: idx.New().String(), Email: "ann-" + suffix + "@x.com", FullName: "Ann Smith", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	bob := domain.User{ID: idx.New().String(), Email: "bob-" + suffix + "@x.com", FullName: "Бoб SMITHSON", PasswordHash: "h", CreatedAt: now.Add(time.Second), UpdatedAt: now}
	require.NoError(t, s.Users().CreateUser(ctx, ann))
	require.NoError(t, s.Users().CreateUser(ctx, bob))

	dup := ann
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByEmail(ctx, ann.Email)
	require.NoError(t, err)
	assert.Equal(t, ann, got)

	updated, err := s.Users().UpdateUser(ctx, ann.ID, domain.UserChanges{Phone: ptr("555")}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, ann.FullName, updated.FullName)

	updated, err = s.Users().UpdateUser(ctx, ann.ID, domain.UserChanges{Phone: ptr("")}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, updated.Phone)

	list, err := s.Users().ListUsers(ctx, "smith")
	require.NoError(t, err)
	var ids []string
	for _, u := range list {
		ids = append(ids, u.ID)
	}
	assert.Subset(t, ids, []string{ann.ID, bob.ID})

	sess := domain.Session{ID: idx.New().String(), UserID: ann.ID, TokenHash: "th-" + suffix, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	gotSess, err := s.Sessions().GetValidSessionByTokenHash(ctx, sess.TokenHash, now)
	require.NoError(t, err)
	assert.Equal(t, sess, gotSess)

	_, err = s.Sessions().GetValidSessionByTokenHash(ctx, sess.TokenHash, sess.ExpiresAt)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
