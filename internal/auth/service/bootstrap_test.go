package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
)

func TestBootstrap(t *testing.T) {
	st := newTestStore(t)
	s := &BootstrapService{Store: st, Token: "boot"}
	ctx := t.Context()
	data := domain.BootstrapData{AdminEmail: "root@x.com", AdminName: "Root", AdminPassword: "secret"}

	bootstrapped, err := s.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, bootstrapped)

	_, err = s.Bootstrap(ctx, "wrong", data)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	_, err = s.Bootstrap(ctx, "boot", domain.BootstrapData{AdminEmail: "root@x.com"})
	require.ErrorIs(t, err, domain.ErrRegistrationFields)

	res, err := s.Bootstrap(ctx, "boot", data)
	require.NoError(t, err)
	assert.Empty(t, res.GeneratedPassword)

	admin, err := st.Users().GetUserByID(ctx, res.AdminUserID)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "root@x.com", admin.Email)

	_, err = s.Bootstrap(ctx, "boot", data)
	require.ErrorIs(t, err, ErrBootstrapAlready)

	auth := &AuthService{Store: st}
	login, err := auth.Login(ctx, "root@x.com", "secret")
	require.NoError(t, err)
	assert.True(t, login.User.IsAdmin)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	s := &BootstrapService{Store: newTestStore(t)}

	_, err := s.Bootstrap(t.Context(), "", domain.BootstrapData{AdminEmail: "root@x.com", AdminName: "Root", AdminPassword: "secret"})
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
}

func TestBootstrapGeneratesPassword(t *testing.T) {
	st := newTestStore(t)
	s := &BootstrapService{Store: st, Token: "boot"}
	ctx := t.Context()

	res, err := s.Bootstrap(ctx, "boot", domain.BootstrapData{AdminEmail: "root@x.com", AdminName: "Root", AdminPassword: "  "})
	require.NoError(t, err)
	require.Len(t, res.GeneratedPassword, 16)

	admin, err := st.Users().GetUserByID(ctx, res.AdminUserID)
	require.NoError(t, err)
	assert.NotContains(t, admin.PasswordHash, res.GeneratedPassword)

	auth := &AuthService{Store: st}
	login, err := auth.Login(ctx, "root@x.com", res.GeneratedPassword)
	require.NoError(t, err)
	assert.Equal(t, res.AdminUserID, login.User.ID)
}
