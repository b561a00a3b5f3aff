package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

// TestAdminManagesUsers covers list, search, create and update from the
// admin panel.
func TestAdminManagesUsers(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)
	customer := registerCustomer(t, client, "alice@storefront.test")

	created, err := admin.CreateUser(t.Context(), authsdk.UserCreateRequest{
		Email:    "staff@storefront.test",
		Password: "Staff123!",
		Name:     "Staff Member",
		IsAdmin:  true,
	})
	require.NoError(t, err)
	require.True(t, created.IsAdmin)

	users, err := admin.ListUsers(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, created.ID, users[0].ID, "newest user comes first")

	found, err := admin.ListUsers(t.Context(), "CUSTOMER")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, customer.User().ID, found[0].ID)

	promote := true
	promoted, err := admin.UpdateUser(t.Context(), authsdk.UserUpdateRequest{
		ID:      customer.User().ID,
		IsAdmin: &promote,
	})
	require.NoError(t, err)
	require.True(t, promoted.IsAdmin)

	// The promoted customer can now use the admin actions with its old token.
	_, err = customer.ListUsers(t.Context(), "")
	require.NoError(t, err)

	_, err = admin.UpdateUser(t.Context(), authsdk.UserUpdateRequest{ID: "missing-user"})
	require.Error(t, err)

	name := "Nobody"
	_, err = admin.UpdateUser(t.Context(), authsdk.UserUpdateRequest{ID: "missing-user", Name: &name})
	require.True(t, authsdk.IsNotFound(err), "expected 404, got: %v", err)

	demote := false
	_, err = admin.UpdateUser(t.Context(), authsdk.UserUpdateRequest{
		ID:      admin.User().ID,
		IsAdmin: &demote,
	})
	require.Error(t, err, "an admin cannot revoke its own flag")
}
