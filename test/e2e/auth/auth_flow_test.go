package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

// TestCustomerLifecycle walks a customer through register, verify, login,
// profile update and a second login with the new password.
func TestCustomerLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerCustomer(t, client, "  shopper@storefront.test ")

	registered := session.User()
	require.NotNil(t, registered)
	require.Equal(t, "shopper@storefront.test", registered.Email)
	require.False(t, registered.IsAdmin)

	user, err := client.Verify(t.Context(), session.Token())
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = client.Register(t.Context(), authsdk.RegisterRequest{
		Email:    "shopper@storefront.test",
		Password: "Another123!",
		Name:     "Duplicate",
	})
	require.True(t, authsdk.IsConflict(err), "duplicate email should conflict, got: %v", err)

	name, empty, password := "Renamed Shopper", "", "NewPassword123!"
	updated, err := session.UpdateProfile(t.Context(), authsdk.ProfileUpdateRequest{
		Name:     &name,
		Phone:    &empty,
		Password: &password,
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.FullName)
	require.Empty(t, updated.Phone)
	require.Equal(t, name, session.User().FullName)

	_, err = client.Login(t.Context(), "shopper@storefront.test", "Customer123!")
	assertUnauthorized(t, err, "Old password should no longer work")

	second, err := client.Login(t.Context(), "shopper@storefront.test", password)
	require.NoError(t, err)
	require.NotEqual(t, session.Token(), second.Token())

	// Both sessions stay valid.
	_, err = session.Verify(t.Context())
	require.NoError(t, err)
	_, err = second.Verify(t.Context())
	require.NoError(t, err)
}

// TestVerificationCodes generates a code and checks it once.
func TestVerificationCodes(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	generated, err := client.GenerateVerificationCode(t.Context(), "verify@storefront.test")
	require.NoError(t, err)
	require.True(t, generated.Success)
	require.Len(t, generated.Code, 6)
	require.NotNil(t, generated.ExpiresAt)

	_, err = client.CheckVerificationCode(t.Context(), "verify@storefront.test", "not-a-code")
	require.Error(t, err)

	checked, err := client.CheckVerificationCode(t.Context(), "verify@storefront.test", generated.Code)
	require.NoError(t, err)
	require.True(t, checked.Success)

	_, err = client.CheckVerificationCode(t.Context(), "verify@storefront.test", generated.Code)
	require.Error(t, err, "a code can only be used once")
}
