/*
Package authsdk is a Go client for the storefront auth service.

# SDKClient vs Session

SDKClient covers the calls that need no token and creates Sessions:

	client := authsdk.NewSDKClient("https://shop.example.com")

	session, err := client.Login(ctx, "ann@example.com", "secret")
	if authsdk.IsUnauthorized(err) {
		// wrong email or password
	}

A Session carries the opaque bearer token returned by register or login:

	user, err := session.UpdateProfile(ctx, authsdk.ProfileUpdateRequest{Phone: &phone})

	// admin only
	users, err := session.ListUsers(ctx, "smith")

# Guarding other services

SDKClient implements httpx.Verifier, so order and product handlers can check
tokens against the auth service without touching its database:

	mux.Handle("POST /v1/orders", httpx.Chain(ordersHandler,
		httpx.AuthnMiddleware(client),
	))

# Errors

Every non-2xx response is returned as *APIError carrying the status code and
the service's error message. IsUnauthorized, IsForbidden, IsConflict and
IsNotFound test for the common cases.
*/
package authsdk
