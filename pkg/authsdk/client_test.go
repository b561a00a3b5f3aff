package authsdk

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSDKClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewSDKClientTrimsSlash(t *testing.T) {
	t.Parallel()

	c := NewSDKClient("https://shop.example.com/")
	require.Equal(t, "https://shop.example.com", c.BaseURL)
	require.NotNil(t, c.HTTPClient)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "p1" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{
			User:  User{ID: "u1", Email: req.Login, FullName: "Ann"},
			Token: "tok",
		})
	})

	t.Run("success", func(t *testing.T) {
		s, err := c.Login(t.Context(), "a@x.com", "p1")
		require.NoError(t, err)
		require.Equal(t, "tok", s.Token())
		require.Equal(t, "a@x.com", s.User().Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.Login(t.Context(), "a@x.com", "nope")
		require.Error(t, err)
		require.True(t, IsUnauthorized(err))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "invalid email or password", apiErr.Message)
	})
}

func TestSessionCalls(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/auth/verify":
			writeJSON(w, http.StatusOK, UserResponse{User: User{ID: "u1", Email: "a@x.com", IsAdmin: true}})
		case r.Method == http.MethodPut && r.URL.Path == "/v1/auth/profile":
			var req ProfileUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Nil(t, req.Name)
			require.NotNil(t, req.Phone)
			writeJSON(w, http.StatusOK, UserResponse{User: User{ID: "u1", Email: "a@x.com", Phone: *req.Phone}})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/auth/users":
			if r.URL.Query().Get("search") != "van der" {
				writeJSON(w, http.StatusOK, []User{})
				return
			}
			writeJSON(w, http.StatusOK, []User{{ID: "u2"}, {ID: "u1"}})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/auth/users":
			writeJSON(w, http.StatusCreated, UserResponse{User: User{ID: "u3"}})
		case r.Method == http.MethodPut && r.URL.Path == "/v1/auth/users":
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
		default:
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "endpoint not found"})
		}
	})

	s := c.NewSessionFromToken("tok")
	require.Nil(t, s.User())

	user, err := s.Verify(t.Context())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "u1", s.User().ID)

	phone := "+100"
	user, err = s.UpdateProfile(t.Context(), ProfileUpdateRequest{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "+100", user.Phone)
	require.Equal(t, "+100", s.User().Phone)

	users, err := s.ListUsers(t.Context(), "van der")
	require.NoError(t, err)
	require.Len(t, users, 2)

	created, err := s.CreateUser(t.Context(), UserCreateRequest{Email: "b@x.com", Password: "p", Name: "B"})
	require.NoError(t, err)
	require.Equal(t, "u3", created.ID)

	_, err = s.UpdateUser(t.Context(), UserUpdateRequest{ID: "missing"})
	require.True(t, IsNotFound(err))

	_, err = c.NewSessionFromToken("stale").Verify(t.Context())
	require.True(t, IsUnauthorized(err))
}

func TestVerifyBearer(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch httpx.BearerToken(r) {
		case "good":
			writeJSON(w, http.StatusOK, UserResponse{User: User{ID: "u1", Email: "a@x.com", IsAdmin: true}})
		case "broken":
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		default:
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		}
	})

	p, err := c.VerifyBearer(t.Context(), "good")
	require.NoError(t, err)
	require.Equal(t, httpx.Principal{UserID: "u1", Email: "a@x.com", IsAdmin: true}, p)

	_, err = c.VerifyBearer(t.Context(), "bad")
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)

	_, err = c.VerifyBearer(t.Context(), "broken")
	require.Error(t, err)
	require.False(t, errors.Is(err, httpx.ErrUnauthenticated))
}

func TestVerificationAndBootstrap(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/verification":
			var req VerificationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Action == VerificationGenerate {
				writeJSON(w, http.StatusOK, VerificationResponse{Success: true, Message: "code generated", Code: "123456"})
				return
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid code"})
		case "/v1/bootstrap":
			if r.Header.Get("X-Bootstrap-Token") != "boot" {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid bootstrap token"})
				return
			}
			writeJSON(w, http.StatusCreated, BootstrapResponse{AdminUserID: "admin"})
		}
	})

	gen, err := c.GenerateVerificationCode(t.Context(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "123456", gen.Code)

	_, err = c.CheckVerificationCode(t.Context(), "a@x.com", "000000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "invalid code", apiErr.Message)

	out, err := c.Bootstrap(t.Context(), "boot", BootstrapRequest{AdminEmail: "root@x.com"})
	require.NoError(t, err)
	require.Equal(t, "admin", out.AdminUserID)

	_, err = c.Bootstrap(t.Context(), "wrong", BootstrapRequest{})
	require.True(t, IsUnauthorized(err))
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("upstream down"))
	require.EqualError(t, err, "auth: 502 upstream down")

	err = parseErrorResponse(resp, nil)
	require.EqualError(t, err, "auth: 502 Bad Gateway")

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/livez":
			writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: "v1"})
		case "/readyz":
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "degraded",
				Checks: &HealthChecks{Database: "error"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	live, err := c.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "v1", live.Version)

	_, err = c.GetReadiness(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
