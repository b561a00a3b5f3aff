package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Session is an authenticated handle on the auth service. Sessions are safe
// for concurrent use.
type Session struct {
	client *SDKClient
	token  string

	mu   sync.RWMutex
	user *User // last known user, nil until fetched
}

func newSession(client *SDKClient, resp AuthResponse) *Session {
	user := resp.User
	return &Session{
		client: client,
		token:  resp.Token,
		user:   &user,
	}
}

// Token returns the bearer token of this session.
func (s *Session) Token() string {
	return s.token
}

// User returns the last user the service returned for this session, or nil
// when the session was built from a bare token and nothing was fetched yet.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) remember(u User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// Verify re-reads the current user behind this session.
func (s *Session) Verify(ctx context.Context) (*User, error) {
	user, err := s.client.Verify(ctx, s.token)
	if err != nil {
		return nil, err
	}
	s.remember(*user)
	return user, nil
}

// UpdateProfile changes the caller's own account.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/auth/profile", req)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	s.remember(out.User)
	return &out.User, nil
}

// ListUsers returns every user, newest first. A non-empty search keeps only
// users whose full name contains it, ignoring case. Requires an admin.
func (s *Session) ListUsers(ctx context.Context, search string) ([]User, error) {
	path := "/v1/auth/users"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser changes another account. Requires an admin.
func (s *Session) UpdateUser(ctx context.Context, req UserUpdateRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/auth/users", req)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// CreateUser adds an account without signing in as it. Requires an admin.
func (s *Session) CreateUser(ctx context.Context, req UserCreateRequest) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/users", req)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}
