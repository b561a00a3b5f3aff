package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// AuthHandler serves every auth action from one entry point. The action is
// read from the path (/v1/auth/login) or from ?action=login, and each action
// accepts its own set of methods.
type AuthHandler struct {
	Auth *service.AuthService

	routes map[domain.Action]map[string]http.Handler
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	h := &AuthHandler{Auth: auth}

	authn := httpx.AuthnMiddleware(auth)
	admin := httpx.RequireAdmin()

	h.routes = map[domain.Action]map[string]http.Handler{
		domain.ActionRegister: {
			http.MethodPost: http.HandlerFunc(h.register),
		},
		domain.ActionLogin: {
			http.MethodPost: http.HandlerFunc(h.login),
		},
		domain.ActionVerify: {
			http.MethodGet: http.HandlerFunc(h.verify),
		},
		domain.ActionProfile: {
			http.MethodPut: httpx.Chain(http.HandlerFunc(h.updateProfile), authn),
		},
		domain.ActionUsers: {
			http.MethodGet:  httpx.Chain(http.HandlerFunc(h.listUsers), authn, admin),
			http.MethodPut:  httpx.Chain(http.HandlerFunc(h.updateUser), authn, admin),
			http.MethodPost: httpx.Chain(http.HandlerFunc(h.createUser), authn, admin),
		},
	}
	return h
}

// ServeHTTP dispatches to the action handler. An unknown action is a 404, a
// known action with the wrong method is a 405.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("action")
	if name == "" {
		name = r.URL.Query().Get("action")
	}

	action, ok := domain.ParseAction(name)
	if !ok {
		writeError(w, r, domain.ErrUnknownAction)
		return
	}

	handler, ok := h.routes[action][r.Method]
	if !ok {
		writeError(w, r, domain.ErrMethodNotAllowed)
		return
	}
	handler.ServeHTTP(w, r)
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a customer account.
//
//	@Summary		Register
//	@Description	Creates a non-admin user and returns it together with a new bearer token valid for 30 days.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"New account"
//	@Success		200		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing or invalid field"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Auth.Register(r.Context(), domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{User: toUser(res.User), Token: res.Token})
}

// login exchanges credentials for a bearer token.
//
//	@Summary		Login
//	@Description	Checks the email and password and opens a new session. The identifier may be sent as "login" or "email".
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing field"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid email or password"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	login := req.Login
	if login == "" {
		login = req.Email
	}

	res, err := h.Auth.Login(r.Context(), login, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{User: toUser(res.User), Token: res.Token})
}

// verify resolves the bearer token to its user.
//
//	@Summary		Verify token
//	@Description	Returns the user behind the bearer token. Other storefront services call this to authenticate requests.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Router			/v1/auth/verify [get].
func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.Auth.Authenticate(r.Context(), httpx.BearerToken(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUser(user)})
}

// updateProfile changes the caller's own account.
//
//	@Summary		Update own profile
//	@Description	Partial update. Omitted fields are left untouched. An empty phone clears it. name, email and password may not be blank.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ProfileUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Nothing to update or invalid field"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email already registered"
//	@Router			/v1/auth/profile [put].
func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req authsdk.ProfileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Auth.UpdateProfile(r.Context(), p.UserID, domain.ProfilePatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUser(user)})
}

// listUsers returns every account, newest first.
//
//	@Summary		List users
//	@Description	Admin only. search keeps users whose full name contains it, ignoring case.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			search	query		string	false	"Full name substring"
//	@Success		200		{array}		authsdk.User
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not an admin"
//	@Router			/v1/auth/users [get].
func (h *AuthHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	users, err := h.Auth.ListUsers(r.Context(), p.UserID, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]authsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// updateUser changes any account.
//
//	@Summary		Update user
//	@Description	Admin only. Partial update of the user with the given id, including the admin flag. Admins cannot revoke their own flag.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UserUpdateRequest	true	"Target id and fields to change"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing id, nothing to update or invalid field"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404		{object}	authsdk.ErrorResponse	"User not found"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email already registered"
//	@Router			/v1/auth/users [put].
func (h *AuthHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req authsdk.UserUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Auth.UpdateUser(r.Context(), p.UserID, req.ID, domain.UserPatch{
		ProfilePatch: domain.ProfilePatch{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Password: req.Password,
		},
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUser(user)})
}

// createUser adds an account on behalf of an admin.
//
//	@Summary		Create user
//	@Description	Admin only. Same rules as register, may set the admin flag, does not issue a token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UserCreateRequest	true	"New account"
//	@Success		201		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing or invalid field"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, unknown or expired token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email already registered"
//	@Router			/v1/auth/users [post].
func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	var req authsdk.UserCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Auth.CreateUser(r.Context(), p.UserID, domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.UserResponse{User: toUser(user)})
}

// toUser drops the password digest.
func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
