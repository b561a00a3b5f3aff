package authsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the failure body every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the public view of an account. The password digest is never part
// of it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserResponse wraps a single user. Returned by verify, profile and the admin
// user update and create calls.
type UserResponse struct {
	User User `json:"user"`
}

// ============================================================================
// Request Types
// ============================================================================

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the body of POST /v1/auth/login. The server also accepts
// the identifier under "email".
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the body of PUT /v1/auth/profile. Nil fields are
// left untouched. An empty Phone clears the stored phone.
type ProfileUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserUpdateRequest is the body of PUT /v1/auth/users.
type UserUpdateRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

// UserCreateRequest is the body of POST /v1/auth/users.
type UserCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// ============================================================================
// Verification Types
// ============================================================================

const (
	VerificationGenerate = "generate"
	VerificationVerify   = "verify"
)

// VerificationRequest is the body of POST /v1/verification.
type VerificationRequest struct {
	Action string `json:"action"`
	Email  string `json:"email"`
	Code   string `json:"code,omitempty"`
}

// VerificationResponse is returned by both verification actions. Code and
// ExpiresAt are only set by generate.
type VerificationResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Code      string     `json:"code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest is the body of POST /v1/bootstrap. Leave AdminPassword
// empty to have the server generate one.
type BootstrapRequest struct {
	AdminEmail    string `json:"admin_email"`
	AdminName     string `json:"admin_name"`
	AdminPhone    string `json:"admin_phone,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// BootstrapResponse carries the id of the first administrator. AdminPassword
// is only present when the server generated it, and is shown this once.
type BootstrapResponse struct {
	AdminUserID   string `json:"admin_user_id"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// ============================================================================
// Health Check Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports individual dependency status for /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
