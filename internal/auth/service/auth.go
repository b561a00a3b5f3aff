package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// AuthService owns registration, login, token resolution and user
// administration. Every failure it returns is a *domain.Error.
type AuthService struct {
	Store      store.Store
	SessionTTL time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time
}

var _ httpx.Verifier = (*AuthService)(nil)

func (s *AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return domain.DefaultSessionTTL
	}
	return s.SessionTTL
}

// Register creates a non-admin user and signs them in. The user row and its
// first session are written in one transaction.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	reg.IsAdmin = false
	user, err := s.prepareUser(ctx, reg)
	if err != nil {
		registrationsCounter.WithLabelValues(resultFor(err)).Inc()
		return domain.AuthResult{}, err
	}

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := insertUser(ctx, tx.Users(), user); err != nil {
			return err
		}
		token, err = s.issueSession(ctx, tx.Sessions(), user.ID)
		return err
	})
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			err = domain.Internal(fmt.Errorf("register: %w", err))
		}
		registrationsCounter.WithLabelValues(resultFor(err)).Inc()
		return domain.AuthResult{}, err
	}

	sessionsIssuedCounter.Inc()
	registrationsCounter.WithLabelValues(resultOK).Inc()
	l.Info("user registered", slog.String("user_id", user.ID))
	return domain.AuthResult{User: user, Token: token}, nil
}

// Login checks the password for email and opens a new session. Unknown email
// and wrong password fail the same way and take roughly the same time.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		loginsCounter.WithLabelValues(resultRejected).Inc()
		return domain.AuthResult{}, domain.ErrLoginFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.VerifyDummy(password)
		loginsCounter.WithLabelValues(resultRejected).Inc()
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		loginsCounter.WithLabelValues(resultError).Inc()
		return domain.AuthResult{}, domain.Internal(fmt.Errorf("get user by email: %w", err))
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			// Stored digest is unreadable. Still a failed login to the caller.
			l.Error("stored password hash is invalid", slog.String("user_id", user.ID), slogx.Err(err))
		}
		loginsCounter.WithLabelValues(resultRejected).Inc()
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, s.Store.Sessions(), user.ID)
	if err != nil {
		loginsCounter.WithLabelValues(resultError).Inc()
		return domain.AuthResult{}, err
	}

	sessionsIssuedCounter.Inc()
	loginsCounter.WithLabelValues(resultOK).Inc()
	l.Info("user logged in", slog.String("user_id", user.ID))
	return domain.AuthResult{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to the current user row.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		tokenChecksCounter.WithLabelValues(resultRejected).Inc()
		return domain.User{}, domain.ErrTokenMissing
	}

	sess, err := s.Store.Sessions().GetValidSessionByTokenHash(ctx, cryptox.FingerprintToken(token), s.now())
	if errors.Is(err, store.ErrNotFound) {
		tokenChecksCounter.WithLabelValues(resultRejected).Inc()
		return domain.User{}, domain.ErrTokenInvalid
	}
	if err != nil {
		tokenChecksCounter.WithLabelValues(resultError).Inc()
		return domain.User{}, domain.Internal(fmt.Errorf("get session: %w", err))
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		tokenChecksCounter.WithLabelValues(resultRejected).Inc()
		return domain.User{}, domain.ErrTokenInvalid
	}
	if err != nil {
		tokenChecksCounter.WithLabelValues(resultError).Inc()
		return domain.User{}, domain.Internal(fmt.Errorf("get session user: %w", err))
	}

	tokenChecksCounter.WithLabelValues(resultOK).Inc()
	return user, nil
}

// VerifyBearer adapts Authenticate to httpx.Verifier.
func (s *AuthService) VerifyBearer(ctx context.Context, token string) (httpx.Principal, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		if domain.KindOf(err) == domain.KindAuthentication {
			return httpx.Principal{}, fmt.Errorf("%w: %w", httpx.ErrUnauthenticated, err)
		}
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}

// UpdateProfile applies patch to the caller's own row.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID string, patch domain.ProfilePatch) (domain.User, error) {
	patch, err := patch.Normalize()
	if err != nil {
		return domain.User{}, err
	}

	changes, err := changesFor(patch)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.updateUser(ctx, callerID, changes)
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("profile updated", slog.String("user_id", user.ID))
	return user, nil
}

// ListUsers is admin only. search filters by full name, ignoring case.
func (s *AuthService) ListUsers(ctx context.Context, callerID, search string) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	users, err := s.Store.Users().ListUsers(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list users: %w", err))
	}
	return users, nil
}

// UpdateUser is admin only and applies patch to targetID. An admin cannot
// drop their own admin flag.
func (s *AuthService) UpdateUser(ctx context.Context, callerID, targetID string, patch domain.UserPatch) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return domain.User{}, err
	}

	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return domain.User{}, domain.ErrUserIDRequired
	}
	if patch.IsEmpty() {
		return domain.User{}, domain.ErrNothingToUpdate
	}
	if !idx.Valid(targetID) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if targetID == callerID && patch.IsAdmin != nil && !*patch.IsAdmin {
		return domain.User{}, domain.ErrSelfDemotion
	}

	var changes domain.UserChanges
	if !patch.ProfilePatch.IsEmpty() {
		profile, err := patch.ProfilePatch.Normalize()
		if err != nil {
			return domain.User{}, err
		}
		if changes, err = changesFor(profile); err != nil {
			return domain.User{}, err
		}
	}
	changes.IsAdmin = patch.IsAdmin

	user, err := s.updateUser(ctx, targetID, changes)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user updated by admin",
		slog.String("admin_id", callerID),
		slog.String("user_id", user.ID),
	)
	return user, nil
}

// CreateUser is the admin path for adding an account. No session is issued.
func (s *AuthService) CreateUser(ctx context.Context, callerID string, reg domain.Registration) (domain.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return domain.User{}, err
	}

	user, err := s.createUser(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created by admin",
		slog.String("admin_id", callerID),
		slog.String("user_id", user.ID),
		slog.Bool("is_admin", user.IsAdmin),
	)
	return user, nil
}

// requireAdmin re-reads the caller so a revoked flag takes effect at once.
func (s *AuthService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.Store.Users().GetUserByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrTokenInvalid
	}
	if err != nil {
		return domain.Internal(fmt.Errorf("get caller: %w", err))
	}
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *AuthService) createUser(ctx context.Context, reg domain.Registration) (domain.User, error) {
	user, err := s.prepareUser(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}
	if err := insertUser(ctx, s.Store.Users(), user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// prepareUser validates reg, checks the email is free and hashes the
// password. Nothing is written.
func (s *AuthService) prepareUser(ctx context.Context, reg domain.Registration) (domain.User, error) {
	reg, err := reg.Normalize()
	if err != nil {
		return domain.User{}, err
	}

	// Fast path for the common case. The UNIQUE constraint still decides races.
	if _, err := s.Store.Users().GetUserByEmail(ctx, reg.Email); err == nil {
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.Internal(fmt.Errorf("get user by email: %w", err))
	}

	hash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		return domain.User{}, domain.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := s.now()
	return domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        reg.Email,
		Phone:        reg.Phone,
		FullName:     reg.Name,
		PasswordHash: hash,
		IsAdmin:      reg.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func insertUser(ctx context.Context, users store.Users, user domain.User) error {
	err := users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return domain.Internal(fmt.Errorf("create user: %w", err))
	}
	return nil
}

func (s *AuthService) updateUser(ctx context.Context, id string, changes domain.UserChanges) (domain.User, error) {
	user, err := s.Store.Users().UpdateUser(ctx, id, changes, s.now())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, domain.ErrUserNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, domain.ErrEmailTaken
	case err != nil:
		return domain.User{}, domain.Internal(fmt.Errorf("update user: %w", err))
	}
	return user, nil
}

// issueSession writes a new session for userID through sessions and returns
// the raw token.
func (s *AuthService) issueSession(ctx context.Context, sessions store.Sessions, userID string) (string, error) {
	token, fingerprint, err := cryptox.GenerateSessionToken()
	if err != nil {
		return "", domain.Internal(fmt.Errorf("generate session token: %w", err))
	}

	now := s.now()
	err = sessions.CreateSession(ctx, domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: fingerprint,
		ExpiresAt: now.Add(s.sessionTTL()),
		CreatedAt: now,
	})
	if err != nil {
		return "", domain.Internal(fmt.Errorf("create session: %w", err))
	}
	return token, nil
}

// changesFor turns a normalized patch into column updates, hashing the
// password on the way.
func changesFor(p domain.ProfilePatch) (domain.UserChanges, error) {
	changes := domain.UserChanges{
		FullName: p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
	}
	if p.Password != nil {
		hash, err := cryptox.HashPassword(*p.Password)
		if err != nil {
			return domain.UserChanges{}, domain.Internal(fmt.Errorf("hash password: %w", err))
		}
		changes.PasswordHash = &hash
	}
	return changes, nil
}

func resultFor(err error) string {
	if domain.KindOf(err) == domain.KindInternal {
		return resultError
	}
	return resultRejected
}
