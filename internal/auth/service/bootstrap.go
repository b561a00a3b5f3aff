package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	ErrBootstrapAlready             = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized        = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapFailedToCreateAdmin = errors.New("failed to create admin user")
)

// BootstrapService creates the first administrator. It only works while the
// users table is empty and a bootstrap token is configured.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token, empty disables bootstrap
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first admin. Without a password in req one is
// generated and handed back once in the result.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.BootstrapResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		l.Error("failed to check bootstrap state", slogx.Err(err))
		return domain.BootstrapResult{}, ErrBootstrapFailedToCreateAdmin
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.BootstrapResult{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.BootstrapResult{}, ErrBootstrapUnauthorized
	}

	// 3. Validate admin details, generating a password if none was given
	var generated string
	if strings.TrimSpace(req.AdminPassword) == "" {
		generated, err = cryptox.GeneratePassword()
		if err != nil {
			l.Error("failed to generate admin password", slogx.Err(err))
			return domain.BootstrapResult{}, ErrBootstrapFailedToCreateAdmin
		}
		req.AdminPassword = generated
	}

	reg, err := domain.Registration{
		Email:    req.AdminEmail,
		Password: req.AdminPassword,
		Name:     req.AdminName,
		Phone:    req.AdminPhone,
		IsAdmin:  true,
	}.Normalize()
	if err != nil {
		return domain.BootstrapResult{}, err
	}

	// 4. Hash password
	passHash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		l.Error("failed to hash admin password", slogx.Err(err))
		return domain.BootstrapResult{}, ErrBootstrapFailedToCreateAdmin
	}

	// 5. Create the admin, re-checking emptiness inside the transaction
	now := time.Now().UTC()
	adminUserID := idx.NewAt(now).String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}

		return tx.Users().CreateUser(ctx, domain.User{
			ID:           adminUserID,
			Email:        reg.Email,
			Phone:        reg.Phone,
			FullName:     reg.Name,
			PasswordHash: passHash,
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if errors.Is(err, ErrBootstrapAlready) {
		return domain.BootstrapResult{}, err
	}
	if err != nil {
		l.Error("failed to create admin user",
			slog.String("admin_user_id", adminUserID),
			slogx.Err(err),
		)
		return domain.BootstrapResult{}, ErrBootstrapFailedToCreateAdmin
	}

	l.Info("successfully bootstrapped system",
		slog.String("admin_user_id", adminUserID),
		slog.Bool("generated_password", generated != ""),
	)
	return domain.BootstrapResult{AdminUserID: adminUserID, GeneratedPassword: generated}, nil
}
