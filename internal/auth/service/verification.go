package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// VerificationService issues and redeems single use email codes. Delivery is
// someone else's job: Generate hands the code back to the caller.
type VerificationService struct {
	Codes store.VerificationCodes
	TTL   time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *VerificationService) ttl() time.Duration {
	if s.TTL <= 0 {
		return domain.DefaultVerificationCodeTTL
	}
	return s.TTL
}

// Generate creates a fresh six digit code for email, replacing any earlier one.
func (s *VerificationService) Generate(ctx context.Context, email string) (domain.VerificationCode, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		verificationCodesCounter.WithLabelValues("generate", resultRejected).Inc()
		return domain.VerificationCode{}, domain.ErrVerificationEmail
	}

	now := s.now()
	code, err := newCode(now)
	if err != nil {
		verificationCodesCounter.WithLabelValues("generate", resultError).Inc()
		return domain.VerificationCode{}, domain.Internal(err)
	}

	vc := domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Codes.PutCode(ctx, vc); err != nil {
		verificationCodesCounter.WithLabelValues("generate", resultError).Inc()
		return domain.VerificationCode{}, domain.Internal(fmt.Errorf("put code: %w", err))
	}

	verificationCodesCounter.WithLabelValues("generate", resultOK).Inc()
	slogx.FromContext(ctx).Info("verification code generated", slog.Time("expires_at", vc.ExpiresAt))
	return vc, nil
}

// Verify redeems code for email. A matching code is consumed, an expired one
// is discarded, a wrong one is left in place.
func (s *VerificationService) Verify(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		verificationCodesCounter.WithLabelValues("verify", resultRejected).Inc()
		return domain.ErrVerificationFields
	}

	stored, err := s.Codes.GetCode(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		verificationCodesCounter.WithLabelValues("verify", resultRejected).Inc()
		return domain.ErrCodeNotFound
	}
	if err != nil {
		verificationCodesCounter.WithLabelValues("verify", resultError).Inc()
		return domain.Internal(fmt.Errorf("get code: %w", err))
	}

	if stored.IsExpiredAt(s.now()) {
		if err := s.Codes.DeleteCode(ctx, email); err != nil {
			return domain.Internal(fmt.Errorf("delete code: %w", err))
		}
		verificationCodesCounter.WithLabelValues("verify", resultRejected).Inc()
		return domain.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		verificationCodesCounter.WithLabelValues("verify", resultRejected).Inc()
		return domain.ErrCodeMismatch
	}

	if err := s.Codes.DeleteCode(ctx, email); err != nil {
		return domain.Internal(fmt.Errorf("delete code: %w", err))
	}
	verificationCodesCounter.WithLabelValues("verify", resultOK).Inc()
	return nil
}

// newCode derives a six digit HOTP value from a throwaway random secret.
func newCode(now time.Time) (string, error) {
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("read random secret: %w", err)
	}

	code, err := hotp.GenerateCodeCustom(
		base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret),
		uint64(now.Unix()),
		hotp.ValidateOpts{Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1},
	)
	if err != nil {
		return "", fmt.Errorf("generate hotp: %w", err)
	}
	return code, nil
}
