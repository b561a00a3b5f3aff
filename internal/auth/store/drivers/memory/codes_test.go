package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
)

func TestCodeStore(t *testing.T) {
	s := NewCodeStore()
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.GetCode(ctx, "a@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.PutCode(ctx, domain.VerificationCode{Email: "a@x.com", Code: "111111", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, s.PutCode(ctx, domain.VerificationCode{Email: "a@x.com", Code: "222222", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, s.PutCode(ctx, domain.VerificationCode{Email: "b@x.com", Code: "333333", ExpiresAt: now.Add(-time.Minute)}))

	c, err := s.GetCode(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "222222", c.Code, "latest code replaces the previous one")

	n, err := s.DeleteExpiredCodes(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.DeleteCode(ctx, "a@x.com"))
	require.Equal(t, 0, s.Len())
}

func TestCodeStoreConcurrentAccess(t *testing.T) {
	s := NewCodeStore()
	ctx := t.Context()
	exp := time.Now().Add(time.Minute)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			email := fmt.Sprintf("u%d@x.com", i)
			_ = s.PutCode(ctx, domain.VerificationCode{Email: email, Code: "123456", ExpiresAt: exp})
			_, _ = s.GetCode(ctx, email)
			_, _ = s.DeleteExpiredCodes(ctx, time.Now())
		}()
	}
	wg.Wait()
	require.Equal(t, 50, s.Len())
}
