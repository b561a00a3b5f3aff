// Package memory holds process local stores for state that does not need to
// survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
)

// CodeStore implements store.VerificationCodes with a mutex guarded map.
// Expired entries stay until DeleteExpiredCodes runs so that a late verify
// can still report "expired" rather than "not found".
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.VerificationCode
}

var _ store.VerificationCodes = (*CodeStore)(nil)

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[string]domain.VerificationCode)}
}

func (s *CodeStore) PutCode(_ context.Context, c domain.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[c.Email] = c
	return nil
}

func (s *CodeStore) GetCode(_ context.Context, email string) (domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[email]
	if !ok {
		return domain.VerificationCode{}, store.ErrNotFound
	}
	return c, nil
}

func (s *CodeStore) DeleteCode(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

func (s *CodeStore) DeleteExpiredCodes(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for email, c := range s.codes {
		if c.IsExpiredAt(now) {
			delete(s.codes, email)
			n++
		}
	}
	return n, nil
}

// Len reports how many codes are held, expired ones included.
func (s *CodeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
