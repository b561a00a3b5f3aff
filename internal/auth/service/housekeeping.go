package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// HousekeepingService periodically removes expired sessions and verification
// codes so neither table grows without bound.
type HousekeepingService struct {
	Store    store.Store
	Codes    store.VerificationCodes // optional
	Logger   *slog.Logger
	Interval time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, codes store.VerificationCodes, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Codes:    codes,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass. Each deletion is independent, a failure in one
// does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock().UTC()
	}

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", slogx.Err(err))
	} else {
		housekeepingDeletedCounter.WithLabelValues("session").Add(float64(sessions))
	}

	var codes int64
	if s.Codes != nil {
		codes, err = s.Codes.DeleteExpiredCodes(ctx, now)
		if err != nil {
			s.Logger.Error("failed to delete expired verification codes", slogx.Err(err))
		} else {
			housekeepingDeletedCounter.WithLabelValues("verification_code").Add(float64(codes))
		}
	}

	s.Logger.Debug("housekeeping cleanup completed",
		slog.Int64("sessions_deleted", sessions),
		slog.Int64("codes_deleted", codes),
	)
}
