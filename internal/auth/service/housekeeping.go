package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
)

// HousekeepingService periodically deletes dead token rows so the tables
// don't grow without bound: reset tokens past expiry and verification
// tokens that sat unverified past the login-gating window.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the service. An interval of zero or less
// defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Non-blocking; call Stop to shut
// it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs each purge independently; one failing never stops the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.ResetTokens().DeleteExpired(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
	} else {
		s.Logger.Debug("deleted expired reset tokens")
	}

	cutoff := now.Add(-domain.VerificationLoginWindow)
	if err := s.Store.VerificationTokens().DeleteExpiredUnverified(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete expired verification tokens", "error", err)
	} else {
		s.Logger.Debug("deleted expired unverified verification tokens")
	}
}
