package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"himti/internal/metrics"
)

// DefaultSchedule runs the sweep hourly.
const DefaultSchedule = "@every 1h"

const sweepTimeout = 30 * time.Second

// OTPStore clears password-reset codes whose expiry is before now.
type OTPStore interface {
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// OTPSweeper periodically removes expired password-reset codes.
type OTPSweeper struct {
	store    OTPStore
	cron     *cron.Cron
	schedule string
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

// NewOTPSweeper creates a sweeper; an empty schedule falls back to DefaultSchedule.
func NewOTPSweeper(store OTPStore, schedule string, m *metrics.Metrics, log *zap.Logger) *OTPSweeper {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &OTPSweeper{
		store:    store,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		schedule: schedule,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Start registers the sweep and starts the scheduler.
func (s *OTPSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("schedule otp sweep %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.Info("otp sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep or ctx.
func (s *OTPSweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OTPSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	if _, err := s.Sweep(ctx); err != nil {
		s.log.Error("otp sweep failed", zap.Error(err))
	}
}

// Sweep clears expired codes once and returns how many were removed.
func (s *OTPSweeper) Sweep(ctx context.Context) (int64, error) {
	cleared, err := s.store.ClearExpiredOTPs(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("clear expired otps: %w", err)
	}
	s.metrics.ObserveOTPSweep(cleared)
	if cleared > 0 {
		s.log.Info("cleared expired otps", zap.Int64("count", cleared))
	}
	return cleared, nil
}
