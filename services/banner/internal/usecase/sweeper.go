package usecase

import (
	"context"
	"fmt"
	"time"

	"horeca-board/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ExpirySweeper periodically writes the expired status for active banners past their window.
// Reads never depend on it; it keeps the moderation tabs honest.
type ExpirySweeper struct {
	cron    *cron.Cron
	uc      BannerUseCase
	logger  *logger.Logger
	timeout time.Duration
}

func NewExpirySweeper(uc BannerUseCase, schedule string, log *logger.Logger) (*ExpirySweeper, error) {
	s := &ExpirySweeper{
		cron:    cron.New(),
		uc:      uc,
		logger:  log,
		timeout: 30 * time.Second,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *ExpirySweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.uc.ExpireElapsed(ctx); err != nil {
		s.logger.Error("Banner expiry sweep failed: %v", err)
	}
}

func (s *ExpirySweeper) Start() {
	s.logger.Info("Banner expiry sweep scheduled (%d entries)", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to end.
func (s *ExpirySweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
