// Package maintenance schedules periodic expiry sweeps of the response cache.
package maintenance

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"profile-roast/internal/cache"
)

// Sweeper calls ClearExpired on a cron schedule. The cache itself stays
// passive; this is an ordinary caller.
type Sweeper struct {
	cache cache.Cache
	cron  *cron.Cron
	log   *zap.Logger
}

// NewSweeper parses spec (standard five-field cron or descriptors such as
// "@every 10m") and returns a stopped Sweeper.
func NewSweeper(c cache.Cache, spec string, log *zap.Logger) (*Sweeper, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sweeper{
		cache: c,
		cron:  cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:   log.Named("sweeper"),
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce() {
	if err := s.cache.ClearExpired(); err != nil {
		s.log.Error("scheduled cache sweep failed", zap.Error(err))
		return
	}
	s.log.Debug("scheduled cache sweep done")
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running sweep to finish.
func (s *Sweeper) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
