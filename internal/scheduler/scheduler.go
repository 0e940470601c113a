// Package scheduler periodically rebuilds the read-only site catalog so a
// long-running server in live mode keeps serving fresh content without a
// restart.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chrislg212/bigbackliving-sub000/internal/staticdata"
	"github.com/chrislg212/bigbackliving-sub000/internal/store"
)

// Scheduler runs periodic catalog rebuilds.
type Scheduler struct {
	store    store.Store
	interval time.Duration
	log      zerolog.Logger
	onBuild  func(*staticdata.Catalog)
}

// New creates a new scheduler. onBuild receives every freshly built catalog.
func New(s store.Store, interval time.Duration, log zerolog.Logger, onBuild func(*staticdata.Catalog)) *Scheduler {
	if interval == 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		store:    s,
		interval: interval,
		log:      log,
		onBuild:  onBuild,
	}
}

// Run starts the rebuild loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("catalog refresh running")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("catalog refresh stopped")
			return ctx.Err()
		case <-ticker.C:
			s.rebuild(ctx)
		}
	}
}

func (s *Scheduler) rebuild(ctx context.Context) {
	started := time.Now()
	catalog, err := staticdata.Build(ctx, s.store)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog rebuild failed")
		return
	}
	s.onBuild(catalog)
	s.log.Info().
		Int("reviews", len(catalog.Reviews)).
		Int("lists", len(catalog.Lists)).
		Dur("took", time.Since(started)).
		Msg("catalog rebuilt")
}
