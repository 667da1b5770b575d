package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper reclaims per-session state that has gone stale.
type Sweeper interface {
	Sweep(ctx context.Context)
}

// SweepWorker periodically expires confirmation tokens that were shown
// but never resolved, so abandoned confirm dialogs cannot be actioned
// from a stale tab later, and evicts session bundles whose store entry
// has expired.
type SweepWorker struct {
	sweeper  Sweeper
	interval time.Duration
}

func NewSweepWorker(sweeper Sweeper, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *SweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Session sweep worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweeper.Sweep(ctx)
		case <-ctx.Done():
			log.Info().Msg("Session sweep worker stopped")
			return
		}
	}
}
