package catalog

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper deletes datasets older than the retention period on a fixed interval.
type Sweeper struct {
	catalog   *Catalog
	retention time.Duration
	interval  time.Duration
	nowFn     func() time.Time
}

// NewSweeper creates a sweeper. A zero retention disables it.
func NewSweeper(catalog *Catalog, retention, interval time.Duration) *Sweeper {
	if catalog == nil {
		panic("catalog: sweeper needs a catalog")
	}
	return &Sweeper{
		catalog:   catalog,
		retention: retention,
		interval:  interval,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether the sweeper has anything to do.
func (s *Sweeper) Enabled() bool {
	return s.retention > 0 && s.interval > 0
}

// Start sweeps once immediately and then on every tick.
// Runs until context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	if !s.Enabled() {
		slog.Info("[Sweeper] Retention disabled, not starting")
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Sweeper] Starting dataset sweeper",
		"interval", s.interval,
		"retention", s.retention,
	)

	s.SweepOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Sweeper] Stopping (context cancelled)")
			return nil
		}
	}
}

// SweepOnce removes expired datasets and returns how many went.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	cutoff := s.nowFn().Add(-s.retention)
	ids, err := s.catalog.Expire(ctx, cutoff)
	if err != nil {
		slog.Error("[Sweeper] Sweep failed", "error", err, "cutoff", cutoff)
		return len(ids)
	}
	if len(ids) > 0 {
		slog.Info("[Sweeper] Expired datasets removed", "count", len(ids), "cutoff", cutoff)
	}
	return len(ids)
}
