package series

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
)

// Refresher keeps an in-memory snapshot of the series current by refreshing
// the chain on an interval. When the chain had to fall back while an
// upstream API is configured, the next attempt comes sooner, with capped
// exponential backoff, so a recovering upstream is picked up quickly.
type Refresher struct {
	chain    *Chain
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics

	ready atomic.Bool

	mu      sync.RWMutex
	current []domain.HistoricalRecord
}

// NewRefresher creates a Refresher polling the chain every interval.
func NewRefresher(chain *Chain, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		chain:    chain,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// Current returns the latest series snapshot. The returned slice is shared
// and must be treated as read-only; every refresh installs a new slice
// rather than mutating the old one.
func (r *Refresher) Current() []domain.HistoricalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// CheckReadiness returns nil once a series has been loaded at least once.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("series has not been loaded yet")
	}
	return nil
}

// Run executes the refresh loop until the context is cancelled. The first
// refresh happens immediately so the service becomes ready without waiting a
// full interval.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("series refresher started", "interval", r.interval)
	r.metrics.RefresherRunning.Set(1)
	defer r.metrics.RefresherRunning.Set(0)

	// Backoff applies only while the upstream is configured but unavailable:
	// start at 30s, double each degraded cycle, never exceed the interval.
	backoff := 30 * time.Second
	if backoff > r.interval {
		backoff = r.interval
	}
	wait := time.Duration(0) // refresh immediately on startup

	for {
		if !sleepWithContext(ctx, wait) {
			r.logger.Info("series refresher stopping", "reason", ctx.Err())
			return nil
		}

		source := r.refresh(ctx)
		if source == SourceAPI || r.chain.api == nil {
			wait = r.interval
			backoff = 30 * time.Second
			continue
		}

		// Degraded: serving store/fallback data while an upstream exists.
		wait = backoff
		backoff = nextBackoff(backoff, r.interval)
	}
}

// refresh fetches one snapshot and installs it.
func (r *Refresher) refresh(ctx context.Context) Source {
	records, source := r.chain.Fetch(ctx)

	r.mu.Lock()
	r.current = records
	r.mu.Unlock()

	r.metrics.SeriesRecords.Set(float64(len(records)))
	r.ready.Store(true)

	r.logger.Info("series refreshed",
		"source", string(source),
		"records", len(records),
		"first_year", records[0].Year,
		"last_year", records[len(records)-1].Year,
	)
	return source
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
