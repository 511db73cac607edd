package series

import (
	"context"
	"log/slog"
	"sort"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
)

// Source identifies which link of the chain supplied a series.
type Source string

const (
	SourceAPI      Source = "api"
	SourceStore    Source = "store"
	SourceFallback Source = "fallback"
)

// Store persists the last successfully fetched series so restarts survive
// upstream outages.
type Store interface {
	SaveSeries(ctx context.Context, records []domain.HistoricalRecord) error
	LoadSeries(ctx context.Context) ([]domain.HistoricalRecord, error)
}

// Chain collapses the three series sources into one: upstream API first,
// then the local store, then the bundled fallback. A successful API fetch is
// written through to the store. The prediction core never learns which
// source served it.
type Chain struct {
	api     domain.SeriesSource // nil when no upstream is configured
	store   Store               // nil when no local store is configured
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewChain creates a Chain. api and store may each be nil to skip that link.
func NewChain(api domain.SeriesSource, store Store, logger *slog.Logger, metrics *observability.Metrics) *Chain {
	return &Chain{api: api, store: store, logger: logger, metrics: metrics}
}

// Fetch returns the freshest available series and the source that supplied
// it. It never returns an empty series.
func (c *Chain) Fetch(ctx context.Context) ([]domain.HistoricalRecord, Source) {
	if c.api != nil {
		records, err := c.api.FetchSeries(ctx)
		switch {
		case err != nil:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceAPI), "error").Inc()
			c.logger.Warn("upstream series fetch failed", "error", err)
		case len(records) == 0:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceAPI), "empty").Inc()
			c.logger.Warn("upstream series fetch returned no records")
		default:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceAPI), "success").Inc()
			records = Normalize(records)
			c.persist(ctx, records)
			return records, SourceAPI
		}
	}

	if c.store != nil {
		records, err := c.store.LoadSeries(ctx)
		switch {
		case err != nil:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceStore), "error").Inc()
			c.logger.Warn("series store load failed", "error", err)
		case len(records) == 0:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceStore), "empty").Inc()
		default:
			c.metrics.SeriesFetches.WithLabelValues(string(SourceStore), "success").Inc()
			return Normalize(records), SourceStore
		}
	}

	c.metrics.SeriesFetches.WithLabelValues(string(SourceFallback), "success").Inc()
	return Fallback(), SourceFallback
}

// FetchSeries implements domain.SeriesSource.
func (c *Chain) FetchSeries(ctx context.Context) ([]domain.HistoricalRecord, error) {
	records, _ := c.Fetch(ctx)
	return records, nil
}

func (c *Chain) persist(ctx context.Context, records []domain.HistoricalRecord) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveSeries(ctx, records); err != nil {
		c.logger.Warn("persisting fetched series failed", "error", err, "records", len(records))
	}
}

// Normalize sorts the series ascending by year and drops duplicate years,
// keeping the last occurrence. The models assume an ordered, duplicate-free
// sequence; upstream payloads do not always guarantee it.
func Normalize(records []domain.HistoricalRecord) []domain.HistoricalRecord {
	out := make([]domain.HistoricalRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	deduped := out[:0]
	for _, r := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Year == r.Year {
			deduped[n-1] = r
			continue
		}
		deduped = append(deduped, r)
	}
	return deduped
}
