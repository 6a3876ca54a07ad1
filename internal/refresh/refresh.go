// Package refresh drives the fetch→parse→aggregate→present cycle. Every
// cycle works on freshly fetched, cycle-local data; nothing is shared
// between cycles except the last good snapshot kept for degraded
// display, so a failed cycle can never corrupt the next one.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/tahmidriaz/scrubdash/internal/aggregator"
	"github.com/tahmidriaz/scrubdash/internal/fetcher"
	"github.com/tahmidriaz/scrubdash/internal/hub"
	"github.com/tahmidriaz/scrubdash/internal/model"
	"github.com/tahmidriaz/scrubdash/internal/parser"
	"github.com/tahmidriaz/scrubdash/internal/stats"
)

const dateLayout = "2006-01-02"

// Config holds the orchestrator's fixed settings.
type Config struct {
	Interval     time.Duration // time between cycles
	FetchTimeout time.Duration // bound on the retrieval step only
	TotalWorkers int           // headcount estimate for the percentage
}

// Refresher runs refresh cycles on a fixed interval and publishes each
// cycle's snapshot to the hub.
type Refresher struct {
	source fetcher.Source
	hub    *hub.Hub
	cfg    Config
	now    func() time.Time

	lastGood *model.Snapshot // most recent ok snapshot, nil before one exists
}

// New creates a Refresher. cfg is assumed validated (positive interval
// and headcount). h may be nil when only Once is used.
func New(source fetcher.Source, h *hub.Hub, cfg Config) *Refresher {
	return &Refresher{
		source: source,
		hub:    h,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run executes one cycle immediately, then keeps cycling on the
// configured interval until the context is cancelled. When the source
// can report out-of-band changes (a local file the collector rewrites),
// those trigger an extra cycle instead of waiting for the next tick.
// Cycles never overlap; each runs to completion inside this loop.
func (r *Refresher) Run(ctx context.Context) {
	var changes <-chan struct{}
	if n, ok := r.source.(fetcher.Notifier); ok {
		ch, err := n.Changes(ctx)
		if err != nil {
			slog.Warn("change notifications unavailable, relying on the interval", "err", err)
		} else {
			changes = ch
		}
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.hub.Publish(r.Once(ctx))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.hub.Publish(r.Once(ctx))
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			slog.Debug("source changed, refreshing early")
			r.hub.Publish(r.Once(ctx))
		}
	}
}

// Once runs a single cycle and returns its snapshot. On retrieval or
// schema failure the returned snapshot is in the waiting state and
// carries the previous good cycle's stats, if any.
func (r *Refresher) Once(ctx context.Context) model.Snapshot {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	text, err := r.source.Fetch(fetchCtx)
	cancel()
	if err != nil {
		slog.Warn("fetch failed, waiting for data", "source", r.source.Describe(), "err", err)
		return r.degraded(err)
	}

	events, err := parser.Parse(text)
	if err != nil {
		slog.Error("source document rejected", "source", r.source.Describe(), "err", err)
		return r.degraded(err)
	}

	now := r.now()
	today := now.Format(dateLayout)
	daily := aggregator.Aggregate(events, today)

	percent, tier, err := stats.Compliance(daily.TodayCount, r.cfg.TotalWorkers)
	if err != nil {
		// Guarded at startup; reaching this means misconfiguration.
		slog.Error("compliance unavailable", "err", err)
		return r.degraded(err)
	}

	snap := model.Snapshot{
		State:      model.StateOK,
		FetchedAt:  now,
		Today:      today,
		DailyStats: daily,
		Percent:    percent,
		Tier:       tier,
	}
	r.lastGood = &snap
	return snap
}

// degraded builds a waiting-state snapshot. Stats from the last good
// cycle are kept so the display can show stale numbers flagged stale;
// before any good cycle the sentinels apply.
func (r *Refresher) degraded(cause error) model.Snapshot {
	snap := model.Snapshot{
		State:     model.StateWaiting,
		Error:     cause.Error(),
		FetchedAt: r.now(),
		Today:     r.now().Format(dateLayout),
		DailyStats: model.DailyStats{
			LastWorker:    model.NoWorker,
			LastTimestamp: model.NoActivity,
		},
		Tier: stats.TierLow,
	}
	if r.lastGood != nil {
		snap.DailyStats = r.lastGood.DailyStats
		snap.Percent = r.lastGood.Percent
		snap.Tier = r.lastGood.Tier
	}
	return snap
}
