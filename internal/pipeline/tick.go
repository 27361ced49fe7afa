// Package pipeline orchestrates one full tick:
// ingestion → compliance resolution → post-ingestion lifecycle work.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aergaroth/openjobseu/internal/compliance"
	"github.com/aergaroth/openjobseu/internal/ingest"
	"github.com/aergaroth/openjobseu/internal/lifecycle"
	"github.com/aergaroth/openjobseu/internal/store"
)

const (
	resolutionBatchSize    = 500
	postIngestionBatchSize = 20

	feedUpdatedChannel = "EVENT_FEED_UPDATED"
)

// TickSummary aggregates one tick across all sources.
type TickSummary struct {
	TickID         string
	SourcesTotal   int
	SourcesOK      int
	SourcesFailed  int
	SourcesLocked  int
	RawCount       int
	PersistedCount int
	SkippedCount   int
	PerSource      map[string]ingest.SourceMetrics
	Resolution     compliance.Summary
	Lifecycle      lifecycle.Summary
	DurationMS     int64
}

// Tick runs the full pipeline on a schedule.
type Tick struct {
	store   *store.Store
	rdb     *redis.Client
	runner  *ingest.Runner
	checker *lifecycle.Checker
	sources []ingest.Source
}

// New constructs a Tick over the given sources.
func New(st *store.Store, rdb *redis.Client, sources []ingest.Source) *Tick {
	return &Tick{
		store:   st,
		rdb:     rdb,
		runner:  ingest.NewRunner(st, rdb),
		checker: lifecycle.NewChecker(st),
		sources: sources,
	}
}

// Run executes one tick. A failing source never aborts the tick; its
// failure is recorded in the per-source metrics and the remaining stages
// still run so earlier sources' rows get resolved.
func (t *Tick) Run(ctx context.Context) TickSummary {
	started := time.Now()
	summary := TickSummary{
		TickID:       uuid.NewString(),
		SourcesTotal: len(t.sources),
		PerSource:    make(map[string]ingest.SourceMetrics, len(t.sources)),
	}

	for _, src := range t.sources {
		metrics, err := t.runner.RunSource(ctx, src, summary.TickID)
		if err != nil {
			slog.Error("ingestion source failed",
				"tick_id", summary.TickID, "source", src.Name(), "err", err)
		}
		summary.PerSource[src.Name()] = metrics

		switch metrics.Status {
		case ingest.StatusOK:
			summary.SourcesOK++
		case ingest.StatusLocked:
			summary.SourcesLocked++
		default:
			summary.SourcesFailed++
		}
		summary.RawCount += metrics.RawCount
		summary.PersistedCount += metrics.PersistedCount
		summary.SkippedCount += metrics.SkippedCount
	}

	resolution, err := compliance.RunResolution(ctx, t.store, resolutionBatchSize, true)
	if err != nil {
		slog.Error("compliance resolution failed", "tick_id", summary.TickID, "err", err)
	}
	summary.Resolution = resolution

	lc, err := t.checker.RunPostIngestion(ctx, postIngestionBatchSize)
	if err != nil {
		slog.Error("post-ingestion failed", "tick_id", summary.TickID, "err", err)
	}
	summary.Lifecycle = lc

	summary.DurationMS = time.Since(started).Milliseconds()

	t.publishFeedUpdated(ctx, summary)

	slog.Info("tick finished",
		"component", "pipeline",
		"tick_id", summary.TickID,
		"sources_ok", summary.SourcesOK,
		"sources_failed", summary.SourcesFailed,
		"sources_locked", summary.SourcesLocked,
		"raw", summary.RawCount,
		"persisted", summary.PersistedCount,
		"skipped", summary.SkippedCount,
		"resolved", summary.Resolution.Updated,
		"duration_ms", summary.DurationMS,
	)
	return summary
}

// publishFeedUpdated notifies feed consumers that new rows may be visible.
// Non-fatal: the feed stays correct without subscribers.
func (t *Tick) publishFeedUpdated(ctx context.Context, summary TickSummary) {
	event, _ := json.Marshal(map[string]any{
		"type":      feedUpdatedChannel,
		"tick_id":   summary.TickID,
		"persisted": summary.PersistedCount,
		"resolved":  summary.Resolution.Updated,
	})
	if err := t.rdb.Publish(ctx, feedUpdatedChannel, event).Err(); err != nil {
		slog.Warn("publish EVENT_FEED_UPDATED failed", "err", err)
	}
}
