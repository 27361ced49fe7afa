package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/policy"
)

// Source is one external job board. Fetch returns normalized jobs plus the
// raw entry count (entries dropped at normalization account for the
// difference). Strict sources are evaluated under the hard-reject policy
// overlay.
type Source interface {
	Name() string
	Strict() bool
	Fetch(ctx context.Context) (jobs []model.Job, rawCount int, err error)
}

// Source run statuses reported in tick metrics.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusLocked = "locked"
)

// sourceLockTTL bounds how long a crashed run can block a source.
const sourceLockTTL = 30 * time.Minute

// SourceMetrics summarizes one source run.
type SourceMetrics struct {
	Status              string
	RawCount            int
	PersistedCount      int
	SkippedCount        int
	PolicyRejectedTotal int
	RejectedByReason    map[string]int
	DurationMS          int64
}

// JobStore is the slice of the storage layer ingestion runs need.
type JobStore interface {
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
	UpsertJob(ctx context.Context, tx pgx.Tx, job model.Job, now time.Time) error
}

// Runner executes ingestion runs: fetch → policy evaluation → upsert, with
// all upserts of a run sharing one transaction so a source run commits or
// rolls back atomically. A redis lock per source keeps concurrent
// schedulers from double-ingesting; a nil client disables the lock.
type Runner struct {
	store JobStore
	rdb   *redis.Client
}

// NewRunner constructs a Runner.
func NewRunner(st JobStore, rdb *redis.Client) *Runner {
	return &Runner{store: st, rdb: rdb}
}

// RunSource executes one ingestion run for src. Rejected jobs are persisted
// too, annotation included — policy is soft-reject with an audit trail, so
// a wrongly rejected posting stays discoverable without re-fetching.
func (r *Runner) RunSource(ctx context.Context, src Source, runID string) (SourceMetrics, error) {
	started := time.Now()
	metrics := SourceMetrics{
		Status:           StatusOK,
		RejectedByReason: make(map[string]int),
	}

	if r.rdb != nil {
		lockKey := "openjobseu:ingest:lock:" + src.Name()
		acquired, err := r.rdb.SetNX(ctx, lockKey, runID, sourceLockTTL).Result()
		if err != nil {
			slog.Warn("ingestion lock unavailable, continuing without it",
				"source", src.Name(), "err", err)
		} else if !acquired {
			metrics.Status = StatusLocked
			metrics.DurationMS = time.Since(started).Milliseconds()
			slog.Info("ingestion skipped, source locked by another run", "source", src.Name())
			return metrics, nil
		} else {
			defer r.rdb.Del(context.WithoutCancel(ctx), lockKey)
		}
	}

	jobs, rawCount, err := src.Fetch(ctx)
	if err != nil {
		metrics.Status = StatusFailed
		metrics.DurationMS = time.Since(started).Milliseconds()
		return metrics, fmt.Errorf("fetch %s: %w", src.Name(), err)
	}
	metrics.RawCount = rawCount
	metrics.SkippedCount = rawCount - len(jobs)

	now := time.Now().UTC()
	err = r.store.WithTx(ctx, func(tx pgx.Tx) error {
		for _, job := range jobs {
			var decision policy.Decision
			if src.Strict() {
				decision = policy.EvaluateStrict(job)
			} else {
				decision = policy.Evaluate(job)
			}

			if !decision.Accepted {
				metrics.PolicyRejectedTotal++
				metrics.RejectedByReason[string(decision.Reason)]++
			}

			if err := r.store.UpsertJob(ctx, tx, decision.Job, now); err != nil {
				return err
			}
			metrics.PersistedCount++
		}
		return nil
	})
	if err != nil {
		// The whole run rolled back, so no per-row count survived it.
		metrics.Status = StatusFailed
		metrics.PersistedCount = 0
		metrics.PolicyRejectedTotal = 0
		metrics.RejectedByReason = make(map[string]int)
		metrics.DurationMS = time.Since(started).Milliseconds()
		return metrics, fmt.Errorf("persist %s: %w", src.Name(), err)
	}

	metrics.DurationMS = time.Since(started).Milliseconds()
	slog.Info("ingestion run finished",
		"source", src.Name(),
		"raw", metrics.RawCount,
		"persisted", metrics.PersistedCount,
		"skipped", metrics.SkippedCount,
		"policy_rejected", metrics.PolicyRejectedTotal,
		"duration_ms", metrics.DurationMS,
	)
	return metrics, nil
}
