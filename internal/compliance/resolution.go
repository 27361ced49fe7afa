package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
)

// ResolutionRow is a persisted job's classification pair, as read back for
// resolution.
type ResolutionRow struct {
	JobID       string
	RemoteClass model.RemoteClass
	GeoClass    model.GeoClass
}

// ResolutionUpdate carries a resolved verdict back to storage.
type ResolutionUpdate struct {
	JobID  string
	Status model.ComplianceStatus
	Score  int
}

// Store is the slice of the storage layer the resolution loops need.
type Store interface {
	CountJobsMissingCompliance(ctx context.Context) (int, error)
	BackfillMissingComplianceClasses(ctx context.Context, limit int) (int, error)
	JobsForComplianceResolution(ctx context.Context, limit int, onlyMissing bool) ([]ResolutionRow, error)
	UpdateComplianceResolutions(ctx context.Context, updates []ResolutionUpdate) error
}

// Summary reports one resolution pass.
type Summary struct {
	Checked     int
	Updated     int
	DurationMS  int64
	OnlyMissing bool
}

// BootstrapSummary reports the startup backfill + resolution convergence run.
type BootstrapSummary struct {
	InitialMissing   int
	RemainingMissing int
	Prepared         int
	Checked          int
	Updated          int
	Batches          int
	DurationMS       int64
}

// RunResolution resolves compliance status and score for persisted jobs.
// With onlyMissing it touches only rows whose verdict is still null. Writes
// for the whole batch go through one storage call, so a batch commits or
// rolls back atomically.
func RunResolution(ctx context.Context, st Store, limit int, onlyMissing bool) (Summary, error) {
	started := time.Now()

	rows, err := st.JobsForComplianceResolution(ctx, limit, onlyMissing)
	if err != nil {
		return Summary{OnlyMissing: onlyMissing}, fmt.Errorf("select jobs for resolution: %w", err)
	}

	updates := make([]ResolutionUpdate, 0, len(rows))
	for _, row := range rows {
		status, score := Resolve(row.RemoteClass, row.GeoClass)
		updates = append(updates, ResolutionUpdate{
			JobID:  row.JobID,
			Status: status,
			Score:  score,
		})
	}

	if err := st.UpdateComplianceResolutions(ctx, updates); err != nil {
		return Summary{Checked: len(rows), OnlyMissing: onlyMissing},
			fmt.Errorf("write resolutions: %w", err)
	}

	summary := Summary{
		Checked:     len(rows),
		Updated:     len(updates),
		DurationMS:  time.Since(started).Milliseconds(),
		OnlyMissing: onlyMissing,
	}

	slog.Info("compliance resolution summary",
		"component", "compliance",
		"checked", summary.Checked,
		"updated", summary.Updated,
		"duration_ms", summary.DurationMS,
		"only_missing", summary.OnlyMissing,
	)

	return summary, nil
}

// RunResolutionForExistingDB repairs rows persisted under an older ruleset:
// backfill missing classification fields, then resolve, in batches, until
// nothing is missing, a batch makes zero progress, or maxBatches is
// exhausted. Bounded by construction — it cannot loop forever even on
// pathological data. Run once at process start.
func RunResolutionForExistingDB(ctx context.Context, st Store, batchSize, maxBatches int) (BootstrapSummary, error) {
	started := time.Now()

	initialMissing, err := st.CountJobsMissingCompliance(ctx)
	if err != nil {
		return BootstrapSummary{}, fmt.Errorf("count missing compliance: %w", err)
	}
	if initialMissing == 0 {
		return BootstrapSummary{}, nil
	}

	result := BootstrapSummary{
		InitialMissing:   initialMissing,
		RemainingMissing: initialMissing,
	}

	for result.Batches < maxBatches {
		result.Batches++

		prepared, err := st.BackfillMissingComplianceClasses(ctx, batchSize)
		if err != nil {
			return result, fmt.Errorf("backfill batch %d: %w", result.Batches, err)
		}
		result.Prepared += prepared

		summary, err := RunResolution(ctx, st, batchSize, true)
		if err != nil {
			return result, fmt.Errorf("resolution batch %d: %w", result.Batches, err)
		}
		result.Checked += summary.Checked
		result.Updated += summary.Updated

		remaining, err := st.CountJobsMissingCompliance(ctx)
		if err != nil {
			return result, fmt.Errorf("count missing compliance: %w", err)
		}
		result.RemainingMissing = remaining

		if remaining == 0 {
			break
		}
		// Stall: a batch that neither prepared nor updated anything will
		// never make progress on the next iteration either.
		if prepared == 0 && summary.Updated == 0 {
			break
		}
	}

	result.DurationMS = time.Since(started).Milliseconds()

	slog.Info("compliance bootstrap summary",
		"component", "compliance",
		"initial_missing", result.InitialMissing,
		"remaining_missing", result.RemainingMissing,
		"prepared", result.Prepared,
		"checked", result.Checked,
		"updated", result.Updated,
		"batches", result.Batches,
		"duration_ms", result.DurationMS,
	)

	return result, nil
}
