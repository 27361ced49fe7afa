package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aergaroth/openjobseu/internal/model"
)

// stubSource serves a fixed job list.
type stubSource struct {
	name   string
	strict bool
	jobs   []model.Job
	raw    int
	err    error
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Strict() bool { return s.strict }
func (s *stubSource) Fetch(ctx context.Context) ([]model.Job, int, error) {
	return s.jobs, s.raw, s.err
}

// fakeJobStore records upserts; failAfter > 0 fails the n-th upsert.
type fakeJobStore struct {
	upserted  []model.Job
	failAfter int
}

func (f *fakeJobStore) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return fn(nil)
}

func (f *fakeJobStore) UpsertJob(ctx context.Context, tx pgx.Tx, job model.Job, now time.Time) error {
	if f.failAfter > 0 && len(f.upserted)+1 >= f.failAfter {
		return errors.New("boom")
	}
	f.upserted = append(f.upserted, job)
	return nil
}

// ── RunSource ──────────────────────────────────────────────────────────────

func TestRunSource_PersistsRejectedJobsToo(t *testing.T) {
	src := &stubSource{
		name: "stub",
		jobs: []model.Job{
			{JobID: "stub:1", Title: "Engineer", Description: "Fully remote across Europe."},
			{JobID: "stub:2", Title: "Engineer", Description: "Hybrid, 3 days in our office."},
		},
		raw: 3,
	}
	st := &fakeJobStore{}

	metrics, err := NewRunner(st, nil).RunSource(context.Background(), src, "run-1")
	if err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if metrics.Status != StatusOK {
		t.Errorf("Status = %q, want ok", metrics.Status)
	}
	if metrics.RawCount != 3 || metrics.SkippedCount != 1 {
		t.Errorf("raw=%d skipped=%d, want raw=3 skipped=1", metrics.RawCount, metrics.SkippedCount)
	}
	if metrics.PersistedCount != 2 || len(st.upserted) != 2 {
		t.Errorf("persisted=%d upserts=%d, want both 2 (rejects persist with their annotation)",
			metrics.PersistedCount, len(st.upserted))
	}
	if metrics.PolicyRejectedTotal != 1 || metrics.RejectedByReason["non_remote"] != 1 {
		t.Errorf("rejections = %d %v, want 1 non_remote", metrics.PolicyRejectedTotal, metrics.RejectedByReason)
	}
	if st.upserted[1].Compliance == nil || st.upserted[1].Compliance.PolicyReason != model.ReasonNonRemote {
		t.Error("rejected job was persisted without its annotation")
	}
}

func TestRunSource_FetchFailure(t *testing.T) {
	src := &stubSource{name: "stub", err: errors.New("boom")}
	metrics, err := NewRunner(&fakeJobStore{}, nil).RunSource(context.Background(), src, "run-1")
	if err == nil {
		t.Fatal("expected error from failing fetch, got nil")
	}
	if metrics.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", metrics.Status)
	}
}

func TestRunSource_RollbackZeroesCounts(t *testing.T) {
	// When the transaction rolls back, nothing was committed: neither the
	// persisted count nor the rejection tallies may survive into metrics.
	src := &stubSource{
		name: "stub",
		jobs: []model.Job{
			{JobID: "stub:1", Title: "Engineer", Description: "Onsite in Berlin."},
			{JobID: "stub:2", Title: "Engineer", Description: "Fully remote across Europe."},
		},
		raw: 2,
	}
	st := &fakeJobStore{failAfter: 2}

	metrics, err := NewRunner(st, nil).RunSource(context.Background(), src, "run-1")
	if err == nil {
		t.Fatal("expected error from failing transaction, got nil")
	}
	if metrics.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", metrics.Status)
	}
	if metrics.PersistedCount != 0 {
		t.Errorf("PersistedCount = %d, want 0 after rollback", metrics.PersistedCount)
	}
	if metrics.PolicyRejectedTotal != 0 || len(metrics.RejectedByReason) != 0 {
		t.Errorf("rejection metrics = %d %v, want none after rollback",
			metrics.PolicyRejectedTotal, metrics.RejectedByReason)
	}
}
