package lifecycle

import (
	"testing"
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/store"
)

// ── applyProbe ─────────────────────────────────────────────────────────────

func TestApplyProbe_SuccessResetsFailures(t *testing.T) {
	now := time.Now()
	job := store.VerificationJob{
		Status:               model.StatusUnreachable,
		VerificationFailures: 3,
	}
	got := applyProbe(job, model.StatusActive, now)
	if got.VerificationFailures != 0 {
		t.Errorf("VerificationFailures = %d, want 0 after successful probe", got.VerificationFailures)
	}
	if got.Status != model.StatusActive {
		t.Errorf("Status = %s, want active", got.Status)
	}
	if got.LastVerifiedAt == nil || !got.LastVerifiedAt.Equal(now) {
		t.Errorf("LastVerifiedAt = %v, want %v", got.LastVerifiedAt, now)
	}
}

func TestApplyProbe_UnreachableIncrementsFailures(t *testing.T) {
	now := time.Now()
	job := store.VerificationJob{
		Status:               model.StatusActive,
		VerificationFailures: 2,
	}
	got := applyProbe(job, model.StatusUnreachable, now)
	if got.VerificationFailures != 3 {
		t.Errorf("VerificationFailures = %d, want 3", got.VerificationFailures)
	}
}

// ── applyProbe + ApplyRules — transitions see the post-probe state ─────────

func TestTransitionAfterProbe_RecoveredJobNotExpired(t *testing.T) {
	// Three consecutive failures, then a successful probe. The transition
	// rules must run on the reset counter; expiring here would be terminal
	// and permanently remove a live posting.
	now := time.Now()
	job := store.VerificationJob{
		JobID:                "remotive:1",
		Status:               model.StatusUnreachable,
		VerificationFailures: 3,
	}
	current := applyProbe(job, model.StatusActive, now)
	if next, changed := ApplyRules(current, now); changed {
		t.Errorf("ApplyRules transitioned a recovered job to %s", next)
	}
}

func TestTransitionAfterProbe_ThirdFailureExpires(t *testing.T) {
	now := time.Now()
	job := store.VerificationJob{
		JobID:                "remotive:2",
		Status:               model.StatusActive,
		VerificationFailures: 2,
	}
	current := applyProbe(job, model.StatusUnreachable, now)
	next, changed := ApplyRules(current, now)
	if !changed || next != model.StatusExpired {
		t.Errorf("ApplyRules = (%s, %v), want (expired, true) on the third failure", next, changed)
	}
}

func TestTransitionAfterProbe_GoneURLStaysExpired(t *testing.T) {
	now := time.Now()
	job := store.VerificationJob{
		JobID:  "remotive:3",
		Status: model.StatusStale,
	}
	current := applyProbe(job, model.StatusExpired, now)
	if _, changed := ApplyRules(current, now); changed {
		t.Error("ApplyRules transitioned a job the probe already expired")
	}
}
