// Package lifecycle keeps persisted jobs honest after ingestion: it probes
// source URLs for availability and ages rows through the
// active → stale → expired progression.
package lifecycle

import (
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/store"
)

const (
	staleAfterDays  = 7
	expireAfterDays = 30
	maxFailures     = 3
)

// ApplyRules decides whether a job should transition to a new lifecycle
// status. Returns the new status and true when a transition applies.
// Expired is terminal.
func ApplyRules(job store.VerificationJob, now time.Time) (model.JobStatus, bool) {
	if job.Status == model.StatusExpired {
		return "", false
	}

	// Expire aggressively on repeated probe failures.
	if job.VerificationFailures >= maxFailures {
		return model.StatusExpired, true
	}

	if job.LastVerifiedAt == nil {
		return "", false
	}

	age := now.Sub(*job.LastVerifiedAt)
	if age > expireAfterDays*24*time.Hour {
		return model.StatusExpired, true
	}
	if age > staleAfterDays*24*time.Hour && job.Status == model.StatusActive {
		return model.StatusStale, true
	}

	return "", false
}
