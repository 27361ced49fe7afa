package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/store"
)

const (
	probeTimeout          = 5 * time.Second
	maxAvailabilityProbes = 8
)

// Summary reports one post-ingestion pass.
type Summary struct {
	Checked     int
	Active      int
	Expired     int
	Unreachable int
	Transitions int
}

// Checker probes job source URLs and applies lifecycle transitions.
type Checker struct {
	store  *store.Store
	client *http.Client
}

// NewChecker constructs a Checker with its own probe client.
func NewChecker(st *store.Store) *Checker {
	return &Checker{
		store:  st,
		client: &http.Client{Timeout: probeTimeout},
	}
}

// probe HEADs a source URL and maps the result onto a lifecycle status:
// gone (404/410) → expired, server errors and network failures →
// unreachable, anything else → active.
func (c *Checker) probe(ctx context.Context, url string) model.JobStatus {
	if url == "" {
		return model.StatusUnreachable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return model.StatusUnreachable
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.StatusUnreachable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return model.StatusExpired
	case resp.StatusCode >= 500:
		return model.StatusUnreachable
	default:
		return model.StatusActive
	}
}

// applyProbe folds one probe result into the row exactly as
// UpdateJobsAvailability persists it: status overwritten, verification
// timestamp set, failure counter incremented on unreachable and reset
// otherwise.
func applyProbe(job store.VerificationJob, status model.JobStatus, verifiedAt time.Time) store.VerificationJob {
	job.Status = status
	job.LastVerifiedAt = &verifiedAt
	if status == model.StatusUnreachable {
		job.VerificationFailures++
	} else {
		job.VerificationFailures = 0
	}
	return job
}

// RunPostIngestion probes up to limit jobs with bounded concurrency,
// persists the probe results in one batch, then applies lifecycle
// transitions to the same rows. Probe failures never abort the pass.
func (c *Checker) RunPostIngestion(ctx context.Context, limit int) (Summary, error) {
	jobs, err := c.store.JobsForVerification(ctx, limit)
	if err != nil {
		return Summary{}, fmt.Errorf("select jobs for verification: %w", err)
	}
	if len(jobs) == 0 {
		return Summary{}, nil
	}

	now := time.Now().UTC()
	statuses := make([]model.JobStatus, len(jobs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxAvailabilityProbes)
	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, url string) {
			defer wg.Done()
			defer func() { <-sem }()
			statuses[i] = c.probe(ctx, url)
		}(i, job.SourceURL)
	}
	wg.Wait()

	summary := Summary{Checked: len(jobs)}
	updates := make([]store.AvailabilityUpdate, 0, len(jobs))
	for i, job := range jobs {
		status := statuses[i]
		switch status {
		case model.StatusActive:
			summary.Active++
		case model.StatusExpired:
			summary.Expired++
		case model.StatusUnreachable:
			summary.Unreachable++
		}
		updates = append(updates, store.AvailabilityUpdate{
			JobID:      job.JobID,
			Status:     status,
			VerifiedAt: now,
			Failure:    status == model.StatusUnreachable,
		})
	}

	if err := c.store.UpdateJobsAvailability(ctx, updates); err != nil {
		return summary, fmt.Errorf("persist availability results: %w", err)
	}

	// Age rows that have been stale or failing for too long. Transition
	// rules must see the state the batch above just persisted: a job whose
	// probe succeeded had its failure counter reset, and expiring it off
	// the stale pre-probe counter would be irreversible.
	transitions := make(map[string]model.JobStatus)
	for i, job := range jobs {
		current := applyProbe(job, statuses[i], now)
		if next, ok := ApplyRules(current, now); ok {
			transitions[current.JobID] = next
		}
	}
	if err := c.store.UpdateJobStatuses(ctx, transitions); err != nil {
		return summary, fmt.Errorf("persist lifecycle transitions: %w", err)
	}
	summary.Transitions = len(transitions)

	slog.Info("post-ingestion pass finished",
		"component", "lifecycle",
		"checked", summary.Checked,
		"active", summary.Active,
		"expired", summary.Expired,
		"unreachable", summary.Unreachable,
		"transitions", summary.Transitions,
	)
	return summary, nil
}
