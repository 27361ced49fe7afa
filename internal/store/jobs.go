package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aergaroth/openjobseu/internal/compliance"
	"github.com/aergaroth/openjobseu/internal/model"
)

// UpsertJob inserts a job or, on job_id conflict, refreshes its mutable
// fields. first_seen_at merges as the minimum of existing and incoming, so
// it can only ever move earlier; last_seen_at is overwritten with now.
// Conflict resolution happens in the single INSERT ... ON CONFLICT
// statement, so concurrent upserts of the same job_id are safe without
// application-level retries.
//
// tx is supplied by the caller; all upserts of one source run share it.
func (s *Store) UpsertJob(ctx context.Context, tx pgx.Tx, job model.Job, now time.Time) error {
	firstSeen := job.FirstSeenAt
	if firstSeen.IsZero() {
		firstSeen = now
	}

	remoteClass := DeriveRemoteClass(job)
	geoClass := DeriveGeoClass(job)

	var policyReason *string
	if job.Compliance != nil && job.Compliance.PolicyReason != model.ReasonNone {
		r := string(job.Compliance.PolicyReason)
		policyReason = &r
	}

	// A forced verdict (hard policy reject) is pinned at write time. NULL
	// otherwise, so the resolver owns the verdict and re-ingestion never
	// wipes a resolved one.
	var (
		forcedStatus *string
		forcedScore  *int
	)
	if job.Compliance != nil && job.Compliance.ForcedStatus != "" {
		st := string(job.Compliance.ForcedStatus)
		sc := job.Compliance.ForcedScore
		forcedStatus, forcedScore = &st, &sc
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO jobs (
			job_id, source, source_job_id, source_url,
			title, company_name, description,
			remote_source_flag, remote_scope, status,
			first_seen_at, last_seen_at,
			remote_class, geo_class, policy_v1_reason,
			compliance_status, compliance_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (job_id) DO UPDATE SET
			source_url         = EXCLUDED.source_url,
			title              = EXCLUDED.title,
			company_name       = EXCLUDED.company_name,
			description        = EXCLUDED.description,
			remote_source_flag = EXCLUDED.remote_source_flag,
			remote_scope       = EXCLUDED.remote_scope,
			status             = EXCLUDED.status,
			remote_class       = EXCLUDED.remote_class,
			geo_class          = EXCLUDED.geo_class,
			policy_v1_reason   = EXCLUDED.policy_v1_reason,
			compliance_status  = COALESCE(EXCLUDED.compliance_status, jobs.compliance_status),
			compliance_score   = COALESCE(EXCLUDED.compliance_score, jobs.compliance_score),
			first_seen_at      = LEAST(jobs.first_seen_at, EXCLUDED.first_seen_at),
			last_seen_at       = EXCLUDED.last_seen_at
	`,
		job.JobID, job.Source, job.SourceJobID, job.SourceURL,
		job.Title, job.CompanyName, job.Description,
		job.RemoteSourceFlag, job.RemoteScope, string(job.Status),
		firstSeen, now,
		string(remoteClass), string(geoClass), policyReason,
		forcedStatus, forcedScore,
	)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", job.JobID, err)
	}
	return nil
}

// ─── Backfill ────────────────────────────────────────────────────────────────

// BackfillMissingComplianceClasses re-derives remote_class and geo_class for
// rows where either is null, using the same rules as the upsert path. The
// policy annotation is reconstructed from the persisted policy_v1_reason
// when present. Returns the number of rows touched.
func (s *Store) BackfillMissingComplianceClasses(ctx context.Context, limit int) (int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			job_id, title, description,
			COALESCE(remote_source_flag, FALSE),
			COALESCE(remote_scope, ''),
			policy_v1_reason,
			remote_class, geo_class
		FROM jobs
		WHERE remote_class IS NULL OR geo_class IS NULL
		ORDER BY COALESCE(last_seen_at, '1970-01-01T00:00:00+00:00') DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return 0, fmt.Errorf("select jobs for backfill: %w", err)
	}
	defer rows.Close()

	type backfillUpdate struct {
		jobID       string
		remoteClass model.RemoteClass
		geoClass    model.GeoClass
	}
	var updates []backfillUpdate

	for rows.Next() {
		var (
			job          model.Job
			title        *string
			description  *string
			policyReason *string
			remoteClass  *string
			geoClass     *string
		)
		if err := rows.Scan(
			&job.JobID, &title, &description,
			&job.RemoteSourceFlag, &job.RemoteScope,
			&policyReason, &remoteClass, &geoClass,
		); err != nil {
			return 0, fmt.Errorf("scan backfill row: %w", err)
		}
		if title != nil {
			job.Title = *title
		}
		if description != nil {
			job.Description = *description
		}
		if policyReason != nil && *policyReason != "" {
			job.Compliance = &model.Compliance{
				PolicyReason: model.PolicyReason(*policyReason),
				RemoteModel:  model.RemoteModelUnknown,
			}
		}

		u := backfillUpdate{jobID: job.JobID}
		if remoteClass != nil && *remoteClass != "" {
			u.remoteClass = model.NormalizeRemoteClass(*remoteClass)
		} else {
			u.remoteClass = DeriveRemoteClass(job)
		}
		if geoClass != nil && *geoClass != "" {
			u.geoClass = model.NormalizeGeoClass(*geoClass)
		} else {
			u.geoClass = DeriveGeoClass(job)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate backfill rows: %w", err)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	err = s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`
				UPDATE jobs
				SET remote_class = $2, geo_class = $3, updated_at = $4
				WHERE job_id = $1
			`, u.jobID, string(u.remoteClass), string(u.geoClass), now)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return 0, fmt.Errorf("write backfill batch: %w", err)
	}

	return len(updates), nil
}

// ─── Resolution reads/writes ─────────────────────────────────────────────────

// CountJobsMissingCompliance counts rows whose compliance verdict has not
// been resolved yet.
func (s *Store) CountJobsMissingCompliance(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM jobs
		WHERE compliance_status IS NULL OR compliance_score IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count missing compliance: %w", err)
	}
	return count, nil
}

// JobsForComplianceResolution returns the classification pairs of persisted
// jobs, newest first, optionally limited to rows still missing a verdict.
func (s *Store) JobsForComplianceResolution(ctx context.Context, limit int, onlyMissing bool) ([]compliance.ResolutionRow, error) {
	where := ""
	if onlyMissing {
		where = "WHERE compliance_status IS NULL OR compliance_score IS NULL"
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT job_id, COALESCE(remote_class, ''), COALESCE(geo_class, '')
		FROM jobs
		%s
		ORDER BY COALESCE(last_seen_at, '1970-01-01T00:00:00+00:00') DESC
		LIMIT $1
	`, where), limit)
	if err != nil {
		return nil, fmt.Errorf("select jobs for resolution: %w", err)
	}
	defer rows.Close()

	var out []compliance.ResolutionRow
	for rows.Next() {
		var (
			r           compliance.ResolutionRow
			remoteClass string
			geoClass    string
		)
		if err := rows.Scan(&r.JobID, &remoteClass, &geoClass); err != nil {
			return nil, fmt.Errorf("scan resolution row: %w", err)
		}
		r.RemoteClass = model.RemoteClass(remoteClass)
		r.GeoClass = model.GeoClass(geoClass)
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateComplianceResolutions writes resolved verdicts back in one
// transaction.
func (s *Store) UpdateComplianceResolutions(ctx context.Context, updates []compliance.ResolutionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`
				UPDATE jobs
				SET compliance_status = $2, compliance_score = $3, updated_at = $4
				WHERE job_id = $1
			`, u.JobID, string(u.Status), u.Score, now)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("write resolution batch: %w", err)
	}
	return nil
}

// ─── Verification / availability ─────────────────────────────────────────────

// VerificationJob is the slice of a row the availability checker needs.
type VerificationJob struct {
	JobID                string
	SourceURL            string
	Status               model.JobStatus
	LastVerifiedAt       *time.Time
	VerificationFailures int
}

// JobsForVerification returns jobs eligible for an availability probe,
// least recently seen first.
func (s *Store) JobsForVerification(ctx context.Context, limit int) ([]VerificationJob, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT job_id, COALESCE(source_url, ''), COALESCE(status, ''),
		       last_verified_at, verification_failures
		FROM jobs
		WHERE status IN ('active', 'stale', 'unreachable')
		ORDER BY COALESCE(last_seen_at, '1970-01-01T00:00:00+00:00')
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select jobs for verification: %w", err)
	}
	defer rows.Close()

	var out []VerificationJob
	for rows.Next() {
		var (
			v      VerificationJob
			status string
		)
		if err := rows.Scan(&v.JobID, &v.SourceURL, &status, &v.LastVerifiedAt, &v.VerificationFailures); err != nil {
			return nil, fmt.Errorf("scan verification row: %w", err)
		}
		v.Status = model.JobStatus(status)
		out = append(out, v)
	}
	return out, rows.Err()
}

// AvailabilityUpdate carries one probe result back to storage. Failure
// increments the consecutive-failure counter; success resets it.
type AvailabilityUpdate struct {
	JobID      string
	Status     model.JobStatus
	VerifiedAt time.Time
	Failure    bool
}

// UpdateJobsAvailability persists a batch of probe results in one
// transaction.
func (s *Store) UpdateJobsAvailability(ctx context.Context, updates []AvailabilityUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`
				UPDATE jobs
				SET status = $2,
				    last_verified_at = $3,
				    verification_failures = CASE
				        WHEN $4 THEN verification_failures + 1
				        ELSE 0
				    END,
				    updated_at = $3
				WHERE job_id = $1
			`, u.JobID, string(u.Status), u.VerifiedAt, u.Failure)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("write availability batch: %w", err)
	}
	return nil
}

// UpdateJobStatuses applies lifecycle transitions in one transaction.
func (s *Store) UpdateJobStatuses(ctx context.Context, transitions map[string]model.JobStatus) error {
	if len(transitions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for jobID, status := range transitions {
			batch.Queue(`
				UPDATE jobs SET status = $2, updated_at = $3 WHERE job_id = $1
			`, jobID, string(status), now)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("write status batch: %w", err)
	}
	return nil
}
