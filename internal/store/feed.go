package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FeedFilter narrows the public feed listing. Status "visible" expands to
// the statuses the public feed shows.
type FeedFilter struct {
	Status             string
	Company            string
	Title              string
	Source             string
	RemoteScope        string
	MinComplianceScore *int
	Limit              int
	Offset             int
}

// FeedJob is one public feed row.
type FeedJob struct {
	JobID       string     `json:"job_id"`
	Source      string     `json:"source"`
	SourceURL   string     `json:"source_url"`
	Title       string     `json:"title"`
	CompanyName string     `json:"company_name"`
	RemoteScope string     `json:"remote_scope"`
	Status      string     `json:"status"`
	FirstSeenAt *time.Time `json:"first_seen_at"`
	LastSeenAt  *time.Time `json:"last_seen_at"`
}

// ListJobs returns feed rows matching the filter, newest first.
func (s *Store) ListJobs(ctx context.Context, f FeedFilter) ([]FeedJob, error) {
	var (
		clauses []string
		params  []any
	)
	arg := func(v any) string {
		params = append(params, v)
		return fmt.Sprintf("$%d", len(params))
	}

	switch {
	case f.Status == "visible":
		clauses = append(clauses, "status IN ('new', 'active')")
	case f.Status != "":
		clauses = append(clauses, "status = "+arg(f.Status))
	}
	if f.Company != "" {
		clauses = append(clauses, "LOWER(company_name) LIKE "+arg("%"+strings.ToLower(f.Company)+"%"))
	}
	if f.Title != "" {
		clauses = append(clauses, "LOWER(title) LIKE "+arg("%"+strings.ToLower(f.Title)+"%"))
	}
	if f.Source != "" {
		clauses = append(clauses, "source = "+arg(f.Source))
	}
	if f.RemoteScope != "" {
		clauses = append(clauses, "remote_scope = "+arg(f.RemoteScope))
	}
	if f.MinComplianceScore != nil {
		clauses = append(clauses, "COALESCE(compliance_score, 0) >= "+arg(*f.MinComplianceScore))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT job_id, COALESCE(source, ''), COALESCE(source_url, ''),
		       COALESCE(title, ''), COALESCE(company_name, ''),
		       COALESCE(remote_scope, ''), COALESCE(status, ''),
		       first_seen_at, last_seen_at
		FROM jobs
		%s
		ORDER BY first_seen_at DESC
		LIMIT %s OFFSET %s
	`, where, arg(limit), arg(f.Offset))

	rows, err := s.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []FeedJob
	for rows.Next() {
		var j FeedJob
		if err := rows.Scan(
			&j.JobID, &j.Source, &j.SourceURL,
			&j.Title, &j.CompanyName,
			&j.RemoteScope, &j.Status,
			&j.FirstSeenAt, &j.LastSeenAt,
		); err != nil {
			return nil, fmt.Errorf("scan feed row: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
