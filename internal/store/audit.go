package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AuditFilter narrows the internal audit listing. Unlike the public feed it
// can filter on classification and compliance columns directly.
type AuditFilter struct {
	Status             string
	Source             string
	Company            string
	Title              string
	RemoteScope        string
	RemoteClass        string
	GeoClass           string
	ComplianceStatus   string
	MinComplianceScore *int
	MaxComplianceScore *int
	Limit              int
	Offset             int
}

// AuditJob is one audit listing row, classification columns included.
type AuditJob struct {
	JobID            string     `json:"job_id"`
	Source           string     `json:"source"`
	SourceURL        string     `json:"source_url"`
	Title            string     `json:"title"`
	CompanyName      string     `json:"company_name"`
	RemoteScope      string     `json:"remote_scope"`
	Status           string     `json:"status"`
	RemoteClass      *string    `json:"remote_class"`
	GeoClass         *string    `json:"geo_class"`
	ComplianceStatus *string    `json:"compliance_status"`
	ComplianceScore  *int       `json:"compliance_score"`
	FirstSeenAt      *time.Time `json:"first_seen_at"`
	LastSeenAt       *time.Time `json:"last_seen_at"`
}

// AuditCounts aggregates matching rows per column value; null values group
// under the "null" label.
type AuditCounts struct {
	Status           map[string]int `json:"status"`
	Source           map[string]int `json:"source"`
	ComplianceStatus map[string]int `json:"compliance_status"`
	RemoteClass      map[string]int `json:"remote_class"`
	GeoClass         map[string]int `json:"geo_class"`
}

// AuditResult is the audit listing plus its aggregates.
type AuditResult struct {
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Items  []AuditJob  `json:"items"`
	Counts AuditCounts `json:"counts"`
}

func (f AuditFilter) whereClause() (string, []any) {
	var (
		clauses []string
		params  []any
	)
	arg := func(v any) string {
		params = append(params, v)
		return fmt.Sprintf("$%d", len(params))
	}

	if f.Status != "" {
		clauses = append(clauses, "status = "+arg(f.Status))
	}
	if f.Source != "" {
		clauses = append(clauses, "source = "+arg(f.Source))
	}
	if f.Company != "" {
		clauses = append(clauses, "LOWER(company_name) LIKE "+arg("%"+strings.ToLower(f.Company)+"%"))
	}
	if f.Title != "" {
		clauses = append(clauses, "LOWER(title) LIKE "+arg("%"+strings.ToLower(f.Title)+"%"))
	}
	if f.RemoteScope != "" {
		clauses = append(clauses, "LOWER(remote_scope) LIKE "+arg("%"+strings.ToLower(f.RemoteScope)+"%"))
	}
	if f.RemoteClass != "" {
		clauses = append(clauses, "remote_class = "+arg(f.RemoteClass))
	}
	if f.GeoClass != "" {
		clauses = append(clauses, "geo_class = "+arg(f.GeoClass))
	}
	if f.ComplianceStatus != "" {
		clauses = append(clauses, "compliance_status = "+arg(f.ComplianceStatus))
	}
	if f.MinComplianceScore != nil {
		clauses = append(clauses, "COALESCE(compliance_score, 0) >= "+arg(*f.MinComplianceScore))
	}
	if f.MaxComplianceScore != nil {
		clauses = append(clauses, "COALESCE(compliance_score, 0) <= "+arg(*f.MaxComplianceScore))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), params
}

// AuditJobs returns the filtered audit listing together with per-column
// count maps over the same filter. The audit view is read-only: compliance
// columns are facts derived elsewhere, never computed here.
func (s *Store) AuditJobs(ctx context.Context, f AuditFilter) (AuditResult, error) {
	where, params := f.whereClause()

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	result := AuditResult{Limit: limit, Offset: f.Offset}

	listQuery := fmt.Sprintf(`
		SELECT job_id, COALESCE(source, ''), COALESCE(source_url, ''),
		       COALESCE(title, ''), COALESCE(company_name, ''),
		       COALESCE(remote_scope, ''), COALESCE(status, ''),
		       remote_class, geo_class, compliance_status, compliance_score,
		       first_seen_at, last_seen_at
		FROM jobs
		%s
		ORDER BY COALESCE(last_seen_at, '1970-01-01T00:00:00+00:00') DESC
		LIMIT $%d OFFSET $%d
	`, where, len(params)+1, len(params)+2)

	rows, err := s.pool.Query(ctx, listQuery, append(params, limit, f.Offset)...)
	if err != nil {
		return result, fmt.Errorf("audit listing: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var j AuditJob
		if err := rows.Scan(
			&j.JobID, &j.Source, &j.SourceURL,
			&j.Title, &j.CompanyName,
			&j.RemoteScope, &j.Status,
			&j.RemoteClass, &j.GeoClass, &j.ComplianceStatus, &j.ComplianceScore,
			&j.FirstSeenAt, &j.LastSeenAt,
		); err != nil {
			return result, fmt.Errorf("scan audit row: %w", err)
		}
		result.Items = append(result.Items, j)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterate audit rows: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM jobs %s`, where), params...,
	).Scan(&result.Total)
	if err != nil {
		return result, fmt.Errorf("audit total: %w", err)
	}

	for column, target := range map[string]*map[string]int{
		"status":            &result.Counts.Status,
		"source":            &result.Counts.Source,
		"compliance_status": &result.Counts.ComplianceStatus,
		"remote_class":      &result.Counts.RemoteClass,
		"geo_class":         &result.Counts.GeoClass,
	} {
		counts, err := s.countByColumn(ctx, column, where, params)
		if err != nil {
			return result, err
		}
		*target = counts
	}

	return result, nil
}

func (s *Store) countByColumn(ctx context.Context, column, where string, params []any) (map[string]int, error) {
	// column is one of a fixed set of identifiers, never user input.
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, 'null') AS label, COUNT(*) AS count
		FROM jobs
		%s
		GROUP BY COALESCE(%s, 'null')
		ORDER BY count DESC, label ASC
	`, column, where, column)

	rows, err := s.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("audit counts for %s: %w", column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			label string
			count int
		)
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan count row for %s: %w", column, err)
		}
		out[label] = count
	}
	return out, rows.Err()
}
