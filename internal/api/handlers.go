// Package api exposes the thin HTTP surface: health, the public feed and
// the internal audit listing. Handlers are glue over store reads; every
// classification fact they return was derived elsewhere.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aergaroth/openjobseu/internal/store"
)

// Server bundles the HTTP handlers.
type Server struct {
	store   *store.Store
	version string
}

// New constructs a Server.
func New(st *store.Store, version string) *Server {
	return &Server{store: st, version: version}
}

// Routes returns the service mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /internal/jobs/audit", s.handleAuditJobs)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "openjobseu",
		"version": s.version,
	})
}

// handleListJobs serves the public feed. Defaults to visible statuses.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.FeedFilter{
		Status:      q.Get("status"),
		Company:     q.Get("company"),
		Title:       q.Get("title"),
		Source:      q.Get("source"),
		RemoteScope: q.Get("remote_scope"),
		Limit:       intParam(q.Get("limit"), 20),
		Offset:      intParam(q.Get("offset"), 0),
	}
	if filter.Status == "" {
		filter.Status = "visible"
	}
	if v := q.Get("min_compliance_score"); v != "" {
		score := intParam(v, 0)
		filter.MinComplianceScore = &score
	}

	jobs, err := s.store.ListJobs(r.Context(), filter)
	if err != nil {
		slog.Error("feed listing failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []store.FeedJob{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": jobs})
}

// handleAuditJobs serves the internal audit view: filterable listing plus
// per-column counts.
func (s *Server) handleAuditJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.AuditFilter{
		Status:           q.Get("status"),
		Source:           q.Get("source"),
		Company:          q.Get("company"),
		Title:            q.Get("title"),
		RemoteScope:      q.Get("remote_scope"),
		RemoteClass:      q.Get("remote_class"),
		GeoClass:         q.Get("geo_class"),
		ComplianceStatus: q.Get("compliance_status"),
		Limit:            intParam(q.Get("limit"), 50),
		Offset:           intParam(q.Get("offset"), 0),
	}
	if v := q.Get("min_compliance_score"); v != "" {
		score := intParam(v, 0)
		filter.MinComplianceScore = &score
	}
	if v := q.Get("max_compliance_score"); v != "" {
		score := intParam(v, 100)
		filter.MaxComplianceScore = &score
	}

	result, err := s.store.AuditJobs(r.Context(), filter)
	if err != nil {
		slog.Error("audit listing failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Items == nil {
		result.Items = []store.AuditJob{}
	}
	writeJSON(w, http.StatusOK, result)
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write response failed", "err", err)
	}
}
