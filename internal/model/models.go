// Package model defines the canonical job record and the classification
// enums shared by policy, compliance and storage.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ─── Remote model (classifier output) ────────────────────────────────────────

// RemoteModel is the operating-model label produced by the remote classifier.
type RemoteModel string

const (
	RemoteModelOfficeFirst   RemoteModel = "office_first"
	RemoteModelHybrid        RemoteModel = "hybrid"
	RemoteModelGeoRestricted RemoteModel = "remote_but_geo_restricted"
	RemoteModelRemoteOnly    RemoteModel = "remote_only"
	RemoteModelOptional      RemoteModel = "remote_optional"
	RemoteModelUnknown       RemoteModel = "unknown"
)

// ─── Remote class (persisted) ────────────────────────────────────────────────

// RemoteClass is the persisted remote-work classification of a job.
type RemoteClass string

const (
	RemoteOnly          RemoteClass = "remote_only"
	RemoteGeoRestricted RemoteClass = "remote_but_geo_restricted"
	NonRemote           RemoteClass = "non_remote"
	RemoteUnknown       RemoteClass = "unknown"
)

// remoteClassAliases maps every historical remote label to its canonical
// class. Office-bound models collapse to non_remote; the old
// "remote_region_locked" spelling is a synonym of remote_but_geo_restricted.
var remoteClassAliases = map[string]RemoteClass{
	"remote_only":               RemoteOnly,
	"remote_but_geo_restricted": RemoteGeoRestricted,
	"remote_region_locked":      RemoteGeoRestricted,
	"hybrid":                    NonRemote,
	"office_first":              NonRemote,
	"non_remote":                NonRemote,
	"unknown":                   RemoteUnknown,
}

// NormalizeRemoteClass maps a raw remote label (classifier output or a
// historical persisted value) to its canonical RemoteClass. Unrecognized
// values normalize to unknown. Normalizing a canonical value is a no-op.
func NormalizeRemoteClass(raw string) RemoteClass {
	if c, ok := remoteClassAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return RemoteUnknown
}

// ─── Geo class (persisted) ───────────────────────────────────────────────────

// GeoClass is the persisted geography classification of a job relative to
// the EU/UK candidate pool.
type GeoClass string

const (
	GeoEUMemberState GeoClass = "eu_member_state"
	GeoEUExplicit    GeoClass = "eu_explicit"
	GeoEURegion      GeoClass = "eu_region"
	GeoUK            GeoClass = "uk"
	GeoNonEU         GeoClass = "non_eu"
	GeoUnknown       GeoClass = "unknown"
)

// geoClassAliases folds historical and source-level spellings into the
// canonical set. worldwide/global deliberately map to unknown: a global
// audience is no evidence of EU eligibility, and unknown keeps those rows
// in the reclassification-eligible fallback bucket.
var geoClassAliases = map[string]GeoClass{
	"eu_member_state":   GeoEUMemberState,
	"eu_explicit":       GeoEUExplicit,
	"eu_region":         GeoEURegion,
	"eog":               GeoEURegion,
	"uk":                GeoUK,
	"non_eu":            GeoNonEU,
	"non_eu_restricted": GeoNonEU,
	"worldwide":         GeoUnknown,
	"global":            GeoUnknown,
	"eu_friendly":       GeoUnknown,
	"unknown":           GeoUnknown,
}

// NormalizeGeoClass maps a raw geo label to its canonical GeoClass.
// Unrecognized values normalize to unknown; normalization is idempotent.
func NormalizeGeoClass(raw string) GeoClass {
	if c, ok := geoClassAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return GeoUnknown
}

// ─── Compliance verdict ──────────────────────────────────────────────────────

// ComplianceStatus is the final verdict derived from (remote_class, geo_class).
type ComplianceStatus string

const (
	ComplianceApproved ComplianceStatus = "approved"
	ComplianceReview   ComplianceStatus = "review"
	ComplianceRejected ComplianceStatus = "rejected"
)

// ─── Policy reason ───────────────────────────────────────────────────────────

// PolicyReason is the machine-readable cause of a policy reject signal.
type PolicyReason string

const (
	ReasonNone           PolicyReason = ""
	ReasonNonRemote      PolicyReason = "non_remote"
	ReasonGeoRestriction PolicyReason = "geo_restriction"
	ReasonGeoHard        PolicyReason = "geo_restriction_hard"
)

// ─── Lifecycle status ────────────────────────────────────────────────────────

// JobStatus mirrors the status column; transitions are owned by the
// lifecycle worker.
type JobStatus string

const (
	StatusNew         JobStatus = "new"
	StatusActive      JobStatus = "active"
	StatusStale       JobStatus = "stale"
	StatusExpired     JobStatus = "expired"
	StatusUnreachable JobStatus = "unreachable"
)

// ParseJobStatus converts a raw string to a JobStatus, returning an error
// for unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusNew, StatusActive, StatusStale, StatusExpired, StatusUnreachable:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// ─── Records ─────────────────────────────────────────────────────────────────

// Compliance is the transient policy annotation attached to a job between
// evaluation and persistence. It is never stored as a struct; the upsert
// path reads it to derive remote_class and geo_class, and a non-empty
// ForcedStatus pins the persisted verdict without waiting for resolution.
type Compliance struct {
	PolicyVersion string
	PolicyReason  PolicyReason
	RemoteModel   RemoteModel
	GeoClass      GeoClass         // optional explicit override, empty when unset
	ForcedStatus  ComplianceStatus // hard-reject verdict, empty when not forced
	ForcedScore   int
}

// Job is the canonical normalized job record. JobID is source-namespaced
// ("<source>:<source_job_id>") and unique across all sources.
type Job struct {
	JobID            string
	Source           string
	SourceJobID      string
	SourceURL        string
	Title            string
	CompanyName      string
	Description      string
	RemoteSourceFlag bool
	RemoteScope      string
	Status           JobStatus
	FirstSeenAt      time.Time
	LastSeenAt       time.Time

	Compliance *Compliance // transient, see above
}
