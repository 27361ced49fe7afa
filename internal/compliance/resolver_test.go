package compliance_test

import (
	"testing"

	"github.com/aergaroth/openjobseu/internal/compliance"
	"github.com/aergaroth/openjobseu/internal/model"
)

// ── Resolve — verdict table ────────────────────────────────────────────────

func TestResolve_VerdictTable(t *testing.T) {
	cases := []struct {
		remote model.RemoteClass
		geo    model.GeoClass
		status model.ComplianceStatus
		score  int
	}{
		{model.NonRemote, model.GeoEUMemberState, model.ComplianceRejected, 0},
		{model.RemoteOnly, model.GeoNonEU, model.ComplianceRejected, 0},
		{model.RemoteOnly, model.GeoEUMemberState, model.ComplianceApproved, 100},
		{model.RemoteOnly, model.GeoEUExplicit, model.ComplianceApproved, 90},
		{model.RemoteOnly, model.GeoEURegion, model.ComplianceApproved, 90},
		{model.RemoteOnly, model.GeoUK, model.ComplianceApproved, 85},
		{model.RemoteGeoRestricted, model.GeoEUMemberState, model.ComplianceReview, 70},
		{model.RemoteGeoRestricted, model.GeoEUExplicit, model.ComplianceReview, 65},
		{model.RemoteGeoRestricted, model.GeoEURegion, model.ComplianceReview, 65},
		{model.RemoteUnknown, model.GeoEUMemberState, model.ComplianceReview, 60},
		{model.RemoteUnknown, model.GeoEUExplicit, model.ComplianceReview, 55},
		{model.RemoteUnknown, model.GeoEURegion, model.ComplianceReview, 55},
		{model.RemoteUnknown, model.GeoUK, model.ComplianceReview, 55},
		// Fallback rows.
		{model.RemoteOnly, model.GeoUnknown, model.ComplianceRejected, 20},
		{model.RemoteGeoRestricted, model.GeoUK, model.ComplianceRejected, 20},
		{model.RemoteGeoRestricted, model.GeoUnknown, model.ComplianceRejected, 20},
		{model.RemoteUnknown, model.GeoUnknown, model.ComplianceRejected, 20},
	}
	for _, c := range cases {
		status, score := compliance.Resolve(c.remote, c.geo)
		if status != c.status || score != c.score {
			t.Errorf("Resolve(%s, %s) = (%s, %d), want (%s, %d)",
				c.remote, c.geo, status, score, c.status, c.score)
		}
	}
}

// ── Resolve — totality and invariants ──────────────────────────────────────

func TestResolve_TotalOverAllPairs(t *testing.T) {
	remotes := []model.RemoteClass{
		model.RemoteOnly, model.RemoteGeoRestricted, model.NonRemote, model.RemoteUnknown,
	}
	geos := []model.GeoClass{
		model.GeoEUMemberState, model.GeoEUExplicit, model.GeoEURegion,
		model.GeoUK, model.GeoNonEU, model.GeoUnknown,
	}
	for _, rc := range remotes {
		for _, gc := range geos {
			status, score := compliance.Resolve(rc, gc)
			switch status {
			case model.ComplianceApproved, model.ComplianceReview, model.ComplianceRejected:
			default:
				t.Errorf("Resolve(%s, %s) returned invalid status %q", rc, gc, status)
			}
			if score < 0 || score > 100 {
				t.Errorf("Resolve(%s, %s) score %d out of range", rc, gc, score)
			}
			if status == model.ComplianceApproved && score < 85 {
				t.Errorf("Resolve(%s, %s) approved with low score %d", rc, gc, score)
			}
		}
	}
}

func TestResolve_NonRemoteAlwaysZero(t *testing.T) {
	geos := []model.GeoClass{
		model.GeoEUMemberState, model.GeoEUExplicit, model.GeoEURegion,
		model.GeoUK, model.GeoNonEU, model.GeoUnknown,
	}
	for _, gc := range geos {
		status, score := compliance.Resolve(model.NonRemote, gc)
		if status != model.ComplianceRejected || score != 0 {
			t.Errorf("Resolve(non_remote, %s) = (%s, %d), want (rejected, 0)", gc, status, score)
		}
	}
}

func TestResolve_NonEUAlwaysZero(t *testing.T) {
	remotes := []model.RemoteClass{
		model.RemoteOnly, model.RemoteGeoRestricted, model.NonRemote, model.RemoteUnknown,
	}
	for _, rc := range remotes {
		status, score := compliance.Resolve(rc, model.GeoNonEU)
		if status != model.ComplianceRejected || score != 0 {
			t.Errorf("Resolve(%s, non_eu) = (%s, %d), want (rejected, 0)", rc, status, score)
		}
	}
}

// ── Resolve — legacy label normalization ───────────────────────────────────

func TestResolve_LegacyLabels(t *testing.T) {
	cases := []struct {
		remote string
		geo    string
		status model.ComplianceStatus
		score  int
	}{
		// Old region-locked spelling folds into remote_but_geo_restricted.
		{"remote_region_locked", "eog", model.ComplianceReview, 65},
		// Office-bound models collapse to non_remote.
		{"hybrid", "eu_member_state", model.ComplianceRejected, 0},
		{"office_first", "eu_explicit", model.ComplianceRejected, 0},
		// Worldwide scope carries no EU evidence.
		{"remote_only", "worldwide", model.ComplianceRejected, 20},
		// Unrecognized labels degrade to unknown.
		{"banana", "eu_member_state", model.ComplianceReview, 60},
	}
	for _, c := range cases {
		status, score := compliance.Resolve(model.RemoteClass(c.remote), model.GeoClass(c.geo))
		if status != c.status || score != c.score {
			t.Errorf("Resolve(%q, %q) = (%s, %d), want (%s, %d)",
				c.remote, c.geo, status, score, c.status, c.score)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	s1, v1 := compliance.Resolve(model.RemoteOnly, model.GeoEUMemberState)
	for i := 0; i < 5; i++ {
		s2, v2 := compliance.Resolve(model.RemoteOnly, model.GeoEUMemberState)
		if s1 != s2 || v1 != v2 {
			t.Fatalf("run %d: got (%s, %d), want (%s, %d)", i, s2, v2, s1, v1)
		}
	}
}
