package model_test

import (
	"testing"

	"github.com/aergaroth/openjobseu/internal/model"
)

// ── NormalizeRemoteClass ───────────────────────────────────────────────────

func TestNormalizeRemoteClass(t *testing.T) {
	cases := []struct {
		raw  string
		want model.RemoteClass
	}{
		{"remote_only", model.RemoteOnly},
		{"remote_but_geo_restricted", model.RemoteGeoRestricted},
		{"remote_region_locked", model.RemoteGeoRestricted},
		{"hybrid", model.NonRemote},
		{"office_first", model.NonRemote},
		{"non_remote", model.NonRemote},
		{"unknown", model.RemoteUnknown},
		{"", model.RemoteUnknown},
		{"something_else", model.RemoteUnknown},
		{"  Remote_Only  ", model.RemoteOnly},
	}
	for _, c := range cases {
		if got := model.NormalizeRemoteClass(c.raw); got != c.want {
			t.Errorf("NormalizeRemoteClass(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestNormalizeRemoteClass_Idempotent(t *testing.T) {
	canonical := []model.RemoteClass{
		model.RemoteOnly, model.RemoteGeoRestricted, model.NonRemote, model.RemoteUnknown,
	}
	for _, c := range canonical {
		if got := model.NormalizeRemoteClass(string(c)); got != c {
			t.Errorf("NormalizeRemoteClass(%s) = %s, normalization must be a no-op on canonical values", c, got)
		}
	}
}

// ── NormalizeGeoClass ──────────────────────────────────────────────────────

func TestNormalizeGeoClass(t *testing.T) {
	cases := []struct {
		raw  string
		want model.GeoClass
	}{
		{"eu_member_state", model.GeoEUMemberState},
		{"eu_explicit", model.GeoEUExplicit},
		{"eu_region", model.GeoEURegion},
		{"eog", model.GeoEURegion},
		{"uk", model.GeoUK},
		{"non_eu", model.GeoNonEU},
		{"non_eu_restricted", model.GeoNonEU},
		{"worldwide", model.GeoUnknown},
		{"global", model.GeoUnknown},
		{"eu_friendly", model.GeoUnknown},
		{"", model.GeoUnknown},
		{"mars", model.GeoUnknown},
	}
	for _, c := range cases {
		if got := model.NormalizeGeoClass(c.raw); got != c.want {
			t.Errorf("NormalizeGeoClass(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestNormalizeGeoClass_Idempotent(t *testing.T) {
	canonical := []model.GeoClass{
		model.GeoEUMemberState, model.GeoEUExplicit, model.GeoEURegion,
		model.GeoUK, model.GeoNonEU, model.GeoUnknown,
	}
	for _, c := range canonical {
		if got := model.NormalizeGeoClass(string(c)); got != c {
			t.Errorf("NormalizeGeoClass(%s) = %s, normalization must be a no-op on canonical values", c, got)
		}
	}
}

// ── ParseJobStatus ─────────────────────────────────────────────────────────

func TestParseJobStatus_ValidValues(t *testing.T) {
	valid := []string{"new", "active", "stale", "expired", "unreachable"}
	for _, s := range valid {
		got, err := model.ParseJobStatus(s)
		if err != nil {
			t.Errorf("ParseJobStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseJobStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseJobStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "ACTIVE", "archived"} {
		if _, err := model.ParseJobStatus(s); err == nil {
			t.Errorf("ParseJobStatus(%q) expected error, got nil", s)
		}
	}
}
