package policy_test

import (
	"testing"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/policy"
)

// ── ClassifyRemoteModel — cascade precedence ───────────────────────────────

func TestClassifyRemoteModel_NegativeStrong(t *testing.T) {
	cases := []struct {
		title string
		desc  string
	}{
		{"Software Engineer", "This is an on-site position in our Berlin office."},
		{"Backend Developer", "Relocation required for this role."},
		{"Platform Engineer (onsite)", "Join our infrastructure team."},
	}
	for _, c := range cases {
		got := policy.ClassifyRemoteModel(c.title, c.desc, "")
		if got.Model != model.RemoteModelOfficeFirst {
			t.Errorf("ClassifyRemoteModel(%q, %q) = %s, want office_first", c.title, c.desc, got.Model)
		}
		if got.Confidence != 0.95 {
			t.Errorf("Confidence = %v, want 0.95", got.Confidence)
		}
	}
}

func TestClassifyRemoteModel_NegativeBeatsRemote(t *testing.T) {
	// Negative evidence wins even when strong remote phrases are present.
	got := policy.ClassifyRemoteModel("Engineer", "Fully remote onboarding, then on-site in Munich.", "")
	if got.Model != model.RemoteModelOfficeFirst {
		t.Errorf("Model = %s, want office_first", got.Model)
	}
}

func TestClassifyRemoteModel_Hybrid(t *testing.T) {
	got := policy.ClassifyRemoteModel("Engineer", "Hybrid setup: 2 days per week at the office.", "")
	if got.Model != model.RemoteModelHybrid {
		t.Errorf("Model = %s, want hybrid", got.Model)
	}
	if got.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", got.Confidence)
	}
}

func TestClassifyRemoteModel_HybridBeatsRemoteStrong(t *testing.T) {
	got := policy.ClassifyRemoteModel("Engineer", "Partially remote, fully remote weeks possible.", "")
	if got.Model != model.RemoteModelHybrid {
		t.Errorf("Model = %s, want hybrid", got.Model)
	}
}

func TestClassifyRemoteModel_RegionLockedScope(t *testing.T) {
	cases := []string{
		"Remote US",
		"Remote, Germany only",
		"Remote (EMEA)",
	}
	for _, scope := range cases {
		got := policy.ClassifyRemoteModel("Engineer", "Great team, great product.", scope)
		if got.Model != model.RemoteModelGeoRestricted {
			t.Errorf("ClassifyRemoteModel(_, _, %q) = %s, want remote_but_geo_restricted", scope, got.Model)
		}
		if got.Confidence != 0.8 {
			t.Errorf("Confidence = %v, want 0.8", got.Confidence)
		}
		if len(got.Signals) != 1 || got.Signals[0] != "remote_scope_region_locked" {
			t.Errorf("Signals = %v, want [remote_scope_region_locked]", got.Signals)
		}
	}
}

func TestClassifyRemoteModel_BareRemoteScopeNotLocked(t *testing.T) {
	// "Remote" with no residual qualifier is not a region lock.
	got := policy.ClassifyRemoteModel("Engineer", "Great team, great product.", "Remote")
	if got.Model == model.RemoteModelGeoRestricted {
		t.Errorf("bare remote scope classified as region-locked")
	}
}

func TestClassifyRemoteModel_RemoteStrong(t *testing.T) {
	cases := []string{
		"We are a fully remote company.",
		"100% remote, work from anywhere.",
		"Remote-first engineering culture.",
	}
	for _, desc := range cases {
		got := policy.ClassifyRemoteModel("Engineer", desc, "")
		if got.Model != model.RemoteModelRemoteOnly {
			t.Errorf("ClassifyRemoteModel(_, %q) = %s, want remote_only", desc, got.Model)
		}
		if got.Confidence != 0.9 {
			t.Errorf("Confidence = %v, want 0.9", got.Confidence)
		}
	}
}

func TestClassifyRemoteModel_RemoteOptional(t *testing.T) {
	got := policy.ClassifyRemoteModel("Engineer", "We offer flexible remote work options.", "")
	if got.Model != model.RemoteModelOptional {
		t.Errorf("Model = %s, want remote_optional", got.Model)
	}
	if got.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", got.Confidence)
	}
}

func TestClassifyRemoteModel_Unknown(t *testing.T) {
	got := policy.ClassifyRemoteModel("Engineer", "Join our team and build great things.", "")
	if got.Model != model.RemoteModelUnknown {
		t.Errorf("Model = %s, want unknown", got.Model)
	}
	if got.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", got.Confidence)
	}
	if len(got.Signals) != 0 {
		t.Errorf("Signals = %v, want none", got.Signals)
	}
}

func TestClassifyRemoteModel_EmptyInput(t *testing.T) {
	got := policy.ClassifyRemoteModel("", "", "")
	if got.Model != model.RemoteModelUnknown {
		t.Errorf("Model = %s, want unknown for empty input", got.Model)
	}
}

func TestClassifyRemoteModel_Deterministic(t *testing.T) {
	first := policy.ClassifyRemoteModel("Engineer", "Fully remote, EU timezone.", "Remote")
	for i := 0; i < 5; i++ {
		got := policy.ClassifyRemoteModel("Engineer", "Fully remote, EU timezone.", "Remote")
		if got.Model != first.Model || got.Confidence != first.Confidence {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}
