package store_test

import (
	"testing"

	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/store"
)

// ── DeriveRemoteClass ──────────────────────────────────────────────────────

func TestDeriveRemoteClass_NoAnnotation(t *testing.T) {
	flagged := model.Job{RemoteSourceFlag: true}
	if got := store.DeriveRemoteClass(flagged); got != model.RemoteOnly {
		t.Errorf("DeriveRemoteClass(flagged) = %s, want remote_only", got)
	}

	unflagged := model.Job{}
	if got := store.DeriveRemoteClass(unflagged); got != model.RemoteUnknown {
		t.Errorf("DeriveRemoteClass(unflagged) = %s, want unknown", got)
	}
}

func TestDeriveRemoteClass_NonRemoteReasonWins(t *testing.T) {
	// The explicit reject reason overrides whatever the classifier said.
	job := model.Job{
		RemoteSourceFlag: true,
		Compliance: &model.Compliance{
			PolicyReason: model.ReasonNonRemote,
			RemoteModel:  model.RemoteModelRemoteOnly,
		},
	}
	if got := store.DeriveRemoteClass(job); got != model.NonRemote {
		t.Errorf("DeriveRemoteClass = %s, want non_remote", got)
	}
}

func TestDeriveRemoteClass_FromModel(t *testing.T) {
	cases := []struct {
		rm   model.RemoteModel
		want model.RemoteClass
	}{
		{model.RemoteModelRemoteOnly, model.RemoteOnly},
		{model.RemoteModelGeoRestricted, model.RemoteGeoRestricted},
		{model.RemoteModelHybrid, model.NonRemote},
		{model.RemoteModelOfficeFirst, model.NonRemote},
		{model.RemoteModelOptional, model.RemoteUnknown},
		{model.RemoteModelUnknown, model.RemoteUnknown},
	}
	for _, c := range cases {
		job := model.Job{Compliance: &model.Compliance{RemoteModel: c.rm}}
		if got := store.DeriveRemoteClass(job); got != c.want {
			t.Errorf("DeriveRemoteClass(model=%s) = %s, want %s", c.rm, got, c.want)
		}
	}
}

// ── DeriveGeoClass ─────────────────────────────────────────────────────────

func TestDeriveGeoClass_ExplicitOverride(t *testing.T) {
	job := model.Job{
		Title:       "Engineer",
		Description: "Remote within the United States.", // would classify non_eu
		Compliance:  &model.Compliance{GeoClass: model.GeoEURegion},
	}
	if got := store.DeriveGeoClass(job); got != model.GeoEURegion {
		t.Errorf("DeriveGeoClass = %s, want eu_region (explicit override)", got)
	}
}

func TestDeriveGeoClass_RestrictionForcesNonEU(t *testing.T) {
	cases := []model.Compliance{
		{PolicyReason: model.ReasonGeoRestriction},
		{PolicyReason: model.ReasonGeoHard},
		{RemoteModel: model.RemoteModelGeoRestricted},
	}
	for _, c := range cases {
		c := c
		job := model.Job{
			Title:       "Engineer",
			Description: "Remote anywhere in Germany.", // EU text must not win
			Compliance:  &c,
		}
		if got := store.DeriveGeoClass(job); got != model.GeoNonEU {
			t.Errorf("DeriveGeoClass(%+v) = %s, want non_eu", c, got)
		}
	}
}

func TestDeriveGeoClass_FromTitleAndDescription(t *testing.T) {
	job := model.Job{
		Title:       "Backend Engineer",
		Description: "Fully remote, anywhere in Spain.",
	}
	if got := store.DeriveGeoClass(job); got != model.GeoEUMemberState {
		t.Errorf("DeriveGeoClass = %s, want eu_member_state", got)
	}
}

func TestDeriveGeoClass_RemoteScopeFallback(t *testing.T) {
	job := model.Job{
		Title:       "Backend Engineer",
		Description: "Join our distributed team.",
		RemoteScope: "EU-wide",
	}
	if got := store.DeriveGeoClass(job); got != model.GeoEURegion {
		t.Errorf("DeriveGeoClass = %s, want eu_region (from remote_scope)", got)
	}
}

func TestDeriveGeoClass_Unknown(t *testing.T) {
	job := model.Job{
		Title:       "Backend Engineer",
		Description: "Join our distributed team.",
	}
	if got := store.DeriveGeoClass(job); got != model.GeoUnknown {
		t.Errorf("DeriveGeoClass = %s, want unknown", got)
	}
}
