package store

import (
	"github.com/aergaroth/openjobseu/internal/model"
	"github.com/aergaroth/openjobseu/internal/policy"
)

// DeriveRemoteClass computes the persisted remote_class from a job's policy
// annotation. An explicit non_remote policy reason always wins over the
// classifier-derived model. Without an annotation, the source-level remote
// flag is the only evidence available.
func DeriveRemoteClass(job model.Job) model.RemoteClass {
	c := job.Compliance
	if c == nil {
		if job.RemoteSourceFlag {
			return model.RemoteOnly
		}
		return model.RemoteUnknown
	}

	if c.PolicyReason == model.ReasonNonRemote {
		return model.NonRemote
	}

	return model.NormalizeRemoteClass(string(c.RemoteModel))
}

// DeriveGeoClass computes the persisted geo_class. Preference order:
//
//  1. an explicit geo class set by the policy annotation
//  2. non_eu, forced when policy flagged a geo restriction or the remote
//     model is region-locked
//  3. the geo classifier over title+description
//  4. the geo classifier over remote_scope alone
//  5. unknown
func DeriveGeoClass(job model.Job) model.GeoClass {
	c := job.Compliance

	if c != nil && c.GeoClass != "" {
		if g := model.NormalizeGeoClass(string(c.GeoClass)); g != model.GeoUnknown {
			return g
		}
	}

	if c != nil {
		restricted := c.PolicyReason == model.ReasonGeoRestriction ||
			c.PolicyReason == model.ReasonGeoHard ||
			c.RemoteModel == model.RemoteModelGeoRestricted
		if restricted {
			return model.GeoNonEU
		}
	}

	primary := policy.ClassifyGeoScope(job.Title, job.Description)
	if g := model.NormalizeGeoClass(string(primary.Class)); g != model.GeoUnknown {
		return g
	}

	if job.RemoteScope != "" {
		fallback := policy.ClassifyGeoScope(job.RemoteScope, "")
		if g := model.NormalizeGeoClass(string(fallback.Class)); g != model.GeoUnknown {
			return g
		}
	}

	return model.GeoUnknown
}
