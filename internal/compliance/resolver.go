// Package compliance derives the final (status, score) verdict from a job's
// persisted classification and keeps it current as the ruleset evolves.
package compliance

import "github.com/aergaroth/openjobseu/internal/model"

// Resolve maps (remote_class, geo_class) to (compliance_status,
// compliance_score). Deterministic and pure: identical input always yields
// the identical verdict.
//
// Evaluated as an ordered rule list, not a lookup table — later rules
// deliberately override the default scoring. Hard rejections always score
// exactly 0; the fallback is the only soft reject (20), marking
// "insufficient evidence" rather than "explicitly disqualified".
func Resolve(remoteClass model.RemoteClass, geoClass model.GeoClass) (model.ComplianceStatus, int) {
	// Inputs may carry legacy spellings when resolving rows persisted under
	// an older ruleset; normalization is idempotent for canonical values.
	rc := model.NormalizeRemoteClass(string(remoteClass))
	gc := model.NormalizeGeoClass(string(geoClass))

	if rc == model.NonRemote {
		return model.ComplianceRejected, 0
	}
	if gc == model.GeoNonEU {
		return model.ComplianceRejected, 0
	}

	if rc == model.RemoteOnly {
		switch gc {
		case model.GeoEUMemberState:
			return model.ComplianceApproved, 100
		case model.GeoEUExplicit, model.GeoEURegion:
			return model.ComplianceApproved, 90
		case model.GeoUK:
			return model.ComplianceApproved, 85
		}
	}

	if rc == model.RemoteGeoRestricted {
		switch gc {
		case model.GeoEUMemberState:
			return model.ComplianceReview, 70
		case model.GeoEUExplicit, model.GeoEURegion:
			return model.ComplianceReview, 65
		}
	}

	if rc == model.RemoteUnknown {
		switch gc {
		case model.GeoEUMemberState:
			return model.ComplianceReview, 60
		case model.GeoEUExplicit, model.GeoEURegion, model.GeoUK:
			return model.ComplianceReview, 55
		}
	}

	// Fallback: includes geo unknown (worldwide/global scopes).
	return model.ComplianceRejected, 20
}
