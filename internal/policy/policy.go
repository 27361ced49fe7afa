// Package policy converts free-text job postings into compliance
// annotations: a remote-model label, a geo-scope label and an
// accept/reject decision with a machine-readable reason.
//
// Rejection never discards information. Every evaluated job carries its
// annotation so audit tooling can inspect why a posting was turned away
// and a later ruleset can reclassify it without re-fetching the source.
package policy

import (
	"strings"

	"github.com/aergaroth/openjobseu/internal/model"
)

// Keyword banks for the v1 accept/reject test.

var nonRemoteKeywords = []string{
	"onsite",
	"on-site",
	"in office",
	"in-office",
	"hybrid",
	"relocation required",
	"must be located in",
}

var geoRestrictKeywords = []string{
	"us only",
	"united states only",
	"us citizens",
	"us work authorization",
	"must be based in the us",
	"must be based in us",
	"north america only",
	"canada only",
	"apac only",
}

// Decision is the outcome of a policy evaluation. Job is a copy of the
// input with its Compliance annotation attached, whether accepted or not.
// Hard rejects carry a forced verdict on the annotation, which the upsert
// path persists directly.
type Decision struct {
	Job      model.Job
	Accepted bool
	Reason   model.PolicyReason
}

const (
	versionStandard = "v2"
	versionStrict   = "v3"
)

// Evaluate applies the standard policy to a normalized job: classify the
// remote model, then run the keyword accept/reject test on title and
// description. Used for feed/API sources.
func Evaluate(job model.Job) Decision {
	return evaluate(job, versionStandard)
}

// EvaluateStrict applies the strict policy used for employer/ATS-sourced
// postings. A hard geo-restriction hit on title, description, remote scope
// or source metadata short-circuits with a forced rejected verdict; softer
// checks run only when the hard bank stays silent.
func EvaluateStrict(job model.Job) Decision {
	remoteModel := safeRemoteModel(job)

	combined := strings.Join([]string{
		job.Title, job.Description, job.RemoteScope, job.Source, job.SourceURL,
	}, " ")

	if DetectHardGeoRestriction(combined) {
		annotated := job
		annotated.Compliance = &model.Compliance{
			PolicyVersion: versionStrict,
			PolicyReason:  model.ReasonGeoHard,
			RemoteModel:   remoteModel,
			ForcedStatus:  model.ComplianceRejected,
			ForcedScore:   0,
		}
		return Decision{Job: annotated, Accepted: false, Reason: model.ReasonGeoHard}
	}

	return evaluate(job, versionStrict)
}

func evaluate(job model.Job, version string) Decision {
	remoteModel := safeRemoteModel(job)

	annotated := job
	annotated.Compliance = &model.Compliance{
		PolicyVersion: version,
		RemoteModel:   remoteModel,
	}

	fullText := strings.ToLower(job.Title + " " + job.Description)

	if containsAny(fullText, nonRemoteKeywords) {
		annotated.Compliance.PolicyReason = model.ReasonNonRemote
		return Decision{Job: annotated, Accepted: false, Reason: model.ReasonNonRemote}
	}

	if containsAny(fullText, geoRestrictKeywords) {
		annotated.Compliance.PolicyReason = model.ReasonGeoRestriction
		return Decision{Job: annotated, Accepted: false, Reason: model.ReasonGeoRestriction}
	}

	return Decision{Job: annotated, Accepted: true}
}

// safeRemoteModel never lets a classification failure block ingestion:
// a zero-valued result degrades to unknown.
func safeRemoteModel(job model.Job) model.RemoteModel {
	rc := ClassifyRemoteModel(job.Title, job.Description, job.RemoteScope)
	if rc.Model == "" {
		return model.RemoteModelUnknown
	}
	return rc.Model
}
