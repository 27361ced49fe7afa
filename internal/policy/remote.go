package policy

import (
	"strings"

	"github.com/aergaroth/openjobseu/internal/model"
)

// Signal phrases for the remote-model cascade. Order encodes manually tuned
// precedence: negative evidence trumps positive, qualified remote trumps
// unqualified remote.

var negativeStrongSignals = []string{
	"relocation required",
	"on-site",
	"onsite",
	"in-office",
	"in office",
	"this role is based in",
	"full-time position in",
}

var hybridSignals = []string{
	"hybrid",
	"days in office",
	"partially remote",
}

var remoteStrongSignals = []string{
	"fully remote",
	"100% remote",
	"remote only",
	"remote-only",
	"remote-first",
	"work from anywhere",
}

var remoteOptionalSignals = []string{
	"remote work options",
	"flexible remote",
	"possibility to work remotely",
	"flexible working hours and remote",
}

// RemoteClassification is the result of the remote-model classifier: the
// label, a heuristic confidence and the names of the matched signal groups.
type RemoteClassification struct {
	Model      model.RemoteModel
	Confidence float64
	Signals    []string
}

// ClassifyRemoteModel classifies a job's remote-work operating model from
// free text. First match wins; earlier rules are stricter and more certain.
func ClassifyRemoteModel(title, description, remoteScope string) RemoteClassification {
	title = strings.ToLower(title)
	description = strings.ToLower(description)
	remoteScope = strings.ToLower(remoteScope)
	text := title + " " + description + " " + remoteScope

	if containsAny(text, negativeStrongSignals) {
		return RemoteClassification{
			Model:      model.RemoteModelOfficeFirst,
			Confidence: 0.95,
			Signals:    []string{"negative_strong"},
		}
	}

	if containsAny(text, hybridSignals) {
		return RemoteClassification{
			Model:      model.RemoteModelHybrid,
			Confidence: 0.85,
			Signals:    []string{"hybrid_signal"},
		}
	}

	if isRegionLocked(remoteScope) {
		return RemoteClassification{
			Model:      model.RemoteModelGeoRestricted,
			Confidence: 0.8,
			Signals:    []string{"remote_scope_region_locked"},
		}
	}

	if containsAny(text, remoteStrongSignals) {
		return RemoteClassification{
			Model:      model.RemoteModelRemoteOnly,
			Confidence: 0.9,
			Signals:    []string{"remote_strong"},
		}
	}

	if containsAny(text, remoteOptionalSignals) {
		return RemoteClassification{
			Model:      model.RemoteModelOptional,
			Confidence: 0.7,
			Signals:    []string{"remote_optional"},
		}
	}

	return RemoteClassification{
		Model:      model.RemoteModelUnknown,
		Confidence: 0.3,
	}
}

// isRegionLocked reports whether a remote_scope string describes remote work
// with a geographic qualifier: it mentions "remote" and still has residual
// text once "remote" and punctuation are stripped ("Remote US",
// "Remote, Germany only").
func isRegionLocked(remoteScope string) bool {
	if remoteScope == "" {
		return false
	}
	text := strings.ToLower(remoteScope)
	if !strings.Contains(text, "remote") {
		return false
	}
	cleaned := strings.ReplaceAll(text, "remote", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strings.TrimSpace(cleaned) != ""
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
