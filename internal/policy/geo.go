package policy

import (
	"regexp"
	"strings"

	"github.com/aergaroth/openjobseu/internal/model"
)

// GeoClassification is the result of the geo-scope classifier: the class
// plus the keyword that decided it (empty for unknown).
type GeoClassification struct {
	Class          model.GeoClass
	MatchedKeyword string
}

var usStateCodesRe = regexp.MustCompile(`\b(?i:` + strings.Join(usStateCodes, "|") + `)\b`)

// ClassifyGeoScope classifies the eligible candidate geography of a job from
// its title and description. Pure function: no DB, no scoring, no logging.
//
// Cascade order:
//  1. hard non-EU signals (US, Canada, APAC, Australia, India, LatAm, catch-all)
//  2. >= 3 distinct US state abbreviations as standalone tokens
//  3. explicit EU mention
//  4. EU member states
//  5. EEA countries and region keywords
//  6. UK
//  7. unknown
func ClassifyGeoScope(title, description string) GeoClassification {
	fullText := strings.ToLower(title + " " + description)

	for _, group := range nonEUSignalGroups {
		for _, kw := range group {
			if containsPhrase(fullText, kw) {
				return GeoClassification{Class: model.GeoNonEU, MatchedKeyword: kw}
			}
		}
	}

	if hits := countDistinctUSStateHits(fullText); hits >= usStateSignalThreshold {
		return GeoClassification{
			Class:          model.GeoNonEU,
			MatchedKeyword: "us_state_codes>=3",
		}
	}

	if containsPhrase(fullText, "eu only") ||
		containsPhrase(fullText, "eu-only") ||
		containsPhrase(fullText, "european union") {
		return GeoClassification{Class: model.GeoEUExplicit, MatchedKeyword: "eu"}
	}

	for _, country := range euMemberStates {
		if containsPhrase(fullText, country) {
			return GeoClassification{Class: model.GeoEUMemberState, MatchedKeyword: country}
		}
	}

	for _, country := range eogCountries {
		if containsPhrase(fullText, country) {
			return GeoClassification{Class: model.GeoEURegion, MatchedKeyword: country}
		}
	}
	for _, kw := range euRegionKeywords {
		if containsPhrase(fullText, kw) {
			return GeoClassification{Class: model.GeoEURegion, MatchedKeyword: kw}
		}
	}

	for _, kw := range ukKeywords {
		if containsPhrase(fullText, kw) {
			return GeoClassification{Class: model.GeoUK, MatchedKeyword: kw}
		}
	}
	if containsPhrase(fullText, "uk") {
		return GeoClassification{Class: model.GeoUK, MatchedKeyword: "uk"}
	}

	return GeoClassification{Class: model.GeoUnknown}
}

// containsPhrase reports whether phrase occurs in text without being glued
// to surrounding letters or digits. A plain substring test would let "us"
// match inside "status"; RE2 has no lookarounds, so the boundary check is
// done by hand.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start <= len(text)-len(phrase); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		beforeOK := i == 0 || !isAlnum(text[i-1])
		afterOK := end == len(text) || !isAlnum(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
	return false
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// countDistinctUSStateHits counts distinct US state abbreviations appearing
// as standalone tokens. Distinct codes, not raw occurrences: one state
// repeated ten times is weaker evidence than three different states.
func countDistinctUSStateHits(fullText string) int {
	hits := make(map[string]struct{})
	for _, m := range usStateCodesRe.FindAllString(fullText, -1) {
		hits[strings.ToLower(m)] = struct{}{}
	}
	return len(hits)
}
