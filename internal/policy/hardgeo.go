package policy

import (
	"regexp"
	"strings"
)

// hardGeoPatterns is the zero-tolerance geo-restriction bank used by the
// strict evaluator for employer/ATS-sourced postings. A hit forces a
// rejected verdict regardless of every softer signal.
var hardGeoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bus only\b`),
	regexp.MustCompile(`\bunited states only\b`),
	regexp.MustCompile(`\bmust be located in the us\b`),
	regexp.MustCompile(`\bmust reside in the us\b`),
	regexp.MustCompile(`\bus residents only\b`),
	regexp.MustCompile(`\bus applicants only\b`),
	regexp.MustCompile(`\bmust be authorized to work in the us\b`),
	regexp.MustCompile(`\bus work authorization required\b`),
	regexp.MustCompile(`\beligible to work in the us only\b`),
	regexp.MustCompile(`\bamericas only\b`),
	regexp.MustCompile(`\bnorth america only\b`),
	regexp.MustCompile(`\bsouth america only\b`),
	regexp.MustCompile(`\blatam only\b`),
	regexp.MustCompile(`\bcanada only\b`),
	regexp.MustCompile(`\bus or canada only\b`),
	regexp.MustCompile(`\bnot eligible outside the us\b`),
	regexp.MustCompile(`\bcandidates outside the us will not be considered\b`),
	regexp.MustCompile(`\bus payroll only\b`),
	regexp.MustCompile(`\bmust be eligible to work in the united states\b`),
	regexp.MustCompile(`\beligible to work in the united states\b`),
	regexp.MustCompile(`\bus citizenship required\b`),
	regexp.MustCompile(`\bus citizen required\b`),
	regexp.MustCompile(`\bus citizens only\b`),
	regexp.MustCompile(`\bus permanent resident required\b`),
	regexp.MustCompile(`\bgreen card required\b`),
	regexp.MustCompile(`\bmust have us work authorization\b`),
}

// DetectHardGeoRestriction reports whether text contains a hard
// geo-restriction phrase.
func DetectHardGeoRestriction(text string) bool {
	if text == "" {
		return false
	}
	normalized := strings.ToLower(text)
	for _, p := range hardGeoPatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}
