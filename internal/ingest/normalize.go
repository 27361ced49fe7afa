// Package ingest fetches job postings from external sources, normalizes
// them into the canonical record and persists them through the policy
// evaluator — one transaction per source run.
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Tracking query parameters stripped from source URLs.
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"mc_cid": {},
	"mc_eid": {},
}

// sanitizeURL strips tracking parameters and fragments from a source URL.
// Relative or unparseable values pass through trimmed.
func sanitizeURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return value
	}

	query := parsed.Query()
	for key := range query {
		lower := strings.ToLower(key)
		if _, tracking := trackingParams[lower]; tracking || strings.HasPrefix(lower, "utm_") {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()
	parsed.Fragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	return parsed.String()
}

// sanitizeLocation collapses runs of whitespace.
func sanitizeLocation(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// parseSourceTime parses the timestamp formats job boards actually emit.
// Returns the zero time when nothing matches; callers fall back to now.
func parseSourceTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

var (
	paragraphRe  = regexp.MustCompile(`(?i)</?p\s*>`)
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
)

// cleanHTML reduces an HTML description to plain text: paragraph and break
// tags become newlines, every other tag is dropped, entities are left alone.
func cleanHTML(text string) string {
	if text == "" {
		return ""
	}
	text = paragraphRe.ReplaceAllString(text, "\n")
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var slugCleanRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func isURLLike(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.Contains(v, "://")
}

// safeSourceJobID keeps source ids stable and URL-free: a URL-shaped raw id
// is replaced by the link's last path segment, or a hash of the link when
// no usable slug remains.
func safeSourceJobID(rawID, link string) string {
	rid := strings.TrimSpace(rawID)
	if rid != "" && !isURLLike(rid) {
		return rid
	}

	if parsed, err := url.Parse(link); err == nil {
		path := strings.Trim(parsed.Path, "/")
		if path != "" {
			segments := strings.Split(path, "/")
			slug := slugCleanRe.ReplaceAllString(segments[len(segments)-1], "-")
			slug = strings.Trim(slug, "-")
			if slug != "" {
				return slug
			}
		}
	}

	sum := sha1.Sum([]byte(link))
	return hex.EncodeToString(sum[:])[:16]
}

func looksLikeURLFragment(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "http") ||
		strings.HasPrefix(v, "www.") ||
		strings.Contains(v, "://") ||
		strings.Contains(v, "/") ||
		strings.HasSuffix(v, ".com") ||
		strings.HasSuffix(v, ".org") ||
		strings.HasSuffix(v, ".io")
}

// splitCompanyFromTitle applies the "Company: Job Title" heuristic used by
// boards that pack both into one field. Returns the original title and
// "unknown" when the prefix does not look like a company name.
func splitCompanyFromTitle(rawTitle string) (company, title string) {
	company = "unknown"
	title = rawTitle

	before, after, found := strings.Cut(rawTitle, ":")
	if !found {
		return company, title
	}
	possibleCompany := strings.TrimSpace(before)
	possibleTitle := strings.TrimSpace(after)

	if len(possibleCompany) >= 2 && len(possibleCompany) <= 80 &&
		!looksLikeURLFragment(possibleCompany) && possibleTitle != "" {
		return possibleCompany, possibleTitle
	}
	return company, title
}
