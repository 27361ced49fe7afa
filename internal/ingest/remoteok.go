package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
)

const remoteOKDefaultAPIURL = "https://remoteok.com/api"

// RemoteOKSource ingests the RemoteOK public API. The board is globally
// remote-first, not EU-only: postings enter as EU-wide only on an explicit
// EU signal in the location, worldwide otherwise, and the classifiers take
// it from there.
type RemoteOKSource struct {
	APIURL string
	client *http.Client
}

// NewRemoteOKSource constructs the source with a shared HTTP client.
func NewRemoteOKSource(apiURL string, client *http.Client) *RemoteOKSource {
	if apiURL == "" {
		apiURL = remoteOKDefaultAPIURL
	}
	return &RemoteOKSource{APIURL: apiURL, client: client}
}

func (s *RemoteOKSource) Name() string { return "remoteok" }

func (s *RemoteOKSource) Strict() bool { return false }

type remoteOKJob struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	URL         string      `json:"url"`
	ApplyURL    string      `json:"apply_url"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Epoch       json.Number `json:"epoch"`
}

// Fetch retrieves and normalizes the API listing. The response is a JSON
// array whose first element is a legal notice, not a job; it is skipped
// before normalization.
func (s *RemoteOKSource) Fetch(ctx context.Context) ([]model.Job, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.APIURL, nil)
	if err != nil {
		return nil, 0, err
	}
	// RemoteOK rejects requests without a browser-like UA.
	req.Header.Set("User-Agent", "OpenJobsEU/1.0 (https://openjobseu.org)")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("remoteok returned %d", resp.StatusCode)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(entries) > 0 {
		entries = entries[1:]
	}

	raw := len(entries)
	jobs := make([]model.Job, 0, raw)
	for _, entry := range entries {
		var r remoteOKJob
		if err := json.Unmarshal(entry, &r); err != nil {
			continue
		}
		if job, ok := normalizeRemoteOKJob(r); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, raw, nil
}

func normalizeRemoteOKJob(r remoteOKJob) (model.Job, bool) {
	id := strings.TrimSpace(r.ID.String())
	title := strings.TrimSpace(r.Position)
	company := strings.TrimSpace(r.Company)

	link := sanitizeURL(r.URL)
	if link == "" {
		link = sanitizeURL(r.ApplyURL)
	}

	if id == "" || id == "0" || title == "" || company == "" || link == "" {
		return model.Job{}, false
	}

	firstSeen := parseSourceTime(r.Date)
	if firstSeen.IsZero() {
		if epoch, err := r.Epoch.Int64(); err == nil && epoch > 0 {
			firstSeen = time.Unix(epoch, 0).UTC()
		}
	}
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	return model.Job{
		JobID:            "remoteok:" + id,
		Source:           "remoteok",
		SourceJobID:      id,
		SourceURL:        link,
		Title:            title,
		CompanyName:      company,
		Description:      cleanHTML(r.Description),
		RemoteSourceFlag: true,
		RemoteScope:      remoteOKScope(r.Location),
		Status:           model.StatusNew,
		FirstSeenAt:      firstSeen,
	}, true
}

// remoteOKScope maps a RemoteOK location onto a scope. EU detection is
// conservative: only an explicit EU marker narrows the scope, everything
// else stays worldwide and is narrowed later by the geo classifier.
func remoteOKScope(location string) string {
	loc := strings.ToLower(sanitizeLocation(location))
	if strings.Contains(loc, "europe") || strings.Contains(loc, "eu") {
		return "EU-wide"
	}
	return "worldwide"
}
