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

const remotiveDefaultAPIURL = "https://remotive.com/api/remote-jobs"

// RemotiveSource ingests the Remotive public API. Only EU-wide or worldwide
// postings are kept; explicitly regional ones are dropped at normalization
// since they can never reach the public feed.
type RemotiveSource struct {
	APIURL string
	client *http.Client
}

// NewRemotiveSource constructs the source with a shared HTTP client.
func NewRemotiveSource(apiURL string, client *http.Client) *RemotiveSource {
	if apiURL == "" {
		apiURL = remotiveDefaultAPIURL
	}
	return &RemotiveSource{APIURL: apiURL, client: client}
}

func (s *RemotiveSource) Name() string { return "remotive" }

func (s *RemotiveSource) Strict() bool { return false }

// remotiveResponse mirrors the top-level Remotive JSON response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        json.Number `json:"id"`
	URL                       string      `json:"url"`
	Title                     string      `json:"title"`
	CompanyName               string      `json:"company_name"`
	CandidateRequiredLocation string      `json:"candidate_required_location"`
	Description               string      `json:"description"`
	PublicationDate           string      `json:"publication_date"`
}

// Fetch retrieves and normalizes the API listing.
func (s *RemotiveSource) Fetch(ctx context.Context) ([]model.Job, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.APIURL, nil)
	if err != nil {
		return nil, 0, err
	}
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
		return nil, 0, fmt.Errorf("remotive returned %d", resp.StatusCode)
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}

	raw := len(apiResp.Jobs)
	jobs := make([]model.Job, 0, raw)
	for _, r := range apiResp.Jobs {
		if job, ok := normalizeRemotiveJob(r); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, raw, nil
}

func normalizeRemotiveJob(r remotiveJob) (model.Job, bool) {
	id := strings.TrimSpace(r.ID.String())
	title := strings.TrimSpace(r.Title)
	company := strings.TrimSpace(r.CompanyName)
	description := strings.TrimSpace(r.Description)
	link := sanitizeURL(r.URL)
	location := sanitizeLocation(r.CandidateRequiredLocation)

	if id == "" || id == "0" || title == "" || company == "" || description == "" || link == "" || location == "" {
		return model.Job{}, false
	}

	locationLower := strings.ToLower(location)
	if !strings.Contains(locationLower, "europe") && !strings.Contains(locationLower, "worldwide") {
		return model.Job{}, false
	}

	firstSeen := parseSourceTime(r.PublicationDate)
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	return model.Job{
		JobID:            "remotive:" + id,
		Source:           "remotive",
		SourceJobID:      id,
		SourceURL:        link,
		Title:            title,
		CompanyName:      company,
		Description:      cleanHTML(description),
		RemoteSourceFlag: true,
		RemoteScope:      location,
		Status:           model.StatusNew,
		FirstSeenAt:      firstSeen,
	}, true
}
