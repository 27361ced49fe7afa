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

const greenhouseBoardURLFormat = "https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true"

// GreenhouseSource ingests one employer's Greenhouse board. Employer/ATS
// postings are evaluated under the strict policy: boards routinely carry
// US-only roles with no remote framing at all.
type GreenhouseSource struct {
	BoardToken string
	client     *http.Client
}

// NewGreenhouseSource constructs the source for a board token
// (e.g. "examplecorp") with a shared HTTP client.
func NewGreenhouseSource(boardToken string, client *http.Client) *GreenhouseSource {
	return &GreenhouseSource{BoardToken: boardToken, client: client}
}

func (s *GreenhouseSource) Name() string { return "greenhouse:" + s.BoardToken }

// Strict is true: hard geo-restriction detection runs before the softer
// checks.
func (s *GreenhouseSource) Strict() bool { return true }

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	UpdatedAt   string `json:"updated_at"`
	CompanyName string `json:"company_name"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

// Fetch retrieves and normalizes the board listing.
func (s *GreenhouseSource) Fetch(ctx context.Context) ([]model.Job, int, error) {
	endpoint := fmt.Sprintf(greenhouseBoardURLFormat, s.BoardToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
	if resp.StatusCode == http.StatusNotFound {
		return nil, 0, fmt.Errorf("unknown greenhouse board %q", s.BoardToken)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("greenhouse returned %d", resp.StatusCode)
	}

	var apiResp greenhouseResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}

	raw := len(apiResp.Jobs)
	jobs := make([]model.Job, 0, raw)
	for _, r := range apiResp.Jobs {
		if job, ok := s.normalizeJob(r); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, raw, nil
}

func (s *GreenhouseSource) normalizeJob(r greenhouseJob) (model.Job, bool) {
	title := strings.TrimSpace(r.Title)
	link := sanitizeURL(r.AbsoluteURL)
	if r.ID == 0 || title == "" || link == "" {
		return model.Job{}, false
	}

	id := fmt.Sprintf("%d", r.ID)
	location := sanitizeLocation(r.Location.Name)
	description := cleanHTML(r.Content)

	company := strings.TrimSpace(r.CompanyName)
	if company == "" {
		company = fallbackCompanyName(s.BoardToken)
	}

	firstSeen := parseSourceTime(r.UpdatedAt)
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	fullText := strings.ToLower(title + " " + description + " " + location)

	return model.Job{
		JobID:            "greenhouse:" + s.BoardToken + ":" + id,
		Source:           "greenhouse:" + s.BoardToken,
		SourceJobID:      id,
		SourceURL:        link,
		Title:            title,
		CompanyName:      company,
		Description:      description,
		RemoteSourceFlag: strings.Contains(fullText, "remote"),
		RemoteScope:      location,
		Status:           model.StatusNew,
		FirstSeenAt:      firstSeen,
	}, true
}

func fallbackCompanyName(boardToken string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(boardToken)
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	return name
}
