package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aergaroth/openjobseu/internal/model"
)

const wwrDefaultFeedURL = "https://weworkremotely.com/categories/remote-programming-jobs.rss"

// WeWorkRemotelySource ingests the WeWorkRemotely programming RSS feed.
// Every posting on the board is remote; the feed carries no reliable geo
// scope, so postings enter as EU-wide and the classifiers narrow them down.
type WeWorkRemotelySource struct {
	FeedURL string
	client  *http.Client
}

// NewWeWorkRemotelySource constructs the source with a shared HTTP client.
func NewWeWorkRemotelySource(feedURL string, client *http.Client) *WeWorkRemotelySource {
	if feedURL == "" {
		feedURL = wwrDefaultFeedURL
	}
	return &WeWorkRemotelySource{FeedURL: feedURL, client: client}
}

func (s *WeWorkRemotelySource) Name() string { return "weworkremotely" }

// Strict is false: feed sources go through the standard policy.
func (s *WeWorkRemotelySource) Strict() bool { return false }

// rssFeed mirrors the RSS 2.0 envelope; only the fields normalization
// reads are mapped.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetch retrieves and normalizes the feed. Returns the normalized jobs and
// the raw entry count; entries missing required fields are dropped.
func (s *WeWorkRemotelySource) Fetch(ctx context.Context) ([]model.Job, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.FeedURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/rss+xml")

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
		return nil, 0, fmt.Errorf("weworkremotely returned %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, 0, fmt.Errorf("xml unmarshal: %w", err)
	}

	raw := len(feed.Channel.Items)
	jobs := make([]model.Job, 0, raw)
	for _, item := range feed.Channel.Items {
		if job, ok := normalizeWWRItem(item); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, raw, nil
}

func normalizeWWRItem(item rssItem) (model.Job, bool) {
	rawTitle := sanitizeLocation(item.Title)
	link := sanitizeURL(item.Link)
	sourceJobID := safeSourceJobID(item.GUID, link)

	if rawTitle == "" || link == "" || sourceJobID == "" {
		return model.Job{}, false
	}

	company, title := splitCompanyFromTitle(rawTitle)

	firstSeen := parseSourceTime(item.PubDate)
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	return model.Job{
		JobID:            "weworkremotely:" + sourceJobID,
		Source:           "weworkremotely",
		SourceJobID:      sourceJobID,
		SourceURL:        link,
		Title:            title,
		CompanyName:      company,
		Description:      cleanHTML(item.Description),
		RemoteSourceFlag: true,
		RemoteScope:      "EU-wide",
		Status:           model.StatusNew,
		FirstSeenAt:      firstSeen,
	}, true
}
