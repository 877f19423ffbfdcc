package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// ArbeitNow queries the arbeitnow.com job board API.
type ArbeitNow struct {
	client  *httpclient.Client
	baseURL string
}

func NewArbeitNow(client *httpclient.Client) *ArbeitNow {
	return &ArbeitNow{
		client:  client,
		baseURL: "https://www.arbeitnow.com/api/job-board-api",
	}
}

func (a *ArbeitNow) Name() string {
	return "ArbeitNow"
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

func (a *ArbeitNow) Search(ctx context.Context, term string, _ string) ([]model.Posting, error) {
	searchURL := fmt.Sprintf("%s?search=%s&sort=relevance",
		a.baseURL, url.QueryEscape(strings.ToLower(strings.TrimSpace(term))))

	var resp arbeitnowResponse
	if err := getJSON(ctx, a.client, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("arbeitnow: %w", err)
	}

	jobs := make([]model.Posting, 0, len(resp.Data))
	for _, j := range resp.Data {
		// The remote flag lives outside the location string; fold it in so
		// the geo filter can see it.
		loc := j.Location
		if j.Remote {
			loc = "Remote, " + loc
		}

		date := ""
		if j.CreatedAt > 0 {
			date = time.Unix(j.CreatedAt, 0).UTC().Format(time.RFC3339)
		}

		jobs = append(jobs, model.Posting{
			ID:          j.Slug,
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    loc,
			URL:         j.URL,
			Description: j.Description,
			Date:        date,
			Tags:        j.Tags,
			Source:      "ArbeitNow",
		})
	}

	return jobs, nil
}
