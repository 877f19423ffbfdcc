package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// Remotive queries the remotive.com remote-jobs API.
type Remotive struct {
	client  *httpclient.Client
	baseURL string
}

func NewRemotive(client *httpclient.Client) *Remotive {
	return &Remotive{
		client:  client,
		baseURL: "https://remotive.com/api/remote-jobs",
	}
}

func (r *Remotive) Name() string {
	return "Remotive"
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int64    `json:"id"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	URL                       string   `json:"url"`
	Description               string   `json:"description"`
	PublicationDate           string   `json:"publication_date"`
	Salary                    string   `json:"salary"`
	Tags                      []string `json:"tags"`
}

func (r *Remotive) Search(ctx context.Context, term string, _ string) ([]model.Posting, error) {
	searchURL := fmt.Sprintf("%s?search=%s", r.baseURL, url.QueryEscape(strings.TrimSpace(term)))

	var resp remotiveResponse
	if err := getJSON(ctx, r.client, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("remotive: %w", err)
	}

	jobs := make([]model.Posting, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		// Remotive is remote-first; an unset location still means remote.
		loc := j.CandidateRequiredLocation
		if loc == "" {
			loc = "Remote"
		}

		jobs = append(jobs, model.Posting{
			ID:          strconv.FormatInt(j.ID, 10),
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    loc,
			URL:         j.URL,
			Description: j.Description,
			Date:        j.PublicationDate,
			Tags:        j.Tags,
			Source:      "Remotive",
			Salary:      j.Salary,
		})
	}

	return jobs, nil
}
