package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

const adzunaPageSize = 50

// Adzuna queries the credentialed Adzuna search API. The Registry only
// wires this source when both credentials are present.
type Adzuna struct {
	client  *httpclient.Client
	baseURL string
	appID   string
	appKey  string
	country string // "cl", "fr", "gb", ...
}

func NewAdzuna(client *httpclient.Client, appID, appKey, country string) *Adzuna {
	if country == "" {
		country = "cl"
	}
	return &Adzuna{
		client:  client,
		baseURL: "https://api.adzuna.com/v1/api/jobs",
		appID:   appID,
		appKey:  appKey,
		country: country,
	}
}

func (a *Adzuna) Name() string {
	return "Adzuna"
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

func (a *Adzuna) Search(ctx context.Context, term string, location string) ([]model.Posting, error) {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", adzunaPageSize))
	params.Set("what", strings.TrimSpace(term))
	params.Set("content-type", "application/json")
	if location = strings.TrimSpace(location); location != "" {
		params.Set("where", location)
	}

	searchURL := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, a.country, params.Encode())

	var resp adzunaResponse
	if err := getJSON(ctx, a.client, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("adzuna: %w", err)
	}

	jobs := make([]model.Posting, 0, len(resp.Results))
	for _, r := range resp.Results {
		salary := ""
		if r.SalaryMin > 0 {
			salary = fmt.Sprintf("%.0f-%.0f", r.SalaryMin, r.SalaryMax)
		}

		jobs = append(jobs, model.Posting{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			URL:         r.RedirectURL,
			Description: r.Description,
			Date:        r.Created,
			Tags:        []string{},
			Source:      "Adzuna",
			Salary:      salary,
		})
	}

	return jobs, nil
}
