package source

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// RemoteOK queries the remoteok.com public API. The API takes a single tag
// in the query string and returns a JSON array whose first element is legal
// metadata rather than a job.
type RemoteOK struct {
	client  *httpclient.Client
	baseURL string
}

func NewRemoteOK(client *httpclient.Client) *RemoteOK {
	return &RemoteOK{
		client:  client,
		baseURL: "https://remoteok.com/api",
	}
}

func (r *RemoteOK) Name() string {
	return "RemoteOK"
}

type remoteOKJob struct {
	ID             string   `mapstructure:"id"`
	Position       string   `mapstructure:"position"`
	Company        string   `mapstructure:"company"`
	Location       string   `mapstructure:"location"`
	URL            string   `mapstructure:"url"`
	Description    string   `mapstructure:"description"`
	Date           string   `mapstructure:"date"`
	Tags           []string `mapstructure:"tags"`
	SalaryMin      int      `mapstructure:"salary_min"`
	SalaryMax      int      `mapstructure:"salary_max"`
	SalaryCurrency string   `mapstructure:"salary_currency"`
}

func (r *RemoteOK) Search(ctx context.Context, term string, _ string) ([]model.Posting, error) {
	tag := hyphenate(term)
	if tag == "" {
		tag = "dev"
	}
	searchURL := fmt.Sprintf("%s?tag=%s", r.baseURL, tag)

	// Entries vary in shape (numeric vs string IDs, missing fields), so the
	// payload is decoded loosely first and mapped per entry.
	var raw []map[string]any
	if err := getJSON(ctx, r.client, searchURL, &raw); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	var jobs []model.Posting
	for _, item := range raw {
		// Metadata entries (the legal notice in slot zero) have no company.
		if _, ok := item["company"]; !ok {
			continue
		}

		var j remoteOKJob
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &j,
			WeaklyTypedInput: true,
		})
		if err != nil || dec.Decode(item) != nil {
			continue
		}
		if j.Position == "" || j.Company == "" {
			continue
		}

		salary := ""
		if j.SalaryMin > 0 {
			salary = fmt.Sprintf("%d-%d %s", j.SalaryMin, j.SalaryMax, j.SalaryCurrency)
		}

		jobs = append(jobs, model.Posting{
			ID:          j.ID,
			Title:       j.Position,
			Company:     j.Company,
			Location:    j.Location,
			URL:         j.URL,
			Description: j.Description,
			Date:        j.Date,
			Tags:        j.Tags,
			Source:      "RemoteOK",
			Salary:      salary,
		})
	}

	return jobs, nil
}
