package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// ChileTrabajos scrapes www.chiletrabajos.cl search results. The search
// form uses numbered query parameters; "2" carries the term.
type ChileTrabajos struct {
	client  *httpclient.Client
	baseURL string
}

func NewChileTrabajos(client *httpclient.Client) *ChileTrabajos {
	return &ChileTrabajos{
		client:  client,
		baseURL: "https://www.chiletrabajos.cl",
	}
}

func (c *ChileTrabajos) Name() string {
	return "ChileTrabajos"
}

func (c *ChileTrabajos) Search(ctx context.Context, term string, _ string) ([]model.Posting, error) {
	searchURL := fmt.Sprintf("%s/encuentra-un-empleo?2=%s&8=&13=",
		c.baseURL, url.QueryEscape(strings.TrimSpace(term)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("chiletrabajos: building request: %w", err)
	}
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chiletrabajos: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("chiletrabajos: status 403: %w", ErrBlocked)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chiletrabajos: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chiletrabajos: reading response: %w", err)
	}

	if !strings.Contains(strings.ToLower(string(raw)), "<body") {
		return nil, fmt.Errorf("chiletrabajos: response has no <body>: %w", ErrBlocked)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("chiletrabajos: parsing HTML: %w", err)
	}

	jobs := c.parseJobItems(doc)
	if len(jobs) == 0 {
		// Older layout kept results under div.job_list.
		jobs = c.parseJobList(doc)
	}

	return jobs, nil
}

func (c *ChileTrabajos) parseJobItems(doc *goquery.Document) []model.Posting {
	var jobs []model.Posting

	doc.Find(".job-item").Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find(".title a")
		title := strings.TrimSpace(titleEl.Text())
		href, _ := titleEl.Attr("href")
		link := absoluteURL(c.baseURL, href)

		if title == "" || link == "" {
			return
		}

		jobs = append(jobs, model.Posting{
			ID:          idFromURL(link),
			Title:       title,
			Company:     strings.TrimSpace(s.Find(".meta .company").Text()),
			Location:    strings.TrimSpace(s.Find(".meta .location").Text()),
			URL:         link,
			Description: strings.TrimSpace(s.Find(".description").Text()),
			Date:        strings.TrimSpace(s.Find(".meta .date").Text()),
			Tags:        []string{},
			Source:      "ChileTrabajos",
		})
	})

	return jobs
}

func (c *ChileTrabajos) parseJobList(doc *goquery.Document) []model.Posting {
	var jobs []model.Posting

	doc.Find("div.job_list div.item").Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find("h2.title a")
		title := strings.TrimSpace(titleEl.Text())
		href, _ := titleEl.Attr("href")
		link := absoluteURL(c.baseURL, href)

		if title == "" || link == "" {
			return
		}

		jobs = append(jobs, model.Posting{
			ID:          idFromURL(link),
			Title:       title,
			Company:     strings.TrimSpace(s.Find(".campo_empresa a").Text()),
			Location:    strings.TrimSpace(s.Find(".campo_ubicacion a").Text()),
			URL:         link,
			Tags:        []string{},
			Source:      "ChileTrabajos",
		})
	})

	return jobs
}
