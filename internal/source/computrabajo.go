package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// CompuTrabajo scrapes cl.computrabajo.com search pages. The site encodes
// the query in the URL path: /trabajo-de-<term>[-en-<location>].
type CompuTrabajo struct {
	client  *httpclient.Client
	baseURL string
}

func NewCompuTrabajo(client *httpclient.Client) *CompuTrabajo {
	return &CompuTrabajo{
		client:  client,
		baseURL: "https://cl.computrabajo.com",
	}
}

func (c *CompuTrabajo) Name() string {
	return "CompuTrabajo"
}

func (c *CompuTrabajo) Search(ctx context.Context, term string, location string) ([]model.Posting, error) {
	q := hyphenate(term)
	if q == "" {
		return nil, fmt.Errorf("computrabajo: empty search term")
	}

	searchURL := c.baseURL + "/trabajo-de-" + q
	if loc := hyphenate(location); loc != "" && loc != "remoto" {
		searchURL += "-en-" + loc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("computrabajo: building request: %w", err)
	}
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("computrabajo: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("computrabajo: status 403: %w", ErrBlocked)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("computrabajo: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("computrabajo: reading response: %w", err)
	}

	// A response without a body tag is a WAF interstitial, not a result page.
	if !strings.Contains(strings.ToLower(string(raw)), "<body") {
		return nil, fmt.Errorf("computrabajo: response has no <body>: %w", ErrBlocked)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("computrabajo: parsing HTML: %w", err)
	}

	jobs := c.parseOffers(doc)
	if len(jobs) == 0 {
		// Markup drift fallback: any article with a linked heading.
		jobs = c.parseAnyArticle(doc)
	}

	return jobs, nil
}

// parseOffers applies the primary selector strategy for the current markup.
func (c *CompuTrabajo) parseOffers(doc *goquery.Document) []model.Posting {
	var jobs []model.Posting

	doc.Find("article.box_offer").Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find("h2.fs18 a")
		title := strings.TrimSpace(titleEl.Text())
		href, _ := titleEl.Attr("href")
		link := absoluteURL(c.baseURL, href)

		company := strings.TrimSpace(s.Find(".fs16.fc_base.mt5 a").Text())
		if company == "" {
			company = strings.TrimSpace(s.Find(".fs16.fc_base.mt5").First().Text())
		}

		loc := strings.TrimSpace(s.Find(".fs16.fc_base.mt5 span.mr10").Text())
		if loc == "" {
			loc = strings.TrimSpace(s.Find("p.fs13.fc_base span.mr10").Text())
		}

		desc := strings.TrimSpace(s.Find("p.fs13.fc_aux").Text())
		if desc == "" {
			desc = strings.TrimSpace(s.Find(".w100.fs13.fc_aux").Text())
		}

		date := strings.TrimSpace(s.Find(".fs13.fc_aux.mt15 span").First().Text())

		// Malformed nodes are skipped, never fatal.
		if title == "" || link == "" {
			return
		}

		jobs = append(jobs, model.Posting{
			ID:          idFromURL(link),
			Title:       title,
			Company:     company,
			Location:    loc,
			URL:         link,
			Description: desc,
			Date:        date,
			Tags:        []string{},
			Source:      "CompuTrabajo",
		})
	})

	return jobs
}

func (c *CompuTrabajo) parseAnyArticle(doc *goquery.Document) []model.Posting {
	var jobs []model.Posting

	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		titleEl := s.Find("h2 a").First()
		title := strings.TrimSpace(titleEl.Text())
		href, _ := titleEl.Attr("href")
		link := absoluteURL(c.baseURL, href)

		if title == "" || link == "" {
			return
		}

		jobs = append(jobs, model.Posting{
			ID:          idFromURL(link),
			Title:       title,
			Company:     strings.TrimSpace(s.Find("a[href*='empresa']").First().Text()),
			Location:    strings.TrimSpace(s.Find("span.mr10").First().Text()),
			URL:         link,
			Description: strings.TrimSpace(s.Find("p").First().Text()),
			Tags:        []string{},
			Source:      "CompuTrabajo",
		})
	})

	return jobs
}
