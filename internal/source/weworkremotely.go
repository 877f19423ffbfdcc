package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// WeWorkRemotely reads the remote-programming RSS category feed. The feed
// is not searchable, so items are filtered locally against the term.
type WeWorkRemotely struct {
	client  *httpclient.Client
	feedURL string
}

func NewWeWorkRemotely(client *httpclient.Client) *WeWorkRemotely {
	return &WeWorkRemotely{
		client:  client,
		feedURL: "https://weworkremotely.com/categories/remote-programming-jobs.rss",
	}
}

func (w *WeWorkRemotely) Name() string {
	return "WeWorkRemotely"
}

type wwrFeed struct {
	Channel struct {
		Items []wwrItem `xml:"item"`
	} `xml:"channel"`
}

type wwrItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

func (w *WeWorkRemotely) Search(ctx context.Context, term string, _ string) ([]model.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely: building request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weworkremotely: unexpected status %d", resp.StatusCode)
	}

	var feed wwrFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("weworkremotely: parsing feed: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(term))

	var jobs []model.Posting
	for _, item := range feed.Channel.Items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}

		id := item.GUID
		if id == "" {
			id = item.Link
		}

		jobs = append(jobs, model.Posting{
			ID:          id,
			Title:       item.Title,
			Company:     "WeWorkRemotely",
			Location:    "Remote",
			URL:         item.Link,
			Description: item.Description,
			Date:        item.PubDate,
			Tags:        []string{},
			Source:      "WeWorkRemotely",
		})
	}

	return jobs, nil
}
