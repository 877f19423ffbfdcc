// Package source contains one adapter per job board. API-backed sources
// decode JSON payloads; the Chilean boards are scraped from HTML. Every
// adapter maps its native shape into model.Posting at the boundary.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/model"
)

// ErrBlocked marks an anti-bot block: HTTP 403 or a response without an
// HTML body. Callers log it distinctly from ordinary network failures.
var ErrBlocked = errors.New("blocked by anti-bot protection")

// Source defines the contract every job source must satisfy.
type Source interface {
	// Name returns a human-readable identifier for this source.
	Name() string

	// Search queries the source and returns normalized postings.
	Search(ctx context.Context, term string, location string) ([]model.Posting, error)
}

// Config carries per-source credentials.
type Config struct {
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
}

// Registry returns all configured sources using the shared HTTP client.
// Search results are merged in this order, so it also fixes the tie-break
// order of equally-scored postings.
func Registry(client *httpclient.Client, cfg Config, logger *zap.Logger) []Source {
	sources := []Source{
		NewRemoteOK(client),
		NewArbeitNow(client),
		NewRemotive(client),
		NewWeWorkRemotely(client),
		NewCompuTrabajo(client),
		NewChileTrabajos(client),
	}

	if cfg.AdzunaAppID != "" && cfg.AdzunaAppKey != "" {
		sources = append(sources, NewAdzuna(client, cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry))
	} else if logger != nil {
		logger.Info("adzuna credentials not set, source disabled")
	}

	return sources
}

// hyphenate normalizes a multi-word term for sources that embed it in the
// URL path: lower-cased, trimmed, words joined with hyphens.
func hyphenate(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(term))), "-")
}

// idFromURL derives a posting ID from the last path segment of its URL.
func idFromURL(raw string) string {
	raw = strings.TrimRight(raw, "/")
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		return raw[idx+1:]
	}
	return raw
}

// absoluteURL resolves scraped hrefs against the site base.
func absoluteURL(base, link string) string {
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return base + link
}

func getJSON(ctx context.Context, client *httpclient.Client, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
