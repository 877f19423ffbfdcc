// Package search orchestrates a job search: fan out to every source,
// tolerate individual failures, then filter, score and rank the merged
// results against the profile.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rloyola/panoptes/internal/geo"
	"github.com/rloyola/panoptes/internal/match"
	"github.com/rloyola/panoptes/internal/model"
	"github.com/rloyola/panoptes/internal/source"
)

// Cache is the subset of the redis cache the service needs. Nil disables
// caching.
type Cache interface {
	Get(ctx context.Context, src, term, location string) ([]model.Posting, bool)
	Set(ctx context.Context, src, term, location string, postings []model.Posting) error
}

// Options configures a Service. Zero values get sensible defaults.
type Options struct {
	Scorer          match.Scorer
	Cache           Cache
	Logger          *zap.Logger
	Timeout         time.Duration // overall search budget; should exceed the per-source timeout
	DefaultLocation string        // used when the request carries no location
}

// Service aggregates postings from all configured sources.
type Service struct {
	sources         []source.Source
	scorer          match.Scorer
	cache           Cache
	logger          *zap.Logger
	timeout         time.Duration
	defaultLocation string
}

// New builds a Service over the given sources.
func New(sources []source.Source, opts Options) *Service {
	if opts.Scorer.KeywordWeight == 0 && opts.Scorer.TitleBonus == 0 {
		opts.Scorer = match.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = model.DefaultLocation
	}
	return &Service{
		sources:         sources,
		scorer:          opts.Scorer,
		cache:           opts.Cache,
		logger:          opts.Logger,
		timeout:         opts.Timeout,
		defaultLocation: opts.DefaultLocation,
	}
}

// Search runs the full pipeline for one profile. A source failing is never
// an error here; it just contributes nothing. The returned list is sorted
// by descending match score, ties keeping source-registry order.
func (s *Service) Search(ctx context.Context, profile model.Profile, prefs model.Preferences) ([]model.ScoredPosting, error) {
	term := profile.PrimaryTerm()
	if term == "" {
		return nil, fmt.Errorf("profile has no search keywords or title")
	}
	if prefs.Location == "" {
		prefs.Location = s.defaultLocation
	}

	s.logger.Info("searching jobs",
		zap.String("term", term),
		zap.String("location", prefs.Location),
		zap.Bool("remote_only", prefs.RemoteOnly),
		zap.Int("sources", len(s.sources)),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// One result slot per source keeps the merged order deterministic
	// regardless of which goroutine finishes first.
	buckets := make([][]model.Posting, len(s.sources))
	var wg sync.WaitGroup

	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			buckets[i] = s.fetch(ctx, src, term, prefs.Location)
		}(i, src)
	}
	wg.Wait()

	var merged []model.Posting
	for _, b := range buckets {
		merged = append(merged, b...)
	}

	seen := make(map[string]bool)
	scored := make([]model.ScoredPosting, 0, len(merged))
	for _, p := range merged {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		if !geo.Valid(p, prefs.Location, prefs.RemoteOnly) {
			continue
		}

		score, matched := s.scorer.Score(p, profile)
		scored = append(scored, model.ScoredPosting{
			Posting:         p,
			MatchScore:      score,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	s.logger.Info("search finished",
		zap.Int("raw", len(merged)),
		zap.Int("returned", len(scored)),
	)

	return scored, nil
}

// fetch runs one source, absorbing its failures. Results come back
// normalized so nothing downstream ever sees missing fields.
func (s *Service) fetch(ctx context.Context, src source.Source, term, location string) []model.Posting {
	if s.cache != nil {
		if postings, ok := s.cache.Get(ctx, src.Name(), term, location); ok {
			s.logger.Debug("cache hit", zap.String("source", src.Name()), zap.Int("count", len(postings)))
			return postings
		}
	}

	postings, err := src.Search(ctx, term, location)
	if err != nil {
		if errors.Is(err, source.ErrBlocked) {
			s.logger.Warn("source blocked by anti-bot protection",
				zap.String("source", src.Name()), zap.Error(err))
		} else {
			s.logger.Warn("source failed",
				zap.String("source", src.Name()), zap.Error(err))
		}
		return nil
	}

	for i := range postings {
		postings[i].Normalize()
	}

	s.logger.Info("source done", zap.String("source", src.Name()), zap.Int("count", len(postings)))

	if s.cache != nil && len(postings) > 0 {
		if err := s.cache.Set(ctx, src.Name(), term, location, postings); err != nil {
			s.logger.Debug("cache write failed", zap.String("source", src.Name()), zap.Error(err))
		}
	}

	return postings
}
