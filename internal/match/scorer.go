// Package match computes how well a posting fits a profile.
package match

import (
	"strings"

	"github.com/rloyola/panoptes/internal/model"
)

// Scorer holds the scoring weights. The defaults are tuned empirically;
// they can be overridden through configuration.
type Scorer struct {
	KeywordWeight int // added once per distinct matching term
	TitleBonus    int // added when the posting title contains the profile title
	MaxScore      int // upper clamp
}

// Default returns a Scorer with the standard weights.
func Default() Scorer {
	return Scorer{
		KeywordWeight: 10,
		TitleBonus:    30,
		MaxScore:      100,
	}
}

// Score returns the match score for the posting and the profile terms that
// matched, in profile order. Pure function: no I/O, no mutation.
func (s Scorer) Score(p model.Posting, profile model.Profile) (int, []string) {
	text := p.SearchText()

	score := 0
	matched := make([]string, 0)
	seen := make(map[string]bool)

	// Keywords first, then skills, deduplicated case-insensitively while
	// preserving the original casing for the output.
	for _, term := range append(append([]string{}, profile.SearchKeywords...), profile.KeySkills...) {
		lower := strings.ToLower(strings.TrimSpace(term))
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true

		if strings.Contains(text, lower) {
			score += s.KeywordWeight
			matched = append(matched, term)
		}
	}

	title := strings.ToLower(strings.TrimSpace(profile.Title))
	if title != "" && strings.Contains(strings.ToLower(p.Title), title) {
		score += s.TitleBonus
	}

	if score > s.MaxScore {
		score = s.MaxScore
	}
	if score < 0 {
		score = 0
	}

	return score, matched
}
