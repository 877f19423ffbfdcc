package match

import (
	"reflect"
	"testing"

	"github.com/rloyola/panoptes/internal/model"
)

func TestScoreKeywordsAndSkills(t *testing.T) {
	profile := model.Profile{
		Title:          "Full Stack Developer",
		SearchKeywords: []string{"react", "node"},
		KeySkills:      []string{"javascript", "aws"},
	}
	posting := model.Posting{
		Title:       "Senior Backend Engineer",
		Description: "We use Node and JavaScript with React on the frontend.",
	}

	score, matched := Default().Score(posting, profile)

	// react, node and javascript match; aws does not; no title bonus.
	if score != 30 {
		t.Errorf("score = %d, want 30", score)
	}
	want := []string{"react", "node", "javascript"}
	if !reflect.DeepEqual(matched, want) {
		t.Errorf("matched = %v, want %v", matched, want)
	}
}

func TestScoreTitleBonus(t *testing.T) {
	profile := model.Profile{
		Title:          "Full Stack Developer",
		SearchKeywords: []string{"react", "node", "javascript"},
	}
	posting := model.Posting{
		Title:       "Full Stack Developer (Remote)",
		Description: "react node javascript",
	}

	score, _ := Default().Score(posting, profile)
	if score != 60 {
		t.Errorf("score = %d, want 60 (3 keywords + title bonus)", score)
	}
}

func TestScoreDeduplicatesTerms(t *testing.T) {
	profile := model.Profile{
		SearchKeywords: []string{"Go", "go"},
		KeySkills:      []string{"GO"},
	}
	posting := model.Posting{Description: "go developer wanted"}

	score, matched := Default().Score(posting, profile)
	if score != 10 {
		t.Errorf("score = %d, want 10 (term counted once)", score)
	}
	if len(matched) != 1 || matched[0] != "Go" {
		t.Errorf("matched = %v, want [Go] keeping the first casing", matched)
	}
}

func TestScoreClampsAtMax(t *testing.T) {
	keywords := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	profile := model.Profile{
		Title:          "abc",
		SearchKeywords: keywords,
	}
	posting := model.Posting{
		Title:       "abcdefghijkl",
		Description: "abcdefghijkl",
	}

	score, _ := Default().Score(posting, profile)
	if score != 100 {
		t.Errorf("score = %d, want clamp at 100", score)
	}
}

func TestScoreNoMatches(t *testing.T) {
	profile := model.Profile{
		Title:          "Data Engineer",
		SearchKeywords: []string{"spark", "airflow"},
	}
	posting := model.Posting{
		Title:       "Receptionist",
		Description: "front desk duties",
	}

	score, matched := Default().Score(posting, profile)
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty", matched)
	}
}

func TestScoreSearchesTags(t *testing.T) {
	profile := model.Profile{SearchKeywords: []string{"kubernetes"}}
	posting := model.Posting{
		Title: "Platform Engineer",
		Tags:  []string{"Kubernetes", "Terraform"},
	}

	score, _ := Default().Score(posting, profile)
	if score != 10 {
		t.Errorf("score = %d, want 10 (keyword found in tags)", score)
	}
}

func TestScoreCustomWeights(t *testing.T) {
	s := Scorer{KeywordWeight: 5, TitleBonus: 50, MaxScore: 100}
	profile := model.Profile{
		Title:          "DevOps",
		SearchKeywords: []string{"docker"},
	}
	posting := model.Posting{
		Title:       "DevOps Engineer",
		Description: "docker experience required",
	}

	score, _ := s.Score(posting, profile)
	if score != 55 {
		t.Errorf("score = %d, want 55", score)
	}
}
