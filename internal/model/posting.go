package model

import "strings"

// Defaults used when a source omits a field. Postings always reach the
// scorer and the geo filter fully populated.
const (
	ConfidentialCompany = "Empresa Confidencial"
	DefaultLocation     = "Chile"
)

// Posting is the canonical shape every source adapter maps its native
// payload into. Nothing source-specific leaks past this struct.
type Posting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`
	Salary      string   `json:"salary,omitempty"`
}

// ScoredPosting is a Posting annotated with its match against a profile.
type ScoredPosting struct {
	Posting
	MatchScore      int      `json:"matchScore"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// SearchText returns the fields the scorer inspects, concatenated in lowercase.
func (p Posting) SearchText() string {
	return strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
}

// Key returns a deduplication key for this posting.
// Uses URL when available, otherwise falls back to title+company.
func (p Posting) Key() string {
	if p.URL != "" {
		return strings.ToLower(p.URL)
	}
	return strings.ToLower(p.Title + "|" + p.Company)
}

// Normalize trims text fields and fills the defaults for missing company
// and location so downstream code never sees empty values.
func (p *Posting) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Company = strings.TrimSpace(p.Company)
	p.Location = strings.TrimSpace(p.Location)
	if p.Company == "" {
		p.Company = ConfidentialCompany
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
}
