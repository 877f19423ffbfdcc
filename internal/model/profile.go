package model

import "strings"

// Profile is the professional profile a search runs against. It is produced
// upstream (CV parsing) and treated as read-only here.
type Profile struct {
	Title          string   `json:"title"`
	SearchKeywords []string `json:"searchKeywords"`
	KeySkills      []string `json:"keySkills"`
}

// PrimaryTerm returns the term used to query the sources: the first search
// keyword when present, the profile title otherwise.
func (p Profile) PrimaryTerm() string {
	for _, kw := range p.SearchKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			return kw
		}
	}
	return strings.TrimSpace(p.Title)
}

// IsEmpty reports whether the profile has nothing to search with.
func (p Profile) IsEmpty() bool {
	return p.PrimaryTerm() == ""
}

// Preferences narrows a search geographically.
type Preferences struct {
	Location   string `json:"location"`
	RemoteOnly bool   `json:"remoteOnly"`
}
