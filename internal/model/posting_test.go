package model

import "testing"

func TestKey(t *testing.T) {
	withURL := Posting{Title: "Dev", Company: "Acme", URL: "https://example.com/Jobs/123"}
	if got := withURL.Key(); got != "https://example.com/jobs/123" {
		t.Errorf("Key() = %q, want lowercased URL", got)
	}

	withoutURL := Posting{Title: "Dev", Company: "Acme"}
	if got := withoutURL.Key(); got != "dev|acme" {
		t.Errorf("Key() = %q, want title|company fallback", got)
	}
}

func TestNormalize(t *testing.T) {
	p := Posting{Title: "  Backend Dev  ", Company: "", Location: "  "}
	p.Normalize()

	if p.Title != "Backend Dev" {
		t.Errorf("Title = %q, want trimmed", p.Title)
	}
	if p.Company != ConfidentialCompany {
		t.Errorf("Company = %q, want %q", p.Company, ConfidentialCompany)
	}
	if p.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", p.Location, DefaultLocation)
	}
}

func TestPrimaryTerm(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"first keyword wins", Profile{Title: "Dev", SearchKeywords: []string{"golang", "backend"}}, "golang"},
		{"blank keywords skipped", Profile{Title: "Dev", SearchKeywords: []string{"  ", "react"}}, "react"},
		{"title fallback", Profile{Title: "Data Engineer"}, "Data Engineer"},
		{"empty profile", Profile{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.PrimaryTerm(); got != tt.want {
				t.Errorf("PrimaryTerm() = %q, want %q", got, tt.want)
			}
		})
	}
}
