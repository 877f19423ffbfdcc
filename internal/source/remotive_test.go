package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const remotivePayload = `{
  "jobs": [
    {
      "id": 111,
      "title": "Golang Engineer",
      "company_name": "Acme",
      "candidate_required_location": "LATAM",
      "url": "https://remotive.com/remote-jobs/software-dev/golang-engineer-111",
      "description": "Go services",
      "publication_date": "2026-08-20T00:00:00",
      "salary": "$70k-$90k",
      "tags": ["golang"]
    },
    {
      "id": 222,
      "title": "Backend Dev",
      "company_name": "Widgets",
      "candidate_required_location": "",
      "url": "https://remotive.com/remote-jobs/software-dev/backend-222",
      "description": "",
      "publication_date": "",
      "salary": "",
      "tags": []
    }
  ]
}`

func TestRemotiveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "golang" {
			t.Errorf("search = %q, want golang", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remotivePayload))
	}))
	defer srv.Close()

	s := NewRemotive(newTestClient(t))
	s.baseURL = srv.URL

	jobs, err := s.Search(context.Background(), "golang", "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}

	if jobs[0].ID != "111" {
		t.Errorf("ID = %q, want numeric id as string", jobs[0].ID)
	}
	if jobs[0].Location != "LATAM" {
		t.Errorf("Location = %q", jobs[0].Location)
	}
	if jobs[0].Salary != "$70k-$90k" {
		t.Errorf("Salary = %q", jobs[0].Salary)
	}

	// Unset location means remote on a remote-first board.
	if jobs[1].Location != "Remote" {
		t.Errorf("Location = %q, want Remote fallback", jobs[1].Location)
	}
}
