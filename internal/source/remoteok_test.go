package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// The first array element is the legal notice RemoteOK prepends to every
// response. IDs arrive as numbers, which the loose decode must tolerate.
const remoteOKPayload = `[
  {"legal": "API terms of service..."},
  {
    "id": 12345,
    "position": "Golang Developer",
    "company": "Acme",
    "location": "Worldwide",
    "url": "https://remoteok.com/remote-jobs/12345",
    "description": "Build services in Go",
    "date": "2025-08-01T00:00:00+00:00",
    "tags": ["golang", "backend"],
    "salary_min": 60000,
    "salary_max": 90000,
    "salary_currency": "USD"
  },
  {
    "id": "67890",
    "position": "",
    "company": "NoTitle Inc"
  }
]`

func TestRemoteOKSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tag"); got != "golang" {
			t.Errorf("tag = %q, want %q", got, "golang")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remoteOKPayload))
	}))
	defer srv.Close()

	s := NewRemoteOK(newTestClient(t))
	s.baseURL = srv.URL

	jobs, err := s.Search(context.Background(), "Golang", "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (metadata and titleless entries dropped)", len(jobs))
	}

	j := jobs[0]
	if j.ID != "12345" {
		t.Errorf("ID = %q, want numeric id coerced to string", j.ID)
	}
	if j.Title != "Golang Developer" || j.Company != "Acme" {
		t.Errorf("job = %q at %q", j.Title, j.Company)
	}
	if j.Salary != "60000-90000 USD" {
		t.Errorf("Salary = %q", j.Salary)
	}
	if j.Source != "RemoteOK" {
		t.Errorf("Source = %q", j.Source)
	}
}

func TestRemoteOKServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemoteOK(newTestClient(t))
	s.baseURL = srv.URL

	if _, err := s.Search(context.Background(), "golang", ""); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}
