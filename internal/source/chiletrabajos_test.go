package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chiletrabajosHTML = `<!DOCTYPE html>
<html><body>
<div class="job-item">
  <h3 class="title"><a href="/empleo/123456-desarrollador-golang">Desarrollador Golang</a></h3>
  <div class="meta">
    <span class="company">Acme SpA</span>
    <span class="location">Santiago</span>
    <span class="date">26-08-2026</span>
  </div>
  <p class="description">Desarrollo de microservicios en Go.</p>
</div>
<div class="job-item">
  <h3 class="title"></h3>
</div>
</body></html>`

const chiletrabajosLegacyHTML = `<!DOCTYPE html>
<html><body>
<div class="job_list">
  <div class="item">
    <h2 class="title"><a href="/empleo/789-analista-sistemas">Analista de Sistemas</a></h2>
    <div class="campo_empresa"><a href="/empresa/tech">Tech Ltda</a></div>
    <div class="campo_ubicacion"><a href="/region/valparaiso">Valparaíso</a></div>
  </div>
</div>
</body></html>`

func TestChileTrabajosSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/encuentra-un-empleo" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("2"); got != "golang" {
			t.Errorf("term param = %q, want %q", got, "golang")
		}
		w.Write([]byte(chiletrabajosHTML))
	}))
	defer srv.Close()

	s := NewChileTrabajos(newTestClient(t))
	s.baseURL = srv.URL

	jobs, err := s.Search(context.Background(), "golang", "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (item without title skipped)", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Desarrollador Golang" {
		t.Errorf("Title = %q", j.Title)
	}
	if j.Company != "Acme SpA" {
		t.Errorf("Company = %q", j.Company)
	}
	if j.Location != "Santiago" {
		t.Errorf("Location = %q", j.Location)
	}
	if j.Date != "26-08-2026" {
		t.Errorf("Date = %q", j.Date)
	}
	if j.URL != srv.URL+"/empleo/123456-desarrollador-golang" {
		t.Errorf("URL = %q", j.URL)
	}
	if j.Source != "ChileTrabajos" {
		t.Errorf("Source = %q", j.Source)
	}
}

func TestChileTrabajosLegacyLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(chiletrabajosLegacyHTML))
	}))
	defer srv.Close()

	s := NewChileTrabajos(newTestClient(t))
	s.baseURL = srv.URL

	jobs, err := s.Search(context.Background(), "analista", "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 via legacy selectors", len(jobs))
	}
	if jobs[0].Title != "Analista de Sistemas" {
		t.Errorf("Title = %q", jobs[0].Title)
	}
	if jobs[0].Company != "Tech Ltda" {
		t.Errorf("Company = %q", jobs[0].Company)
	}
}

func TestChileTrabajosBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewChileTrabajos(newTestClient(t))
	s.baseURL = srv.URL

	_, err := s.Search(context.Background(), "golang", "")
	if !errors.Is(err, ErrBlocked) {
		t.Errorf("err = %v, want ErrBlocked", err)
	}
}
