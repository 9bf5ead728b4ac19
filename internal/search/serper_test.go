package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSerper_Search(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]any{
				{"title": "One", "link": "https://reddit.com/r/golang", "snippet": "s1", "position": 1},
				{"title": "Skip", "link": ""},
				{"title": "Two", "link": "https://medium.com/x", "snippet": "s2", "position": 2},
			},
		})
	}))
	defer srv.Close()

	s := NewSerper("secret", "gopages-test", time.Second)
	s.Endpoint = srv.URL
	got, err := s.Search(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotBody["q"] != "golang" || gotBody["num"] != float64(10) {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if len(got) != 2 || got[0].URL != "https://reddit.com/r/golang" || got[1].URL != "https://medium.com/x" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestSerper_RequiresKey(t *testing.T) {
	s := NewSerper("", "", 0)
	if _, err := s.Search(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestSerper_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSerper("k", "", time.Second)
	s.Endpoint = srv.URL
	if _, err := s.Search(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected status error")
	}
}
