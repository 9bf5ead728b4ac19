package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewProvider(t *testing.T) {
	client := newFetchHTTPClient(time.Second)
	for _, engine := range []string{EngineDuckDuckGo, EngineSearxNG, EngineSerper, EngineFile} {
		cfg := DefaultConfig()
		cfg.SearchEngine = engine
		p, err := NewProvider(cfg, client)
		if err != nil {
			t.Fatalf("%s: %v", engine, err)
		}
		if p.Name() != engine {
			t.Fatalf("Name()=%q, want %q", p.Name(), engine)
		}
	}
	cfg := DefaultConfig()
	cfg.SearchEngine = "nope"
	if _, err := NewProvider(cfg, client); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}

// End to end over the file provider and a local site: ranks are preserved,
// tiny pages are dropped and missing queries map to 400.
func TestApp_SearchEndToEnd(t *testing.T) {
	article := "<html><head><title>Good page</title></head><body><article><p>" +
		strings.Repeat("Useful sentence about goroutines. ", 20) + "</p></article></body></html>"
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/tiny":
			_, _ = w.Write([]byte("<p>hi</p>"))
		default:
			_, _ = w.Write([]byte(article))
		}
	}))
	defer site.Close()

	results := fmt.Sprintf(`[
		{"title":"first","url":"%[1]s/one"},
		{"title":"tiny","url":"%[1]s/tiny"},
		{"title":"second","url":"%[1]s/two"},
		{"title":"offsite","url":"https://elsewhere.example/x"}
	]`, site.URL)
	cfg := DefaultConfig()
	cfg.SearchEngine = EngineFile
	cfg.FileSearchPath = writeFile(t, "results.json", results)
	cfg.Domains = []string{"127.0.0.1"}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?query=goroutines", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var env struct {
		Status string `json:"status"`
		Pages  []struct {
			URL     string  `json:"url"`
			Title   *string `json:"title"`
			Content string  `json:"content"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != "success" || len(env.Pages) != 2 {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if env.Pages[0].URL != site.URL+"/one" || env.Pages[1].URL != site.URL+"/two" {
		t.Fatalf("rank order lost: %s", rec.Body.String())
	}
	if env.Pages[0].Title == nil || *env.Pages[0].Title != "Good page" {
		t.Fatalf("title=%v", env.Pages[0].Title)
	}
	if !strings.Contains(env.Pages[0].Content, "goroutines") {
		t.Fatalf("content=%q", env.Pages[0].Content)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?query=%20%20", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank query status=%d", rec.Code)
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
