package search

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

const fixture = `[
  {"title": "SO", "url": "https://stackoverflow.com/q/1", "snippet": "a"},
  {"title": "Other", "url": "https://example.com/x", "snippet": "b"},
  {"title": "Wiki", "url": "https://en.wikipedia.org/wiki/Go", "snippet": "c"},
  {"title": "Blank", "url": "", "snippet": "d"}
]`

func TestFileProvider_HonoursSiteFilters(t *testing.T) {
	p := &FileProvider{Path: writeFixture(t, fixture)}
	got, err := p.Search(context.Background(), "go (site:stackoverflow.com OR site:wikipedia.org)", 10)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	want := []string{"https://stackoverflow.com/q/1", "https://en.wikipedia.org/wiki/Go"}
	if !reflect.DeepEqual(URLs(got), want) {
		t.Fatalf("unexpected urls: %v", URLs(got))
	}
}

func TestFileProvider_NoFiltersReturnsAllInOrder(t *testing.T) {
	p := &FileProvider{Path: writeFixture(t, fixture)}
	got, err := p.Search(context.Background(), "anything", 2)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "SO" || got[1].Title != "Other" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if got[0].Source != "file" {
		t.Fatalf("expected source to be set")
	}
}

func TestFileProvider_MissingPath(t *testing.T) {
	p := &FileProvider{}
	if _, err := p.Search(context.Background(), "q", 1); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestURLs_SkipsBlank(t *testing.T) {
	got := URLs([]Result{{URL: "a"}, {URL: "  "}, {URL: "b"}})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected urls: %v", got)
	}
}
