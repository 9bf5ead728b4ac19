package search

import (
	"context"
	"strings"
)

// DefaultMaxResults is how many candidates one query asks a provider for.
const DefaultMaxResults = 10

// Result represents a single search hit from any provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"-"` // provider name for observability
}

// Provider turns a query into ranked results. The slice order is the rank.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// URLs returns the result URLs in rank order, skipping blanks.
func URLs(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		if u := strings.TrimSpace(r.URL); u != "" {
			out = append(out, u)
		}
	}
	return out
}
