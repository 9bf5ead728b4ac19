package aggregate

import "github.com/hyperifyio/gopages/internal/fetch"

// Page is a successfully extracted page as returned to callers.
type Page struct {
	URL     string  `json:"url"`
	Title   *string `json:"title"`
	Content string  `json:"content"`
}

// Pages folds fetch results back into the rank order of candidates.
// Results are indexed by URL, so a duplicate URL keeps the last result seen,
// and each URL is emitted once at its first rank. Candidates whose result is
// missing, failed or empty are dropped.
func Pages(candidates []string, results []fetch.Result) []Page {
	byURL := make(map[string]fetch.Result, len(results))
	for _, r := range results {
		byURL[r.URL] = r
	}
	out := make([]Page, 0, len(candidates))
	emitted := make(map[string]struct{}, len(candidates))
	for _, u := range candidates {
		if _, dup := emitted[u]; dup {
			continue
		}
		r, ok := byURL[u]
		if !ok || r.Content == nil || *r.Content == "" {
			continue
		}
		emitted[u] = struct{}{}
		out = append(out, Page{URL: r.URL, Title: r.Title, Content: *r.Content})
	}
	return out
}
