package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// FileProvider serves results from a local JSON file for offline runs and
// tests. The file is an array of {"title", "url", "snippet"} objects in rank
// order. site: filters in the query are honoured; free text is ignored.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var raw []Result
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	sites := siteFilters(query)
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" {
			continue
		}
		if len(sites) > 0 && !hostMatches(r.URL, sites) {
			continue
		}
		r.Source = f.Name()
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// siteFilters returns the domains named by site: operators in query.
func siteFilters(query string) []string {
	var sites []string
	for _, tok := range strings.Fields(query) {
		tok = strings.Trim(tok, "()")
		if d, ok := strings.CutPrefix(strings.ToLower(tok), "site:"); ok && d != "" {
			sites = append(sites, d)
		}
	}
	return sites
}

func hostMatches(rawURL string, domains []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
