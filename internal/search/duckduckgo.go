package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const duckDuckGoHTMLURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the no-JavaScript results page. It needs no API key and
// is the default provider.
type DuckDuckGo struct {
	BaseURL    string // defaults to the public html endpoint
	HTTPClient *http.Client
	UserAgent  string
	Region     string // optional kl parameter, e.g. "us-en"
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	endpoint := d.BaseURL
	if endpoint == "" {
		endpoint = duckDuckGoHTMLURL
	}
	form := url.Values{}
	form.Set("q", query)
	if d.Region != "" {
		form.Set("kl", d.Region)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	hc := d.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("duckduckgo status: %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo results: %w", err)
	}

	out := make([]Result, 0, limit)
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := unwrapDuckDuckGoLink(href)
		if target == "" {
			return true
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			Source:  d.Name(),
		})
		return len(out) < limit
	})
	return out, nil
}

// unwrapDuckDuckGoLink resolves //duckduckgo.com/l/?uddg=<target> redirect
// links to their target. Direct http(s) links are returned as is.
func unwrapDuckDuckGoLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		target := u.Query().Get("uddg")
		if target == "" {
			return ""
		}
		return unwrapDuckDuckGoLink(target)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
