package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const serperSearchEndpoint = "https://google.serper.dev/search"

// Serper queries the serper.dev Google search API.
type Serper struct {
	APIKey   string
	Endpoint string // defaults to the public search endpoint
	client   *resty.Client
}

// NewSerper returns a Serper provider with its own resty client.
func NewSerper(apiKey, userAgent string, timeout time.Duration) *Serper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &Serper{APIKey: apiKey, client: client}
}

func (s *Serper) Name() string { return "serper" }

func (s *Serper) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, errors.New("missing serper api key")
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = serperSearchEndpoint
	}
	client := s.client
	if client == nil {
		client = resty.New().SetTimeout(10 * time.Second)
	}

	var sr serperResponse
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"q": query, "num": limit}).
		SetResult(&sr).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("serper request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("serper status: %d", resp.StatusCode())
	}

	out := make([]Result, 0, len(sr.Organic))
	for _, r := range sr.Organic {
		if r.Link == "" {
			continue
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.Link),
			Snippet: strings.TrimSpace(r.Snippet),
			Source:  s.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type serperResponse struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}
