// Package pipeline runs one query end to end: search, parallel fetch, and
// rank-order reassembly of the pages that yielded content.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/gopages/internal/aggregate"
	"github.com/hyperifyio/gopages/internal/fetch"
	"github.com/hyperifyio/gopages/internal/metrics"
	"github.com/hyperifyio/gopages/internal/query"
	"github.com/hyperifyio/gopages/internal/search"
)

var (
	// ErrQueryRequired is returned for an empty or blank query. The search
	// provider is not called.
	ErrQueryRequired = errors.New("query is required")

	// ErrNoResults is returned when the search produced no candidate URLs.
	ErrNoResults = errors.New("no web pages found for the query")
)

const DefaultWorkers = 10

// PageFetcher fetches a single URL. Implementations report every failure
// through the returned Result.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) fetch.Result
}

// Options is the per-pipeline configuration. It is copied on construction
// and never mutated afterwards.
type Options struct {
	Domains    []string
	MaxResults int
	Workers    int
}

type Pipeline struct {
	provider search.Provider
	fetcher  PageFetcher
	opts     Options
}

// New builds a Pipeline. Zero values in opts fall back to the default domain
// allow-list, search.DefaultMaxResults and DefaultWorkers.
func New(provider search.Provider, fetcher PageFetcher, opts Options) *Pipeline {
	if len(opts.Domains) == 0 {
		opts.Domains = query.DefaultDomains
	}
	opts.Domains = append([]string(nil), opts.Domains...)
	if opts.MaxResults <= 0 {
		opts.MaxResults = search.DefaultMaxResults
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Pipeline{provider: provider, fetcher: fetcher, opts: opts}
}

// Run searches for userQuery within the allow-listed domains, fetches every
// candidate on a bounded worker pool and returns the pages with content in
// search rank order. An empty page list is not an error.
//
// Fetches are not cancelled when ctx is: each one is bounded by the
// fetcher's own timeout and the batch always runs to completion.
func (p *Pipeline) Run(ctx context.Context, userQuery string) ([]aggregate.Page, error) {
	if strings.TrimSpace(userQuery) == "" {
		return nil, ErrQueryRequired
	}

	logger := zerolog.Ctx(ctx)
	expr := query.Build(userQuery, p.opts.Domains)
	logger.Info().Str("query", userQuery).Str("full_query", expr).Msg("searching")

	candidates := p.search(ctx, expr)
	metrics.SearchResults.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return nil, ErrNoResults
	}

	results := p.fetchAll(context.WithoutCancel(ctx), candidates)
	pages := aggregate.Pages(candidates, results)
	logger.Info().Int("candidates", len(candidates)).Int("pages", len(pages)).Msg("pipeline finished")
	return pages, nil
}

// search returns candidate URLs in rank order. Provider errors are logged
// and treated as no results.
func (p *Pipeline) search(ctx context.Context, expr string) []string {
	results, err := p.provider.Search(ctx, expr, p.opts.MaxResults)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("provider", p.provider.Name()).Msg("search error")
		return nil
	}
	urls := search.URLs(results)
	if len(urls) > p.opts.MaxResults {
		urls = urls[:p.opts.MaxResults]
	}
	return urls
}

// fetchAll runs one fetch per candidate with at most Workers in flight and
// waits for all of them. Each task writes only its own slot.
func (p *Pipeline) fetchAll(ctx context.Context, candidates []string) []fetch.Result {
	logger := zerolog.Ctx(ctx)
	results := make([]fetch.Result, len(candidates))
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, u := range candidates {
		g.Go(func() error {
			res := p.fetcher.Fetch(ctx, u)
			results[i] = res
			observe(logger, res)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func observe(logger *zerolog.Logger, res fetch.Result) {
	outcome := metrics.OutcomeSuccess
	switch {
	case !res.Success:
		outcome = metrics.OutcomeFailed
	case res.Content == nil || *res.Content == "":
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordFetch(outcome, res.Elapsed)

	ev := logger.Debug().Str("url", res.URL).Dur("processing_time", res.Elapsed).Str("outcome", outcome)
	if res.Error != "" {
		ev = ev.Str("error", res.Error)
	}
	ev.Msg("fetch finished")
}
