// Package app wires configuration into a running service: search provider,
// fetcher, pipeline and HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gopages/internal/api"
	"github.com/hyperifyio/gopages/internal/extract"
	"github.com/hyperifyio/gopages/internal/fetch"
	"github.com/hyperifyio/gopages/internal/pipeline"
	"github.com/hyperifyio/gopages/internal/search"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg      Config
	pipeline *pipeline.Pipeline
	server   *http.Server
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	client := newFetchHTTPClient(cfg.FetchTimeout)

	provider, err := NewProvider(cfg, client)
	if err != nil {
		return nil, err
	}
	fetcher := &fetch.Fetcher{
		HTTPClient:      client,
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.FetchTimeout,
		RedirectMaxHops: 5,
		Limits: fetch.Limits{
			MaxContentLength: cfg.MaxContentLength,
			DownloadFloor:    cfg.DownloadFloor,
			ChunkSize:        cfg.ChunkSize,
		},
		Extractor: newExtractor(cfg.Extractor),
	}
	p := pipeline.New(provider, fetcher, pipeline.Options{
		Domains:    cfg.Domains,
		MaxResults: cfg.MaxResults,
		Workers:    cfg.Workers,
	})

	a := &App{cfg: cfg, pipeline: p}
	a.server = api.NewServer(cfg.Addr, api.NewRouter(p), cfg.FetchTimeout)
	log.Info().
		Str("engine", provider.Name()).
		Str("extractor", cfg.Extractor).
		Strs("domains", cfg.Domains).
		Msg("service configured")
	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.cfg.Addr).Msg("listening")
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewProvider builds the configured search backend.
func NewProvider(cfg Config, client *http.Client) (search.Provider, error) {
	switch cfg.SearchEngine {
	case EngineDuckDuckGo:
		return &search.DuckDuckGo{HTTPClient: client, UserAgent: cfg.UserAgent}, nil
	case EngineSearxNG:
		return &search.SearxNG{BaseURL: cfg.SearxURL, APIKey: cfg.SearxKey, HTTPClient: client, UserAgent: cfg.UserAgent}, nil
	case EngineSerper:
		return search.NewSerper(cfg.SerperAPIKey, cfg.UserAgent, 2*cfg.FetchTimeout), nil
	case EngineFile:
		return &search.FileProvider{Path: cfg.FileSearchPath}, nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", cfg.SearchEngine)
	}
}

func newExtractor(name string) extract.Extractor {
	if name == ExtractorHeuristic {
		return extract.Heuristic{}
	}
	return extract.Default()
}
