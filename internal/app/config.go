package app

import (
	"time"

	"github.com/hyperifyio/gopages/internal/fetch"
	"github.com/hyperifyio/gopages/internal/pipeline"
	"github.com/hyperifyio/gopages/internal/query"
	"github.com/hyperifyio/gopages/internal/search"
)

// Search engine names accepted by Config.SearchEngine.
const (
	EngineDuckDuckGo = "duckduckgo"
	EngineSearxNG    = "searxng"
	EngineSerper     = "serper"
	EngineFile       = "file"
)

// Extractor names accepted by Config.Extractor.
const (
	ExtractorReadability = "readability"
	ExtractorHeuristic   = "heuristic"
)

// Config holds runtime configuration for the service. Env tags are read with
// the GOPAGES_ prefix.
type Config struct {
	Addr string `env:"ADDR"`

	// Search
	SearchEngine   string   `env:"SEARCH_ENGINE"`
	SearxURL       string   `env:"SEARX_URL"`
	SearxKey       string   `env:"SEARX_KEY"`
	SerperAPIKey   string   `env:"SERPER_API_KEY"`
	FileSearchPath string   `env:"SEARCH_FILE"`
	Domains        []string `env:"DOMAINS" envSeparator:","`
	MaxResults     int      `env:"MAX_RESULTS"`

	// Fetching
	Workers          int           `env:"WORKERS"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH"`
	DownloadFloor    int           `env:"DOWNLOAD_FLOOR"`
	ChunkSize        int           `env:"CHUNK_SIZE"`
	UserAgent        string        `env:"USER_AGENT"`
	Extractor        string        `env:"EXTRACTOR"`

	Verbose bool `env:"VERBOSE"`
}

// DefaultConfig returns the built-in defaults, the lowest precedence layer.
func DefaultConfig() Config {
	limits := fetch.DefaultLimits()
	return Config{
		Addr:             ":8080",
		SearchEngine:     EngineDuckDuckGo,
		Domains:          append([]string(nil), query.DefaultDomains...),
		MaxResults:       search.DefaultMaxResults,
		Workers:          pipeline.DefaultWorkers,
		FetchTimeout:     fetch.DefaultTimeout,
		MaxContentLength: limits.MaxContentLength,
		DownloadFloor:    limits.DownloadFloor,
		ChunkSize:        limits.ChunkSize,
		UserAgent:        fetch.DefaultUserAgent,
		Extractor:        ExtractorReadability,
	}
}
