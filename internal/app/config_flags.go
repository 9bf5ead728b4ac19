package app

import (
	"flag"
	"fmt"
	"strings"
)

// Load resolves the configuration from args and the environment. Precedence,
// highest first: flags, GOPAGES_* env, config file, dotenv files, defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("gopages", flag.ContinueOnError)
	var (
		configPath string
		envFiles   string
		domains    string
	)
	fl := DefaultConfig()
	fs.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&envFiles, "env-file", ".env", "Comma-separated dotenv files to load")
	fs.StringVar(&fl.Addr, "addr", fl.Addr, "HTTP listen address")
	fs.StringVar(&fl.SearchEngine, "search.engine", fl.SearchEngine, "Search backend: duckduckgo, searxng, serper or file")
	fs.StringVar(&fl.SearxURL, "searx.url", "", "SearxNG base URL")
	fs.StringVar(&fl.SearxKey, "searx.key", "", "SearxNG API key (optional)")
	fs.StringVar(&fl.SerperAPIKey, "serper.key", "", "Serper API key")
	fs.StringVar(&fl.FileSearchPath, "search.file", "", "Path to JSON file for offline file-based search provider")
	fs.StringVar(&domains, "domains", strings.Join(fl.Domains, ","), "Comma-separated allow-listed domains")
	fs.IntVar(&fl.MaxResults, "max.results", fl.MaxResults, "Maximum candidate URLs per query")
	fs.IntVar(&fl.Workers, "workers", fl.Workers, "Concurrent page fetches per query")
	fs.DurationVar(&fl.FetchTimeout, "fetch.timeout", fl.FetchTimeout, "Per-URL request timeout")
	fs.IntVar(&fl.MaxContentLength, "max.contentLength", fl.MaxContentLength, "Maximum characters of content per page")
	fs.IntVar(&fl.DownloadFloor, "download.floor", fl.DownloadFloor, "Minimum download cap in bytes")
	fs.IntVar(&fl.ChunkSize, "download.chunk", fl.ChunkSize, "Download read chunk size in bytes")
	fs.StringVar(&fl.UserAgent, "ua", fl.UserAgent, "User-Agent for page fetches")
	fs.StringVar(&fl.Extractor, "extractor", fl.Extractor, "Article extractor: readability or heuristic")
	fs.BoolVar(&fl.Verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fl.Domains = splitList(domains)

	if err := LoadEnvFiles(splitList(envFiles)...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	cfg := DefaultConfig()
	if configPath != "" {
		fc, err := LoadConfigFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) { applyFlag(&cfg, fl, f.Name) })

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFlag copies one explicitly set flag from fl into cfg.
func applyFlag(cfg *Config, fl Config, name string) {
	switch name {
	case "addr":
		cfg.Addr = fl.Addr
	case "search.engine":
		cfg.SearchEngine = fl.SearchEngine
	case "searx.url":
		cfg.SearxURL = fl.SearxURL
	case "searx.key":
		cfg.SearxKey = fl.SearxKey
	case "serper.key":
		cfg.SerperAPIKey = fl.SerperAPIKey
	case "search.file":
		cfg.FileSearchPath = fl.FileSearchPath
	case "domains":
		cfg.Domains = fl.Domains
	case "max.results":
		cfg.MaxResults = fl.MaxResults
	case "workers":
		cfg.Workers = fl.Workers
	case "fetch.timeout":
		cfg.FetchTimeout = fl.FetchTimeout
	case "max.contentLength":
		cfg.MaxContentLength = fl.MaxContentLength
	case "download.floor":
		cfg.DownloadFloor = fl.DownloadFloor
	case "download.chunk":
		cfg.ChunkSize = fl.ChunkSize
	case "ua":
		cfg.UserAgent = fl.UserAgent
	case "extractor":
		cfg.Extractor = fl.Extractor
	case "v":
		cfg.Verbose = fl.Verbose
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
