package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Addr string `yaml:"addr" json:"addr"`

	Search struct {
		Engine     string   `yaml:"engine" json:"engine"`
		File       string   `yaml:"file" json:"file"`
		Domains    []string `yaml:"domains" json:"domains"`
		MaxResults int      `yaml:"maxResults" json:"maxResults"`
	} `yaml:"search" json:"search"`

	Searx struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
	} `yaml:"searx" json:"searx"`

	Serper struct {
		Key string `yaml:"key" json:"key"`
	} `yaml:"serper" json:"serper"`

	Fetch struct {
		Workers          int      `yaml:"workers" json:"workers"`
		Timeout          Duration `yaml:"timeout" json:"timeout"`
		MaxContentLength int      `yaml:"maxContentLength" json:"maxContentLength"`
		DownloadFloor    int      `yaml:"downloadFloor" json:"downloadFloor"`
		ChunkSize        int      `yaml:"chunkSize" json:"chunkSize"`
		UserAgent        string   `yaml:"userAgent" json:"userAgent"`
		Extractor        string   `yaml:"extractor" json:"extractor"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Duration accepts "5s" style strings in both YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. It runs on top of
// the defaults, before env and flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}

	setStr(&cfg.Addr, fc.Addr)
	setStr(&cfg.SearchEngine, fc.Search.Engine)
	setStr(&cfg.FileSearchPath, fc.Search.File)
	if len(fc.Search.Domains) > 0 {
		cfg.Domains = append([]string(nil), fc.Search.Domains...)
	}
	setInt(&cfg.MaxResults, fc.Search.MaxResults)
	setStr(&cfg.SearxURL, fc.Searx.URL)
	setStr(&cfg.SearxKey, fc.Searx.Key)
	setStr(&cfg.SerperAPIKey, fc.Serper.Key)

	setInt(&cfg.Workers, fc.Fetch.Workers)
	if fc.Fetch.Timeout != 0 {
		cfg.FetchTimeout = time.Duration(fc.Fetch.Timeout)
	}
	setInt(&cfg.MaxContentLength, fc.Fetch.MaxContentLength)
	setInt(&cfg.DownloadFloor, fc.Fetch.DownloadFloor)
	setInt(&cfg.ChunkSize, fc.Fetch.ChunkSize)
	setStr(&cfg.UserAgent, fc.Fetch.UserAgent)
	setStr(&cfg.Extractor, fc.Fetch.Extractor)
	if fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig rejects settings the service cannot run with.
func ValidateConfig(cfg Config) error {
	if cfg.MaxResults <= 0 || cfg.Workers <= 0 || cfg.MaxContentLength <= 0 ||
		cfg.DownloadFloor <= 0 || cfg.ChunkSize <= 0 || cfg.FetchTimeout <= 0 {
		return errors.New("config: limits must be positive")
	}
	if len(cfg.Domains) == 0 {
		return errors.New("config: at least one domain is required")
	}
	switch cfg.SearchEngine {
	case EngineDuckDuckGo:
	case EngineSearxNG:
		if strings.TrimSpace(cfg.SearxURL) == "" {
			return errors.New("config: searx.url is required for the searxng engine (or set GOPAGES_SEARX_URL)")
		}
	case EngineSerper:
		if strings.TrimSpace(cfg.SerperAPIKey) == "" {
			return errors.New("config: serper.key is required for the serper engine (or set GOPAGES_SERPER_API_KEY)")
		}
	case EngineFile:
		if strings.TrimSpace(cfg.FileSearchPath) == "" {
			return errors.New("config: search.file is required for the file engine")
		}
	default:
		return fmt.Errorf("config: unknown search engine %q", cfg.SearchEngine)
	}
	switch cfg.Extractor {
	case ExtractorReadability, ExtractorHeuristic:
	default:
		return fmt.Errorf("config: unknown extractor %q", cfg.Extractor)
	}
	return nil
}
