// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs the CLI loads with viper.
package types

import (
	"time"

	"github.com/pdiddy/peoplesearch/pkg/search"
)

// SearchFlags are the request flags sent with every search.
type SearchFlags struct {
	// APIKey is the search API key. Empty falls back to PIPL_API_KEY and then
	// the .secrets/pipl-api-key file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// ShowSources is "matching", "all" or "true".
	ShowSources string `json:"show_sources,omitempty" yaml:"show_sources,omitempty" mapstructure:"show_sources"`

	MinimumProbability float64 `json:"minimum_probability,omitempty" yaml:"minimum_probability,omitempty" mapstructure:"minimum_probability"`
	MinimumMatch       float64 `json:"minimum_match,omitempty" yaml:"minimum_match,omitempty" mapstructure:"minimum_match"`

	LiveFeeds     *bool `json:"live_feeds,omitempty" yaml:"live_feeds,omitempty" mapstructure:"live_feeds"`
	HideSponsored *bool `json:"hide_sponsored,omitempty" yaml:"hide_sponsored,omitempty" mapstructure:"hide_sponsored"`
	InferPersons  *bool `json:"infer_persons,omitempty" yaml:"infer_persons,omitempty" mapstructure:"infer_persons"`
	TopMatch      *bool `json:"top_match,omitempty" yaml:"top_match,omitempty" mapstructure:"top_match"`

	MatchRequirements          string `json:"match_requirements,omitempty" yaml:"match_requirements,omitempty" mapstructure:"match_requirements"`
	SourceCategoryRequirements string `json:"source_category_requirements,omitempty" yaml:"source_category_requirements,omitempty" mapstructure:"source_category_requirements"`

	// Endpoint overrides the API URL.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// Insecure sends requests over plain HTTP.
	Insecure bool `json:"insecure,omitempty" yaml:"insecure,omitempty" mapstructure:"insecure"`

	// Strict turns on the full local validation before sending.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// Configuration converts the flags into a search.Configuration. Zero
// probabilities mean "not set".
func (f SearchFlags) Configuration() *search.Configuration {
	cfg := search.NewConfiguration(f.APIKey)
	cfg.ShowSources = f.ShowSources
	if f.MinimumProbability != 0 {
		v := f.MinimumProbability
		cfg.MinimumProbability = &v
	}
	if f.MinimumMatch != 0 {
		v := f.MinimumMatch
		cfg.MinimumMatch = &v
	}
	cfg.LiveFeeds = f.LiveFeeds
	cfg.HideSponsored = f.HideSponsored
	cfg.InferPersons = f.InferPersons
	cfg.TopMatch = f.TopMatch
	cfg.MatchRequirements = f.MatchRequirements
	cfg.SourceCategoryRequirements = f.SourceCategoryRequirements
	cfg.Endpoint = f.Endpoint
	cfg.UseHTTPS = !f.Insecure
	return cfg
}

// HTTPConfig holds the transport settings.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent replaces the client's User-Agent header when set.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`

	// MaxRetries is how often a call answered with HTTP 429 is repeated
	// (0 disables retries).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// QPS paces outgoing calls client-side (0 disables pacing).
	QPS float64 `json:"qps" yaml:"qps" mapstructure:"qps"`

	// Concurrency bounds parallel searches in a batch (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheBackend selects where responses are cached.
type CacheBackend string

const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheRedis  CacheBackend = "redis"
)

// CacheConfig holds the response cache settings.
type CacheConfig struct {
	Backend CacheBackend  `json:"backend" yaml:"backend" mapstructure:"backend"`
	TTL     time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// RedisAddr is host:port of the Redis server.
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisPassword string `json:"-" yaml:"-" mapstructure:"redis_password"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db" mapstructure:"redis_db"`
}

// HistoryConfig holds the search history settings.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LoggingConfig selects the logger environment and level.
type LoggingConfig struct {
	// Env is "dev" (console) or "prod" (JSON).
	Env   string `json:"env" yaml:"env" mapstructure:"env"`
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// ClientConfig groups every section of the configuration file.
type ClientConfig struct {
	Search  SearchFlags   `json:"search" yaml:"search" mapstructure:"search"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// DefaultClientConfig returns the values used when nothing is configured.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Search: SearchFlags{Strict: true},
		HTTP: HTTPConfig{
			Timeout:     30 * time.Second,
			MaxRetries:  3,
			Concurrency: 4,
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			TTL:     time.Hour,
		},
		History: HistoryConfig{
			Path: "peoplesearch-history.db",
		},
		Logging: LoggingConfig{
			Env:   "dev",
			Level: "warn",
		},
	}
}
