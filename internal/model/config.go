package model

import "time"

// Config is the full configuration tree for the verification service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Weaviate    WeaviateConfig    `yaml:"weaviate" mapstructure:"weaviate"`
	WebSearch   WebSearchConfig   `yaml:"web_search" mapstructure:"web_search"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior shared by the web evidence
// sources and the snippet-enrichment fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LLMConfig configures the structured-completion capability.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds

	// Per-call temperatures. Critique runs coldest to favor determinism
	// in QA judgments.
	GenerationTemperature     float32 `yaml:"generation_temperature" mapstructure:"generation_temperature"`
	CritiqueTemperature       float32 `yaml:"critique_temperature" mapstructure:"critique_temperature"`
	ClassificationTemperature float32 `yaml:"classification_temperature" mapstructure:"classification_temperature"`
}

// WeaviateConfig configures the knowledge-base evidence source.
type WeaviateConfig struct {
	URL       string `yaml:"url" mapstructure:"url"`
	ClassName string `yaml:"class_name" mapstructure:"class_name"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
}

// WebSearchConfig configures the web/news evidence sources.
type WebSearchConfig struct {
	Endpoint          string  `yaml:"endpoint" mapstructure:"endpoint"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	EnrichSnippets    bool    `yaml:"enrich_snippets" mapstructure:"enrich_snippets"`
}

// CacheConfig controls search-result caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// ServerConfig configures the HTTP serve mode.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Verbose         bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeEvidence bool `yaml:"include_evidence" mapstructure:"include_evidence"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veracity/0.1 (+https://github.com/veracity/veracity)",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Provider:                  "openai",
			Model:                     "",
			Timeout:                   60,
			GenerationTemperature:     0.3,
			CritiqueTemperature:       0.1,
			ClassificationTemperature: 0.2,
		},
		Weaviate: WeaviateConfig{
			URL:       "http://localhost:8080",
			ClassName: "FactRecord",
		},
		WebSearch: WebSearchConfig{
			RequestsPerSecond: 2,
			Burst:             5,
			EnrichSnippets:    false,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Server: ServerConfig{
			Addr: ":8090",
		},
		Output: OutputConfig{
			Verbose:         false,
			IncludeEvidence: false,
		},
	}
}
