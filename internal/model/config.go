package model

import "time"

// Config is the complete runtime configuration for a collection or
// enrichment run.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http" mapstructure:"http"`
	Crawl  CrawlConfig  `yaml:"crawl" mapstructure:"crawl"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the portal session's HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CrawlConfig controls pacing, pagination bounds and checkpoint cadence.
type CrawlConfig struct {
	// Delay is the fixed courtesy delay between requests. The session uses
	// the robots.txt crawl-delay instead when that is larger.
	Delay             time.Duration `yaml:"delay" mapstructure:"delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	// MaxPages bounds pagination defensively; the listing's own next-page
	// control remains the normal termination condition.
	MaxPages          int  `yaml:"max_pages" mapstructure:"max_pages"`
	CheckpointPages   int  `yaml:"checkpoint_pages" mapstructure:"checkpoint_pages"`
	CheckpointRecords int  `yaml:"checkpoint_records" mapstructure:"checkpoint_records"`
	RespectRobots     bool `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the optional page cache used to avoid re-fetching
// detail pages across resumed runs.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig configures the optional LLM contact-extraction fallback.
// Disabled unless a provider is named.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls user-visible output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "schoolscout/0.1",
			MaxBodyBytes: 2_000_000,
		},
		Crawl: CrawlConfig{
			Delay:             time.Second,
			RequestsPerSecond: 1,
			Burst:             1,
			MaxPages:          500,
			CheckpointPages:   1,
			CheckpointRecords: 50,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 256,
		},
	}
}
