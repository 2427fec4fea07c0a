package model

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete process-wide configuration. It is built once at
// startup, validated, and never mutated afterwards; every component reads it
// through the pipeline.
type Config struct {
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RulesConfig is the routing rule set: mandatory fields, keyword families,
// and the fast-track threshold. Treated as data, not code — the routing
// algorithm never hardcodes any of these.
type RulesConfig struct {
	MandatoryFields    []string `yaml:"mandatory_fields" mapstructure:"mandatory_fields"`
	FraudKeywords      []string `yaml:"fraud_keywords" mapstructure:"fraud_keywords"`
	InjuryKeywords     []string `yaml:"injury_keywords" mapstructure:"injury_keywords"`
	PropertyKeywords   []string `yaml:"property_keywords" mapstructure:"property_keywords"`
	CollisionKeywords  []string `yaml:"collision_keywords" mapstructure:"collision_keywords"`
	FastTrackThreshold float64  `yaml:"fast_track_threshold" mapstructure:"fast_track_threshold"`
}

// CacheConfig controls the triage result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	LLMRequestsPerSec float64 `yaml:"llm_requests_per_sec" mapstructure:"llm_requests_per_sec"`
	LLMBurst          int     `yaml:"llm_burst" mapstructure:"llm_burst"`
}

// LLMConfig controls the optional adjuster briefing. Disabled unless a
// provider is set; the briefing never affects routing.
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, ollama, "" = disabled
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"-" mapstructure:"-"` // Environment only, never persisted
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			MandatoryFields: []string{
				FieldPolicyNumber,
				FieldPolicyholderName,
				FieldDateOfLoss,
				FieldLocationOfLoss,
				FieldDescription,
				FieldClaimType,
			},
			FraudKeywords:      []string{"fraud", "inconsistent", "staged", "suspicious", "fabricated"},
			InjuryKeywords:     []string{"injury", "injured", "hospital", "medical", "ambulance", "bodily"},
			PropertyKeywords:   []string{"property", "damage"},
			CollisionKeywords:  []string{"collision", "accident"},
			FastTrackThreshold: 25000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.claimtriage/cache by the pipeline
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			LLMRequestsPerSec: 2,
			LLMBurst:          2,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
		Output: OutputConfig{},
	}
}

// Normalize lowercases all keyword families so matching is case-insensitive
// by construction. Called once before Validate.
func (c *Config) Normalize() {
	lower := func(keywords []string) {
		for i, k := range keywords {
			keywords[i] = strings.ToLower(strings.TrimSpace(k))
		}
	}
	lower(c.Rules.FraudKeywords)
	lower(c.Rules.InjuryKeywords)
	lower(c.Rules.PropertyKeywords)
	lower(c.Rules.CollisionKeywords)
	for i, f := range c.Rules.MandatoryFields {
		c.Rules.MandatoryFields[i] = strings.TrimSpace(f)
	}
}

// Validate fails fast on configuration that would make routing meaningless.
// Called at startup, before any claim is processed.
func (c *Config) Validate() error {
	if len(c.Rules.MandatoryFields) == 0 {
		return fmt.Errorf("rules: mandatory field list is empty")
	}
	for _, f := range c.Rules.MandatoryFields {
		if f == "" {
			return fmt.Errorf("rules: mandatory field list contains a blank name")
		}
	}

	families := map[string][]string{
		"fraud_keywords":     c.Rules.FraudKeywords,
		"injury_keywords":    c.Rules.InjuryKeywords,
		"property_keywords":  c.Rules.PropertyKeywords,
		"collision_keywords": c.Rules.CollisionKeywords,
	}
	for name, keywords := range families {
		if len(keywords) == 0 {
			return fmt.Errorf("rules: %s is empty", name)
		}
		for _, k := range keywords {
			if k == "" {
				return fmt.Errorf("rules: %s contains a blank keyword", name)
			}
		}
	}

	if c.Rules.FastTrackThreshold <= 0 {
		return fmt.Errorf("rules: fast_track_threshold must be positive, got %v", c.Rules.FastTrackThreshold)
	}

	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("concurrency: workers must not be negative")
	}

	switch c.LLM.Provider {
	case "", "openai", "ollama":
	default:
		return fmt.Errorf("llm: unknown provider %q (supported: openai, ollama)", c.LLM.Provider)
	}

	return nil
}
