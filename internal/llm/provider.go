// Package llm drafts optional adjuster briefings for triaged claims.
// The briefing is generated AFTER the deterministic routing decision and
// never affects it.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Brief generates an adjuster briefing for a triaged claim
	Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// BriefRequest contains the input for briefing generation
type BriefRequest struct {
	// Result is the already-computed triage result. The route and reasoning
	// in it are final; the briefing only restates and organizes them.
	Result model.ProcessingResult

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// BriefResponse contains the LLM's briefing output
type BriefResponse struct {
	// Briefing is the generated briefing text (markdown)
	Briefing string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

// ConfigFromModel converts the process-wide LLM settings
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  cfg.HTTPProxy,
		HTTPSProxy: cfg.HTTPSProxy,
		NoProxy:    cfg.NoProxy,
	}
}

// BuildPrompt constructs the default briefing prompt. The prompt pins the
// model to the extracted data and the already-made decision.
func BuildPrompt(result model.ProcessingResult) string {
	var fields strings.Builder
	for _, name := range model.Catalog {
		if !result.ExtractedFields.Has(name) {
			continue
		}
		fields.WriteString(fmt.Sprintf("- %s: %v\n", name, result.ExtractedFields[name]))
	}

	missing := "none"
	if len(result.MissingFields) > 0 {
		missing = strings.Join(result.MissingFields, ", ")
	}

	return fmt.Sprintf(`You are drafting an internal briefing note for an insurance claims adjuster.

CRITICAL RULES:
1. The processing route has ALREADY been decided by a deterministic rule engine. Do NOT question, change, or second-guess it.
2. Use ONLY the extracted fields below. Do NOT infer or invent any claim detail.
3. If a detail is missing, say it is missing.
4. Keep the note to 4-6 sentences of plain prose.

Assigned route: %s
Routing rationale: %s
Missing mandatory fields: %s

Extracted fields:
%s
Draft the briefing note now.`, result.RecommendedRoute, result.Reasoning, missing, fields.String())
}
