package llm

import (
	"fmt"
)

// NewProvider creates a provider from configuration. An empty provider name
// returns nil, nil — briefing disabled.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (supported: openai, ollama)", config.Provider)
	}
}
