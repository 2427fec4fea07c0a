package llm

import (
	"context"
	"fmt"

	"github.com/dkosarev/claimtriage/internal/model"
)

// RateLimiter gates briefing API calls. Satisfied by worker.Limiter; nil
// means no limiting.
type RateLimiter interface {
	Wait(ctx context.Context, provider string) error
}

// Briefer coordinates briefing generation around a provider. A nil provider
// means briefing is disabled and Generate returns nil without error.
type Briefer struct {
	provider Provider
	config   Config
	limiter  RateLimiter
}

// NewBriefer creates a briefer from configuration. An empty provider name
// yields a disabled briefer, not an error.
func NewBriefer(config Config) (*Briefer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Briefer{
		provider: provider,
		config:   config,
	}, nil
}

// SetLimiter installs a rate limiter for API calls. Used in batch mode where
// many workers share one provider.
func (b *Briefer) SetLimiter(limiter RateLimiter) {
	b.limiter = limiter
}

// IsEnabled reports whether briefing generation is active
func (b *Briefer) IsEnabled() bool {
	return b.provider != nil
}

// ProviderName returns the active provider name, or "" when disabled
func (b *Briefer) ProviderName() string {
	if b.provider == nil {
		return ""
	}
	return b.provider.Name()
}

// Generate drafts an adjuster briefing for an already-routed claim. The
// input result is never modified; the returned block is attached separately
// by the caller. Returns nil, nil when disabled.
func (b *Briefer) Generate(ctx context.Context, result model.ProcessingResult) (*model.BriefingSummary, error) {
	if b.provider == nil {
		return nil, nil
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, b.provider.Name()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := b.provider.Brief(ctx, BriefRequest{
		Result:    result,
		Model:     b.config.Model,
		MaxTokens: b.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate briefing: %w", err)
	}

	summary := &model.BriefingSummary{
		Enabled:    true,
		Provider:   b.provider.Name(),
		Model:      resp.Model,
		BriefingMD: resp.Briefing,
	}

	if resp.Briefing == "" {
		summary.Warnings = append(summary.Warnings, "provider returned an empty briefing")
	}

	return summary, nil
}
