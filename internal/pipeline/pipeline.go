// Package pipeline wires the triage stages together: extract fields,
// validate mandatory data, classify, route, and render the result.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkosarev/claimtriage/internal/cache"
	"github.com/dkosarev/claimtriage/internal/classify"
	"github.com/dkosarev/claimtriage/internal/extract"
	"github.com/dkosarev/claimtriage/internal/llm"
	"github.com/dkosarev/claimtriage/internal/model"
	"github.com/dkosarev/claimtriage/internal/route"
	"github.com/dkosarev/claimtriage/internal/validate"
)

// Pipeline orchestrates the complete triage of an FNOL document
type Pipeline struct {
	extractor  *extract.FieldExtractor
	validator  *validate.Validator
	classifier *classify.Classifier
	router     *route.Router
	renderer   *Renderer
	briefer    *llm.Briefer // Optional adjuster briefing (nil if disabled)
	cache      cache.Cache  // Result cache (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline from validated configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var briefer *llm.Briefer
	if cfg.LLM.Provider != "" {
		b, err := llm.NewBriefer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			briefer = b
		}
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".claimtriage", "cache")
			}
		}
		if dir != "" {
			resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	return &Pipeline{
		extractor:  extract.NewFieldExtractor(cfg.Rules),
		validator:  validate.NewValidator(cfg.Rules.MandatoryFields),
		classifier: classify.NewClassifier(cfg.Rules),
		router:     route.NewRouter(cfg.Rules.FastTrackThreshold),
		renderer:   NewRenderer(),
		briefer:    briefer,
		cache:      resultCache,
		config:     cfg,
	}
}

// Briefer exposes the optional briefer so batch mode can attach a shared
// rate limiter.
func (p *Pipeline) Briefer() *llm.Briefer {
	return p.briefer
}

// ProcessDocument triages a single FNOL document file. HTML intake bodies
// are reduced to visible text before field extraction.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) (*model.ProcessingResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	if extract.IsHTML(text) {
		text, err = extract.VisibleText(text)
		if err != nil {
			return nil, fmt.Errorf("parse HTML intake: %w", err)
		}
	}

	return p.ProcessText(ctx, text)
}

// ProcessText triages already-extracted FNOL text. The decision path is
// fully deterministic; identical text yields an identical result, which is
// what makes content-hash caching sound.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*model.ProcessingResult, error) {
	// The cache only serves the deterministic result; briefing output is
	// model-dependent, so a briefing-enabled run bypasses it.
	cacheable := p.cache != nil && (p.briefer == nil || !p.briefer.IsEnabled())

	key := cache.Key(text)
	if cacheable {
		if data, found := p.cache.Get(key); found {
			var cached model.ProcessingResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Unreadable entry: drop it and reprocess
			_ = p.cache.Delete(key)
		}
	}

	result := p.Triage(p.extractor.ExtractText(text))

	if p.briefer != nil && p.briefer.IsEnabled() {
		briefing, err := p.briefer.Generate(ctx, *result)
		if err != nil {
			// Briefing failures never fail the triage
			fmt.Fprintf(os.Stderr, "Warning: briefing generation failed: %v\n", err)
		} else if briefing != nil {
			result.LLM = briefing
		}
	}

	if cacheable {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return result, nil
}

// Triage runs the decision engine over an already-extracted claim:
// validate, classify, route. Pure and safe for concurrent use.
func (p *Pipeline) Triage(claim model.ExtractedClaim) *model.ProcessingResult {
	missing := p.validator.MissingFields(claim)
	classification := p.classifier.Classify(claim)
	decision := p.router.Route(missing, classification, claim.Damage())

	return &model.ProcessingResult{
		ExtractedFields:  claim,
		MissingFields:    missing,
		RecommendedRoute: decision.Route.String(),
		Reasoning:        decision.Reasoning,
	}
}

// RenderResult renders the result to the given JSON path ("" to skip) and
// optionally to stdout.
func (p *Pipeline) RenderResult(result *model.ProcessingResult, jsonPath string, toStdout bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}

	if toStdout {
		if err := p.renderer.WriteJSON(os.Stdout, result); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}

	return nil
}
