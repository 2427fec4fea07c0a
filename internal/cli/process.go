package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dkosarev/claimtriage/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	toStdout    bool
	timeout     time.Duration
	noCache     bool
	threshold   float64
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document>",
	Short: "Triage a single FNOL document",
	Long: `Process extracts structured fields from an FNOL document (plain text or
HTML intake body), validates mandatory data, classifies the claim, and
applies the routing rule cascade:

  1. Missing mandatory fields  -> Manual Review
  2. Fraud indicators          -> Investigation Queue
  3. Injury                    -> Specialist Queue
  4. Damage below threshold    -> Fast-Track, otherwise Standard Processing

Example:
  claimtriage process fnol.txt
  claimtriage process fnol.txt --json result.json --stdout
  claimtriage process intake.html --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "claim_processing_result.json", "output JSON path (\"\" to skip)")
	processCmd.Flags().BoolVar(&toStdout, "stdout", true, "print result JSON to stdout")

	// Processing flags
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force reprocessing)")
	processCmd.Flags().Float64Var(&threshold, "threshold", 0, "override fast-track damage threshold")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM adjuster briefing (never affects the route)")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runProcess(cmd *cobra.Command, args []string) error {
	document := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.Verbose = verbose
	if cmd.Flags().Changed("threshold") {
		cfg.Rules.FastTrackThreshold = threshold
	}
	if llmEnabled {
		if err := configureLLM(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", document)
		fmt.Fprintf(os.Stderr, "Fast-track threshold: %.2f\n", cfg.Rules.FastTrackThreshold)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.ProcessDocument(ctx, document)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d fields\n", len(result.ExtractedFields))
		fmt.Fprintf(os.Stderr, "✓ Missing mandatory fields: %d\n", len(result.MissingFields))
		fmt.Fprintf(os.Stderr, "✓ Route: %s\n", result.RecommendedRoute)
		if result.LLM != nil && result.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated briefing using %s/%s\n", result.LLM.Provider, result.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderResult(result, outJSON, toStdout); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if verbose && outJSON != "" {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}

	return nil
}
