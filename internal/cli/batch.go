package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dkosarev/claimtriage/internal/pipeline"
	"github.com/dkosarev/claimtriage/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>",
	Short: "Triage multiple FNOL documents in parallel",
	Long: `Batch triages many FNOL documents concurrently:
- Input is either a directory of .txt/.html documents or a list file
  (one document path per line, # comments allowed)
- Documents are processed in parallel with a configurable worker count
- Each document gets an individual JSON result in the output directory
- A summary of route assignments is printed at the end

Example:
  claimtriage batch ./fnol-inbox
  claimtriage batch documents.txt --concurrency 8 --output-dir ./results
  claimtriage batch ./fnol-inbox --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./triage-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared processing flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force reprocessing)")
	batchCmd.Flags().Float64Var(&threshold, "threshold", 0, "override fast-track damage threshold")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM adjuster briefing (never affects routes)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Concurrency.Workers = concurrency
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

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  claimtriage Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)

	// Batch workers share one rate limiter so briefing calls stay inside
	// the provider's request budget
	if briefer := p.Briefer(); briefer != nil && briefer.IsEnabled() {
		briefer.SetLimiter(worker.NewLimiter(cfg.Concurrency.LLMRequestsPerSec, cfg.Concurrency.LLMBurst))
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Processing documents with %d workers...\n", concurrency)
	results, err := processor.ProcessInput(ctx, input)
	if err != nil {
		return fmt.Errorf("process input: %w", err)
	}

	renderer := pipeline.NewRenderer()
	routeCounts := make(map[string]int)
	failed := 0

	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		routeCounts[r.Result.RecommendedRoute]++

		outPath := filepath.Join(outputDir, resultFileName(r.Path))
		if err := renderer.RenderJSON(r.Result, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: write result: %v\n", r.Path, err)
			continue
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", r.Path, r.Result.RecommendedRoute)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Failed:       %d\n", failed)
	for _, route := range []string{"Manual Review", "Investigation Queue", "Specialist Queue", "Fast-Track", "Standard Processing"} {
		if count := routeCounts[route]; count > 0 {
			fmt.Fprintf(os.Stderr, "  %-20s %d\n", route+":", count)
		}
	}
	fmt.Fprintf(os.Stderr, "\n")

	if failed == len(results) {
		return fmt.Errorf("all %d documents failed", failed)
	}

	return nil
}

// resultFileName maps a document path to its result file name
func resultFileName(docPath string) string {
	base := filepath.Base(docPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".triage.json"
}
