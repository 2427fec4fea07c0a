package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Triager defines the interface for triaging a single FNOL document
type Triager interface {
	ProcessDocument(ctx context.Context, path string) (*model.ProcessingResult, error)
}

// TriageJob represents a single-document triage job
type TriageJob struct {
	Path    string
	Triager Triager
}

// Execute executes the triage job
func (j *TriageJob) Execute(ctx context.Context) Result {
	result, err := j.Triager.ProcessDocument(ctx, j.Path)
	return &TriageResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// TriageResult represents the result of a triage job
type TriageResult struct {
	Path   string
	Result *model.ProcessingResult
	Error  error
}

// GetError returns the error from the triage result
func (r *TriageResult) GetError() error {
	return r.Error
}

// BatchProcessor triages multiple FNOL documents concurrently
type BatchProcessor struct {
	triager     Triager
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(triager Triager, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		triager:     triager,
		concurrency: concurrency,
	}
}

// ProcessInput resolves the batch input — a directory of documents or a
// list file with one path per line — and triages everything concurrently.
func (b *BatchProcessor) ProcessInput(ctx context.Context, input string) ([]*TriageResult, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = collectDocuments(input)
	} else {
		paths, err = readPathList(input)
	}
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found in %s", input)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ProcessPaths triages the given document paths concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*TriageResult {
	if len(paths) == 0 {
		return []*TriageResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Stop()
	}()

	for _, path := range paths {
		pool.Submit(&TriageJob{
			Path:    path,
			Triager: b.triager,
		})
	}

	results := pool.Wait()

	triageResults := make([]*TriageResult, 0, len(results))
	for _, r := range results {
		if tr, ok := r.(*TriageResult); ok {
			triageResults = append(triageResults, tr)
		}
	}

	return triageResults
}

// readPathList reads document paths from a list file, one per line.
// Blank lines and # comments are skipped.
func readPathList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}

	return paths, nil
}

// collectDocuments lists the .txt and .html documents in a directory
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".html", ".htm":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
