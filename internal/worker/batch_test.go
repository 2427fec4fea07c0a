package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkosarev/claimtriage/internal/model"
)

type stubTriager struct {
	failSuffix string
}

func (s *stubTriager) ProcessDocument(ctx context.Context, path string) (*model.ProcessingResult, error) {
	if s.failSuffix != "" && strings.HasSuffix(path, s.failSuffix) {
		return nil, errors.New("unreadable document")
	}

	return &model.ProcessingResult{
		ExtractedFields:  model.ExtractedClaim{model.FieldPolicyNumber: "POL-1"},
		MissingFields:    []string{},
		RecommendedRoute: "Fast-Track",
		Reasoning:        "stub",
	}, nil
}

func writeDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("POLICY NUMBER: POL-1\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBatchProcessor_DirectoryInput(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt")
	writeDoc(t, dir, "b.html")
	writeDoc(t, dir, "c.pdf") // unsupported extension, skipped

	bp := NewBatchProcessor(&stubTriager{}, 2)

	results, err := bp.ProcessInput(context.Background(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 triaged documents, got %d", len(results))
	}

	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("Expected no error for %s, got %v", r.Path, r.GetError())
		}
		if r.Result == nil || r.Result.RecommendedRoute != "Fast-Track" {
			t.Errorf("Expected a triage result for %s", r.Path)
		}
	}
}

func TestBatchProcessor_ListFileInput(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.txt")
	b := writeDoc(t, dir, "b.txt")

	list := filepath.Join(dir, "docs.list")
	content := "# batch of FNOL documents\n" + a + "\n\n" + b + "\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatalf("write list file: %v", err)
	}

	bp := NewBatchProcessor(&stubTriager{}, 2)

	results, err := bp.ProcessInput(context.Background(), list)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 results from list file, got %d", len(results))
	}
}

func TestBatchProcessor_PerDocumentFailuresAreIsolated(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.txt")
	writeDoc(t, dir, "bad.txt")

	bp := NewBatchProcessor(&stubTriager{failSuffix: "bad.txt"}, 2)

	results, err := bp.ProcessInput(context.Background(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var failed, ok int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		} else {
			ok++
		}
	}

	if failed != 1 || ok != 1 {
		t.Errorf("Expected 1 failure and 1 success, got %d/%d", failed, ok)
	}
}

func TestBatchProcessor_EmptyDirectory(t *testing.T) {
	bp := NewBatchProcessor(&stubTriager{}, 2)

	_, err := bp.ProcessInput(context.Background(), t.TempDir())
	if err == nil {
		t.Error("Expected error for directory with no documents")
	}
}

func TestBatchProcessor_MissingInput(t *testing.T) {
	bp := NewBatchProcessor(&stubTriager{}, 2)

	_, err := bp.ProcessInput(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("Expected error for missing input path")
	}
}
