package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Renderer serializes triage results for downstream consumers
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the result as indented JSON to a file
func (r *Renderer) RenderJSON(result *model.ProcessingResult, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return r.WriteJSON(f, result)
}

// WriteJSON writes the result as indented JSON to a writer
func (r *Renderer) WriteJSON(w io.Writer, result *model.ProcessingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
