package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// Writer materializes a pipeline result on disk. Files are written through a
// temp directory and renamed into place, so a crash mid-run never leaves a
// half-written file at its final path.
type Writer struct {
	outputDir string
	tempDir   string
}

// NewWriter creates a writer rooted at outputDir.
func NewWriter(outputDir string) (*Writer, error) {
	tempDir := filepath.Join(outputDir, ".blueprint", "tmp")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Clean up stale temp files from a previous interrupted run.
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Writer{outputDir: outputDir, tempDir: tempDir}, nil
}

// WriteFiles writes every classified file under the source root, creating
// directories as needed. Canonical paths use forward slashes regardless of
// platform.
func (w *Writer) WriteFiles(files []generator.ClassifiedFile, sourceRoot string) error {
	for _, f := range files {
		rel := f.Path
		if sourceRoot != "" {
			rel = path.Join(sourceRoot, f.Path)
		}
		if err := w.writeFile(rel, []byte(f.Content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
	}
	return nil
}

// writeFile writes one file atomically via temp → rename.
func (w *Writer) writeFile(rel string, data []byte) error {
	finalPath := filepath.Join(w.outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return err
	}

	tempPath := filepath.Join(w.tempDir, uuid.New().String())
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// Report records what one generation run produced. It is written next to
// the generated tree so later runs (and humans) can see what happened.
type Report struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Framework   string              `json:"framework"`
	ProjectName string              `json:"project_name"`
	Files       []string            `json:"files"`
	Stats       generator.Stats     `json:"stats"`
	Warnings    []generator.Warning `json:"warnings,omitempty"`
}

// NewReport builds a report for a result.
func NewReport(framework, projectName string, result *generator.Result) *Report {
	files := make([]string, len(result.Files))
	for i, f := range result.Files {
		files[i] = f.Path
	}
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Framework:   framework,
		ProjectName: projectName,
		Files:       files,
		Stats:       result.Stats,
		Warnings:    result.Warnings,
	}
}

// WriteReport writes the generation report to .blueprint/generation.json.
func (w *Writer) WriteReport(report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return w.writeFile(".blueprint/generation.json", data)
}

// Close removes the temp directory.
func (w *Writer) Close() error {
	return os.RemoveAll(w.tempDir)
}
