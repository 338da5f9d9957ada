package repository

import (
	"context"
	"fmt"
	"path/filepath"
)

const reportFileName = "last_report.txt"

// FileReportWriter keeps the latest report under the output directory.
type FileReportWriter struct {
	path string
}

func NewFileReportWriter(outputDir string) *FileReportWriter {
	return &FileReportWriter{path: filepath.Join(outputDir, reportFileName)}
}

// WriteReport overwrites the report file and returns its path.
func (w *FileReportWriter) WriteReport(_ context.Context, text string) (string, error) {
	if err := writeFileAtomic(w.path, []byte(text)); err != nil {
		return "", fmt.Errorf("report %s: %w", w.path, err)
	}
	return w.path, nil
}
