package json

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer handles file writing for generated build artifacts.
type Writer struct{}

// NewWriter creates a new filesystem writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBytes writes raw bytes to path, creating parent directories as needed.
func (w *Writer) WriteBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
