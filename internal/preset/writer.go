package preset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Writer handles writing preset documents to disk in YAML format
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer with the specified base directory
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePreset writes a preset document to its canonical path
// Uses atomic write pattern: temp file → sync → rename
func (w *Writer) WritePreset(preset *domain.Preset) error {
	filename := fmt.Sprintf("%s%s", preset.ID, Extension)
	filePath := filepath.Join(w.baseDir, filename)
	return w.WritePresetToPath(preset, filePath)
}

// WritePresetToPath writes a preset document to a specific file path
func (w *Writer) WritePresetToPath(preset *domain.Preset, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := Export(preset)
	if err != nil {
		return err
	}

	return atomicWrite(filePath, data)
}

// Export serializes a preset to its YAML document form
func Export(preset *domain.Preset) ([]byte, error) {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preset to YAML: %w", err)
	}
	return data, nil
}

// DeletePreset removes a preset document by id
func (w *Writer) DeletePreset(id string) error {
	filename := fmt.Sprintf("%s%s", id, Extension)
	filePath := filepath.Join(w.baseDir, filename)
	return w.DeletePresetFile(filePath)
}

// DeletePresetFile removes a preset document at the specified path
func (w *Writer) DeletePresetFile(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil // File already doesn't exist
		}
		return fmt.Errorf("failed to delete preset file %s: %w", filePath, err)
	}
	return nil
}

// atomicWrite performs an atomic file write using temp file → sync → rename pattern
func atomicWrite(targetPath string, data []byte) error {
	// Create temp file in the same directory to ensure same filesystem
	dir := filepath.Dir(targetPath)
	tempFile, err := os.CreateTemp(dir, ".preset-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on error
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, targetPath); err != nil {
		return fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	success = true
	return nil
}
