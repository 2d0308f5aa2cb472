// Package preset provides file-based storage for rename presets. Presets
// are YAML documents in a single configurable directory, one document per
// preset, recognized by the .preset.yaml suffix.
package preset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Extension is the file suffix recognized as a preset document
const Extension = ".preset.yaml"

// Loader discovers and parses preset documents in the preset directory
type Loader struct {
	dir    string
	parser *Parser

	mu         sync.RWMutex
	loadErrors []domain.LoadError
}

// NewLoader creates a Loader for the given directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		parser: NewParser(),
	}
}

// LoadAll scans the preset directory and parses every preset document.
// Documents that fail to parse are collected as load errors and skipped;
// a bad file never blocks the rest of the directory.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.Preset, []domain.LoadError, error) {
	var presets []domain.Preset
	var loadErrors []domain.LoadError

	err := filepath.WalkDir(l.dir, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isPresetFile(path) {
			return nil
		}

		preset, loadErr := l.parser.ParseFile(path)
		if loadErr != nil {
			loadErrors = append(loadErrors, *loadErr)
			return nil
		}
		presets = append(presets, *preset)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, loadErrors, err
	}

	l.mu.Lock()
	l.loadErrors = loadErrors
	l.mu.Unlock()

	return presets, loadErrors, nil
}

// GetLoadErrors returns the errors from the last load operation
func (l *Loader) GetLoadErrors() []domain.LoadError {
	l.mu.RLock()
	defer l.mu.RUnlock()

	errors := make([]domain.LoadError, len(l.loadErrors))
	copy(errors, l.loadErrors)
	return errors
}

// isPresetFile checks whether a path carries the preset document suffix
func isPresetFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), Extension)
}
