package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Parser handles parsing of preset documents in YAML format
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a preset document from disk
func (p *Parser) ParseFile(path string) (*domain.Preset, *domain.LoadError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{
			FilePath: path,
			Error:    fmt.Sprintf("failed to read file: %v", err),
		}
	}
	return p.Parse(data, path)
}

// Parse parses preset document content. A document must carry a name and at
// least one rule group; a missing id falls back to the file stem so
// hand-written documents stay addressable.
func (p *Parser) Parse(data []byte, path string) (*domain.Preset, *domain.LoadError) {
	var preset domain.Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, &domain.LoadError{
			FilePath: path,
			Error:    fmt.Sprintf("failed to parse YAML: %v", err),
		}
	}

	if preset.Name == "" {
		return nil, &domain.LoadError{
			FilePath: path,
			Error:    "preset is missing a name",
		}
	}
	if len(preset.Groups) == 0 {
		return nil, &domain.LoadError{
			FilePath: path,
			Error:    "preset has no rule groups",
		}
	}

	if preset.ID == "" {
		preset.ID = strings.TrimSuffix(filepath.Base(path), Extension)
	}
	preset.FilePath = path

	return &preset, nil
}
