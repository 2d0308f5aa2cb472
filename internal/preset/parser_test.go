package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipmint/archive-renamer/internal/domain"
)

const sampleDocument = `id: 123e4567-e89b-12d3-a456-426614174000
name: photo-cleanup
description: strips camera prefixes
groups:
  - id: g1
    scope: extension
    scopeValue: .jpg
    rules:
      - type: replace
        find: IMG_
        replace: ""
      - type: numbering
        start: 10
        padding: 4
        separator: "-"
        position: end
`

func TestParser_Parse(t *testing.T) {
	preset, loadErr := NewParser().Parse([]byte(sampleDocument), "/data/presets/photo.preset.yaml")

	require.Nil(t, loadErr)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", preset.ID)
	assert.Equal(t, "photo-cleanup", preset.Name)
	assert.Equal(t, "/data/presets/photo.preset.yaml", preset.FilePath)

	require.Len(t, preset.Groups, 1)
	group := preset.Groups[0]
	assert.Equal(t, domain.ScopeExtension, group.Scope)
	assert.Equal(t, ".jpg", group.ScopeValue)

	require.Len(t, group.Rules, 2)
	assert.Equal(t, domain.RuleReplace, group.Rules[0].Type)
	assert.Equal(t, "IMG_", group.Rules[0].Find)

	numbering := group.Rules[1]
	assert.Equal(t, domain.RuleNumbering, numbering.Type)
	require.NotNil(t, numbering.Start)
	assert.Equal(t, 10, *numbering.Start)
	require.NotNil(t, numbering.Padding)
	assert.Equal(t, 4, *numbering.Padding)
	require.NotNil(t, numbering.Separator)
	assert.Equal(t, "-", *numbering.Separator)
	assert.Equal(t, domain.PositionEnd, numbering.Position)
}

func TestParser_IDFallsBackToFileStem(t *testing.T) {
	doc := "name: stem-named\ngroups:\n  - id: g1\n    scope: global\n    rules:\n      - type: lowercase\n"

	preset, loadErr := NewParser().Parse([]byte(doc), "/data/presets/vacation.preset.yaml")

	require.Nil(t, loadErr)
	assert.Equal(t, "vacation", preset.ID)
}

func TestParser_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "groups: [unclosed"},
		{name: "missing name", doc: "groups:\n  - id: g1\n    scope: global\n"},
		{name: "no groups", doc: "name: hollow\ngroups: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, loadErr := NewParser().Parse([]byte(tt.doc), "bad.preset.yaml")
			assert.Nil(t, preset)
			require.NotNil(t, loadErr)
			assert.Equal(t, "bad.preset.yaml", loadErr.FilePath)
			assert.NotEmpty(t, loadErr.Error)
		})
	}
}

func TestParser_ParseFileMissing(t *testing.T) {
	preset, loadErr := NewParser().ParseFile(filepath.Join(os.TempDir(), "does-not-exist.preset.yaml"))

	assert.Nil(t, preset)
	require.NotNil(t, loadErr)
	assert.Contains(t, loadErr.Error, "failed to read file")
}
