package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipmint/archive-renamer/internal/domain"
)

func TestGroupByFoldedNameSeparatesParents(t *testing.T) {
	groups := groupByFoldedName([]domain.ArchiveEntry{
		{Path: "a/readme.txt", Size: 1},
		{Path: "b/README.TXT", Size: 1},
		{Path: "a/README.txt", Size: 1},
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].parent)
	assert.Equal(t, []string{"a/readme.txt", "a/README.txt"}, groups[0].paths)
	assert.Equal(t, "b", groups[1].parent)
	assert.Equal(t, []string{"b/README.TXT"}, groups[1].paths)
}

func TestExactRepeatIsDuplicateNotConflict(t *testing.T) {
	groups := groupByFoldedName([]domain.ArchiveEntry{
		{Path: "docs/notes.txt", Size: 1},
		{Path: "docs/notes.txt", Size: 2},
	})

	duplicates, dupTotal := detectDuplicates(groups)
	conflicts, confTotal := detectConflicts(groups)

	require.Len(t, duplicates, 1)
	assert.Equal(t, 1, dupTotal)
	assert.Equal(t, "docs", duplicates[0].Parent)
	assert.Equal(t, "notes.txt", duplicates[0].Name)
	assert.Equal(t, 2, duplicates[0].Count)
	assert.Empty(t, conflicts)
	assert.Zero(t, confTotal)
}

func TestCaseVariantsRaiseBothWarnings(t *testing.T) {
	groups := groupByFoldedName([]domain.ArchiveEntry{
		{Path: "File.txt", Size: 1},
		{Path: "file.txt", Size: 1},
		{Path: "FILE.txt", Size: 1},
		{Path: "File.txt", Size: 1},
	})

	duplicates, _ := detectDuplicates(groups)
	conflicts, confTotal := detectConflicts(groups)

	require.Len(t, duplicates, 1)
	assert.Equal(t, 4, duplicates[0].Count)

	require.Len(t, conflicts, 1)
	assert.Equal(t, 1, confTotal)
	assert.Equal(t, domain.ConflictCaseSensitivity, conflicts[0].Type)
	assert.Equal(t, []string{"File.txt", "file.txt", "FILE.txt"}, conflicts[0].ConflictingFiles)
	assert.Equal(t, "file.txt", conflicts[0].ResultName)
}

func TestDirectoryCollidesWithFileName(t *testing.T) {
	groups := groupByFoldedName([]domain.ArchiveEntry{
		{Path: "Report/", IsDirectory: true},
		{Path: "report", Size: 1},
	})

	conflicts, _ := detectConflicts(groups)

	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"Report/", "report"}, conflicts[0].ConflictingFiles)
	assert.Equal(t, "report", conflicts[0].ResultName)
}

func TestDuplicatePathsTruncateButCountAll(t *testing.T) {
	entries := make([]domain.ArchiveEntry, 0, 14)
	for i := 0; i < 14; i++ {
		entries = append(entries, domain.ArchiveEntry{Path: "dir/same.dat", Size: 1})
	}

	duplicates, total := detectDuplicates(groupByFoldedName(entries))

	require.Len(t, duplicates, 1)
	assert.Equal(t, 1, total)
	assert.Len(t, duplicates[0].Paths, maxDuplicatePaths)
	assert.Equal(t, 14, duplicates[0].Count)
}

func TestDuplicateGroupsCapAtTenButTotalCountsAll(t *testing.T) {
	var entries []domain.ArchiveEntry
	for i := 0; i < 13; i++ {
		path := fmt.Sprintf("d%02d/copy.bin", i)
		entries = append(entries, domain.ArchiveEntry{Path: path, Size: 1})
		entries = append(entries, domain.ArchiveEntry{Path: path, Size: 1})
	}

	duplicates, total := detectDuplicates(groupByFoldedName(entries))

	assert.Len(t, duplicates, maxDuplicateGroups)
	assert.Equal(t, 13, total)
}

func TestConflictGroupsCapAtTenButTotalCountsAll(t *testing.T) {
	var entries []domain.ArchiveEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, domain.ArchiveEntry{Path: fmt.Sprintf("d%02d/a.txt", i), Size: 1})
		entries = append(entries, domain.ArchiveEntry{Path: fmt.Sprintf("d%02d/A.txt", i), Size: 1})
	}

	conflicts, total := detectConflicts(groupByFoldedName(entries))

	assert.Len(t, conflicts, maxConflictGroups)
	assert.Equal(t, 12, total)
}

func TestUniqueNamesProduceNoGroupsOfInterest(t *testing.T) {
	groups := groupByFoldedName([]domain.ArchiveEntry{
		{Path: "a.txt", Size: 1},
		{Path: "b.txt", Size: 1},
		{Path: "sub/a.txt", Size: 1},
	})

	duplicates, dupTotal := detectDuplicates(groups)
	conflicts, confTotal := detectConflicts(groups)

	assert.Empty(t, duplicates)
	assert.Zero(t, dupTotal)
	assert.Empty(t, conflicts)
	assert.Zero(t, confTotal)
}
