package analyzer

import (
	"slices"
	"strings"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// nameGroup collects the entries of one (parent directory, case-folded base
// name) bucket. Members keep listing order; spellings keep the distinct
// original base names with the path of each spelling's first occurrence.
type nameGroup struct {
	parent     string
	folded     string
	paths      []string
	spellings  []string
	firstPaths []string
}

// groupByFoldedName buckets every entry by parent and folded base name,
// preserving listing order of groups and members. Directories group
// alongside files: a directory colliding with a file name clashes on
// extraction just the same.
func groupByFoldedName(entries []domain.ArchiveEntry) []*nameGroup {
	index := make(map[string]*nameGroup, len(entries))
	var groups []*nameGroup
	for i := range entries {
		entry := &entries[i]
		d := pathname.Decompose(entry.Path, entry.IsDirectory)
		if d.Base == "" {
			continue
		}
		folded := strings.ToLower(d.Base)
		key := d.Parent + "\x00" + folded
		g, ok := index[key]
		if !ok {
			g = &nameGroup{parent: d.Parent, folded: folded}
			index[key] = g
			groups = append(groups, g)
		}
		g.paths = append(g.paths, entry.Path)
		if !slices.Contains(g.spellings, d.Base) {
			g.spellings = append(g.spellings, d.Base)
			g.firstPaths = append(g.firstPaths, entry.Path)
		}
	}
	return groups
}

// detectDuplicates reports groups listing one folded name more than once,
// which covers both double-listed container members and case-variant
// repeats. Each warning carries at most the first ten member paths; the
// count is always the full group size.
func detectDuplicates(groups []*nameGroup) ([]domain.DuplicateWarning, int) {
	var warnings []domain.DuplicateWarning
	total := 0
	for _, g := range groups {
		if len(g.paths) < 2 {
			continue
		}
		total++
		if len(warnings) >= maxDuplicateGroups {
			continue
		}
		paths := g.paths
		if len(paths) > maxDuplicatePaths {
			paths = paths[:maxDuplicatePaths]
		}
		warnings = append(warnings, domain.DuplicateWarning{
			Parent: g.parent,
			Name:   g.folded,
			Paths:  paths,
			Count:  len(g.paths),
		})
	}
	return warnings, total
}

// detectConflicts reports the groups whose original spellings differ: names
// distinct in the container today that land on a single file once case is
// ignored. ConflictingFiles lists each distinct spelling's first occurrence
// in listing order; ResultName is the folded name they all collapse to.
func detectConflicts(groups []*nameGroup) ([]domain.ConflictWarning, int) {
	var warnings []domain.ConflictWarning
	total := 0
	for _, g := range groups {
		if len(g.spellings) < 2 {
			continue
		}
		total++
		if len(warnings) >= maxConflictGroups {
			continue
		}
		warnings = append(warnings, domain.ConflictWarning{
			Type:             domain.ConflictCaseSensitivity,
			ConflictingFiles: g.firstPaths,
			ResultName:       g.folded,
		})
	}
	return warnings, total
}
