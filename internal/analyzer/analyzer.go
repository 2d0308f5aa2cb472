// Package analyzer inspects an archive listing for cross-platform hazards
// before any rename runs. Detectors are independent and rule-agnostic; their
// findings are combined into one report and reduced to a single severity.
package analyzer

import (
	"time"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// Category array caps. The report's *Count fields always carry full totals;
// callers must rely on those for completeness beyond the caps.
const (
	maxDuplicateGroups = 10
	maxDuplicatePaths  = 10
	maxSystemFileItems = 20
	maxConflictGroups  = 10
)

// Analyzer runs every detector over a listing and classifies the outcome.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer creates an analyzer stamping reports with the wall clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

// Analyze runs all detectors over the listing in order and returns a fresh
// report. Entries without a path are skipped; no detector finding aborts
// the pass, and identical listings always produce identical reports.
func (a *Analyzer) Analyze(entries []domain.ArchiveEntry) *domain.AnalysisReport {
	valid := make([]domain.ArchiveEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Path == "" {
			continue
		}
		valid = append(valid, entry)
	}

	report := &domain.AnalysisReport{
		Stats:     collectStats(valid),
		Timestamp: a.now(),
	}

	report.Warnings.PathLength = detectPathLength(valid)
	report.Warnings.InvalidChars = detectInvalidChars(valid)
	report.Warnings.Unicode = detectUnicode(valid)

	groups := groupByFoldedName(valid)
	report.Warnings.Duplicates, report.Warnings.DuplicateCount = detectDuplicates(groups)
	report.Warnings.Conflicts, report.Warnings.ConflictCount = detectConflicts(groups)
	report.Warnings.SystemFiles, report.Warnings.SystemFileCount = detectSystemFiles(valid)

	report.Severity = classify(&report.Warnings)
	return report
}

// collectStats aggregates counts, sizes and depth in one pass. The largest
// file is the first one seen at the maximum size, so ties keep listing order.
func collectStats(entries []domain.ArchiveEntry) domain.ArchiveStats {
	var stats domain.ArchiveStats
	for i := range entries {
		entry := &entries[i]
		if depth := pathname.Depth(entry.Path); depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if entry.IsDirectory {
			stats.DirectoryCount++
			continue
		}
		stats.FileCount++
		stats.TotalSize += entry.Size
		if stats.LargestFile == nil || entry.Size > stats.LargestFile.Size {
			stats.LargestFile = &domain.FileRef{Path: entry.Path, Size: entry.Size}
		}
	}
	return stats
}
