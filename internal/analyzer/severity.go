package analyzer

import "github.com/zipmint/archive-renamer/internal/domain"

// Warning volume past which length or character findings escalate to high.
const highVolumeThreshold = 5

// classify reduces a warning set to one severity. Strict priority, first
// match wins. Capped categories are judged by their full totals so a report
// keeps its class past the array caps; the length and character arrays are
// uncapped, so their lengths are the totals.
func classify(w *domain.WarningSet) domain.Severity {
	switch {
	case w.ConflictCount > 0:
		return domain.SeverityCritical
	case len(w.PathLength) > highVolumeThreshold || len(w.InvalidChars) > highVolumeThreshold:
		return domain.SeverityHigh
	case w.DuplicateCount > 0 || len(w.Unicode) > 0:
		return domain.SeverityMedium
	case w.SystemFileCount > 0:
		return domain.SeverityLow
	default:
		return domain.SeverityNone
	}
}
