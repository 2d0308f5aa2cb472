package analyzer

import (
	"strings"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// systemPattern names one operating-system noise artifact and how to
// recognize it in a decomposed path.
type systemPattern struct {
	name  string
	match func(d *pathname.Decomposed) bool
}

// systemPatterns is the fixed match order; the first hit labels the entry.
// The macOS resource fork directory and the version-control directory match
// the directory itself and everything beneath it.
var systemPatterns = []systemPattern{
	{name: "__MACOSX", match: func(d *pathname.Decomposed) bool {
		return hasSegment(d.Full, "__MACOSX")
	}},
	{name: ".DS_Store", match: func(d *pathname.Decomposed) bool {
		return d.Base == ".DS_Store"
	}},
	{name: "Thumbs.db", match: func(d *pathname.Decomposed) bool {
		return strings.EqualFold(d.Base, "Thumbs.db")
	}},
	{name: "desktop.ini", match: func(d *pathname.Decomposed) bool {
		return strings.EqualFold(d.Base, "desktop.ini")
	}},
	{name: ".git", match: func(d *pathname.Decomposed) bool {
		return hasSegment(d.Full, ".git")
	}},
}

// hasSegment reports whether any slash-separated segment equals name.
func hasSegment(path, name string) bool {
	for _, seg := range pathname.Segments(path) {
		if seg == name {
			return true
		}
	}
	return false
}

// detectSystemFiles labels entries matching the noise patterns. The warning
// array stops at the cap; the returned total keeps counting past it.
func detectSystemFiles(entries []domain.ArchiveEntry) ([]domain.SystemFileWarning, int) {
	var warnings []domain.SystemFileWarning
	total := 0
	for i := range entries {
		entry := &entries[i]
		d := pathname.Decompose(entry.Path, entry.IsDirectory)
		for _, pattern := range systemPatterns {
			if !pattern.match(&d) {
				continue
			}
			total++
			if total <= maxSystemFileItems {
				warnings = append(warnings, domain.SystemFileWarning{
					Path:    entry.Path,
					Pattern: pattern.name,
				})
			}
			break
		}
	}
	return warnings, total
}
