package domain

import "time"

// Platform names an operating-system family for portability warnings
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "macos"
)

// Severity classifies an analysis report, highest applicable level wins
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ReservedNameViolation is the sentinel recorded in an invalid-character
// warning when the base name collides with a reserved device name rather
// than containing a forbidden character.
const ReservedNameViolation = "RESERVED_NAME"

// Unicode issue kinds
const (
	UnicodeNFCMismatch     = "nfc_nfd_mismatch"
	UnicodeInvalidSequence = "invalid_sequence"
)

// Conflict types reported by the pre-rule simulation
const (
	ConflictCaseSensitivity = "case_sensitivity"
)

// ArchiveStats aggregates size and shape figures for a listing
// @Description Aggregate statistics of an archive listing
type ArchiveStats struct {
	FileCount      int      `json:"fileCount" example:"42"`
	DirectoryCount int      `json:"directoryCount" example:"5"`
	TotalSize      int64    `json:"totalSize" example:"10485760"`
	MaxDepth       int      `json:"maxDepth" example:"3"`
	LargestFile    *FileRef `json:"largestFile,omitempty"`
}

// PathLengthWarning flags a path exceeding a platform limit. A single path
// can produce one warning per exceeded limit.
type PathLengthWarning struct {
	Path     string   `json:"path"`
	Length   int      `json:"length" example:"312"`
	Limit    int      `json:"limit" example:"260"`
	Platform Platform `json:"platform" example:"windows"`
}

// InvalidCharWarning flags a base name that a platform family rejects.
// InvalidChars lists the offending characters in first-seen order; a
// reserved device name is reported as the RESERVED_NAME sentinel instead.
type InvalidCharWarning struct {
	Path         string   `json:"path"`
	Platform     Platform `json:"platform" example:"windows"`
	InvalidChars []string `json:"invalidChars" example:"<,>"`
}

// UnicodeWarning flags a path that is not NFC-normalized or not valid UTF-8.
type UnicodeWarning struct {
	Path  string `json:"path"`
	Issue string `json:"issue" example:"nfc_nfd_mismatch" enums:"nfc_nfd_mismatch,invalid_sequence"`
}

// DuplicateWarning reports one group of same-directory entries whose base
// names collide case-insensitively. Paths carries at most the first ten
// originals; Count is always the full group size.
type DuplicateWarning struct {
	Parent string   `json:"parent" example:"Photos"`
	Name   string   `json:"name" example:"img_001.jpg"`
	Paths  []string `json:"paths"`
	Count  int      `json:"count" example:"12"`
}

// SystemFileWarning flags operating-system noise carried inside the archive.
type SystemFileWarning struct {
	Path    string `json:"path" example:"__MACOSX/._photo.jpg"`
	Pattern string `json:"pattern" example:"__MACOSX"`
}

// ConflictWarning reports names that would collide on a case-insensitive
// filesystem. ConflictingFiles holds the distinct original spellings in
// listing order; ResultName is the folded name they all map to.
type ConflictWarning struct {
	Type             string   `json:"type" example:"case_sensitivity"`
	ConflictingFiles []string `json:"conflictingFiles"`
	ResultName       string   `json:"resultName" example:"readme.md"`
}

// WarningSet groups every detector's findings. The duplicates, systemFiles
// and conflicts arrays are capped; their *Count fields always carry the
// full totals and are the only reliable tally for capped categories.
type WarningSet struct {
	PathLength      []PathLengthWarning  `json:"pathTooLong"`
	InvalidChars    []InvalidCharWarning `json:"invalidChars"`
	Unicode         []UnicodeWarning     `json:"unicode"`
	Duplicates      []DuplicateWarning   `json:"duplicates"`
	DuplicateCount  int                  `json:"duplicateCount" example:"14"`
	SystemFiles     []SystemFileWarning  `json:"systemFiles"`
	SystemFileCount int                  `json:"systemFileCount" example:"31"`
	Conflicts       []ConflictWarning    `json:"conflicts"`
	ConflictCount   int                  `json:"conflictCount" example:"2"`
}

// AnalysisReport is the outcome of one pre-flight pass over a listing.
// Reports are recomputed fresh on every run and never cached.
// @Description Pre-flight analysis of an archive listing
type AnalysisReport struct {
	Stats     ArchiveStats `json:"stats"`
	Warnings  WarningSet   `json:"warnings"`
	Severity  Severity     `json:"severity" example:"medium" enums:"none,low,medium,high,critical"`
	Timestamp time.Time    `json:"timestamp" example:"2024-06-01T12:00:00Z"`
}
