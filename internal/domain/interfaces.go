package domain

import (
	"context"
	"io"
)

// Renamer defines the contract for batch rename runs. Implementations are
// pure: the same listing and groups always produce the same plan, and the
// input slice is never mutated.
type Renamer interface {
	Rename(entries []ArchiveEntry, groups []RuleGroup) *RenamePlan
}

// Analyzer defines the contract for pre-flight listing analysis. Reports
// are computed fresh on every call.
type Analyzer interface {
	Analyze(entries []ArchiveEntry) *AnalysisReport
}

// ListingReader parses an uploaded container into an ordered entry snapshot
// without extracting any content.
type ListingReader interface {
	ReadListing(ctx context.Context, r io.ReaderAt, size int64) ([]ArchiveEntry, error)
}

// SessionRepository defines the contract for upload session storage
type SessionRepository interface {
	Create(ctx context.Context, name string, entries []ArchiveEntry) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error

	// Acquire returns the live session with its run lock held so rename and
	// analyze runs over the same listing never interleave. A session whose
	// lock is already held is reported busy rather than waited on. The
	// returned release function is idempotent.
	Acquire(ctx context.Context, id string) (*Session, func(), error)

	// SavePlan records the latest rename plan on a session. Passing a nil
	// plan clears the recorded plan.
	SavePlan(ctx context.Context, id string, plan *RenamePlan) error

	// Health and monitoring
	HealthCheck(ctx context.Context) HealthStatus
	GetStats(ctx context.Context) map[string]any
}

// PresetRepository defines the contract for preset storage operations
type PresetRepository interface {
	GetAllPresets(ctx context.Context) ([]Preset, error)
	GetPresetByID(ctx context.Context, id string) (*Preset, error)
	CreatePreset(ctx context.Context, preset *Preset) error
	UpdatePreset(ctx context.Context, preset *Preset) error
	DeletePreset(ctx context.Context, id string) error

	// Health and monitoring
	HealthCheck(ctx context.Context) HealthStatus
	GetStats(ctx context.Context) map[string]any
}

// HealthChecker defines the interface for system health monitoring
type HealthChecker interface {
	CheckHealth(ctx context.Context) SystemHealth
	CheckComponent(ctx context.Context, component string) HealthStatus
}

// Validator defines the interface for request-level input validation
type Validator interface {
	ValidateEntries(entries []ArchiveEntry) error
	ValidateRuleGroups(groups []RuleGroup) error
	ValidatePreset(preset *Preset) error
}
