package domain

import "time"

// Preset is a named, reusable list of rule groups persisted as a YAML
// document. A rename request may reference a preset instead of inlining
// its groups.
// @Description Named, persisted list of rule groups
type Preset struct {
	ID          string      `json:"id" yaml:"id" validate:"required,min=1,max=128" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string      `json:"name" yaml:"name" validate:"required,min=1,max=128" example:"photo-cleanup"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" validate:"max=1024" example:"Strips camera prefixes and numbers JPEGs"`
	Groups      []RuleGroup `json:"groups" yaml:"groups" validate:"required,min=1,dive"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"created_at,omitempty" example:"2024-06-01T12:00:00Z"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updated_at,omitempty" example:"2024-06-01T12:00:00Z"`

	// Path to the preset file on disk (internal, not serialized)
	FilePath string `json:"-" yaml:"-"`
}
