package domain

import "time"

// ScopeType selects which entries of a listing a rule group applies to
type ScopeType string

const (
	// ScopeGlobal applies to every file; directories are untouched
	ScopeGlobal ScopeType = "global"
	// ScopeFolders applies to every directory; files are untouched
	ScopeFolders ScopeType = "folders"
	// ScopeExtension applies to files whose extension equals the scope value
	ScopeExtension ScopeType = "extension"
	// ScopeFolder applies to entries at or below a directory path
	ScopeFolder ScopeType = "folder"
)

// RuleType identifies one rename transformation variant
type RuleType string

const (
	RuleReplace       RuleType = "replace"
	RulePrefix        RuleType = "prefix"
	RuleSuffix        RuleType = "suffix"
	RuleLowercase     RuleType = "lowercase"
	RuleUppercase     RuleType = "uppercase"
	RuleRemoveSpecial RuleType = "remove_special"
	RuleNumbering     RuleType = "numbering"
	RulePattern       RuleType = "pattern"
)

// Numbering positions
const (
	PositionStart = "start"
	PositionEnd   = "end"
)

// Rule is one rename transformation. Type selects the variant; the other
// fields are a union and only the fields of the selected variant are read.
// A rule whose variant fields are missing or invalid is skipped at
// application time rather than failing the batch.
// @Description Single rename transformation applied to an entry's stem
type Rule struct {
	Type RuleType `json:"type" yaml:"type" validate:"required" example:"replace" enums:"replace,prefix,suffix,lowercase,uppercase,remove_special,numbering,pattern"`

	// replace
	Find    string `json:"find,omitempty" yaml:"find,omitempty" validate:"max=1024" example:"IMG"`
	Replace string `json:"replace,omitempty" yaml:"replace,omitempty" validate:"max=1024" example:"Photo"`

	// prefix, suffix
	Text string `json:"text,omitempty" yaml:"text,omitempty" validate:"max=1024" example:"vacation_"`

	// numbering
	Start     *int    `json:"start,omitempty" yaml:"start,omitempty" validate:"omitempty,min=0,max=1000000" example:"1"`
	Padding   *int    `json:"padding,omitempty" yaml:"padding,omitempty" validate:"omitempty,min=1,max=10" example:"3"`
	Separator *string `json:"separator,omitempty" yaml:"separator,omitempty" validate:"omitempty,max=16" example:"_"`
	Position  string  `json:"position,omitempty" yaml:"position,omitempty" validate:"omitempty,oneof=start end" example:"end"`

	// pattern
	Template string `json:"template,omitempty" yaml:"template,omitempty" validate:"max=1024" example:"{name}-{index}"`
}

// RuleGroup is an ordered list of rules bound to a scope. Groups execute in
// request order; rules execute in array order, each consuming the stem the
// previous rule produced. The ID is an opaque client token and keys the
// group's numbering counter for the whole run.
// @Description Scoped, ordered list of rename rules
type RuleGroup struct {
	ID         string    `json:"id" yaml:"id" validate:"required,min=1,max=128" example:"group-1"`
	Scope      ScopeType `json:"scope" yaml:"scope" validate:"required,oneof=global folders extension folder" example:"extension" enums:"global,folders,extension,folder"`
	ScopeValue string    `json:"scopeValue,omitempty" yaml:"scopeValue,omitempty" validate:"max=4096" example:".jpg"`
	Exclude    bool      `json:"exclude,omitempty" yaml:"exclude,omitempty" example:"false"`
	Rules      []Rule    `json:"rules" yaml:"rules" validate:"omitempty,dive"`
}

// RenamePair maps one listing entry to its renamed path. FinalPath echoes
// OriginalPath verbatim when nothing applied to the entry.
type RenamePair struct {
	OriginalPath string `json:"originalPath" example:"Photos/IMG 2024.jpg"`
	FinalPath    string `json:"finalPath" example:"Photos/Photo 2024.jpg"`
}

// RenamePlan is the ordered result of one rename run over a listing.
type RenamePlan struct {
	Pairs        []RenamePair `json:"pairs"`
	ChangedCount int          `json:"changedCount"`
	Timestamp    time.Time    `json:"timestamp"`
}
