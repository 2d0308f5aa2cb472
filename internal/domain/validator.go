package domain

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"
)

// InputValidator implements request-level validation: size caps and shape
// checks applied before a listing or rule set reaches the engines. The
// engines themselves tolerate malformed rules and entries per the rename
// error policy; the validator only rejects requests that would cost
// unbounded work or that are unambiguously broken.
type InputValidator struct {
	maxEntries       int
	maxGroups        int
	maxRulesPerGroup int
	// Pre-compiled name pattern
	presetNamePattern *regexp.Regexp
}

// Validation defaults, used when a cap is left at zero
const (
	DefaultMaxEntries       = 10000
	DefaultMaxGroups        = 50
	DefaultMaxRulesPerGroup = 50
)

// NewInputValidator creates a new input validator with the given caps;
// zero caps fall back to the defaults
func NewInputValidator(maxEntries, maxGroups, maxRulesPerGroup int) *InputValidator {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxGroups <= 0 {
		maxGroups = DefaultMaxGroups
	}
	if maxRulesPerGroup <= 0 {
		maxRulesPerGroup = DefaultMaxRulesPerGroup
	}
	return &InputValidator{
		maxEntries:        maxEntries,
		maxGroups:         maxGroups,
		maxRulesPerGroup:  maxRulesPerGroup,
		presetNamePattern: regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 _.-]*$`),
	}
}

// NewValidator creates a new input validator instance with the given caps
func NewValidator(maxEntries, maxGroups, maxRulesPerGroup int) Validator {
	return NewInputValidator(maxEntries, maxGroups, maxRulesPerGroup)
}

// ValidateEntries bounds the total work of a listing before it reaches the
// engines. Structurally odd entries (empty paths, traversal segments) are
// not rejected here; the engines exclude or flag them per entry.
func (v *InputValidator) ValidateEntries(entries []ArchiveEntry) error {
	if len(entries) == 0 {
		return NewAppError(ErrValidationFailed, "Listing must contain at least one entry", 422, map[string]any{"field": "entries"})
	}
	if len(entries) > v.maxEntries {
		return NewAppError(ErrArchiveTooLarge, fmt.Sprintf("Listing exceeds the entry limit (max %d)", v.maxEntries), 413, map[string]any{
			"entries":     len(entries),
			"max_entries": v.maxEntries,
		})
	}
	for i, entry := range entries {
		if entry.Size < 0 {
			return NewAppError(ErrValidationFailed, "Entry size cannot be negative", 422, map[string]any{
				"index": i,
				"path":  entry.Path,
			})
		}
	}
	return nil
}

// ValidateRuleGroups checks group caps and scope shape. Individual rules are
// deliberately not validated here: a malformed rule is a documented no-op.
func (v *InputValidator) ValidateRuleGroups(groups []RuleGroup) error {
	if len(groups) > v.maxGroups {
		return NewAppError(ErrValidationFailed, fmt.Sprintf("Too many rule groups (max %d)", v.maxGroups), 422, map[string]any{
			"groups":     len(groups),
			"max_groups": v.maxGroups,
		})
	}
	for i, group := range groups {
		if group.ID == "" {
			return NewAppError(ErrValidationFailed, "Rule group ID is required", 422, map[string]any{"index": i, "field": "id"})
		}
		if err := v.validateScope(i, group); err != nil {
			return err
		}
		if len(group.Rules) > v.maxRulesPerGroup {
			return NewAppError(ErrValidationFailed, fmt.Sprintf("Too many rules in group (max %d)", v.maxRulesPerGroup), 422, map[string]any{
				"index":     i,
				"group_id":  group.ID,
				"rules":     len(group.Rules),
				"max_rules": v.maxRulesPerGroup,
			})
		}
	}
	return nil
}

// ValidatePreset validates a preset document before it is persisted
func (v *InputValidator) ValidatePreset(preset *Preset) error {
	if preset == nil {
		return NewAppError(ErrValidationFailed, "Preset cannot be nil", 422, nil)
	}
	if preset.Name == "" {
		return NewAppError(ErrValidationFailed, "Preset name is required", 422, map[string]any{"field": "name"})
	}
	if !utf8.ValidString(preset.Name) {
		return NewAppError(ErrValidationFailed, "Preset name must be valid UTF-8", 422, map[string]any{"field": "name"})
	}
	if len(preset.Name) > 128 {
		return NewAppError(ErrValidationFailed, "Preset name too long (max 128 characters)", 422, map[string]any{
			"field":      "name",
			"length":     len(preset.Name),
			"max_length": 128,
		})
	}
	if !v.presetNamePattern.MatchString(preset.Name) {
		return NewAppError(ErrValidationFailed, "Preset name contains unsupported characters", 422, map[string]any{
			"field": "name",
			"value": preset.Name,
		})
	}
	if len(preset.Groups) == 0 {
		return NewAppError(ErrValidationFailed, "Preset must contain at least one rule group", 422, map[string]any{"field": "groups"})
	}
	return v.ValidateRuleGroups(preset.Groups)
}

// validateScope checks the scope enum and its value requirements
func (v *InputValidator) validateScope(index int, group RuleGroup) error {
	allowedScopes := []ScopeType{ScopeGlobal, ScopeFolders, ScopeExtension, ScopeFolder}
	if !slices.Contains(allowedScopes, group.Scope) {
		return NewAppError(ErrValidationFailed, "Invalid rule group scope", 422, map[string]any{
			"index":          index,
			"group_id":       group.ID,
			"field":          "scope",
			"value":          string(group.Scope),
			"allowed_values": allowedScopes,
		})
	}
	switch group.Scope {
	case ScopeExtension, ScopeFolder:
		if group.ScopeValue == "" {
			return NewAppError(ErrValidationFailed, "Scope value is required for extension and folder scopes", 422, map[string]any{
				"index":    index,
				"group_id": group.ID,
				"field":    "scopeValue",
			})
		}
	}
	return nil
}
