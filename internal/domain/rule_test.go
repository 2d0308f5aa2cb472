package domain

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Feature: github.com/zipmint/archive-renamer, Property 14: Scope enum enforcement
func TestProperty_ScopeEnumEnforcement(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("For any rule group whose scope is not one of the four known scopes, validation rejects the request", prop.ForAll(
		func(scope string) bool {
			v := NewInputValidator(0, 0, 0)
			group := RuleGroup{ID: "group-1", Scope: ScopeType(scope), ScopeValue: ".jpg"}
			err := v.ValidateRuleGroups([]RuleGroup{group})

			switch scope {
			case "global", "folders", "extension", "folder":
				return err == nil
			default:
				return err != nil
			}
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: github.com/zipmint/archive-renamer, Property 15: Listing entry cap enforcement
func TestProperty_EntryCapEnforcement(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("For any listing, validation succeeds exactly when the entry count is within the configured cap", prop.ForAll(
		func(count int) bool {
			v := NewInputValidator(100, 0, 0)
			entries := make([]ArchiveEntry, count)
			for i := range entries {
				entries[i] = ArchiveEntry{Path: fmt.Sprintf("dir/file-%d.txt", i), Size: int64(i)}
			}
			err := v.ValidateEntries(entries)
			if count == 0 || count > 100 {
				return err != nil
			}
			return err == nil
		},
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidateEntriesRejectsNegativeSize(t *testing.T) {
	v := NewInputValidator(0, 0, 0)

	err := v.ValidateEntries([]ArchiveEntry{{Path: "a.txt", Size: -1}})
	require.Error(t, err)

	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, ErrValidationFailed, appErr.Code)
	assert.Equal(t, 422, appErr.StatusCode)
}

func TestValidateRuleGroupsRequiresScopeValue(t *testing.T) {
	v := NewInputValidator(0, 0, 0)

	tests := []struct {
		name    string
		group   RuleGroup
		wantErr bool
	}{
		{
			name:    "extension scope without value",
			group:   RuleGroup{ID: "g1", Scope: ScopeExtension},
			wantErr: true,
		},
		{
			name:    "folder scope without value",
			group:   RuleGroup{ID: "g2", Scope: ScopeFolder},
			wantErr: true,
		},
		{
			name:    "global scope without value",
			group:   RuleGroup{ID: "g3", Scope: ScopeGlobal},
			wantErr: false,
		},
		{
			name:    "folders scope without value",
			group:   RuleGroup{ID: "g4", Scope: ScopeFolders},
			wantErr: false,
		},
		{
			name:    "missing group id",
			group:   RuleGroup{Scope: ScopeGlobal},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRuleGroups([]RuleGroup{tt.group})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePreset(t *testing.T) {
	v := NewInputValidator(0, 0, 0)

	valid := &Preset{
		ID:   "123e4567-e89b-12d3-a456-426614174000",
		Name: "photo-cleanup",
		Groups: []RuleGroup{
			{ID: "g1", Scope: ScopeGlobal, Rules: []Rule{{Type: RuleLowercase}}},
		},
	}
	assert.NoError(t, v.ValidatePreset(valid))

	assert.Error(t, v.ValidatePreset(nil), "nil preset")
	assert.Error(t, v.ValidatePreset(&Preset{Name: "", Groups: valid.Groups}), "empty name")
	assert.Error(t, v.ValidatePreset(&Preset{Name: "bad/name", Groups: valid.Groups}), "slash in name")
	assert.Error(t, v.ValidatePreset(&Preset{Name: "ok", Groups: nil}), "no groups")
}
