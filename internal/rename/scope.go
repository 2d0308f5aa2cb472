package rename

import (
	"strings"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// matchesScope decides whether a rule group applies to one decomposed entry.
// Top-level container directories never match any scope; unknown scopes
// match nothing rather than failing the run.
func matchesScope(group *domain.RuleGroup, entry *domain.ArchiveEntry, d *pathname.Decomposed) bool {
	if entry.IsDirectory && d.TopLevel {
		return false
	}

	switch group.Scope {
	case domain.ScopeGlobal:
		return !entry.IsDirectory
	case domain.ScopeFolders:
		return entry.IsDirectory
	case domain.ScopeExtension:
		if entry.IsDirectory {
			return false
		}
		want := normalizeExtension(group.ScopeValue)
		if want == "" {
			return false
		}
		match := strings.EqualFold(d.Ext, want)
		if group.Exclude {
			match = !match
		}
		return match
	case domain.ScopeFolder:
		prefix := pathname.Normalize(group.ScopeValue)
		return prefix != "" && strings.HasPrefix(d.Full, prefix)
	default:
		return false
	}
}

// normalizeExtension gives a scope value its leading dot, "" stays "".
func normalizeExtension(value string) string {
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(value, ".") {
		return "." + value
	}
	return value
}
