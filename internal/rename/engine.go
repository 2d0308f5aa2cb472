package rename

import (
	"strings"
	"time"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// Engine applies scoped rule groups to an archive listing in two phases:
// directories first, committing every directory rename, then files, which
// inherit their ancestors' renames before their own base names are
// rewritten. Runs are pure functions of (entries, groups); the engine holds
// no per-run state and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a rename engine using the wall clock for date tokens.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Rename computes the final path of every listing entry under the given
// rule groups. Entries are processed in listing order, never sorted. Each
// group keeps one monotonically increasing counter per group id, shared
// across both phases and reset at the start of the run. Entries without a
// path are excluded and produce no pair; every other entry produces exactly
// one pair, echoing its original path verbatim when nothing applied.
func (e *Engine) Rename(entries []domain.ArchiveEntry, groups []domain.RuleGroup) *domain.RenamePlan {
	compiled := compileGroups(groups)
	counters := make(map[string]int, len(groups))
	now := e.now()

	mappings := dirMappings{}
	finals := make([]string, len(entries))

	// Phase 1: directories, in listing order. A directory inherits renames
	// of ancestors committed earlier in the phase, then its own base is
	// rewritten. Top-level container rows pass through unrenamed but still
	// appear in the output set.
	for i := range entries {
		entry := &entries[i]
		if entry.Path == "" || !entry.IsDirectory {
			continue
		}
		d := pathname.Decompose(entry.Path, true)
		if d.Base == "" || d.TopLevel {
			finals[i] = entry.Path
			continue
		}

		newParent, substituted := mappings.rewriteParent(d.Parent)
		stem := e.applyGroups(compiled, counters, entry, &d, newParent, "", now)
		if stem == "" {
			stem = d.Base
		}

		if !substituted && stem == d.Base {
			finals[i] = entry.Path
			continue
		}
		final := pathname.Rebuild(newParent, stem, d.TrailingSlash)
		if final == "" {
			finals[i] = entry.Path
			continue
		}
		finals[i] = final
		mappings.register(d.Full, strings.TrimSuffix(final, "/"))
	}

	// Phase 2: files. The parent path is rewritten through the committed
	// directory mappings first, then the base name runs the groups.
	for i := range entries {
		entry := &entries[i]
		if entry.Path == "" || entry.IsDirectory {
			continue
		}
		d := pathname.Decompose(entry.Path, false)
		if d.Base == "" {
			finals[i] = entry.Path
			continue
		}

		newParent, substituted := mappings.rewriteParent(d.Parent)
		name := e.applyGroups(compiled, counters, entry, &d, newParent, d.Ext, now)
		if name == "" {
			name = d.Base
		}

		if !substituted && name == d.Base {
			finals[i] = entry.Path
			continue
		}
		final := pathname.Rebuild(newParent, name, d.TrailingSlash)
		if final == "" {
			final = entry.Path
		}
		finals[i] = final
	}

	pairs := make([]domain.RenamePair, 0, len(entries))
	changed := 0
	for i := range entries {
		if entries[i].Path == "" {
			continue
		}
		pair := domain.RenamePair{OriginalPath: entries[i].Path, FinalPath: finals[i]}
		pairs = append(pairs, pair)
		if pair.FinalPath != pair.OriginalPath {
			changed++
		}
	}

	return &domain.RenamePlan{Pairs: pairs, ChangedCount: changed, Timestamp: now}
}

// applyGroups runs every matching group over one entry's stem and returns
// the resulting base name (stem plus whatever extension survived). A group
// consumes its counter on every scope match, whether or not its rules
// change the stem.
func (e *Engine) applyGroups(compiled []compiledGroup, counters map[string]int, entry *domain.ArchiveEntry, d *pathname.Decomposed, parent, ext string, now time.Time) string {
	stem := d.Stem
	for gi := range compiled {
		g := &compiled[gi]
		if !g.matches(entry, d) {
			continue
		}
		index := counters[g.group.ID]
		counters[g.group.ID] = index + 1

		rc := ruleContext{
			index:  index,
			parent: parent,
			depth:  len(pathname.Segments(parent)),
			now:    now,
		}
		stem, ext = g.apply(stem, ext, rc)
	}
	return stem + ext
}

// dirMapping records one committed directory rename keyed by the original
// normalized path.
type dirMapping struct {
	oldPath string
	newPath string
}

// dirMappings is the ordered set of committed directory renames. Lookup is
// a scan for the longest matching prefix; among equal-length candidates the
// first-registered mapping is authoritative.
type dirMappings struct {
	entries []dirMapping
}

func (m *dirMappings) register(oldPath, newPath string) {
	m.entries = append(m.entries, dirMapping{oldPath: oldPath, newPath: newPath})
}

// rewriteParent substitutes the longest committed directory rename that
// prefixes the parent path on a segment boundary. Returns the parent
// unchanged when no mapping applies.
func (m *dirMappings) rewriteParent(parent string) (string, bool) {
	if parent == "" || len(m.entries) == 0 {
		return parent, false
	}
	best := -1
	bestLen := -1
	for i := range m.entries {
		old := m.entries[i].oldPath
		if len(old) <= bestLen {
			continue
		}
		if parent == old || strings.HasPrefix(parent, old+"/") {
			best = i
			bestLen = len(old)
		}
	}
	if best < 0 {
		return parent, false
	}
	mapping := m.entries[best]
	return mapping.newPath + strings.TrimPrefix(parent, mapping.oldPath), true
}
