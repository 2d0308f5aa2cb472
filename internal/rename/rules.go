package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// Pre-compiled character class for remove_special
var specialCharsPattern = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)

// ruleContext carries the per-entry values a rule may substitute: the
// zero-based scoped counter, the entry's current extension and parent, and
// the run's wall-clock time so every pattern rule of one run renders the
// same date.
type ruleContext struct {
	index  int
	ext    string
	parent string
	depth  int
	now    time.Time
}

// applyFunc transforms a stem and returns the stem and extension the next
// rule sees. Most rules pass the extension through untouched; the case
// rules fold it along with the stem, and a pattern rule that renders {ext}
// consumes it for good.
type applyFunc func(stem string, rc ruleContext) (string, string)

// compiledGroup is a rule group with its valid rules compiled to closures.
// Malformed rules are dropped at compile time and logged once, so the hot
// per-entry loop never re-validates.
type compiledGroup struct {
	group domain.RuleGroup
	rules []applyFunc
}

// compileGroups compiles every group, keeping group order. Groups whose
// rules are all malformed still participate: a matching entry consumes the
// group's counter even when no rule changes its stem.
func compileGroups(groups []domain.RuleGroup) []compiledGroup {
	compiled := make([]compiledGroup, 0, len(groups))
	for _, group := range groups {
		cg := compiledGroup{group: group, rules: make([]applyFunc, 0, len(group.Rules))}
		for _, rule := range group.Rules {
			fn, ok := compileRule(rule)
			if !ok {
				log.Debug().
					Str("group_id", group.ID).
					Str("rule_type", string(rule.Type)).
					Msg("Skipping malformed rename rule")
				continue
			}
			cg.rules = append(cg.rules, fn)
		}
		compiled = append(compiled, cg)
	}
	return compiled
}

// matches reports whether the group applies to the entry.
func (g *compiledGroup) matches(entry *domain.ArchiveEntry, d *pathname.Decomposed) bool {
	return matchesScope(&g.group, entry, d)
}

// apply runs the group's rules in order over one stem. Each rule consumes
// the stem and extension the previous rule produced.
func (g *compiledGroup) apply(stem, ext string, rc ruleContext) (string, string) {
	for _, fn := range g.rules {
		rc.ext = ext
		stem, ext = fn(stem, rc)
	}
	return stem, ext
}

// compileRule validates one rule variant and returns its closure. A false
// result means the rule is malformed and must be skipped, never that the
// run should fail.
func compileRule(rule domain.Rule) (applyFunc, bool) {
	switch rule.Type {
	case domain.RuleReplace:
		// Empty find would substitute at every position; the rule is
		// defined as a no-op in that case.
		if rule.Find == "" {
			return nil, false
		}
		find, replace := rule.Find, rule.Replace
		return func(stem string, rc ruleContext) (string, string) {
			return strings.ReplaceAll(stem, find, replace), rc.ext
		}, true

	case domain.RulePrefix:
		text := rule.Text
		return func(stem string, rc ruleContext) (string, string) {
			return text + stem, rc.ext
		}, true

	case domain.RuleSuffix:
		text := rule.Text
		return func(stem string, rc ruleContext) (string, string) {
			return stem + text, rc.ext
		}, true

	case domain.RuleLowercase:
		return func(stem string, rc ruleContext) (string, string) {
			return strings.ToLower(stem), strings.ToLower(rc.ext)
		}, true

	case domain.RuleUppercase:
		return func(stem string, rc ruleContext) (string, string) {
			return strings.ToUpper(stem), strings.ToUpper(rc.ext)
		}, true

	case domain.RuleRemoveSpecial:
		return func(stem string, rc ruleContext) (string, string) {
			return specialCharsPattern.ReplaceAllString(stem, ""), rc.ext
		}, true

	case domain.RuleNumbering:
		start := 1
		if rule.Start != nil {
			if *rule.Start < 0 {
				return nil, false
			}
			start = *rule.Start
		}
		padding := 1
		if rule.Padding != nil {
			if *rule.Padding < 0 {
				return nil, false
			}
			if *rule.Padding > padding {
				padding = *rule.Padding
			}
		}
		separator := "-"
		if rule.Separator != nil {
			separator = *rule.Separator
		}
		atStart := rule.Position == domain.PositionStart
		return func(stem string, rc ruleContext) (string, string) {
			number := fmt.Sprintf("%0*d", padding, rc.index+start)
			if atStart {
				return number + separator + stem, rc.ext
			}
			return stem + separator + number, rc.ext
		}, true

	case domain.RulePattern:
		if rule.Template == "" {
			return nil, false
		}
		template := rule.Template
		ownsExtension := strings.Contains(template, "{ext}")
		return func(stem string, rc ruleContext) (string, string) {
			replacer := strings.NewReplacer(
				"{name}", stem,
				"{index}", fmt.Sprintf("%03d", rc.index+1),
				"{ext}", strings.TrimPrefix(rc.ext, "."),
				"{parent}", pathname.LastSegment(rc.parent),
				"{date}", rc.now.Format("2006-01-02"),
				"{depth}", strconv.Itoa(rc.depth),
			)
			ext := rc.ext
			if ownsExtension {
				ext = ""
			}
			return replacer.Replace(template), ext
		}, true

	default:
		return nil, false
	}
}
