package adr

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phelan/cairn/internal/discover"
	"github.com/phelan/cairn/internal/model"
)

// Conventional path-filter defaults, applied each time a rule is
// evaluated rather than once at load time. A rule that declares an
// explicitly empty include or exclude list opts out of the default.
var (
	defaultInclude = []string{"**/*.py"}
	defaultExclude = []string{"tests/**"}
)

// rulesDir is where LoadRules looks when a check is invoked without a
// preloaded rule set.
const rulesDir = "docs/adr"

// CheckPath evaluates every rule against a single file. The target path
// is opened as given, so a relative target resolves against the working
// directory; root is used only to compute the repo-relative path the
// filters and violations see. A nonexistent target yields no violations.
// When rules is nil the rule set is loaded from root's docs/adr directory.
func CheckPath(root, target string, rules []model.Rule) []model.Violation {
	if rules == nil {
		rules = LoadRules(filepath.Join(root, rulesDir))
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil
	}
	text := string(data)

	rel := relTo(root, target)

	var out []model.Violation
	for _, rule := range rules {
		if !pathSelected(rel, rule.Paths) {
			continue
		}
		if !violates(text, rule.Patterns) {
			continue
		}
		out = append(out, model.Violation{
			Kind:        model.RuleBreach,
			Rule:        rule.ID,
			Description: rule.Description,
			File:        rel,
		})
	}
	return out
}

// CheckRepo evaluates the rule set against every Python file under root,
// loading rules once when not supplied. Violations follow file-discovery
// order.
func CheckRepo(root string, rules []model.Rule) ([]model.Violation, error) {
	if rules == nil {
		rules = LoadRules(filepath.Join(root, rulesDir))
	}

	files, err := discover.Files(root)
	if err != nil {
		return nil, err
	}

	var out []model.Violation
	for _, rel := range files {
		out = append(out, CheckPath(root, filepath.Join(root, rel), rules)...)
	}
	return out, nil
}

// pathSelected applies a rule's path filters to a slash-separated
// relative path. Exclusion is checked before inclusion: an excluded file
// is never selected regardless of include patterns.
func pathSelected(rel string, paths model.RulePaths) bool {
	include := paths.Include
	if include == nil {
		include = defaultInclude
	}
	exclude := paths.Exclude
	if exclude == nil {
		exclude = defaultExclude
	}

	for _, pat := range exclude {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// violates applies the pattern precedence: configured all-patterns are a
// prerequisite; any-patterns then trigger on the first hit; with only
// all-patterns configured, having found them all is itself the trigger.
func violates(text string, patterns model.RulePatterns) bool {
	if len(patterns.All) > 0 {
		for _, p := range patterns.All {
			if !strings.Contains(text, p) {
				return false
			}
		}
	}
	for _, p := range patterns.Any {
		if strings.Contains(text, p) {
			return true
		}
	}
	return len(patterns.All) > 0
}

// relTo rewrites target relative to root with forward slashes so glob
// patterns see repo-style paths.
func relTo(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
