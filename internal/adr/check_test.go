package adr

import (
	"path/filepath"
	"testing"

	"github.com/phelan/cairn/internal/model"
)

func anyRule(id string, patterns ...string) model.Rule {
	return model.Rule{
		ID:          id,
		Description: "test rule",
		Patterns:    model.RulePatterns{Any: patterns},
	}
}

func TestCheckPathAnyPattern(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "src/bad.py", "x = eval('1+1')\n")

	rules := []model.Rule{anyRule("ADR-0001", "eval(")}
	violations := CheckPath(root, filepath.Join(root, "src", "bad.py"), rules)
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(violations), violations)
	}
	v := violations[0]
	if v.Kind != model.RuleBreach || v.Rule != "ADR-0001" {
		t.Errorf("violation = %+v, want ADR-0001 rule breach", v)
	}
	if v.File != "src/bad.py" {
		t.Errorf("file = %q, want src/bad.py", v.File)
	}
}

func TestCheckPathMissingTarget(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	rules := []model.Rule{anyRule("ADR-0001", "eval(")}
	violations := CheckPath(root, filepath.Join(root, "absent.py"), rules)
	if len(violations) != 0 {
		t.Errorf("got %v, want none", violations)
	}
}

// All-patterns are a prerequisite: with all of them present any-patterns
// trigger; with one absent the rule stays silent even if an any-pattern
// matches.
func TestCheckPathPatternPrecedence(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "has_all.py", "a\nb\nc\n")
	writeFile(t, root, "missing_b.py", "a\nc\n")

	rules := []model.Rule{{
		ID:       "ADR-0002",
		Patterns: model.RulePatterns{All: []string{"a", "b"}, Any: []string{"c"}},
	}}

	if got := CheckPath(root, filepath.Join(root, "has_all.py"), rules); len(got) != 1 {
		t.Errorf("has_all.py: got %v, want one violation", got)
	}
	if got := CheckPath(root, filepath.Join(root, "missing_b.py"), rules); len(got) != 0 {
		t.Errorf("missing_b.py: got %v, want none", got)
	}
}

func TestCheckPathAllPatternsOnly(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "both.py", "import pickle\npickle.loads(data)\n")
	writeFile(t, root, "one.py", "import pickle\n")

	rules := []model.Rule{{
		ID:       "ADR-0003",
		Patterns: model.RulePatterns{All: []string{"import pickle", "pickle.loads"}},
	}}

	if got := CheckPath(root, filepath.Join(root, "both.py"), rules); len(got) != 1 {
		t.Errorf("both.py: got %v, want one violation", got)
	}
	if got := CheckPath(root, filepath.Join(root, "one.py"), rules); len(got) != 0 {
		t.Errorf("one.py: got %v, want none", got)
	}
}

// A file matching both an include and an exclude glob is never checked.
func TestCheckPathExcludeBeforeInclude(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "tests/test_bad.py", "eval('x')\n")

	rule := anyRule("ADR-0001", "eval(")
	rule.Paths = model.RulePaths{
		Include: []string{"**/*.py"},
		Exclude: []string{"tests/**"},
	}

	violations := CheckPath(root, filepath.Join(root, "tests", "test_bad.py"), []model.Rule{rule})
	if len(violations) != 0 {
		t.Errorf("got %v, want none", violations)
	}
}

// Default path filters apply at evaluation time when a rule declares none.
func TestCheckPathDefaultFilters(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "src/bad.py", "eval('x')\n")
	writeFile(t, root, "tests/test_bad.py", "eval('x')\n")
	writeFile(t, root, "script.sh", "eval x\n")

	rules := []model.Rule{anyRule("ADR-0001", "eval")}

	if got := CheckPath(root, filepath.Join(root, "src", "bad.py"), rules); len(got) != 1 {
		t.Errorf("src/bad.py: got %v, want one violation", got)
	}
	if got := CheckPath(root, filepath.Join(root, "tests", "test_bad.py"), rules); len(got) != 0 {
		t.Errorf("tests file should be excluded by default, got %v", got)
	}
	if got := CheckPath(root, filepath.Join(root, "script.sh"), rules); len(got) != 0 {
		t.Errorf("non-python file should not match default include, got %v", got)
	}
}

// An explicitly empty include list is not replaced by the default: it
// means "no include constraint".
func TestCheckPathExplicitEmptyInclude(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "config.toml", "password = 'hunter2'\n")

	rule := anyRule("ADR-0004", "password")
	rule.Paths = model.RulePaths{Include: []string{}, Exclude: []string{}}

	violations := CheckPath(root, filepath.Join(root, "config.toml"), []model.Rule{rule})
	if len(violations) != 1 {
		t.Errorf("got %v, want one violation", violations)
	}
}

func TestCheckRepo(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "docs/adr/ADR-0001-no-eval.md", recordWithRule)
	writeFile(t, root, "src/bad.py", "eval('1+1')\n")
	writeFile(t, root, "src/good.py", "x = 1\n")
	writeFile(t, root, "tests/test_eval.py", "eval('1+1')\n")
	writeFile(t, root, ".venv/pkg/vendored.py", "eval('1+1')\n")

	violations, err := CheckRepo(root, nil)
	if err != nil {
		t.Fatalf("CheckRepo: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(violations), violations)
	}
	if violations[0].Rule != "ADR-0001" || violations[0].File != "src/bad.py" {
		t.Errorf("violation = %+v, want ADR-0001 at src/bad.py", violations[0])
	}
}
