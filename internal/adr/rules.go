// Package adr manages architecture decision records: extracting the
// compliance rules they embed, checking source files against those rules,
// and bootstrapping new record documents.
package adr

import (
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/model"
)

// RuleMarker is the top-level key that identifies a rule block inside a
// fenced yaml section of a decision record.
const RuleMarker = "cairn_rule"

var fencedYAML = regexp.MustCompile("(?s)```yaml\n(.*?)```")

// ExtractRules parses every fenced yaml block in a decision record's text
// and returns the rule from each block carrying the rule marker.
// Malformed blocks are skipped.
func ExtractRules(text string) []model.Rule {
	var rules []model.Rule
	for _, m := range fencedYAML.FindAllStringSubmatch(text, -1) {
		var block struct {
			Rule *model.Rule `yaml:"cairn_rule"`
		}
		if err := yaml.Unmarshal([]byte(m[1]), &block); err != nil {
			continue
		}
		if block.Rule != nil {
			rules = append(rules, *block.Rule)
		}
	}
	return rules
}

// LoadRules collects every rule embedded in the ADR-*.md records under
// dir. Records that cannot be read are skipped. Rules are independent of
// their source document once loaded.
func LoadRules(dir string) []model.Rule {
	paths, err := filepath.Glob(filepath.Join(dir, "ADR-*.md"))
	if err != nil {
		return nil
	}

	var rules []model.Rule
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		rules = append(rules, ExtractRules(string(data))...)
	}
	return rules
}
