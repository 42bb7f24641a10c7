package adr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const recordTemplate = `# ADR-%04d: %s

## Status
%s

## Context
Describe the forces at play and constraints.

## Decision
State the decision clearly.

## Consequences
- Positive:
- Negative:

## Rule (optional)
` + "```yaml" + `
cairn_rule:
  id: ADR-%04d
  description: Optional rule.
  patterns:
    any: []
    all: []
  paths:
    include: ['**/*.py']
    exclude: ['tests/**']
` + "```" + `
`

// Bootstrap creates the next numbered decision record under dir from the
// standard template, including an empty rule block ready to fill in.
// Returns the path of the new record.
func Bootstrap(dir, title, status string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	existing, err := filepath.Glob(filepath.Join(dir, "ADR-*.md"))
	if err != nil {
		return "", fmt.Errorf("listing records: %w", err)
	}
	next := len(existing) + 1

	path := filepath.Join(dir, fmt.Sprintf("ADR-%04d-%s.md", next, slugify(title)))
	content := fmt.Sprintf(recordTemplate, next, title, status, next)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

const rfeTemplate = `# RFE for %s

## Context

## Proposed Change
%s

## Justification

## Reviewers
- [ ] Engineering Lead
- [ ] Architecture Owner

## Decision
Pending review.
`

// BootstrapRFE creates a request-for-enhancement document under dir for a
// proposed change that conflicts with an existing record.
func BootstrapRFE(dir, adrID, description string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	slug := slugify(description)
	if len(slug) > 60 {
		slug = slug[:60]
	}
	path := filepath.Join(dir, fmt.Sprintf("RFE-%s-%s.md", adrID, slug))
	if err := os.WriteFile(path, []byte(fmt.Sprintf(rfeTemplate, adrID, description)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// List returns the record files under dir in id order.
func List(dir string) []string {
	paths, err := filepath.Glob(filepath.Join(dir, "ADR-*.md"))
	if err != nil {
		return nil
	}
	sort.Strings(paths)
	return paths
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
