// Package scaffold writes starter configuration that wires cairn's checks
// into pre-commit and CI.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

const preCommitStub = `repos:
  - repo: local
    hooks:
      - id: cairn-adr
        name: cairn ADR compliance
        entry: cairn
        args: ["check", "-root", "."]
        language: system
        pass_filenames: false
        stages: [commit]
      - id: cairn-api
        name: cairn API compliance
        entry: cairn
        args: ["check-api", "-root", ".", "-specdir", ".ai-context/contracts"]
        language: system
        pass_filenames: false
        stages: [commit]
      - id: cairn-docs
        name: cairn generate design context
        entry: cairn
        args: ["docs", "-root", ".", "-out", ".ai-context"]
        language: system
        pass_filenames: false
        stages: [push]
`

const ciStub = `name: cairn CI
on: [push, pull_request]
jobs:
  compliance:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: stable
      - name: Install cairn
        run: go install github.com/phelan/cairn@latest
      - name: Generate design context
        run: cairn docs -root . -out .ai-context
      - name: ADR compliance
        run: cairn check -root .
      - name: API compliance
        run: cairn check-api -root . -specdir .ai-context/contracts
`

// WritePreCommit writes a .pre-commit-config.yaml stub into dir. Existing
// files are not overwritten.
func WritePreCommit(dir string) (string, error) {
	return writeStub(filepath.Join(dir, ".pre-commit-config.yaml"), preCommitStub)
}

// WriteCI writes a GitHub Actions workflow stub into dir. Existing files
// are not overwritten.
func WriteCI(dir string) (string, error) {
	workflows := filepath.Join(dir, ".github", "workflows")
	if err := os.MkdirAll(workflows, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", workflows, err)
	}
	return writeStub(filepath.Join(workflows, "cairn.yml"), ciStub)
}

func writeStub(path, content string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
