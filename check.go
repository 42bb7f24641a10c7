package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/phelan/cairn/internal/adr"
	"github.com/phelan/cairn/internal/contract"
	"github.com/phelan/cairn/internal/model"
)

// runCheck implements `cairn check`: ADR rule compliance for a single
// target file or, with no target, the whole repository.
func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var root string
	fs.StringVar(&root, "root", ".", "repository root")

	if err := fs.Parse(reorderArgs(args, map[string]bool{"-root": true, "--root": true})); err != nil {
		return err
	}

	var violations []model.Violation
	if fs.NArg() > 0 {
		violations = adr.CheckPath(root, fs.Arg(0), nil)
	} else {
		var err error
		violations, err = adr.CheckRepo(root, nil)
		if err != nil {
			return fmt.Errorf("checking repository: %w", err)
		}
	}

	if len(violations) == 0 {
		_, _ = fmt.Fprintln(stdout, "No ADR violations detected.")
		return nil
	}

	printViolations(stdout, violations)
	return fmt.Errorf("%d violation(s) found", len(violations))
}

// runCheckAPI implements `cairn check-api`: validate outbound HTTP calls
// against the contract documents in the spec directory.
func runCheckAPI(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn check-api", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		root    string
		specDir string
	)
	fs.StringVar(&root, "root", ".", "repository root to scan for HTTP calls")
	fs.StringVar(&specDir, "specdir", ".ai-context/contracts", "directory with contract documents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	violations, err := contract.CheckUsage(root, specDir)
	if err != nil {
		return fmt.Errorf("checking api usage: %w", err)
	}

	if len(violations) == 0 {
		_, _ = fmt.Fprintln(stdout, "API calls comply with documented endpoints.")
		return nil
	}

	printViolations(stdout, violations)
	return fmt.Errorf("%d violation(s) found", len(violations))
}

var violationHeader = color.New(color.FgRed, color.Bold)

func printViolations(w io.Writer, violations []model.Violation) {
	_, _ = violationHeader.Fprintln(w, "Violations:")
	for _, v := range violations {
		_, _ = fmt.Fprintf(w, " - %s\n", formatViolation(v))
	}
}

func formatViolation(v model.Violation) string {
	switch v.Kind {
	case model.RuleBreach:
		return fmt.Sprintf("%s: %s -> %s", v.Rule, v.Description, v.File)
	case model.UnknownEndpoint:
		return fmt.Sprintf("%s:%d -> %s %s is not in any contract", v.File, v.Line, v.Method, v.Path)
	case model.MissingBody:
		return fmt.Sprintf("%s:%d -> %s %s requires a body (json= or data=)", v.File, v.Line, v.Method, v.Path)
	case model.MissingQueryParams:
		return fmt.Sprintf("%s:%d -> %s %s missing query params [%s]",
			v.File, v.Line, v.Method, v.Path, strings.Join(v.Required, ", "))
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.File)
}
