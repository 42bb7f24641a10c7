package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/phelan/cairn/internal/apisurface"
	"github.com/phelan/cairn/internal/capability"
	"github.com/phelan/cairn/internal/component"
	"github.com/phelan/cairn/internal/system"
)

// runDocs implements `cairn docs`: run the extractors over a source tree
// and write the resulting artifacts to the context directory.
func runDocs(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cairn docs", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		root    string
		out     string
		title   string
		docsVer string
	)
	fs.StringVar(&root, "root", ".", "repository root to analyze")
	fs.StringVar(&out, "out", ".ai-context", "output directory for generated context")
	fs.StringVar(&title, "title", "", "API title for contract documents (defaults to the root directory name)")
	fs.StringVar(&docsVer, "doc-version", "1.0.0", "API version for contract documents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	info, err := system.Analyze(root)
	if err != nil {
		return fmt.Errorf("analyzing system: %w", err)
	}
	if err := system.Export(filepath.Join(out, "system.yaml"), info); err != nil {
		return err
	}

	comps, err := component.Analyze(root)
	if err != nil {
		return fmt.Errorf("analyzing components: %w", err)
	}
	if err := component.Export(filepath.Join(out, "components"), comps); err != nil {
		return err
	}

	apis, err := apisurface.Extract(root)
	if err != nil {
		return fmt.Errorf("extracting api surface: %w", err)
	}
	if title == "" {
		title = "API for " + info.Service
	}
	if err := apisurface.ExportOpenAPI(filepath.Join(out, "contracts"), apis, title, docsVer); err != nil {
		return err
	}

	if err := capability.Export(filepath.Join(out, "cairn", "capabilities.json"), capability.Build(root)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Generated context in %s/ (%d components, %d files with endpoints)\n",
		out, len(comps), len(apis))
	return nil
}
