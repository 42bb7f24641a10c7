// Package capability enumerates what a cairn-managed repository offers:
// the CLI commands, the artifact-server endpoints, and the decision
// records currently present.
package capability

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phelan/cairn/internal/adr"
)

// Catalog is the machine-readable capability listing served at
// /mcp/capabilities and printed by `cairn capabilities`.
type Catalog struct {
	CLI       []string `json:"cli"`
	Endpoints []string `json:"mcp"`
	ADRs      []string `json:"adrs"`
}

// Build assembles the catalog for the repository rooted at base. The CLI
// and endpoint listings are fixed; the ADR listing reflects the records
// found under docs/adr.
func Build(base string) Catalog {
	var adrs []string
	for _, path := range adr.List(filepath.Join(base, "docs", "adr")) {
		adrs = append(adrs, filepath.Base(path))
	}

	return Catalog{
		CLI: []string{
			"cairn docs",
			"cairn check",
			"cairn check-api",
			"cairn adr <title>",
			"cairn rfe <adr-id> <description>",
			"cairn scaffold",
			"cairn capabilities",
			"cairn serve",
		},
		Endpoints: []string{
			"GET /mcp/system",
			"GET /mcp/components/{name}",
			"GET /mcp/apis/{name}",
			"GET /mcp/adrs",
			"GET /mcp/capabilities",
		},
		ADRs: adrs,
	}
}

// Export writes the catalog as indented JSON to outPath, creating parent
// directories as needed.
func Export(outPath string, catalog Catalog) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
