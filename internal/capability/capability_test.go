package capability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildListsADRs(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	adrDir := filepath.Join(base, "docs", "adr")
	if err := os.MkdirAll(adrDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"ADR-0002-b.md", "ADR-0001-a.md"} {
		if err := os.WriteFile(filepath.Join(adrDir, name), []byte("# adr\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cat := Build(base)
	if len(cat.ADRs) != 2 || cat.ADRs[0] != "ADR-0001-a.md" {
		t.Errorf("adrs = %v, want sorted records", cat.ADRs)
	}
	if len(cat.CLI) == 0 || len(cat.Endpoints) == 0 {
		t.Error("cli and endpoint listings must not be empty")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	outPath := filepath.Join(base, "ctx", "capabilities.json")

	if err := Export(outPath, Build(base)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var got Catalog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(got.CLI) == 0 {
		t.Error("exported catalog has no CLI entries")
	}
}
