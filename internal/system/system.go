// Package system produces a coarse service fingerprint by detecting which
// web frameworks a source tree imports.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/discover"
	"github.com/phelan/cairn/internal/model"
	"github.com/phelan/cairn/internal/pysrc"
)

// DefaultFrameworks are the import-name prefixes recognized as web
// frameworks. Membership is prefix-based: fastapi.responses counts as
// fastapi.
var DefaultFrameworks = []string{"fastapi", "flask", "django"}

// Analyzer detects frameworks from a configurable vocabulary. The zero
// vocabulary is replaced by DefaultFrameworks.
type Analyzer struct {
	Frameworks []string
}

// Analyze scans every import in the tree under root and returns the system
// fingerprint. The service name is the root directory's own name.
func (a Analyzer) Analyze(root string) (model.SystemInfo, error) {
	known := a.Frameworks
	if known == nil {
		known = DefaultFrameworks
	}

	files, err := discover.Files(root)
	if err != nil {
		return model.SystemInfo{}, fmt.Errorf("discovering files: %w", err)
	}

	parser := pysrc.NewParser()
	found := make(map[string]struct{})

	for _, rel := range files {
		source, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		tree, err := pysrc.Parse(parser, source)
		if err != nil {
			continue
		}
		for _, mod := range pysrc.ImportedModules(tree.RootNode(), source) {
			for _, fw := range known {
				if strings.HasPrefix(mod, fw) {
					found[fw] = struct{}{}
				}
			}
		}
		tree.Close()
	}

	frameworks := make([]string, 0, len(found))
	for fw := range found {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return model.SystemInfo{
		Version:      "1.0",
		Service:      filepath.Base(abs),
		Frameworks:   frameworks,
		Interactions: []string{},
	}, nil
}

// Analyze runs the default analyzer.
func Analyze(root string) (model.SystemInfo, error) {
	return Analyzer{}.Analyze(root)
}

// Export writes the system fingerprint as YAML to outPath, creating parent
// directories as needed.
func Export(outPath string, info model.SystemInfo) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding system info: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
