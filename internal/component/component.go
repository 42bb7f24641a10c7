// Package component extracts per-directory architecture metadata: defined
// classes, public functions, and imported dependency roots.
package component

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/discover"
	"github.com/phelan/cairn/internal/model"
	"github.com/phelan/cairn/internal/pysrc"
)

// Analyze groups the Python files under root by their immediate parent
// directory and extracts a ComponentRecord per directory. The record for
// the root directory itself is keyed "root". Files that fail to parse are
// skipped; directories with no parseable files are omitted.
func Analyze(root string) (map[string]model.ComponentRecord, error) {
	files, err := discover.Files(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	byDir := make(map[string][]string)
	for _, rel := range files {
		dir := filepath.Dir(rel)
		byDir[dir] = append(byDir[dir], rel)
	}

	parser := pysrc.NewParser()
	comps := make(map[string]model.ComponentRecord)

	for dir, group := range byDir {
		rec := model.ComponentRecord{
			Module:    filepath.ToSlash(dir),
			Classes:   []string{},
			Functions: []string{},
			Imports:   []string{},
		}
		importRoots := make(map[string]struct{})
		parsed := false

		for _, rel := range group {
			source, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				continue
			}
			tree, err := pysrc.Parse(parser, source)
			if err != nil {
				continue
			}
			parsed = true

			collectDefinitions(tree.RootNode(), source, &rec)
			for _, mod := range pysrc.ImportedModules(tree.RootNode(), source) {
				importRoots[pysrc.ImportRoot(mod)] = struct{}{}
			}
			tree.Close()
		}

		if !parsed {
			continue
		}

		for imp := range importRoots {
			rec.Imports = append(rec.Imports, imp)
		}
		sort.Strings(rec.Imports)

		name := filepath.Base(dir)
		if dir == "." {
			name = "root"
		}
		comps[name] = rec
	}

	return comps, nil
}

// collectDefinitions appends the top-level class names and public function
// names of a module to rec. A leading underscore on a function name is the
// privacy signal; classes are recorded regardless.
func collectDefinitions(moduleNode *sitter.Node, source []byte, rec *model.ComponentRecord) {
	for i := 0; i < int(moduleNode.NamedChildCount()); i++ {
		def := pysrc.Unwrap(moduleNode.NamedChild(i))
		name := pysrc.DefinitionName(def, source)
		if name == "" {
			continue
		}
		switch def.Type() {
		case "class_definition":
			rec.Classes = append(rec.Classes, name)
		case "function_definition":
			if !strings.HasPrefix(name, "_") {
				rec.Functions = append(rec.Functions, name)
			}
		}
	}
}

// Export writes one YAML document per component into outDir, named after
// the component.
func Export(outDir string, comps map[string]model.ComponentRecord) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	for name, rec := range comps {
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding component %s: %w", name, err)
		}
		path := filepath.Join(outDir, name+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
