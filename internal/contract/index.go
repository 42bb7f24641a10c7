// Package contract validates outbound HTTP call sites against declared
// interface contracts: it indexes contract documents by normalized path
// and re-scans the source tree for client invocations to check against
// that index.
package contract

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/model"
	"github.com/phelan/cairn/internal/urlpath"
)

type opKey struct {
	method string
	path   string
}

// Index is a queryable catalog of declared API operations keyed by
// (method, normalized path).
type Index struct {
	ops map[opKey]model.Operation
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{ops: make(map[opKey]model.Operation)}
}

// Add inserts or overwrites the operation for (method, path). The path is
// normalized, so /users/{id} and /users/123 share one entry.
func (ix *Index) Add(method, path string, queryRequired []string, bodyRequired bool) {
	required := append([]string(nil), queryRequired...)
	sort.Strings(required)
	ix.ops[opKey{strings.ToUpper(method), urlpath.Normalize(path)}] = model.Operation{
		QueryRequired: required,
		BodyRequired:  bodyRequired,
	}
}

// Match looks up the operation for (method, path) after normalization.
// An absent entry is reported via ok, not an error.
func (ix *Index) Match(method, path string) (model.Operation, bool) {
	op, ok := ix.ops[opKey{strings.ToUpper(method), urlpath.Normalize(path)}]
	return op, ok
}

// Len returns the number of indexed operations.
func (ix *Index) Len() int {
	return len(ix.ops)
}

// specDoc is the subset of an interface-contract document the index
// needs. JSON contracts parse through the same structure, since YAML is a
// superset of JSON.
type specDoc struct {
	Paths map[string]map[string]specOp `yaml:"paths"`
}

type specOp struct {
	Parameters  []specParam `yaml:"parameters"`
	RequestBody *specBody   `yaml:"requestBody"`
}

type specParam struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required"`
}

type specBody struct {
	Required bool `yaml:"required"`
}

// LoadSpecs reads every contract document (.yaml, .yml, .json) in specDir
// into an index. Malformed documents are skipped; a missing or unreadable
// directory yields an empty index rather than an error, so a repo without
// contracts simply reports every call as unknown.
func LoadSpecs(specDir string) *Index {
	ix := NewIndex()

	entries, err := os.ReadDir(specDir)
	if err != nil {
		return ix
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(specDir, entry.Name()))
		if err != nil {
			continue
		}
		var doc specDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			continue
		}

		for path, ops := range doc.Paths {
			for method, op := range ops {
				if !model.IsHTTPMethod(method) {
					continue
				}
				var queryRequired []string
				for _, p := range op.Parameters {
					if p.In == "query" && p.Required {
						queryRequired = append(queryRequired, p.Name)
					}
				}
				bodyRequired := op.RequestBody != nil && op.RequestBody.Required
				ix.Add(method, path, queryRequired, bodyRequired)
			}
		}
	}

	return ix
}
