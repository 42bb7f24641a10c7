package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phelan/cairn/internal/discover"
	"github.com/phelan/cairn/internal/model"
	"github.com/phelan/cairn/internal/pysrc"
)

// DefaultClients are the HTTP client module names whose method calls are
// treated as outbound requests.
var DefaultClients = map[string]struct{}{
	"requests": {},
	"httpx":    {},
}

// paramKeywords and bodyKeywords are the keyword arguments that signal a
// query-parameter mechanism and a request body respectively.
var (
	paramKeywords = []string{"params"}
	bodyKeywords  = []string{"json", "data"}
)

// Extractor finds outbound HTTP call sites. Clients defaults to
// DefaultClients when nil, so alternate client vocabularies can be tested
// without touching process-wide state.
type Extractor struct {
	Clients map[string]struct{}
}

// ExtractCalls scans every Python file under root for calls of the form
// client.method(path, ...) where client is a recognized module reference
// (requests.get(...)) or reaches one through a single attribute hop
// (httpx.client.get(...)). Calls whose path argument cannot be statically
// reduced to a string are dropped: they cannot be checked and are never
// reported.
func (e Extractor) ExtractCalls(root string) ([]model.CallSite, error) {
	clients := e.Clients
	if clients == nil {
		clients = DefaultClients
	}

	files, err := discover.Files(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	parser := pysrc.NewParser()
	var calls []model.CallSite

	for _, rel := range files {
		source, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		tree, err := pysrc.Parse(parser, source)
		if err != nil {
			continue
		}

		relSlash := filepath.ToSlash(rel)
		pysrc.Walk(tree.RootNode(), func(n *sitter.Node) {
			if call, ok := e.callSite(n, relSlash, source, clients); ok {
				calls = append(calls, call)
			}
		})
		tree.Close()
	}

	return calls, nil
}

func (e Extractor) callSite(n *sitter.Node, file string, source []byte, clients map[string]struct{}) (model.CallSite, bool) {
	object, attr, ok := pysrc.AttributeCall(n, source)
	if !ok || object == nil || !model.IsHTTPMethod(attr) {
		return model.CallSite{}, false
	}

	if !isClientRef(object, source, clients) {
		return model.CallSite{}, false
	}

	arg := pysrc.FirstPositionalArg(n)
	if arg == nil {
		return model.CallSite{}, false
	}
	raw, ok := pysrc.TemplateString(arg, source)
	if !ok || raw == "" {
		return model.CallSite{}, false
	}

	hasParams, hasBody := false, false
	for _, kw := range pysrc.KeywordArgs(n, source) {
		if slices.Contains(paramKeywords, kw) {
			hasParams = true
		}
		if slices.Contains(bodyKeywords, kw) {
			hasBody = true
		}
	}

	return model.CallSite{
		File:      file,
		Line:      pysrc.Line(n),
		Method:    strings.ToUpper(attr),
		Path:      stripHost(raw),
		HasParams: hasParams,
		HasBody:   hasBody,
	}, true
}

// isClientRef reports whether the callee object is a recognized client
// module, directly (requests) or one attribute deep (httpx.client).
func isClientRef(object *sitter.Node, source []byte, clients map[string]struct{}) bool {
	switch object.Type() {
	case "identifier":
		_, ok := clients[pysrc.NodeText(object, source)]
		return ok
	case "attribute":
		inner := object.ChildByFieldName("object")
		if inner == nil || inner.Type() != "identifier" {
			return false
		}
		_, ok := clients[pysrc.NodeText(inner, source)]
		return ok
	}
	return false
}

// stripHost reduces an absolute URL to its path component; relative paths
// pass through unchanged.
func stripHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	return parsed.Path
}

// ExtractCalls runs the default extractor.
func ExtractCalls(root string) ([]model.CallSite, error) {
	return Extractor{}.ExtractCalls(root)
}
