// Package apisurface extracts declared HTTP endpoints from route-decorator
// patterns (@app.get("/path"), @router.post(...)) and renders them as
// OpenAPI 3.0 contract documents.
package apisurface

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/discover"
	"github.com/phelan/cairn/internal/model"
	"github.com/phelan/cairn/internal/pysrc"
)

// Extract scans every Python file under root for functions carrying
// route decorators and returns the endpoints grouped by repo-relative file
// path. A decorator qualifies when it is a call on an attribute whose name
// is an HTTP method; the receiver object (app, router, ...) is not
// inspected. Files declaring no endpoints are omitted.
func Extract(root string) (map[string][]model.Endpoint, error) {
	files, err := discover.Files(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	parser := pysrc.NewParser()
	apis := make(map[string][]model.Endpoint)

	for _, rel := range files {
		source, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		tree, err := pysrc.Parse(parser, source)
		if err != nil {
			continue
		}
		endpoints := fileEndpoints(tree.RootNode(), source)
		tree.Close()

		if len(endpoints) > 0 {
			apis[filepath.ToSlash(rel)] = endpoints
		}
	}

	return apis, nil
}

func fileEndpoints(root *sitter.Node, source []byte) []model.Endpoint {
	var endpoints []model.Endpoint
	pysrc.Walk(root, func(n *sitter.Node) {
		if n.Type() != "decorated_definition" {
			return
		}
		def := pysrc.Unwrap(n)
		if def.Type() != "function_definition" {
			return
		}
		handler := pysrc.DefinitionName(def, source)
		if handler == "" {
			return
		}
		for _, dec := range pysrc.Decorators(n) {
			if ep, ok := routeEndpoint(dec, handler, source); ok {
				endpoints = append(endpoints, ep)
			}
		}
	})
	return endpoints
}

// routeEndpoint interprets one decorator expression as a route
// registration. The declared path is the first positional string literal;
// when absent (or dynamic) the path defaults to "/" + the handler name.
func routeEndpoint(dec *sitter.Node, handler string, source []byte) (model.Endpoint, bool) {
	_, attr, ok := pysrc.AttributeCall(dec, source)
	if !ok || !model.IsHTTPMethod(attr) {
		return model.Endpoint{}, false
	}

	path := ""
	if arg := pysrc.FirstPositionalArg(dec); arg != nil {
		if s, ok := pysrc.StringLiteral(arg, source); ok {
			path = s
		}
	}
	if path == "" {
		path = "/" + handler
	}

	return model.Endpoint{
		Method:  strings.ToUpper(attr),
		Path:    path,
		Handler: handler,
	}, true
}

// openapiDoc mirrors the subset of OpenAPI 3.0 the exporter emits.
type openapiDoc struct {
	OpenAPI string                          `yaml:"openapi"`
	Info    openapiInfo                     `yaml:"info"`
	Paths   map[string]map[string]openapiOp `yaml:"paths"`
}

type openapiInfo struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

type openapiOp struct {
	OperationID string                     `yaml:"operationId"`
	Responses   map[string]openapiResponse `yaml:"responses"`
}

type openapiResponse struct {
	Description string `yaml:"description"`
}

// ExportOpenAPI writes one contract document per source file into outDir,
// named <stem>.openapi.yaml after the file's base name. Files sharing a
// base name across directories overwrite one another; the last write
// wins. Operations carry only an operationId and a success response;
// parameter and schema details are left to manual contract authoring.
func ExportOpenAPI(outDir string, apis map[string][]model.Endpoint, title, version string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	for file, endpoints := range apis {
		doc := openapiDoc{
			OpenAPI: "3.0.0",
			Info:    openapiInfo{Title: title, Version: version},
			Paths:   make(map[string]map[string]openapiOp),
		}
		for _, ep := range endpoints {
			method := strings.ToLower(ep.Method)
			if doc.Paths[ep.Path] == nil {
				doc.Paths[ep.Path] = make(map[string]openapiOp)
			}
			doc.Paths[ep.Path][method] = openapiOp{
				OperationID: ep.Handler,
				Responses:   map[string]openapiResponse{"200": {Description: "Success"}},
			}
		}

		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding contract for %s: %w", file, err)
		}
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		path := filepath.Join(outDir, stem+".openapi.yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
