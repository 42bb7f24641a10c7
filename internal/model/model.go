// Package model defines the core value types shared across cairn's analyzers.
package model

import "strings"

// HTTPMethods is the set of HTTP methods recognized in route decorators,
// outbound client calls, and contract documents. Keys are lower case.
var HTTPMethods = map[string]struct{}{
	"get":     {},
	"post":    {},
	"put":     {},
	"patch":   {},
	"delete":  {},
	"options": {},
	"head":    {},
}

// IsHTTPMethod reports whether name (in any case) is a recognized HTTP method.
func IsHTTPMethod(name string) bool {
	_, ok := HTTPMethods[strings.ToLower(name)]
	return ok
}

// Endpoint is a route registration extracted from a decorator such as
// @app.get("/users/{id}").
type Endpoint struct {
	Method  string `yaml:"method"`
	Path    string `yaml:"path"`
	Handler string `yaml:"function"`
}

// Operation holds the contract requirements for one (method, path) pair,
// as declared in an interface-contract document.
type Operation struct {
	QueryRequired []string
	BodyRequired  bool
}

// CallSite is an outbound HTTP client invocation found in source code.
// Path is derived from a string or f-string literal; interpolated segments
// collapse to the {_} placeholder.
type CallSite struct {
	File      string
	Line      int
	Method    string
	Path      string
	HasParams bool
	HasBody   bool
}

// Rule is a compliance rule extracted from a decision record. Pattern and
// path-filter defaults are applied at evaluation time, not at load time.
type Rule struct {
	ID          string       `yaml:"id"`
	Description string       `yaml:"description"`
	Patterns    RulePatterns `yaml:"patterns"`
	Paths       RulePaths    `yaml:"paths"`
}

// RulePatterns holds the substring patterns a rule matches file content
// against. Any triggers on the first hit; All requires every pattern.
type RulePatterns struct {
	Any []string `yaml:"any"`
	All []string `yaml:"all"`
}

// RulePaths scopes a rule to part of the tree. A nil Include or Exclude
// means "use the conventional default" (**/*.py and tests/** respectively);
// an explicitly empty list disables that filter.
type RulePaths struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ViolationKind tags a Violation record.
type ViolationKind string

const (
	RuleBreach         ViolationKind = "rule"
	UnknownEndpoint    ViolationKind = "unknown-endpoint"
	MissingBody        ViolationKind = "missing-body"
	MissingQueryParams ViolationKind = "missing-query-params"
)

// Violation is a single finding from either checking pipeline. Rule and
// Description are set for rule breaches; Method, Path and Required for
// contract breaches. File is always set.
type Violation struct {
	Kind        ViolationKind
	Rule        string
	Description string
	File        string
	Line        int
	Method      string
	Path        string
	Required    []string
}

// ComponentRecord describes one directory's worth of source: the types it
// defines, its public functions, and the root identifiers it imports.
type ComponentRecord struct {
	Module    string   `yaml:"module"`
	Classes   []string `yaml:"classes"`
	Functions []string `yaml:"functions"`
	Imports   []string `yaml:"imports"`
}

// SystemInfo is the coarse service fingerprint produced by the system
// extractor. Interactions is reserved for cross-service edges and is
// always empty for now.
type SystemInfo struct {
	Version      string   `yaml:"version"`
	Service      string   `yaml:"service"`
	Frameworks   []string `yaml:"frameworks"`
	Interactions []string `yaml:"interactions"`
}
