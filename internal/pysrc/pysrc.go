// Package pysrc parses Python source files with tree-sitter and provides
// the node-level helpers the extractors share: walking, literal extraction,
// import collection, and call-argument inspection.
package pysrc

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// NewParser creates a fresh Python parser. Parsers are not thread-safe;
// each traversal should use its own.
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return p
}

// Parse parses source into a syntax tree. The caller owns the tree and
// must Close it.
func Parse(parser *sitter.Parser, source []byte) (*sitter.Tree, error) {
	return parser.ParseCtx(context.Background(), nil, source)
}

// NodeText returns the source text of a node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// Walk visits node and every named descendant in pre-order.
func Walk(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		Walk(node.NamedChild(i), visit)
	}
}

// Line returns the 1-based line number of a node.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// DefinitionName returns the name of a function_definition or
// class_definition node, or "" if absent.
func DefinitionName(def *sitter.Node, source []byte) string {
	name := def.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return NodeText(name, source)
}

// Unwrap resolves a decorated_definition to the definition it wraps;
// other nodes are returned unchanged.
func Unwrap(node *sitter.Node) *sitter.Node {
	if node.Type() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

// Decorators returns the decorator expression nodes attached to a
// decorated_definition, outermost first. Returns nil for plain definitions.
func Decorators(node *sitter.Node) []*sitter.Node {
	if node.Type() != "decorated_definition" {
		return nil
	}
	var decs []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if expr := child.NamedChild(0); expr != nil {
			decs = append(decs, expr)
		}
	}
	return decs
}

// AttributeCall decomposes a call whose callee is an attribute access,
// returning the object node and the attribute name. ok is false for any
// other callee shape.
func AttributeCall(call *sitter.Node, source []byte) (object *sitter.Node, attr string, ok bool) {
	if call.Type() != "call" {
		return nil, "", false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "attribute" {
		return nil, "", false
	}
	attrNode := fn.ChildByFieldName("attribute")
	if attrNode == nil {
		return nil, "", false
	}
	return fn.ChildByFieldName("object"), NodeText(attrNode, source), true
}

// FirstPositionalArg returns the first non-keyword argument of a call,
// or nil if there is none.
func FirstPositionalArg(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "keyword_argument" {
			continue
		}
		return arg
	}
	return nil
}

// KeywordArgs returns the keyword argument names of a call.
func KeywordArgs(call *sitter.Node, source []byte) []string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}
		if name := arg.ChildByFieldName("name"); name != nil {
			names = append(names, NodeText(name, source))
		}
	}
	return names
}

// StringLiteral extracts the inner text of a plain string node. ok is false
// for non-string nodes and for f-strings containing interpolations, whose
// value cannot be resolved statically.
func StringLiteral(node *sitter.Node, source []byte) (string, bool) {
	if node.Type() != "string" {
		return "", false
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "interpolation" {
			return "", false
		}
	}
	start, end, ok := innerSpan(node, source)
	if !ok {
		return "", false
	}
	return string(source[start:end]), true
}

// TemplateString extracts the inner text of a string or f-string node,
// collapsing every interpolated segment to the {_} placeholder. ok is false
// for non-string nodes.
func TemplateString(node *sitter.Node, source []byte) (string, bool) {
	if node.Type() != "string" {
		return "", false
	}
	start, end, ok := innerSpan(node, source)
	if !ok {
		return "", false
	}

	var b strings.Builder
	cursor := start
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "interpolation" {
			continue
		}
		if child.StartByte() > cursor {
			b.Write(source[cursor:child.StartByte()])
		}
		b.WriteString("{_}")
		cursor = child.EndByte()
	}
	if cursor < end {
		b.Write(source[cursor:end])
	}
	return b.String(), true
}

// innerSpan locates the byte range between a string node's quotes,
// skipping any prefix letters (f, r, b and combinations).
func innerSpan(node *sitter.Node, source []byte) (uint32, uint32, bool) {
	raw := NodeText(node, source)
	i := 0
	for i < len(raw) && raw[i] != '\'' && raw[i] != '"' {
		i++
	}
	if i == len(raw) {
		return 0, 0, false
	}
	quote := 1
	if strings.HasPrefix(raw[i:], `"""`) || strings.HasPrefix(raw[i:], "'''") {
		quote = 3
	}
	start := node.StartByte() + uint32(i+quote)
	end := node.EndByte() - uint32(quote)
	if end < start {
		return 0, 0, false
	}
	return start, end, true
}

// ImportedModules collects the dotted module names referenced by every
// import statement in the tree, in both the "import X.Y" and
// "from X.Y import Z" forms. Pure relative imports (from . import x)
// reference no named module and are skipped.
func ImportedModules(root *sitter.Node, source []byte) []string {
	var mods []string
	Walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					mods = append(mods, NodeText(child, source))
				case "aliased_import":
					if name := child.ChildByFieldName("name"); name != nil {
						mods = append(mods, NodeText(name, source))
					}
				}
			}
		case "import_from_statement":
			mod := n.ChildByFieldName("module_name")
			if mod == nil {
				return
			}
			switch mod.Type() {
			case "dotted_name":
				mods = append(mods, NodeText(mod, source))
			case "relative_import":
				// from .pkg import x still names pkg
				for i := 0; i < int(mod.NamedChildCount()); i++ {
					if child := mod.NamedChild(i); child.Type() == "dotted_name" {
						mods = append(mods, NodeText(child, source))
					}
				}
			}
		}
	})
	return mods
}

// ImportRoot returns the leading identifier of a dotted module name.
func ImportRoot(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}
