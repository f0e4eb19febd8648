package index

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/autocontain/autocontain/internal/parser"
)

// extractDependencies collects the distinct identifiers invoked as calls
// anywhere inside a function definition. Only calls whose target is a plain
// identifier are recorded; member access and dynamic targets are not
// resolved. The result is deduplicated, first encounter wins the position.
func (e *extractor) extractDependencies(fn *tree_sitter.Node) []string {
	var deps []string
	seen := map[string]bool{}

	parser.Walk(fn, func(n *tree_sitter.Node) bool {
		if n.Kind() != e.spec.CallNodeType {
			return true
		}
		target := n.ChildByFieldName(e.spec.CallTargetField)
		if target == nil || target.Kind() != e.spec.IdentifierKind {
			return true
		}
		callee := parser.NodeText(target, e.source)
		if callee != "" && !seen[callee] {
			seen[callee] = true
			deps = append(deps, callee)
		}
		return true
	})

	return deps
}
