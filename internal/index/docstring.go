package index

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/autocontain/autocontain/internal/parser"
)

// docstring extracts the documentation string of a function or class
// definition. The search is restricted to the first statement of the body
// (PEP 257 position); string literals deeper in the subtree are never
// mistaken for documentation.
func (e *extractor) docstring(node *tree_sitter.Node) string {
	body := node.ChildByFieldName(e.spec.BodyField)
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	if first.NamedChildCount() == 0 {
		return ""
	}
	strNode := first.NamedChild(0)
	if strNode == nil || strNode.Kind() != e.spec.StringKind {
		return ""
	}
	return cleanDocstring(parser.NodeText(strNode, e.source))
}

// cleanDocstring removes quote delimiters and normalizes indentation.
func cleanDocstring(s string) string {
	switch {
	case len(s) >= 6 && (strings.HasPrefix(s, `"""`) && strings.HasSuffix(s, `"""`) ||
		strings.HasPrefix(s, `'''`) && strings.HasSuffix(s, `'''`)):
		s = s[3 : len(s)-3]
	case len(s) >= 2 && (strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) ||
		strings.HasPrefix(s, `'`) && strings.HasSuffix(s, `'`)):
		s = s[1 : len(s)-1]
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 1 {
		return strings.TrimSpace(s)
	}
	// Dedent: find minimum indentation of non-empty continuation lines.
	minIndent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= minIndent {
				lines[i] = lines[i][minIndent:]
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
