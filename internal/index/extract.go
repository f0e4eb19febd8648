package index

import (
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/autocontain/autocontain/internal/lang"
	"github.com/autocontain/autocontain/internal/parser"
	"github.com/autocontain/autocontain/internal/store"
)

// unknownName is the sentinel recorded when a definition carries no
// resolvable identifier.
const unknownName = "<unknown>"

// extractor walks one file's syntax tree and writes entities through a
// (transaction-scoped) store.
type extractor struct {
	store  *store.Store
	spec   *lang.Spec
	source []byte
	repoID int64
	file   string
}

// extractModule scans the module tree for class and function definitions.
// Free functions are collected at any depth, so a def nested inside another
// def (a closure) is still recorded as an independent top-level function.
// Class subtrees are handed off to extractClass and not re-scanned here, so
// a class nested inside another class is folded into its enclosing class
// rather than receiving its own row. Both follow the source model and are
// known precision limits, not invariants.
func (e *extractor) extractModule(root *tree_sitter.Node) error {
	stack := []*tree_sitter.Node{}
	for i := int(root.ChildCount()) - 1; i >= 0; i-- {
		if child := root.Child(uint(i)); child != nil {
			stack = append(stack, child)
		}
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Kind() {
		case e.spec.ClassNodeType:
			if err := e.extractClass(node); err != nil {
				return err
			}
			continue // subtree owned by extractClass
		case e.spec.FunctionNodeType:
			if err := e.extractFunction(node, nil); err != nil {
				return err
			}
		}

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(uint(i)); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return nil
}

// extractClass inserts a Class row, then emits every function definition in
// the class subtree (at any depth, so decorated methods are included) as a
// Function row owned by the class.
func (e *extractor) extractClass(node *tree_sitter.Node) error {
	defs := e.collectFunctionDefs(node)
	methodSummary, attributes := e.classifyMethods(defs)

	c := &store.Class{
		RepoID:       e.repoID,
		Name:         e.definitionName(node),
		Attributes:   attributes,
		FileLocation: e.file,
		StartLine:    int(node.StartPosition().Row),
		EndLine:      int(node.EndPosition().Row),
		Docstring:    e.docstring(node),
	}
	classID, err := e.store.InsertClass(c)
	if err != nil {
		return err
	}
	slog.Debug("index.class", "name", c.Name, "id", classID, "methods", methodSummary)

	for _, m := range defs {
		if err := e.extractFunction(m, &classID); err != nil {
			return err
		}
	}
	return nil
}

// extractFunction inserts a Function row plus one dependency edge per unique
// callee. classID is nil for free functions.
func (e *extractor) extractFunction(node *tree_sitter.Node, classID *int64) error {
	name := e.definitionName(node)

	f := &store.Function{
		RepoID:       e.repoID,
		ClassID:      classID,
		Name:         name,
		Parameters:   e.parametersText(node),
		ReturnType:   e.returnType(node),
		FileLocation: e.file,
		StartLine:    int(node.StartPosition().Row),
		EndLine:      int(node.EndPosition().Row),
		Docstring:    e.docstring(node),
	}
	if _, err := e.store.InsertFunction(f); err != nil {
		return err
	}

	if name == unknownName {
		return nil
	}
	deps := e.extractDependencies(node)
	if len(deps) == 0 {
		return nil
	}
	return e.store.InsertDependencies(name, classID, deps)
}

// collectFunctionDefs returns every function definition node in the subtree
// under root, excluding root itself, in document order.
func (e *extractor) collectFunctionDefs(root *tree_sitter.Node) []*tree_sitter.Node {
	var defs []*tree_sitter.Node
	parser.Walk(root, func(n *tree_sitter.Node) bool {
		if n.Id() != root.Id() && n.Kind() == e.spec.FunctionNodeType {
			defs = append(defs, n)
		}
		return true
	})
	return defs
}

// definitionName resolves the identifier of a class or function definition.
// The grammar's name field is authoritative; a direct-child identifier scan
// is the fallback for malformed nodes. Missing names get a sentinel.
func (e *extractor) definitionName(node *tree_sitter.Node) string {
	if n := node.ChildByFieldName(e.spec.NameField); n != nil && n.Kind() == e.spec.IdentifierKind {
		return parser.NodeText(n, e.source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == e.spec.IdentifierKind {
			return parser.NodeText(child, e.source)
		}
	}
	return unknownName
}

// parametersText returns the raw parameter-list text of a function
// definition, parentheses included, or "" when absent.
func (e *extractor) parametersText(node *tree_sitter.Node) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == e.spec.ParametersKind {
			return parser.NodeText(child, e.source)
		}
	}
	return ""
}

// returnType returns the text of a function's return annotation, or "".
func (e *extractor) returnType(node *tree_sitter.Node) string {
	if n := node.ChildByFieldName(e.spec.ReturnTypeField); n != nil {
		return parser.NodeText(n, e.source)
	}
	return ""
}
