package index

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// classifyMethods separates a class's function definitions into a methods
// summary and a constructor-derived attributes list. The constructor is
// recognized by the language's fixed name convention; its parameter list,
// minus the implicit self reference, becomes the class's attributes. Every
// other definition contributes "name" or "name -> returntype" to the
// methods summary. Both are serialized as comma-joined strings.
func (e *extractor) classifyMethods(defs []*tree_sitter.Node) (methods, attributes string) {
	var methodList, attrList []string

	for _, def := range defs {
		name := e.definitionName(def)
		if name == e.spec.ConstructorName {
			attrList = append(attrList, e.constructorAttributes(def)...)
			continue
		}
		if ret := e.returnType(def); ret != "" {
			methodList = append(methodList, name+" -> "+ret)
		} else {
			methodList = append(methodList, name)
		}
	}

	return strings.Join(methodList, ", "), strings.Join(attrList, ", ")
}

// constructorAttributes parses the constructor's parameter list into
// "name: type" pairs, dropping the leading self parameter. A parameter
// without an annotation gets the type "unknown".
func (e *extractor) constructorAttributes(def *tree_sitter.Node) []string {
	params := e.parametersText(def)
	if params == "" {
		return nil
	}
	params = strings.TrimPrefix(params, "(")
	params = strings.TrimSuffix(params, ")")

	parts := splitTopLevel(params)
	if len(parts) <= 1 {
		return nil
	}

	attrs := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] { // skip self
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		attrs = append(attrs, formatAttribute(part))
	}
	return attrs
}

// formatAttribute normalizes one parameter into a "name: type" pair.
func formatAttribute(param string) string {
	name, typ, ok := strings.Cut(param, ":")
	if !ok {
		return strings.TrimSpace(param) + ": unknown"
	}
	return strings.TrimSpace(name) + ": " + strings.TrimSpace(typ)
}

// splitTopLevel splits s on commas that sit outside any parentheses,
// brackets or braces, so a default value like [1,2,3] stays in one piece.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
