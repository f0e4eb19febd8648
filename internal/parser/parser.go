package parser

import (
	"errors"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/autocontain/autocontain/internal/lang"
)

// ErrParse indicates the grammar rejected the file content.
// Callers isolate it at file granularity: one bad file never aborts a run.
var ErrParse = errors.New("parse failed")

var (
	languagesOnce sync.Once
	languages     map[lang.Language]*tree_sitter.Language
	parserPools   map[lang.Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[lang.Language]*tree_sitter.Language{
			lang.Python: tree_sitter.NewLanguage(tree_sitter_python.Language()),
		}

		parserPools = make(map[lang.Language]*sync.Pool, len(languages))
		for l, tsLang := range languages {
			tsLang := tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// Parse parses source code into a tree-sitter Tree.
// The caller must call tree.Close() when done.
// Parsers are pooled per language via sync.Pool so a walk over many files
// reuses one parser instead of allocating per file.
func Parse(l lang.Language, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get parser for language %s", l)
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("%w: language %s", ErrParse, l)
	}
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("%w: no root node", ErrParse)
	}

	return tree, nil
}

// WalkFunc is called for each node during tree traversal.
// Return false to skip the node's children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the tree in depth-first order using an explicit work
// stack, so traversal depth is bounded by heap rather than goroutine
// stack even for pathologically nested sources.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	stack := []*tree_sitter.Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		// Push children in reverse so the leftmost child is visited first.
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if child := n.Child(uint(i)); child != nil {
				stack = append(stack, child)
			}
		}
	}
}

// NodeText returns the text content of a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
