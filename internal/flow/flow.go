// Package flow rebuilds a human-readable call-flow description from the
// dependency edges recorded in the store.
package flow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/autocontain/autocontain/internal/store"
)

// Placeholder is emitted when a function has no recorded docstring or the
// lookup fails.
const Placeholder = "No description available"

// Reconstructor reads dependency edges and produces an indented textual
// call flow. It never fails visibly: lookup misses and query errors degrade
// to placeholder leaves.
type Reconstructor struct {
	store *store.Store
}

// New creates a Reconstructor backed by the given store.
func New(s *store.Store) *Reconstructor {
	return &Reconstructor{store: s}
}

// visitKey identifies a caller by name and owning class, with "no class"
// as its own explicit state.
type visitKey struct {
	name     string
	classID  int64
	hasClass bool
}

type frame struct {
	name    string
	classID *int64
	depth   int
}

func keyOf(name string, classID *int64) visitKey {
	k := visitKey{name: name}
	if classID != nil {
		k.classID = *classID
		k.hasClass = true
	}
	return k
}

// Reconstruct walks the call graph from the entry function and renders one
// pair of lines per reachable function, indented by call depth. A visited
// set guards against cycles and diamond-shaped graphs, so every function is
// emitted at most once. An entry point absent from the store still yields a
// single placeholder leaf. Traversal uses an explicit work stack with depth
// carried as data, so output depth is not bounded by the goroutine stack.
func (r *Reconstructor) Reconstruct(entry string) string {
	var b strings.Builder
	visited := map[visitKey]bool{}

	stack := []frame{{name: entry}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		k := keyOf(f.name, f.classID)
		if visited[k] {
			continue
		}
		visited[k] = true

		desc, err := r.store.GetFunctionDescription(f.name, f.classID)
		if err != nil || desc == "" {
			desc = Placeholder
		}

		indent := strings.Repeat("  ", f.depth)
		fmt.Fprintf(&b, "%s- Function: `%s`\n%s  - Purpose: %s\n", indent, f.name, indent, desc)

		deps, err := r.store.GetDependencies(f.name, f.classID)
		if err != nil {
			slog.Warn("flow.deps.degrade", "function", f.name, "err", err)
			continue
		}
		// Push in reverse so dependencies are emitted in recorded order.
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				name:    deps[i].Name,
				classID: deps[i].ClassID,
				depth:   f.depth + 1,
			})
		}
	}

	return b.String()
}
