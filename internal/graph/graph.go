// Package graph builds the declarative resource dependency graph and
// resolves it into a deterministic apply order.
//
// Nodes are registered with the names of the nodes they depend on. Sort
// returns a topological order (dependencies first) with a stable tie-break
// by node name, so repeated runs over the same declarations always produce
// the same plan. Cycles are detected and reported with the offending path.
package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is a set of named nodes with dependency edges.
type Graph struct {
	nodes map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string][]string)}
}

// Add registers a node with its dependencies. Adding the same node twice
// merges the dependency sets. Dependencies do not need to be registered yet.
func (g *Graph) Add(name string, dependsOn ...string) {
	g.nodes[name] = append(g.nodes[name], dependsOn...)
	for _, dep := range dependsOn {
		if _, ok := g.nodes[dep]; !ok {
			g.nodes[dep] = nil
		}
	}
}

// Contains reports whether the node is registered.
func (g *Graph) Contains(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// CycleError reports a dependency cycle.
type CycleError struct {
	// Path is the cycle, starting and ending at the same node.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// Sort returns the nodes in topological order, dependencies before
// dependents. Nodes with no ordering constraint between them are sorted by
// name. Returns a *CycleError if the declarations are cyclic.
func (g *Graph) Sort() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	var visit func(name string, stack []string) error
	visit = func(name string, stack []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			// Trim the stack down to where the cycle starts.
			for i, n := range stack {
				if n == name {
					return &CycleError{Path: append(append([]string{}, stack[i:]...), name)}
				}
			}
			return &CycleError{Path: append(append([]string{}, stack...), name)}
		}

		state[name] = visiting
		deps := append([]string{}, g.nodes[name]...)
		sort.Strings(deps)
		for _, dep := range deps {
			if err := visit(dep, append(stack, name)); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Layers groups the nodes into dependency layers: every node's dependencies
// live in earlier layers, so all nodes within one layer can be processed
// concurrently. Layers and the nodes within them are deterministically
// ordered. Returns a *CycleError if the declarations are cyclic.
func (g *Graph) Layers() ([][]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}
	if _, err := g.Sort(); err != nil {
		return nil, err
	}

	depth := make(map[string]int, len(g.nodes))
	var depthOf func(name string) int
	depthOf = func(name string) int {
		if d, ok := depth[name]; ok {
			return d
		}
		d := 0
		for _, dep := range g.nodes[name] {
			if dd := depthOf(dep) + 1; dd > d {
				d = dd
			}
		}
		depth[name] = d
		return d
	}

	maxDepth := 0
	for name := range g.nodes {
		if d := depthOf(name); d > maxDepth {
			maxDepth = d
		}
	}

	layers := make([][]string, maxDepth+1)
	for name, d := range depth {
		layers[d] = append(layers[d], name)
	}
	for _, layer := range layers {
		sort.Strings(layer)
	}
	return layers, nil
}

// ReverseSort returns the nodes in reverse topological order, dependents
// before dependencies. Used for teardown.
func (g *Graph) ReverseSort() ([]string, error) {
	order, err := g.Sort()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
