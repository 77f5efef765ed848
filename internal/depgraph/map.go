package depgraph

import (
	"context"

	"github.com/vk/simvars/internal/ctxlog"
	"github.com/vk/simvars/internal/vars"
)

// Node records one computed variable's direct dependency edges. Both
// edge sets are immutable once Build returns.
type Node struct {
	// Var is the variable this node tracks; the scope tree owns it.
	Var *vars.Variable
	// DependsOn holds the identifiers the variable's expression reads.
	DependsOn vars.IDSet
	// Modifies holds the identifiers of variables whose expressions
	// read this one; it is the exact inverse of DependsOn across the
	// whole map.
	Modifies vars.IDSet
}

// ExtractFunc returns the set of variable identifiers a computed
// variable's expression directly reads. It must be total.
type ExtractFunc func(*vars.Variable) vars.IDSet

// Map is the global dependency graph: one node per computed variable in
// the scope tree it was built from. Constants never receive a node. A
// Map is built once and never mutated afterwards; rebuild it when the
// tree's variable set changes.
type Map struct {
	root  *vars.Scope
	nodes map[vars.ID]*Node
}

// Build constructs the dependency map for every computed variable
// transitively contained in the scope tree. Two variables sharing an
// identifier abort the build with DuplicateIDError.
//
// After the edge-inversion pass the inverse-edge invariant holds for
// the whole map: b is in nodes[a].Modifies exactly when a is in
// nodes[b].DependsOn. Dependencies on identifiers without a node
// (constants) are tolerated and contribute no reverse edge.
func Build(ctx context.Context, root *vars.Scope, extract ExtractFunc) (*Map, error) {
	logger := ctxlog.FromContext(ctx)
	m := &Map{
		root:  root,
		nodes: make(map[vars.ID]*Node),
	}

	err := root.Walk(func(v *vars.Variable) error {
		if v.IsConstant() {
			return nil
		}
		if _, exists := m.nodes[v.ID()]; exists {
			return &DuplicateIDError{ID: v.ID(), Path: v.Path()}
		}
		m.nodes[v.ID()] = &Node{
			Var:       v,
			DependsOn: extract(v),
			Modifies:  vars.NewIDSet(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Dependency map nodes created.", "count", len(m.nodes))

	for id, n := range m.nodes {
		for dep := range n.DependsOn {
			if target, ok := m.nodes[dep]; ok {
				target.Modifies.Add(id)
			}
		}
	}
	logger.Debug("Dependency edge inversion complete.")

	return m, nil
}

// Root returns the scope tree the map was built from.
func (m *Map) Root() *vars.Scope { return m.root }

// Node returns the dependency node for the given identifier.
func (m *Map) Node(id vars.ID) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Len returns the number of tracked (computed) variables.
func (m *Map) Len() int { return len(m.nodes) }
