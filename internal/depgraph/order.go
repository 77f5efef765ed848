package depgraph

import (
	"sort"

	"github.com/vk/simvars/internal/vars"
)

// UpdateOrder computes the ordered list of variables that must be
// re-evaluated so that the dependent variables reflect new values of
// the independent variables. The list covers exactly the required
// subgraph: variables lying on some dependency path from an independent
// to a dependent variable, and every variable appears after all listed
// variables it depends on.
//
// Constants in either set are ignored: they hold no node and their
// values are already current. A computed variable absent from the map
// is a caller error reported as UnknownVariableError.
//
// The order is deterministic: among simultaneously ready variables the
// one with the lowest identifier is emitted first.
func (m *Map) UpdateOrder(independent, dependent *vars.Set) ([]*vars.Variable, error) {
	predecessors, err := m.updatePredecessors(dependent)
	if err != nil {
		return nil, err
	}
	followers, err := m.updateFollowers(independent, predecessors)
	if err != nil {
		return nil, err
	}
	return orderSubgraph(followers)
}

// FullOrder returns every tracked variable in dependency order. It is
// the initialization pass: evaluating the whole tree once before any
// incremental scheduling request.
func (m *Map) FullOrder() ([]*vars.Variable, error) {
	all := make(map[vars.ID]*Node, len(m.nodes))
	for id, n := range m.nodes {
		all[id] = n
	}
	return orderSubgraph(all)
}

// updatePredecessors collects the backward closure of the dependent
// set: every node that is a dependent variable itself or a transitive
// dependency of one. Dependencies on identifiers without a node are
// skipped; they are constants and terminate the walk.
func (m *Map) updatePredecessors(dependent *vars.Set) (map[vars.ID]*Node, error) {
	predecessors := make(map[vars.ID]*Node)
	var working []*Node

	for _, v := range dependent.Sorted() {
		n, ok := m.nodes[v.ID()]
		if !ok {
			if v.IsConstant() {
				continue
			}
			return nil, &UnknownVariableError{ID: v.ID(), Path: v.Path()}
		}
		predecessors[v.ID()] = n
		working = append(working, n)
	}

	for len(working) > 0 {
		n := working[0]
		working = working[1:]
		for dep := range n.DependsOn {
			if _, seen := predecessors[dep]; seen {
				continue
			}
			pred, ok := m.nodes[dep]
			if !ok {
				continue
			}
			predecessors[dep] = pred
			working = append(working, pred)
		}
	}

	return predecessors, nil
}

// updateFollowers restricts the predecessor set to its forward closure
// from the independent variables, yielding the minimal subgraph of the
// request. Independent variables that are not predecessors of any
// dependent variable are dropped; they have no bearing on the request.
//
// A constant independent variable has no node of its own, so its
// forward reach is seeded from the predecessor nodes that directly
// depend on it.
func (m *Map) updateFollowers(independent *vars.Set, predecessors map[vars.ID]*Node) (map[vars.ID]*Node, error) {
	followers := make(map[vars.ID]*Node)
	var working []*Node

	add := func(id vars.ID, n *Node) {
		if _, seen := followers[id]; seen {
			return
		}
		followers[id] = n
		working = append(working, n)
	}

	for _, v := range independent.Sorted() {
		id := v.ID()
		if _, ok := m.nodes[id]; !ok {
			if !v.IsConstant() {
				return nil, &UnknownVariableError{ID: id, Path: v.Path()}
			}
			for pid, p := range predecessors {
				if p.DependsOn.Has(id) {
					add(pid, p)
				}
			}
			continue
		}
		if n, ok := predecessors[id]; ok {
			add(id, n)
		}
	}

	for len(working) > 0 {
		n := working[0]
		working = working[1:]
		for id := range n.Modifies {
			if next, ok := predecessors[id]; ok {
				add(id, next)
			}
		}
	}

	return followers, nil
}

// orderSubgraph topologically orders the given subgraph. In-degree
// counters are request-local: they count only dependencies that are
// themselves in the subgraph. The working set is scanned in ascending
// identifier order, so ties between ready nodes always resolve to the
// lowest identifier. If no node is ready while work remains, the
// subgraph is cyclic.
func orderSubgraph(subgraph map[vars.ID]*Node) ([]*vars.Variable, error) {
	counters := make(map[vars.ID]int, len(subgraph))
	remaining := make([]vars.ID, 0, len(subgraph))
	for id, n := range subgraph {
		count := 0
		for dep := range n.DependsOn {
			if _, ok := subgraph[dep]; ok {
				count++
			}
		}
		counters[id] = count
		remaining = append(remaining, id)
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })

	order := make([]*vars.Variable, 0, len(subgraph))
	for len(remaining) > 0 {
		next := -1
		for i, id := range remaining {
			if counters[id] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			unresolved := make([]vars.ID, len(remaining))
			copy(unresolved, remaining)
			return nil, &CycleError{Remaining: unresolved}
		}

		id := remaining[next]
		remaining = append(remaining[:next], remaining[next+1:]...)
		n := subgraph[id]
		order = append(order, n.Var)
		for dependent := range n.Modifies {
			if _, ok := subgraph[dependent]; ok {
				counters[dependent]--
			}
		}
	}

	return order, nil
}
