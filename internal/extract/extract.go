// Package extract derives the direct variable dependencies of an HCL
// expression by resolving its traversals against the scope tree.
package extract

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/vk/simvars/internal/vars"
)

// Deps returns the set of variable identifiers the expression directly
// reads, resolved from the perspective of the given scope. It is total:
// traversals that resolve to no variable or scope are ignored, since
// they may name functions or values that only exist at evaluation time.
// Only direct reads are reported, never transitive ones.
func Deps(expr hcl.Expression, scope *vars.Scope) vars.IDSet {
	out := vars.NewIDSet()
	if expr == nil {
		return out
	}
	for _, traversal := range expr.Variables() {
		if v, ok := scope.Resolve(traversal); ok {
			out.Add(v.ID())
		}
	}
	return out
}
