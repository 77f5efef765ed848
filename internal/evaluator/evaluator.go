// Package evaluator re-evaluates computed variables in the order the
// scheduler produced, so every expression sees already-updated values
// of its dependencies.
package evaluator

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/simvars/internal/ctxlog"
	"github.com/vk/simvars/internal/vars"
)

// Evaluator evaluates variable expressions against the scope tree.
type Evaluator struct {
	root *vars.Scope
}

// New creates an Evaluator for the given scope tree.
func New(root *vars.Scope) *Evaluator {
	return &Evaluator{root: root}
}

// Recompute walks the update order in sequence, evaluating each
// computed variable's expression and storing the result. Constants in
// the list are skipped. The first evaluation failure aborts the pass,
// wrapped with the offending variable's path.
func (e *Evaluator) Recompute(ctx context.Context, order []*vars.Variable) error {
	logger := ctxlog.FromContext(ctx)
	for _, v := range order {
		if v.IsConstant() {
			continue
		}
		val, diags := v.Expression().Value(e.EvalContextFor(v.Scope()))
		if diags.HasErrors() {
			return fmt.Errorf("evaluate %s: %w", v.Path(), diags)
		}
		v.SetValue(val)
		logger.Debug("Variable recomputed.", "path", v.Path(), "id", int64(v.ID()))
	}
	return nil
}

// EvalContextFor assembles the evaluation context visible from a scope:
// the names of every scope on the chain from the root down, flattened
// with the nearest scope shadowing outer ones, with child scopes
// exposed as object values so dotted paths resolve. The function table
// is always bound.
func (e *Evaluator) EvalContextFor(scope *vars.Scope) *hcl.EvalContext {
	values := make(map[string]cty.Value)
	for _, sc := range scope.Chain() {
		for _, ch := range sc.Children() {
			values[ch.Name()] = scopeObject(ch)
		}
		for _, v := range sc.Locals() {
			values[v.Name()] = valueOf(v)
		}
	}
	return &hcl.EvalContext{
		Variables: values,
		Functions: Functions(),
	}
}

// scopeObject renders a scope and its subtree as a cty object value.
func scopeObject(s *vars.Scope) cty.Value {
	attrs := make(map[string]cty.Value)
	for _, v := range s.Locals() {
		attrs[v.Name()] = valueOf(v)
	}
	for _, ch := range s.Children() {
		attrs[ch.Name()] = scopeObject(ch)
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

// valueOf substitutes an unknown number for variables that have not
// been evaluated yet, so context construction never produces an
// invalid cty value.
func valueOf(v *vars.Variable) cty.Value {
	if v.Value() == cty.NilVal {
		return cty.UnknownVal(cty.Number)
	}
	return v.Value()
}
