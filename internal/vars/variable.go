package vars

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// ID uniquely identifies a variable for the lifetime of its scope tree.
// Identifiers are allocated sequentially from the tree root at
// definition time and are never reused.
type ID int64

// Variable is a named quantity that is either a constant value or an
// expression computed from other variables. Variables are owned by the
// scope that defined them.
type Variable struct {
	id       ID
	name     string
	constant bool
	expr     hcl.Expression
	value    cty.Value
	scope    *Scope
}

// ID returns the variable's stable unique identifier.
func (v *Variable) ID() ID { return v.id }

// Name returns the variable's local name within its scope.
func (v *Variable) Name() string { return v.name }

// IsConstant reports whether the variable holds a fixed value rather
// than a computed expression.
func (v *Variable) IsConstant() bool { return v.constant }

// Expression returns the variable's defining expression, or nil for a
// constant.
func (v *Variable) Expression() hcl.Expression { return v.expr }

// Value returns the variable's current value. For a computed variable
// that has not been evaluated yet this is cty.NilVal.
func (v *Variable) Value() cty.Value { return v.value }

// SetValue stores a new value. For constants this is how externally-set
// inputs are injected; for computed variables the evaluator calls it
// after each re-evaluation.
func (v *Variable) SetValue(val cty.Value) { v.value = val }

// Scope returns the scope that defined the variable.
func (v *Variable) Scope() *Scope { return v.scope }

// Path returns the variable's dotted path from the tree root, for
// diagnostics and CLI addressing.
func (v *Variable) Path() string {
	parts := []string{v.name}
	for s := v.scope; s != nil && s.parent != nil; s = s.parent {
		parts = append(parts, s.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}
