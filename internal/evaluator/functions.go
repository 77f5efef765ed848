package evaluator

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// funcs is the fixed function table available to variable expressions.
var funcs = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"log":    stdlib.LogFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"int":    stdlib.IntFunc,
	"format": stdlib.FormatFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
	"strlen": stdlib.StrlenFunc,
	"substr": stdlib.SubstrFunc,
	"concat": stdlib.ConcatFunc,
	"length": stdlib.LengthFunc,
}

// Functions returns the function table bound into every evaluation
// context. The loader uses the same table to fold constant expressions.
func Functions() map[string]function.Function {
	return funcs
}
