package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/simvars/internal/ctxlog"
	"github.com/vk/simvars/internal/depgraph"
	"github.com/vk/simvars/internal/evaluator"
	"github.com/vk/simvars/internal/varpath"
	"github.com/vk/simvars/internal/vars"
)

// Run applies the configured -set assignments, schedules the minimal
// update for the -target variables, re-evaluates in order, and reports
// the update order and resulting values.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	updater := depgraph.NewUpdater(a.deps)

	for _, assignment := range a.config.Sets {
		v, val, err := a.applyAssignment(assignment)
		if err != nil {
			return err
		}
		updater.AddIndependent(v)
		a.logger.Debug("Independent variable set.", "path", v.Path(), "value", formatValue(val))
	}

	targets, err := a.resolveTargets()
	if err != nil {
		return err
	}
	for _, v := range targets {
		updater.AddDependent(v)
	}

	list, err := updater.UpdateList()
	if err != nil {
		return fmt.Errorf("failed to compute update order: %w", err)
	}
	a.logger.Debug("Update order computed.", "length", len(list))

	if err := a.eval.Recompute(ctx, list); err != nil {
		return fmt.Errorf("re-evaluation failed: %w", err)
	}

	a.report(list, targets)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// applyAssignment parses one "path=value" entry, stores the value, and
// returns the assigned variable.
func (a *App) applyAssignment(assignment string) (*vars.Variable, cty.Value, error) {
	name, raw, found := strings.Cut(assignment, "=")
	if !found {
		return nil, cty.NilVal, fmt.Errorf("invalid -set %q: expected path=value", assignment)
	}
	v, err := a.resolvePath(name)
	if err != nil {
		return nil, cty.NilVal, fmt.Errorf("invalid -set %q: %w", assignment, err)
	}
	val, err := parseValueLiteral(raw)
	if err != nil {
		return nil, cty.NilVal, fmt.Errorf("invalid -set %q: %w", assignment, err)
	}
	v.SetValue(val)
	return v, val, nil
}

// resolveTargets maps the configured target paths to variables. With no
// targets configured, every computed variable is a target.
func (a *App) resolveTargets() ([]*vars.Variable, error) {
	if len(a.config.Targets) == 0 {
		var all []*vars.Variable
		a.root.Walk(func(v *vars.Variable) error {
			if !v.IsConstant() {
				all = append(all, v)
			}
			return nil
		})
		return all, nil
	}
	targets := make([]*vars.Variable, 0, len(a.config.Targets))
	for _, raw := range a.config.Targets {
		v, err := a.resolvePath(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid -target %q: %w", raw, err)
		}
		targets = append(targets, v)
	}
	return targets, nil
}

func (a *App) resolvePath(raw string) (*vars.Variable, error) {
	path, err := varpath.Parse(raw)
	if err != nil {
		return nil, err
	}
	v, ok := a.root.LookupPath(path.Segments)
	if !ok {
		return nil, fmt.Errorf("no variable %q in the configuration", path.String())
	}
	return v, nil
}

// report prints the computed update order and the final target values.
func (a *App) report(list, targets []*vars.Variable) {
	if len(list) > 0 {
		fmt.Fprintln(a.outW, "Update order:")
		for i, v := range list {
			fmt.Fprintf(a.outW, "  %2d. %s\n", i+1, v.Path())
		}
	} else {
		fmt.Fprintln(a.outW, "Nothing to update.")
	}
	if len(targets) > 0 {
		fmt.Fprintln(a.outW, "Values:")
		for _, v := range targets {
			fmt.Fprintf(a.outW, "  %s = %s\n", v.Path(), formatValue(v.Value()))
		}
	}
}

// parseValueLiteral interprets a -set value as an HCL literal
// expression (numbers, bools, quoted strings, tuples); anything that
// does not parse cleanly or references variables falls back to a plain
// string value.
func parseValueLiteral(raw string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "<set>", hcl.InitialPos)
	if diags.HasErrors() || len(expr.Variables()) > 0 {
		return cty.StringVal(raw), nil
	}
	val, diags := expr.Value(&hcl.EvalContext{Functions: evaluator.Functions()})
	if diags.HasErrors() {
		return cty.StringVal(raw), nil
	}
	return val, nil
}

// formatValue renders a cty value for human-readable output.
func formatValue(val cty.Value) string {
	if val == cty.NilVal {
		return "<unset>"
	}
	if !val.IsKnown() {
		return "<unknown>"
	}
	switch val.Type() {
	case cty.Number:
		return val.AsBigFloat().Text('g', -1)
	case cty.String:
		return fmt.Sprintf("%q", val.AsString())
	case cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		return val.GoString()
	}
}
