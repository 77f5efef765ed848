// Package loader reads .hcl configuration files into a scope tree.
// Blocks become nested child scopes and attributes become variables: an
// attribute whose expression references no other variable is folded
// into a constant immediately, anything else is registered as a
// computed variable for the dependency engine to schedule.
package loader

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/simvars/internal/ctxlog"
	"github.com/vk/simvars/internal/evaluator"
	"github.com/vk/simvars/internal/fsutil"
	"github.com/vk/simvars/internal/vars"
)

// Load parses the given files or directories (searched recursively for
// .hcl files) into a single scope tree. All files populate the same
// root; repeated block names merge into one scope.
func Load(ctx context.Context, paths ...string) (*vars.Scope, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("configuration path: %w", err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	logger.Debug("Configuration files discovered.", "count", len(files))

	root := vars.NewRootScope()
	parser := hclparse.NewParser()
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %w", file, diags)
		}
		body, ok := f.Body.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("parse %s: unexpected body type", file)
		}
		if err := loadBody(root, body); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		logger.Debug("Configuration file loaded.", "file", file)
	}

	return root, nil
}

// loadBody populates one scope from an HCL body, attributes first in
// source order, then nested blocks.
func loadBody(scope *vars.Scope, body *hclsyntax.Body) error {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		if err := defineAttribute(scope, attr); err != nil {
			return err
		}
	}

	for _, block := range body.Blocks {
		sc, err := ensureChild(scope, block.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", block.DefRange().String(), err)
		}
		for _, label := range block.Labels {
			sc, err = ensureChild(sc, label)
			if err != nil {
				return fmt.Errorf("%s: %w", block.DefRange().String(), err)
			}
		}
		if err := loadBody(sc, block.Body); err != nil {
			return err
		}
	}
	return nil
}

// defineAttribute registers one attribute as a constant or computed
// variable. Constants are folded right away with the function table
// only, so `n = 2 * 50` is as constant as `n = 100`.
func defineAttribute(scope *vars.Scope, attr *hclsyntax.Attribute) error {
	if len(attr.Expr.Variables()) > 0 {
		if _, err := scope.DefineComputed(attr.Name, attr.Expr); err != nil {
			return fmt.Errorf("%s: %w", attr.SrcRange.String(), err)
		}
		return nil
	}

	val, diags := attr.Expr.Value(&hcl.EvalContext{Functions: evaluator.Functions()})
	if diags.HasErrors() {
		return fmt.Errorf("%s: evaluate constant %q: %w", attr.SrcRange.String(), attr.Name, diags)
	}
	if _, err := scope.DefineConstant(attr.Name, val); err != nil {
		return fmt.Errorf("%s: %w", attr.SrcRange.String(), err)
	}
	return nil
}

// ensureChild returns the named child scope, creating it on first use
// so repeated blocks of the same name merge.
func ensureChild(scope *vars.Scope, name string) (*vars.Scope, error) {
	if ch, ok := scope.Child(name); ok {
		return ch, nil
	}
	return scope.NewChild(name)
}
