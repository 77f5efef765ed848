package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/simvars/internal/ctxlog"
	"github.com/vk/simvars/internal/depgraph"
	"github.com/vk/simvars/internal/evaluator"
	"github.com/vk/simvars/internal/extract"
	"github.com/vk/simvars/internal/loader"
	"github.com/vk/simvars/internal/vars"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	root *vars.Scope
	deps *depgraph.Map
	eval *evaluator.Evaluator
}

// New constructs the application: it configures an isolated logger,
// loads the variable configuration into a scope tree, builds the
// dependency map, and evaluates every computed variable once so the
// store starts from a consistent state.
func New(ctx context.Context, outW io.Writer, config *Config) (*App, error) {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	root, err := loader.Load(ctx, config.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into scope tree.")

	deps, err := depgraph.Build(ctx, root, func(v *vars.Variable) vars.IDSet {
		return extract.Deps(v.Expression(), v.Scope())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency map: %w", err)
	}
	logger.Debug("Dependency map built.", "variable_count", deps.Len())

	eval := evaluator.New(root)
	order, err := deps.FullOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to order initial evaluation: %w", err)
	}
	if err := eval.Recompute(ctx, order); err != nil {
		return nil, fmt.Errorf("initial evaluation failed: %w", err)
	}
	logger.Debug("Initial evaluation complete.", "evaluated", len(order))

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		root:   root,
		deps:   deps,
		eval:   eval,
	}, nil
}

// Root returns the loaded scope tree. This is primarily for testing.
func (a *App) Root() *vars.Scope { return a.root }

// Deps returns the dependency map. This is primarily for testing.
func (a *App) Deps() *depgraph.Map { return a.deps }
