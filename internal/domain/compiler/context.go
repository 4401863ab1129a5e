package compiler

import (
	"context"

	"github.com/felixgeelhaar/axsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// RunContext provides context for step execution (Check, Plan, Apply).
type RunContext struct {
	ctx    context.Context
	dryRun bool
	logger ports.Logger
}

// NewRunContext creates a new RunContext with the given context.
// The logger is taken from ctx when one is attached, otherwise logging is discarded.
func NewRunContext(ctx context.Context) RunContext {
	logger := ports.LoggerFromContext(ctx)
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return RunContext{
		ctx:    ctx,
		logger: logger,
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// Logger returns the logger steps use for tolerated problems inside Apply.
func (r RunContext) Logger() ports.Logger {
	return r.logger
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	r.dryRun = dryRun
	return r
}

// ExplainContext provides context for generating step explanations.
type ExplainContext struct {
	verbose bool
}

// NewExplainContext creates a new ExplainContext.
func NewExplainContext() ExplainContext {
	return ExplainContext{}
}

// Verbose returns whether verbose explanations are requested.
func (e ExplainContext) Verbose() bool {
	return e.verbose
}

// WithVerbose returns a new ExplainContext with verbose mode set.
func (e ExplainContext) WithVerbose(verbose bool) ExplainContext {
	e.verbose = verbose
	return e
}
