package pipeline

import (
	"context"

	"github.com/funvibe/tjcore/internal/config"
	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
	"github.com/google/uuid"
)

// Declaration is a named type queued for well-formedness checking.
type Declaration struct {
	Name string
	Type typesystem.Type
	Span diagnostics.SourceSpan
}

// PipelineContext carries the state of one analysis run between processors.
type PipelineContext struct {
	Context context.Context
	Label   string
	Config  *config.Config

	Env      *symbols.Environment
	Registry *symbols.Registry

	Declarations []Declaration

	// Diagnostics collects reports from every stage. It is capped at
	// Config.Analysis.MaxDiagnostics.
	Diagnostics *diagnostics.Collection

	// Errors holds failures that are not diagnostics (I/O, bad input).
	Errors []error

	// RunID is set once the diagnostics have been persisted.
	RunID uuid.UUID
}

// NewPipelineContext returns an empty context. A nil cfg means config.Default().
func NewPipelineContext(label string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{
		Context:     context.Background(),
		Label:       label,
		Config:      cfg,
		Env:         symbols.NewEnvironment(),
		Registry:    symbols.NewRegistry(),
		Diagnostics: diagnostics.NewCollection(),
	}
}

var _ diagnostics.Sink = (*PipelineContext)(nil)

// Declare queues a named type for checking.
func (ctx *PipelineContext) Declare(name string, t typesystem.Type, span diagnostics.SourceSpan) {
	ctx.Declarations = append(ctx.Declarations, Declaration{Name: name, Type: t, Span: span})
}

// Add implements diagnostics.Sink. Diagnostics past the configured cap are dropped.
func (ctx *PipelineContext) Add(d *diagnostics.Diagnostic) {
	if ctx.Full() {
		config.Debugf("%s: dropping diagnostic past cap: %v", ctx.Label, d)
		return
	}
	ctx.Diagnostics.Add(d)
}

// Merge adds every diagnostic of c, honoring the cap.
func (ctx *PipelineContext) Merge(c *diagnostics.Collection) {
	if c == nil {
		return
	}
	for _, d := range c.Diagnostics() {
		ctx.Add(d)
	}
}

// Full reports whether the diagnostic cap has been reached.
func (ctx *PipelineContext) Full() bool {
	limit := ctx.Config.Analysis.MaxDiagnostics
	return limit > 0 && ctx.Diagnostics.Len() >= limit
}

// Failed reports whether the run produced an error diagnostic or a hard error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0 || ctx.Diagnostics.HasErrors()
}
