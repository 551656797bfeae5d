package analyzer

import (
	"errors"

	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/pipeline"
	"github.com/funvibe/tjcore/internal/typesystem"
)

// ImplementationsProcessor seeds the run's registry with the built-ins and
// then the implementations declared in configuration, so a configured
// built-in pair replaces the stock one. Later stages only read the registry.
type ImplementationsProcessor struct{}

func (ip *ImplementationsProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	solver := NewConstraintSolverWithRegistry(ctx.Registry)
	if err := RegisterConfigured(solver, ctx.Config.Implementations); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// WellFormednessProcessor checks every queued declaration with CheckType.
type WellFormednessProcessor struct{}

func (wp *WellFormednessProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	checker := NewTypeCheckerWith(ctx.Env, SolverFor(ctx.Registry))
	for _, decl := range ctx.Declarations {
		if checker.CheckType(decl.Type) {
			continue
		}
		bad, _ := firstMalformed(decl.Type)
		what := "missing type"
		if g, ok := bad.(typesystem.TGeneric); ok && g.Name == "" {
			what = "unnamed generic"
		} else if bad != nil {
			what = "`" + bad.String() + "`"
		}
		ctx.Add(diagnostics.NewError(diagnostics.AnalyzerInvalidGeneric, decl.Span,
			"declaration %s has malformed type %s", decl.Name, what))
	}
	return ctx
}

// ConstraintProcessor solves the environment's constraints and, when
// analysis.verify_signatures is set, checks implementation conformance.
type ConstraintProcessor struct{}

func (cp *ConstraintProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	solver := SolverFor(ctx.Registry)
	checker := NewTypeCheckerWith(ctx.Env, solver)

	mergeResult(ctx, checker.Solve())
	if ctx.Config.Analysis.VerifySignatures {
		mergeResult(ctx, solver.CheckConformance())
	}
	return ctx
}

func mergeResult(ctx *pipeline.PipelineContext, err error) {
	if err == nil {
		return
	}
	var diags *diagnostics.Collection
	if errors.As(err, &diags) {
		ctx.Merge(diags)
		return
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Processors returns the analysis stages in order.
func Processors() []pipeline.Processor {
	return []pipeline.Processor{
		&ImplementationsProcessor{},
		&WellFormednessProcessor{},
		&ConstraintProcessor{},
	}
}
