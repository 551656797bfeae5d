package pipeline

import (
	"fmt"

	"github.com/funvibe/tjcore/internal/diagnostics"
)

// PersistProcessor saves the run's diagnostics to a Store and records the
// run id on the context. An empty run is saved too, so a clean result is
// distinguishable from a run that never happened.
type PersistProcessor struct {
	Store *diagnostics.Store
}

func (pp *PersistProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if pp.Store == nil {
		return ctx
	}
	id, err := pp.Store.SaveRun(ctx.Context, ctx.Label, ctx.Diagnostics)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("persisting diagnostics for %s: %w", ctx.Label, err))
		return ctx
	}
	ctx.RunID = id
	return ctx
}
