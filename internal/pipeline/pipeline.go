package pipeline

import "github.com/funvibe/tjcore/internal/config"

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Then appends stages to the pipeline.
func (p *Pipeline) Then(processors ...Processor) *Pipeline {
	p.processors = append(p.processors, processors...)
	return p
}

// Run executes the pipeline.
// By default every stage runs so diagnostics from all stages are collected;
// with analysis.stop_on_error the remaining stages are skipped after the
// first stage that fails.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for i, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Config.Analysis.StopOnError && ctx.Failed() {
			config.Debugf("%s: stopping after stage %d of %d", ctx.Label, i+1, len(p.processors))
			break
		}
	}
	return ctx
}
