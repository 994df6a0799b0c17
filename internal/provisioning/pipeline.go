package provisioning

import (
	"fmt"
	"time"
)

// Pipeline runs phases in order.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline of phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes every phase in order and stops at the first error.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()
	total := len(p.Phases)

	for i, phase := range p.Phases {
		name := phase.Name()
		phaseStart := time.Now()

		ctx.Observer.Progress(name, i+1, total)
		LogPhaseStart(ctx.Observer, name)

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			ctx.Metrics.ObservePhase(name, ResultError, time.Since(phaseStart))
			return fmt.Errorf("%s phase failed: %w", name, err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
		ctx.Metrics.ObservePhase(name, ResultSuccess, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
