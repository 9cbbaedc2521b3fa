package provisioning

import (
	"fmt"
	"time"

	"github.com/edgeship/edgeship/internal/plan"
)

// RunPhases executes provisioning phases sequentially, stopping at the
// first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Running %d phases for stack %s", len(phases), ctx.Config.Name)

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// PlanPhases collects the steps each phase would take without changing
// anything.
func PlanPhases(ctx *Context, phases []Phase) (*plan.Plan, error) {
	p := plan.New()
	for _, phase := range phases {
		if err := phase.Plan(ctx, p); err != nil {
			return nil, fmt.Errorf("%s phase: %w", phase.Name(), err)
		}
	}
	return p, nil
}
