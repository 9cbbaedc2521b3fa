package orchestration

import (
	"time"

	"github.com/edgeship/edgeship/internal/graph"
	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/provisioning/compute"
	"github.com/edgeship/edgeship/internal/provisioning/delivery"
	"github.com/edgeship/edgeship/internal/provisioning/destroy"
	"github.com/edgeship/edgeship/internal/provisioning/ingress"
	"github.com/edgeship/edgeship/internal/provisioning/network"
)

// Reconciler resolves the phase dependency graph and drives the phases.
type Reconciler struct {
	phases map[string]provisioning.Phase
	deps   *graph.Graph
}

// NewReconciler creates a reconciler with the standard phases and their
// dependencies.
func NewReconciler() *Reconciler {
	r := &Reconciler{phases: make(map[string]provisioning.Phase)}
	r.deps = graph.New()

	r.register(network.NewProvisioner())
	r.register(ingress.NewProvisioner())
	r.register(compute.NewProvisioner(), "network", "ingress")
	r.register(delivery.NewProvisioner(), "compute")
	return r
}

func (r *Reconciler) register(phase provisioning.Phase, dependsOn ...string) {
	r.phases[phase.Name()] = phase
	r.deps.Add(phase.Name(), dependsOn...)
}

// ValidateGraph checks that the phase dependency graph is acyclic.
func (r *Reconciler) ValidateGraph() error {
	_, err := r.deps.Sort()
	return err
}

// Reconcile converges the stack to its declared state. Phases without an
// ordering constraint between them run concurrently.
func (r *Reconciler) Reconcile(ctx *provisioning.Context) error {
	layers, err := r.deps.Layers()
	if err != nil {
		return err
	}

	start := time.Now()
	ctx.Observer.Printf("Reconciling stack %s", ctx.Config.Name)

	for _, layer := range layers {
		tasks := make([]Task, 0, len(layer))
		for _, name := range layer {
			phase := r.phases[name]
			tasks = append(tasks, Task{
				Name: name,
				Func: func() error {
					phaseStart := time.Now()
					provisioning.LogPhaseStart(ctx.Observer, name)
					if err := phase.Provision(ctx); err != nil {
						provisioning.LogPhaseFailed(ctx.Observer, name, err)
						return err
					}
					provisioning.LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
					return nil
				},
			})
		}
		if err := RunParallel(ctx.Observer, tasks); err != nil {
			return err
		}
	}

	ctx.Observer.Printf("Stack %s reconciled in %v", ctx.Config.Name, time.Since(start).Round(time.Millisecond))
	return nil
}

// Plan collects the steps a Reconcile would take, in apply order, without
// changing anything.
func (r *Reconciler) Plan(ctx *provisioning.Context) (*plan.Plan, error) {
	order, err := r.deps.Sort()
	if err != nil {
		return nil, err
	}

	phases := make([]provisioning.Phase, 0, len(order))
	for _, name := range order {
		phases = append(phases, r.phases[name])
	}
	return provisioning.PlanPhases(ctx, phases)
}

// Destroy tears the stack down in reverse dependency order.
func (r *Reconciler) Destroy(ctx *provisioning.Context) error {
	return provisioning.RunPhases(ctx, []provisioning.Phase{destroy.NewProvisioner()})
}

// PlanDestroy lists the resources a Destroy would remove.
func (r *Reconciler) PlanDestroy(ctx *provisioning.Context) (*plan.Plan, error) {
	return provisioning.PlanPhases(ctx, []provisioning.Phase{destroy.NewProvisioner()})
}
