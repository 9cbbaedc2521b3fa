// Package plan models the reconciliation plan: the set of actions needed to
// move remote provider state to the declared configuration.
package plan

import (
	"fmt"
	"strings"
)

// Action describes what applying a step will do.
type Action string

const (
	// ActionCreate means the resource does not exist remotely.
	ActionCreate Action = "create"
	// ActionUpdate means the resource exists but drifted from the declaration.
	ActionUpdate Action = "update"
	// ActionNoop means the resource already matches the declaration.
	ActionNoop Action = "noop"
	// ActionDelete means the resource will be removed.
	ActionDelete Action = "delete"
)

// Step is one planned operation on one resource.
type Step struct {
	// Kind is the resource kind, e.g. "network", "tunnel", "workflow".
	Kind string
	// Name is the resource name.
	Name string
	// Action is what apply will do.
	Action Action
	// Reason explains why, e.g. "not found" or "firewall rules differ".
	Reason string
}

// Plan is an ordered list of steps, dependency order preserved.
type Plan struct {
	Steps []Step
}

// New returns an empty plan.
func New() *Plan {
	return &Plan{}
}

// Add appends a step.
func (p *Plan) Add(step Step) {
	p.Steps = append(p.Steps, step)
}

// Counts returns the number of steps per action.
func (p *Plan) Counts() map[Action]int {
	counts := make(map[Action]int)
	for _, s := range p.Steps {
		counts[s.Action]++
	}
	return counts
}

// HasChanges reports whether any step mutates remote state.
func (p *Plan) HasChanges() bool {
	for _, s := range p.Steps {
		if s.Action != ActionNoop {
			return true
		}
	}
	return false
}

// Render formats the plan for terminal output.
func (p *Plan) Render() string {
	var sb strings.Builder
	for _, s := range p.Steps {
		sym := symbol(s.Action)
		if s.Reason != "" {
			fmt.Fprintf(&sb, "%s %s %q (%s)\n", sym, s.Kind, s.Name, s.Reason)
		} else {
			fmt.Fprintf(&sb, "%s %s %q\n", sym, s.Kind, s.Name)
		}
	}

	counts := p.Counts()
	fmt.Fprintf(&sb, "\nPlan: %d to create, %d to update, %d unchanged",
		counts[ActionCreate], counts[ActionUpdate], counts[ActionNoop])
	if n := counts[ActionDelete]; n > 0 {
		fmt.Fprintf(&sb, ", %d to delete", n)
	}
	sb.WriteString(".\n")
	return sb.String()
}

func symbol(a Action) string {
	switch a {
	case ActionCreate:
		return "+"
	case ActionUpdate:
		return "~"
	case ActionDelete:
		return "-"
	default:
		return "="
	}
}
