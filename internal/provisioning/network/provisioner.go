// Package network provisions the private network, subnet, and firewall a
// stack's instance attaches to.
package network

import (
	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// Provisioner converges the network layer.
type Provisioner struct{}

// NewProvisioner creates a network provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "network"
}

// Plan implements provisioning.Phase.
func (p *Provisioner) Plan(ctx *provisioning.Context, pl *plan.Plan) error {
	if err := p.planNetwork(ctx, pl); err != nil {
		return err
	}
	return p.planFirewall(ctx, pl)
}

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.provisionNetwork(ctx); err != nil {
		return err
	}
	return p.provisionFirewall(ctx)
}

func labels(ctx *provisioning.Context) map[string]string {
	return naming.Labels(ctx.Config.Name)
}
