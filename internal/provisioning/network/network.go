package network

import (
	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

func (p *Provisioner) planNetwork(ctx *provisioning.Context, pl *plan.Plan) error {
	name := naming.Network(ctx.Config.Name)

	existing, err := ctx.Infra.GetNetwork(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		pl.Add(plan.Step{Kind: "network", Name: name, Action: plan.ActionCreate, Reason: "not found"})
		return nil
	}
	pl.Add(plan.Step{Kind: "network", Name: name, Action: plan.ActionNoop})
	return nil
}

func (p *Provisioner) provisionNetwork(ctx *provisioning.Context) error {
	name := naming.Network(ctx.Config.Name)

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "network", name)
	network, err := ctx.Infra.EnsureNetwork(ctx, name, ctx.Config.Network.CIDR, labels(ctx))
	if err != nil {
		return err
	}
	ctx.State.Network = network
	ctx.Snapshot.Resources.NetworkID = network.ID

	if err := ctx.Infra.EnsureSubnet(ctx, network, ctx.Config.Network.SubnetCIDR, ctx.Config.Network.Zone); err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "network", name, itoa(network.ID))
	return nil
}
