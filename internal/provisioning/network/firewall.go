package network

import (
	"strconv"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/platform/hcloud"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

func (p *Provisioner) planFirewall(ctx *provisioning.Context, pl *plan.Plan) error {
	name := naming.Firewall(ctx.Config.Name)

	desired, err := hcloud.DesiredFirewallRules(ctx.Config.Network.SSHAllowList)
	if err != nil {
		return err
	}

	existing, err := ctx.Infra.GetFirewall(ctx, name)
	if err != nil {
		return err
	}
	switch {
	case existing == nil:
		pl.Add(plan.Step{Kind: "firewall", Name: name, Action: plan.ActionCreate, Reason: "not found"})
	case !hcloud.RulesEqual(existing.Rules, desired):
		pl.Add(plan.Step{Kind: "firewall", Name: name, Action: plan.ActionUpdate, Reason: "rules differ"})
	default:
		pl.Add(plan.Step{Kind: "firewall", Name: name, Action: plan.ActionNoop})
	}
	return nil
}

func (p *Provisioner) provisionFirewall(ctx *provisioning.Context) error {
	name := naming.Firewall(ctx.Config.Name)

	rules, err := hcloud.DesiredFirewallRules(ctx.Config.Network.SSHAllowList)
	if err != nil {
		return err
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "firewall", name)
	firewall, err := ctx.Infra.EnsureFirewall(ctx, name, rules, labels(ctx))
	if err != nil {
		return err
	}
	ctx.State.Firewall = firewall
	ctx.Snapshot.Resources.FirewallID = firewall.ID

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "firewall", name, itoa(firewall.ID))
	return nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
