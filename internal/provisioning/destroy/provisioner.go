// Package destroy tears a stack down in reverse dependency order: the
// delivery wiring first, then compute, ingress, and finally the network.
package destroy

import (
	"fmt"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
	"github.com/edgeship/edgeship/internal/workflow"
)

// Provisioner handles stack teardown.
type Provisioner struct{}

// NewProvisioner creates a destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Plan implements provisioning.Phase. It lists every resource that still
// exists and would be removed.
func (p *Provisioner) Plan(ctx *provisioning.Context, pl *plan.Plan) error {
	stack := ctx.Config.Name

	if server, err := ctx.Infra.GetServer(ctx, naming.Server(stack)); err != nil {
		return err
	} else if server != nil {
		pl.Add(plan.Step{Kind: "server", Name: naming.Server(stack), Action: plan.ActionDelete})
	}
	if key, err := ctx.Infra.GetSSHKey(ctx, naming.SSHKey(stack)); err != nil {
		return err
	} else if key != nil {
		pl.Add(plan.Step{Kind: "ssh-key", Name: naming.SSHKey(stack), Action: plan.ActionDelete})
	}
	if tunnel, err := ctx.Ingress.GetTunnelByName(ctx, ctx.Config.Ingress.AccountID, naming.Tunnel(stack)); err != nil {
		return err
	} else if tunnel != nil {
		pl.Add(plan.Step{Kind: "tunnel", Name: naming.Tunnel(stack), Action: plan.ActionDelete})
		pl.Add(plan.Step{Kind: "dns", Name: ctx.Config.Ingress.Hostname, Action: plan.ActionDelete})
	}
	if firewall, err := ctx.Infra.GetFirewall(ctx, naming.Firewall(stack)); err != nil {
		return err
	} else if firewall != nil {
		pl.Add(plan.Step{Kind: "firewall", Name: naming.Firewall(stack), Action: plan.ActionDelete})
	}
	if network, err := ctx.Infra.GetNetwork(ctx, naming.Network(stack)); err != nil {
		return err
	} else if network != nil {
		pl.Add(plan.Step{Kind: "network", Name: naming.Network(stack), Action: plan.ActionDelete})
	}
	pl.Add(plan.Step{Kind: "workflow", Name: naming.WorkflowFile(stack), Action: plan.ActionDelete})
	return nil
}

// Provision implements provisioning.Phase by removing every stack resource.
// Each deletion is idempotent, so a partially destroyed stack can be
// destroyed again.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.destroyDelivery(ctx); err != nil {
		return err
	}
	if err := p.destroyCompute(ctx); err != nil {
		return err
	}
	if err := p.destroyIngress(ctx); err != nil {
		return err
	}
	return p.destroyNetwork(ctx)
}

func (p *Provisioner) destroyDelivery(ctx *provisioning.Context) error {
	owner, repo := ctx.Config.RepoOwner(), ctx.Config.RepoName()
	path := naming.WorkflowFile(ctx.Config.Name)

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "workflow", path)
	message := fmt.Sprintf("Remove %s deploy workflow", ctx.Config.Name)
	if err := ctx.Repo.DeleteFile(ctx, owner, repo, path, ctx.Config.Deploy.Branch, message); err != nil {
		return err
	}

	for _, name := range workflow.SecretNames {
		if err := ctx.Repo.DeleteSecret(ctx, owner, repo, name); err != nil {
			return err
		}
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "workflow", path)
	return nil
}

func (p *Provisioner) destroyCompute(ctx *provisioning.Context) error {
	serverName := naming.Server(ctx.Config.Name)
	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "server", serverName)
	if err := ctx.Infra.DeleteServer(ctx, serverName); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "server", serverName)

	keyName := naming.SSHKey(ctx.Config.Name)
	if err := ctx.Infra.DeleteSSHKey(ctx, keyName); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "ssh key", keyName)
	return nil
}

func (p *Provisioner) destroyIngress(ctx *provisioning.Context) error {
	accountID := ctx.Config.Ingress.AccountID
	tunnelName := naming.Tunnel(ctx.Config.Name)

	tunnel, err := ctx.Ingress.GetTunnelByName(ctx, accountID, tunnelName)
	if err != nil {
		return err
	}
	if tunnel == nil {
		return nil
	}

	zoneID, err := ctx.Ingress.GetZoneID(ctx, ctx.Config.Ingress.Domain)
	if err != nil {
		return err
	}
	record, err := ctx.Ingress.FindDNSRecord(ctx, zoneID, "CNAME", ctx.Config.Ingress.Hostname)
	if err != nil {
		return err
	}
	if record != nil {
		provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "dns record", record.Name)
		if err := ctx.Ingress.DeleteDNSRecord(ctx, zoneID, record.ID); err != nil {
			return err
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "dns record", record.Name)
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "tunnel", tunnelName)
	if err := ctx.Ingress.DeleteTunnel(ctx, accountID, tunnel.ID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "tunnel", tunnelName)
	return nil
}

func (p *Provisioner) destroyNetwork(ctx *provisioning.Context) error {
	firewallName := naming.Firewall(ctx.Config.Name)
	if err := ctx.Infra.DeleteFirewall(ctx, firewallName); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "firewall", firewallName)

	networkName := naming.Network(ctx.Config.Name)
	if err := ctx.Infra.DeleteNetwork(ctx, networkName); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "network", networkName)
	return nil
}
