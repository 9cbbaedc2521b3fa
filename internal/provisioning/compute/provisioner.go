// Package compute provisions the deploy key and the application server,
// including its first-boot script.
package compute

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edgeship/edgeship/internal/plan"
	hcloud_internal "github.com/edgeship/edgeship/internal/platform/hcloud"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// Provisioner converges the SSH key and server.
type Provisioner struct{}

// NewProvisioner creates a compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "compute"
}

// Plan implements provisioning.Phase.
func (p *Provisioner) Plan(ctx *provisioning.Context, pl *plan.Plan) error {
	keyName := naming.SSHKey(ctx.Config.Name)
	key, err := ctx.Infra.GetSSHKey(ctx, keyName)
	if err != nil {
		return err
	}
	if key == nil {
		pl.Add(plan.Step{Kind: "ssh-key", Name: keyName, Action: plan.ActionCreate, Reason: "not found"})
	} else {
		pl.Add(plan.Step{Kind: "ssh-key", Name: keyName, Action: plan.ActionNoop})
	}

	serverName := naming.Server(ctx.Config.Name)
	server, err := ctx.Infra.GetServer(ctx, serverName)
	if err != nil {
		return err
	}
	if server == nil {
		pl.Add(plan.Step{Kind: "server", Name: serverName, Action: plan.ActionCreate, Reason: "not found"})
	} else {
		pl.Add(plan.Step{Kind: "server", Name: serverName, Action: plan.ActionNoop})
	}
	return nil
}

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.provisionSSHKey(ctx); err != nil {
		return err
	}
	return p.provisionServer(ctx)
}

func (p *Provisioner) provisionServer(ctx *provisioning.Context) error {
	serverName := naming.Server(ctx.Config.Name)

	existing, err := ctx.Infra.GetServer(ctx, serverName)
	if err != nil {
		return err
	}
	if existing == nil {
		userData, err := renderBootScript(ctx)
		if err != nil {
			return err
		}

		provisioning.LogResourceCreating(ctx.Observer, p.Name(), "server", serverName)
		key, err := ctx.Infra.GetSSHKey(ctx, naming.SSHKey(ctx.Config.Name))
		if err != nil {
			return err
		}

		spec := hcloud_internal.ServerSpec{
			Name:       serverName,
			ServerType: ctx.Config.Instance.Type,
			Image:      ctx.Config.Instance.Image,
			Location:   ctx.Config.Location,
			UserData:   userData,
			Labels:     naming.Labels(ctx.Config.Name),
			Network:    ctx.State.Network,
			Firewall:   ctx.State.Firewall,
		}
		if key != nil {
			spec.SSHKeys = append(spec.SSHKeys, key)
		}
		if _, err := ctx.Infra.EnsureServer(ctx, spec); err != nil {
			return err
		}
	} else {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "server", serverName, strconv.FormatInt(existing.ID, 10))
	}

	server, err := ctx.Infra.WaitForServerRunning(ctx, serverName)
	if err != nil {
		return err
	}
	ctx.State.Server = server
	ctx.Snapshot.Resources.ServerID = server.ID
	if server.PublicNet.IPv4.IP != nil {
		ctx.State.ServerIPv4 = server.PublicNet.IPv4.IP.String()
		ctx.Snapshot.Resources.ServerIPv4 = ctx.State.ServerIPv4
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "server", serverName, strconv.FormatInt(server.ID, 10))
	return nil
}

func requireTunnelToken(ctx *provisioning.Context) (string, error) {
	if strings.TrimSpace(ctx.State.TunnelToken) == "" {
		return "", fmt.Errorf("tunnel token not available; ingress phase must run first")
	}
	return ctx.State.TunnelToken, nil
}
