// Package ingress provisions the tunnel and DNS routing that expose the
// application without opening inbound ports.
package ingress

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/platform/cloudflare"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// Provisioner converges the tunnel and its DNS record.
type Provisioner struct{}

// NewProvisioner creates an ingress provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "ingress"
}

// desiredRules is the single-hostname routing for the stack. The catch-all
// is appended on upload.
func desiredRules(ctx *provisioning.Context) []cloudflare.IngressRule {
	return []cloudflare.IngressRule{{
		Hostname: ctx.Config.Ingress.Hostname,
		Service:  fmt.Sprintf("http://localhost:%d", ctx.Config.Instance.AppPort),
	}}
}

// Plan implements provisioning.Phase.
func (p *Provisioner) Plan(ctx *provisioning.Context, pl *plan.Plan) error {
	tunnelName := naming.Tunnel(ctx.Config.Name)
	accountID := ctx.Config.Ingress.AccountID

	tunnel, err := ctx.Ingress.GetTunnelByName(ctx, accountID, tunnelName)
	if err != nil {
		return err
	}
	if tunnel == nil {
		pl.Add(plan.Step{Kind: "tunnel", Name: tunnelName, Action: plan.ActionCreate, Reason: "not found"})
		pl.Add(plan.Step{Kind: "tunnel-config", Name: tunnelName, Action: plan.ActionCreate})
		pl.Add(plan.Step{Kind: "dns", Name: ctx.Config.Ingress.Hostname, Action: plan.ActionCreate})
		return nil
	}
	pl.Add(plan.Step{Kind: "tunnel", Name: tunnelName, Action: plan.ActionNoop})

	cfg, err := ctx.Ingress.GetTunnelConfiguration(ctx, accountID, tunnel.ID)
	if err != nil {
		return err
	}
	if !cloudflare.IngressEqual(cfg.Ingress, desiredRules(ctx)) {
		pl.Add(plan.Step{Kind: "tunnel-config", Name: tunnelName, Action: plan.ActionUpdate, Reason: "ingress rules differ"})
	} else {
		pl.Add(plan.Step{Kind: "tunnel-config", Name: tunnelName, Action: plan.ActionNoop})
	}

	return p.planDNS(ctx, pl, tunnel.ID)
}

func (p *Provisioner) planDNS(ctx *provisioning.Context, pl *plan.Plan, tunnelID string) error {
	hostname := ctx.Config.Ingress.Hostname

	zoneID, err := ctx.Ingress.GetZoneID(ctx, ctx.Config.Ingress.Domain)
	if err != nil {
		return err
	}
	record, err := ctx.Ingress.FindDNSRecord(ctx, zoneID, "CNAME", hostname)
	if err != nil {
		return err
	}
	target := cloudflare.TunnelCNAME(tunnelID)
	switch {
	case record == nil:
		pl.Add(plan.Step{Kind: "dns", Name: hostname, Action: plan.ActionCreate, Reason: "not found"})
	case record.Content != target || !record.Proxied:
		pl.Add(plan.Step{Kind: "dns", Name: hostname, Action: plan.ActionUpdate, Reason: "target differs"})
	default:
		pl.Add(plan.Step{Kind: "dns", Name: hostname, Action: plan.ActionNoop})
	}
	return nil
}

// Provision implements provisioning.Phase. The tunnel token it fetches is
// kept in memory for the compute phase's boot script and never persisted.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	tunnelName := naming.Tunnel(ctx.Config.Name)
	accountID := ctx.Config.Ingress.AccountID

	// Tunnel convergence is bounded by the tunnel-ready timeout.
	tctx, cancel := context.WithTimeout(ctx, ctx.Timeouts.TunnelReady)
	defer cancel()

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "tunnel", tunnelName)
	tunnel, err := ctx.Ingress.EnsureTunnel(tctx, accountID, tunnelName)
	if err != nil {
		return err
	}
	ctx.State.TunnelID = tunnel.ID
	ctx.Snapshot.Resources.TunnelID = tunnel.ID
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "tunnel", tunnelName, tunnel.ID)

	cfg := cloudflare.TunnelConfig{Ingress: desiredRules(ctx)}
	if err := ctx.Ingress.UpdateTunnelConfiguration(tctx, accountID, tunnel.ID, cfg); err != nil {
		return err
	}

	token, err := ctx.Ingress.GetTunnelToken(tctx, accountID, tunnel.ID)
	if err != nil {
		return err
	}
	ctx.State.TunnelToken = token

	return p.provisionDNS(ctx, tunnel.ID)
}

func (p *Provisioner) provisionDNS(ctx *provisioning.Context, tunnelID string) error {
	hostname := ctx.Config.Ingress.Hostname

	zoneID, err := ctx.Ingress.GetZoneID(ctx, ctx.Config.Ingress.Domain)
	if err != nil {
		return err
	}
	ctx.State.ZoneID = zoneID
	ctx.Snapshot.Resources.ZoneID = zoneID

	record, err := ctx.Ingress.EnsureDNSRecord(ctx, zoneID, cloudflare.Record{
		Type:    "CNAME",
		Name:    hostname,
		Content: cloudflare.TunnelCNAME(tunnelID),
		Proxied: true,
	})
	if err != nil {
		return err
	}
	ctx.State.DNSRecordID = record.ID
	ctx.Snapshot.Resources.DNSRecordID = record.ID

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "dns record", hostname, record.ID)
	return nil
}
