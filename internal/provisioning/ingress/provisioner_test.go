package ingress

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/platform/cloudflare"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/state"
	"github.com/edgeship/edgeship/internal/testsupport"
)

func newTestContext(fake *testsupport.FakeIngress) *provisioning.Context {
	return provisioning.NewContext(
		context.Background(),
		testsupport.StackConfig(),
		testsupport.StackSecrets(),
		state.NewSnapshot("web"),
		nil, fake, nil,
		provisioning.WithObserver(provisioning.NewLogObserver(&bytes.Buffer{})),
	)
}

func TestProvision_CreatesTunnelAndDNS(t *testing.T) {
	fake := testsupport.NewFakeIngress("example.com")
	ctx := newTestContext(fake)

	require.NoError(t, NewProvisioner().Provision(ctx))

	tunnel := fake.Tunnels["web-tunnel"]
	require.NotNil(t, tunnel)
	assert.Equal(t, tunnel.ID, ctx.State.TunnelID)
	assert.Equal(t, tunnel.ID, ctx.Snapshot.Resources.TunnelID)
	assert.Equal(t, "test-tunnel-token", ctx.State.TunnelToken)

	cfg := fake.Configs[tunnel.ID]
	require.Len(t, cfg.Ingress, 2)
	assert.Equal(t, "app.example.com", cfg.Ingress[0].Hostname)
	assert.Equal(t, "http://localhost:8080", cfg.Ingress[0].Service)
	assert.Equal(t, cloudflare.CatchAllService, cfg.Ingress[1].Service)

	records := fake.Records["zone-1"]
	require.Len(t, records, 1)
	assert.Equal(t, "CNAME", records[0].Type)
	assert.Equal(t, "app.example.com", records[0].Name)
	assert.Equal(t, cloudflare.TunnelCNAME(tunnel.ID), records[0].Content)
	assert.True(t, records[0].Proxied)
	assert.Equal(t, records[0].ID, ctx.Snapshot.Resources.DNSRecordID)
}

func TestProvision_TokenNeverPersisted(t *testing.T) {
	fake := testsupport.NewFakeIngress("example.com")
	ctx := newTestContext(fake)

	require.NoError(t, NewProvisioner().Provision(ctx))

	// The snapshot is what gets written to disk; the token must not be in it.
	assert.NotContains(t, []string{
		ctx.Snapshot.Resources.TunnelID,
		ctx.Snapshot.Resources.ZoneID,
		ctx.Snapshot.Resources.DNSRecordID,
	}, ctx.State.TunnelToken)
}

func TestProvision_Idempotent(t *testing.T) {
	fake := testsupport.NewFakeIngress("example.com")
	require.NoError(t, NewProvisioner().Provision(newTestContext(fake)))
	require.NoError(t, NewProvisioner().Provision(newTestContext(fake)))

	assert.Len(t, fake.Tunnels, 1)
	assert.Len(t, fake.Records["zone-1"], 1)
}

func TestPlan_FreshStack(t *testing.T) {
	ctx := newTestContext(testsupport.NewFakeIngress("example.com"))

	pl := plan.New()
	require.NoError(t, NewProvisioner().Plan(ctx, pl))

	require.Len(t, pl.Steps, 3)
	for _, step := range pl.Steps {
		assert.Equal(t, plan.ActionCreate, step.Action)
	}
}

func TestPlan_ConvergedStackIsNoop(t *testing.T) {
	fake := testsupport.NewFakeIngress("example.com")
	require.NoError(t, NewProvisioner().Provision(newTestContext(fake)))

	pl := plan.New()
	require.NoError(t, NewProvisioner().Plan(newTestContext(fake), pl))

	assert.False(t, pl.HasChanges())
}

func TestPlan_IngressRulesDrift(t *testing.T) {
	fake := testsupport.NewFakeIngress("example.com")
	require.NoError(t, NewProvisioner().Provision(newTestContext(fake)))

	tunnel := fake.Tunnels["web-tunnel"]
	fake.Configs[tunnel.ID] = cloudflare.TunnelConfig{Ingress: []cloudflare.IngressRule{
		{Hostname: "app.example.com", Service: "http://localhost:9999"},
		{Service: cloudflare.CatchAllService},
	}}

	pl := plan.New()
	require.NoError(t, NewProvisioner().Plan(newTestContext(fake), pl))

	var configStep *plan.Step
	for i := range pl.Steps {
		if pl.Steps[i].Kind == "tunnel-config" {
			configStep = &pl.Steps[i]
		}
	}
	require.NotNil(t, configStep)
	assert.Equal(t, plan.ActionUpdate, configStep.Action)
}

func TestPlan_MissingZoneFails(t *testing.T) {
	fake := testsupport.NewFakeIngress("other.com")
	fake.Tunnels["web-tunnel"] = &cloudflare.Tunnel{ID: "tun-1", Name: "web-tunnel"}

	pl := plan.New()
	err := NewProvisioner().Plan(newTestContext(fake), pl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no zone found")
}

// stalledIngress blocks tunnel creation until the context expires.
type stalledIngress struct {
	*testsupport.FakeIngress
}

func (s *stalledIngress) EnsureTunnel(ctx context.Context, _, _ string) (*cloudflare.Tunnel, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProvision_TunnelBoundedByReadyTimeout(t *testing.T) {
	fake := &stalledIngress{testsupport.NewFakeIngress("example.com")}
	ctx := provisioning.NewContext(
		context.Background(),
		testsupport.StackConfig(),
		testsupport.StackSecrets(),
		state.NewSnapshot("web"),
		nil, fake, nil,
		provisioning.WithObserver(provisioning.NewLogObserver(&bytes.Buffer{})),
		provisioning.WithTimeouts(&config.Timeouts{TunnelReady: time.Millisecond}),
	)

	err := NewProvisioner().Provision(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
