package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/platform/cloudflare"
	"github.com/edgeship/edgeship/internal/platform/github"
	"github.com/edgeship/edgeship/internal/platform/hcloud"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/state"
	"github.com/edgeship/edgeship/internal/testsupport"
)

func TestApply_ProvisionsFullStack(t *testing.T) {
	env := setupTestEnv(t)

	output := captureOutput(func() {
		err := Apply(context.Background(), "edgeship.yaml")
		require.NoError(t, err)
	})

	// Every phase ran against the fakes.
	assert.Contains(t, env.infra.Networks, "web")
	assert.Contains(t, env.infra.Servers, "web-app")
	assert.Contains(t, env.ingress.Tunnels, "web-tunnel")
	assert.Contains(t, env.repo.Files, ".github/workflows/web-deploy.yml")

	// Snapshot was persisted with the provisioned IDs.
	require.NotNil(t, env.store.snap)
	assert.NotZero(t, env.store.snap.Resources.ServerID)
	assert.NotEmpty(t, env.store.snap.Resources.TunnelID)
	assert.NotEmpty(t, env.store.snap.Resources.ServerIPv4)

	assert.Contains(t, output, "Stack web is up.")
	assert.Contains(t, output, "https://app.example.com")
}

func TestApply_MissingCredentials(t *testing.T) {
	setupTestEnv(t)

	loadSecrets = func() *config.Secrets { return &config.Secrets{} }

	err := Apply(context.Background(), "edgeship.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvHCloudToken)
}

func TestApply_SavesSnapshotOnPartialFailure(t *testing.T) {
	env := setupTestEnv(t)

	// Zone missing: network succeeds, ingress fails, later phases never run.
	env.ingress.Zones = map[string]string{}

	err := Apply(context.Background(), "edgeship.yaml")
	require.Error(t, err)

	require.NotNil(t, env.store.snap)
	assert.NotZero(t, env.store.snap.Resources.NetworkID)
	assert.Zero(t, env.store.snap.Resources.ServerID)
}

func TestApply_SecondRunIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))
	serverID := env.store.snap.Resources.ServerID
	commits := len(env.repo.Commits)

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))

	assert.Equal(t, serverID, env.store.snap.Resources.ServerID)
	assert.Equal(t, commits, len(env.repo.Commits), "unchanged workflow must not be re-committed")
	assert.Len(t, env.infra.Servers, 1)
}

func TestApply_ReusesSnapshotStack(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))
	first := *env.store.snap

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))

	assert.Equal(t, first.Stack, env.store.snap.Stack)
	assert.Equal(t, first.Resources.TunnelID, env.store.snap.Resources.TunnelID)
}

func TestApply_TunnelTokenNeverPersisted(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))

	snap := env.store.snap
	require.NotNil(t, snap)
	for _, field := range []string{
		snap.Resources.TunnelID,
		snap.Resources.ZoneID,
		snap.Resources.DNSRecordID,
		snap.Resources.ServerIPv4,
		snap.Resources.Workflow,
	} {
		assert.NotEqual(t, testsupport.NewFakeIngress("x").Token, field)
	}
}

func TestApply_TimeoutsReachClientAndPhases(t *testing.T) {
	env := setupTestEnv(t)

	want := &config.Timeouts{TunnelReady: time.Minute}
	loadTimeouts = func() *config.Timeouts { return want }

	var clientTimeouts *config.Timeouts
	newInfraClient = func(_ string, timeouts *config.Timeouts) hcloud.InfrastructureManager {
		clientTimeouts = timeouts
		return env.infra
	}

	var ctxTimeouts *config.Timeouts
	newProvisioningContext = func(
		ctx context.Context,
		cfg *config.Config,
		secrets *config.Secrets,
		snap *state.Snapshot,
		infra hcloud.InfrastructureManager,
		ingress cloudflare.IngressManager,
		repo github.RepoManager,
		opts ...provisioning.ContextOption,
	) *provisioning.Context {
		pctx := provisioning.NewContext(ctx, cfg, secrets, snap, infra, ingress, repo, opts...)
		ctxTimeouts = pctx.Timeouts
		return pctx
	}

	require.NoError(t, Apply(context.Background(), "edgeship.yaml"))

	assert.Same(t, want, clientTimeouts)
	assert.Same(t, want, ctxTimeouts)
}
