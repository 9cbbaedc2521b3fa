package orchestration

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/state"
	"github.com/edgeship/edgeship/internal/testsupport"
)

func newStack() (*testsupport.FakeInfra, *testsupport.FakeIngress, *testsupport.FakeRepo) {
	return testsupport.NewFakeInfra(), testsupport.NewFakeIngress("example.com"), testsupport.NewFakeRepo()
}

func newTestContext(infra *testsupport.FakeInfra, ingress *testsupport.FakeIngress, repo *testsupport.FakeRepo) *provisioning.Context {
	return provisioning.NewContext(
		context.Background(),
		testsupport.StackConfig(),
		testsupport.StackSecrets(),
		state.NewSnapshot("web"),
		infra, ingress, repo,
		provisioning.WithObserver(provisioning.NewLogObserver(&bytes.Buffer{})),
	)
}

func TestReconcile_FullStack(t *testing.T) {
	infra, ingress, repo := newStack()
	ctx := newTestContext(infra, ingress, repo)

	require.NoError(t, NewReconciler().Reconcile(ctx))

	assert.NotNil(t, infra.Networks["web"])
	assert.NotNil(t, infra.Firewalls["web"])
	assert.NotNil(t, infra.SSHKeys["web-deploy"])
	assert.NotNil(t, infra.Servers["web-app"])
	assert.NotNil(t, ingress.Tunnels["web-tunnel"])
	assert.Len(t, ingress.Records["zone-1"], 1)
	assert.NotEmpty(t, repo.Files[".github/workflows/web-deploy.yml"])
	assert.NotEmpty(t, repo.Secrets["DEPLOY_KEY"])

	// The snapshot carries every resource ID for later runs.
	res := ctx.Snapshot.Resources
	assert.NotZero(t, res.NetworkID)
	assert.NotZero(t, res.FirewallID)
	assert.NotZero(t, res.SSHKeyID)
	assert.NotZero(t, res.ServerID)
	assert.NotEmpty(t, res.ServerIPv4)
	assert.NotEmpty(t, res.TunnelID)
	assert.NotEmpty(t, res.DNSRecordID)
	assert.NotEmpty(t, res.Workflow)
}

func TestReconcile_Idempotent(t *testing.T) {
	infra, ingress, repo := newStack()

	require.NoError(t, NewReconciler().Reconcile(newTestContext(infra, ingress, repo)))
	commits := len(repo.Commits)

	require.NoError(t, NewReconciler().Reconcile(newTestContext(infra, ingress, repo)))

	assert.Len(t, infra.Servers, 1)
	assert.Len(t, ingress.Tunnels, 1)
	assert.Equal(t, commits, len(repo.Commits), "second run must not re-commit the workflow")
}

func TestReconcile_StopsWhenLayerFails(t *testing.T) {
	infra, ingress, repo := newStack()
	infra.Err = errors.New("quota exceeded")

	err := NewReconciler().Reconcile(newTestContext(infra, ingress, repo))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network")

	// compute and delivery never ran
	assert.Empty(t, infra.Servers)
	assert.Empty(t, repo.Files)
}

func TestPlan_FreshStackInDependencyOrder(t *testing.T) {
	infra, ingress, repo := newStack()

	p, err := NewReconciler().Plan(newTestContext(infra, ingress, repo))
	require.NoError(t, err)
	require.NotEmpty(t, p.Steps)
	assert.True(t, p.HasChanges())

	index := map[string]int{}
	for i, step := range p.Steps {
		if _, seen := index[step.Kind]; !seen {
			index[step.Kind] = i
		}
	}
	assert.Less(t, index["network"], index["server"], "network steps precede compute steps")
	assert.Less(t, index["tunnel"], index["server"], "ingress steps precede compute steps")
	assert.Less(t, index["server"], index["workflow"], "compute steps precede delivery steps")
}

func TestPlan_ConvergedStack(t *testing.T) {
	infra, ingress, repo := newStack()
	require.NoError(t, NewReconciler().Reconcile(newTestContext(infra, ingress, repo)))

	p, err := NewReconciler().Plan(newTestContext(infra, ingress, repo))
	require.NoError(t, err)

	for _, step := range p.Steps {
		if step.Kind == "secret" {
			continue // secret values are write-only and always re-uploaded
		}
		assert.Equal(t, plan.ActionNoop, step.Action, "unexpected change for %s %q", step.Kind, step.Name)
	}
}

func TestDestroy_AfterReconcile(t *testing.T) {
	infra, ingress, repo := newStack()
	require.NoError(t, NewReconciler().Reconcile(newTestContext(infra, ingress, repo)))

	require.NoError(t, NewReconciler().Destroy(newTestContext(infra, ingress, repo)))

	assert.Empty(t, infra.Servers)
	assert.Empty(t, infra.Networks)
	assert.Empty(t, ingress.Tunnels)
	assert.Empty(t, repo.Secrets)
}

func TestRunParallel_AllTasksFinish(t *testing.T) {
	var mu sync.Mutex
	var done []string
	observer := provisioning.NewLogObserver(&bytes.Buffer{})

	err := RunParallel(observer, []Task{
		{Name: "a", Func: func() error {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, "a")
			return nil
		}},
		{Name: "b", Func: func() error {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, "b")
			return errors.New("boom")
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b: boom")
	assert.ElementsMatch(t, []string{"a", "b"}, done, "all tasks run to completion even on failure")
}

func TestRunParallel_Empty(t *testing.T) {
	observer := provisioning.NewLogObserver(&bytes.Buffer{})
	assert.NoError(t, RunParallel(observer, nil))
}
