package hcloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

func serverSpec() ServerSpec {
	return ServerSpec{
		Name:       "myapp-app",
		ServerType: "cx22",
		Image:      "ubuntu-24.04",
		Location:   "nbg1",
		UserData:   "#!/usr/bin/env bash\n",
		SSHKeys:    []*hcloud.SSHKey{{ID: 4}},
		Network:    &hcloud.Network{ID: 1},
		Firewall:   &hcloud.Firewall{ID: 2},
	}
}

func wireServerDeps(c *Client) *fakeServerAPI {
	server := &fakeServerAPI{}
	c.server = server
	c.serverType = &fakeServerTypeAPI{serverType: &hcloud.ServerType{Name: "cx22", Architecture: hcloud.ArchitectureX86}}
	c.location = &fakeLocationAPI{location: &hcloud.Location{Name: "nbg1"}}
	c.image = &fakeImageAPI{image: &hcloud.Image{ID: 100, Name: "ubuntu-24.04"}}
	return server
}

func TestEnsureServer_CreatesWhenMissing(t *testing.T) {
	c := newTestClient()
	fake := wireServerDeps(c)

	server, err := c.EnsureServer(context.Background(), serverSpec())
	require.NoError(t, err)
	assert.Equal(t, "myapp-app", server.Name)

	require.NotNil(t, fake.created)
	assert.Equal(t, "#!/usr/bin/env bash\n", fake.created.UserData)
	require.Len(t, fake.created.Networks, 1)
	require.Len(t, fake.created.Firewalls, 1)
	assert.Equal(t, int64(2), fake.created.Firewalls[0].Firewall.ID)
}

func TestEnsureServer_ReturnsExistingWithoutRecreate(t *testing.T) {
	c := newTestClient()
	fake := wireServerDeps(c)
	fake.existing = &hcloud.Server{ID: 9, Name: "myapp-app", Status: hcloud.ServerStatusRunning}

	server, err := c.EnsureServer(context.Background(), serverSpec())
	require.NoError(t, err)
	assert.Equal(t, int64(9), server.ID)
	assert.Nil(t, fake.created)
}

func TestEnsureServer_InvalidParameterIsFatal(t *testing.T) {
	c := newTestClient()
	fake := wireServerDeps(c)
	fake.createErr = hcloud.Error{Code: hcloud.ErrorCodeInvalidInput}

	_, err := c.EnsureServer(context.Background(), serverSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not retrying")
}

func TestEnsureServer_DeprecatedImage(t *testing.T) {
	c := newTestClient()
	wireServerDeps(c)
	c.image = &fakeImageAPI{image: &hcloud.Image{Name: "ubuntu-20.04", Deprecated: timeNonZero()}}

	_, err := c.EnsureServer(context.Background(), serverSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deprecated")
}

func TestWaitForServerRunning(t *testing.T) {
	c := newTestClient()
	fake := wireServerDeps(c)
	fake.existing = &hcloud.Server{Name: "myapp-app"}
	fake.statusSeq = []hcloud.ServerStatus{hcloud.ServerStatusRunning}

	server, err := c.WaitForServerRunning(context.Background(), "myapp-app")
	require.NoError(t, err)
	assert.Equal(t, hcloud.ServerStatusRunning, server.Status)
}

func TestDeleteServer(t *testing.T) {
	c := newTestClient()
	fake := wireServerDeps(c)
	fake.existing = &hcloud.Server{Name: "myapp-app"}

	require.NoError(t, c.DeleteServer(context.Background(), "myapp-app"))
	assert.Equal(t, []string{"myapp-app"}, fake.deleted)

	// Second delete is a no-op.
	require.NoError(t, c.DeleteServer(context.Background(), "myapp-app"))
	assert.Len(t, fake.deleted, 1)
}

func TestEnsureSSHKey(t *testing.T) {
	c := newTestClient()
	fake := &fakeSSHKeyAPI{}
	c.sshKey = fake

	key, err := c.EnsureSSHKey(context.Background(), "myapp-deploy", "ssh-ed25519 AAAA...", nil)
	require.NoError(t, err)
	assert.Equal(t, "myapp-deploy", key.Name)
	require.NotNil(t, fake.created)

	// Existing key short-circuits creation.
	fake.existing = key
	fake.created = nil
	_, err = c.EnsureSSHKey(context.Background(), "myapp-deploy", "ssh-ed25519 AAAA...", nil)
	require.NoError(t, err)
	assert.Nil(t, fake.created)
}

func TestEnsureSSHKey_MismatchedKeyMaterial(t *testing.T) {
	c := newTestClient()
	fake := &fakeSSHKeyAPI{
		existing: &hcloud.SSHKey{ID: 4, Name: "myapp-deploy", PublicKey: "ssh-ed25519 BBBB..."},
	}
	c.sshKey = fake

	_, err := c.EnsureSSHKey(context.Background(), "myapp-deploy", "ssh-ed25519 AAAA...", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different key material")
	assert.Nil(t, fake.created)
}
