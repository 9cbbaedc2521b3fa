package hcloud

import (
	"context"
	"fmt"
	"time"

	"github.com/edgeship/edgeship/internal/util/retry"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ServerSpec describes the compute instance to ensure.
type ServerSpec struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	UserData   string
	Labels     map[string]string
	SSHKeys    []*hcloud.SSHKey
	Network    *hcloud.Network
	Firewall   *hcloud.Firewall
}

// EnsureServer ensures the server exists. An existing server is returned
// as-is: user data only runs at first boot, so a changed boot script means
// replacement, which is left to an explicit destroy.
func (c *Client) EnsureServer(ctx context.Context, spec ServerSpec) (*hcloud.Server, error) {
	existing, _, err := c.server.Get(ctx, spec.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	opts, err := c.buildServerCreateOpts(ctx, spec)
	if err != nil {
		return nil, err
	}

	result, err := c.createServerWithRetry(ctx, opts)
	if err != nil {
		return nil, err
	}

	return result.Server, nil
}

func (c *Client) buildServerCreateOpts(ctx context.Context, spec ServerSpec) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.serverType.Get(ctx, spec.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("server type not found: %s", spec.ServerType)
	}

	image, err := c.ResolveImage(ctx, spec.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	location, _, err := c.location.Get(ctx, spec.Location)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get location: %w", err)
	}
	if location == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("location not found: %s", spec.Location)
	}

	opts := hcloud.ServerCreateOpts{
		Name:       spec.Name,
		ServerType: serverType,
		Image:      image,
		Location:   location,
		UserData:   spec.UserData,
		Labels:     spec.Labels,
		SSHKeys:    spec.SSHKeys,
	}
	if spec.Network != nil {
		opts.Networks = []*hcloud.Network{spec.Network}
	}
	if spec.Firewall != nil {
		opts.Firewalls = []*hcloud.ServerCreateFirewall{{Firewall: *spec.Firewall}}
	}
	return opts, nil
}

func (c *Client) createServerWithRetry(ctx context.Context, opts hcloud.ServerCreateOpts) (hcloud.ServerCreateResult, error) {
	var result hcloud.ServerCreateResult

	err := retry.Do(ctx, func() error {
		res, _, err := c.server.Create(ctx, opts)
		if err != nil {
			if isInvalidParameter(err) {
				return retry.Fatal(err)
			}
			return err
		}
		result = res

		actions := append([]*hcloud.Action{res.Action}, res.NextActions...)
		if err := waitForActions(ctx, c.action, actions...); err != nil {
			return retry.Fatal(fmt.Errorf("failed to wait for server creation: %w", err))
		}
		return nil
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))

	if err != nil {
		return hcloud.ServerCreateResult{}, fmt.Errorf("failed to create server: %w", err)
	}
	return result, nil
}

// GetServer returns the server by name, or nil if it doesn't exist.
func (c *Client) GetServer(ctx context.Context, name string) (*hcloud.Server, error) {
	server, _, err := c.server.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return server, nil
}

// WaitForServerRunning polls the server until it reaches running status.
func (c *Client) WaitForServerRunning(ctx context.Context, name string) (*hcloud.Server, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerRunning)
	defer cancel()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		server, _, err := c.server.Get(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get server: %w", err)
		}
		if server == nil {
			return nil, fmt.Errorf("server %s disappeared while waiting for running status", name)
		}
		if server.Status == hcloud.ServerStatusRunning {
			return server, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for server %s to run (status %s): %w", name, server.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

// DeleteServer deletes the server with the given name.
func (c *Client) DeleteServer(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Server]{
		Name:         name,
		ResourceType: "server",
		Get:          c.server.Get,
		Delete: func(ctx context.Context, server *hcloud.Server) (*hcloud.Response, error) {
			result, resp, err := c.server.DeleteWithResult(ctx, server)
			if err != nil {
				return resp, err
			}
			if err := waitForActions(ctx, c.action, result.Action); err != nil {
				return resp, fmt.Errorf("failed to wait for server deletion: %w", err)
			}
			return resp, nil
		},
	}).Execute(ctx, c)
}
