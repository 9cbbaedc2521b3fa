// Package hcloud wraps the Hetzner Cloud API for stack provisioning.
//
// All resource operations are Ensure-shaped (get, validate or update,
// create) so that apply is idempotent, and transient API failures are
// retried with exponential backoff.
package hcloud

import (
	"context"

	"github.com/edgeship/edgeship/internal/config"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Client implements InfrastructureManager using the Hetzner Cloud API.
type Client struct {
	hc       *hcloud.Client
	timeouts *config.Timeouts

	network    NetworkAPI
	firewall   FirewallAPI
	server     ServerAPI
	sshKey     SSHKeyAPI
	image      ImageAPI
	serverType ServerTypeAPI
	location   LocationAPI
	action     ActionAPI
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing against
// a mock API endpoint).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
		c.bindServices()
	}
}

// NewClient creates a new Client with optional configuration.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		hc:       hcloud.NewClient(hcloud.WithToken(token)),
		timeouts: config.LoadTimeouts(),
	}
	c.bindServices()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) bindServices() {
	c.network = &c.hc.Network
	c.firewall = &c.hc.Firewall
	c.server = &c.hc.Server
	c.sshKey = &c.hc.SSHKey
	c.image = &c.hc.Image
	c.serverType = &c.hc.ServerType
	c.location = &c.hc.Location
	c.action = &c.hc.Action
}

// NetworkAPI is the subset of the hcloud network service we use.
type NetworkAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.Network, *hcloud.Response, error)
	Create(ctx context.Context, opts hcloud.NetworkCreateOpts) (*hcloud.Network, *hcloud.Response, error)
	AddSubnet(ctx context.Context, network *hcloud.Network, opts hcloud.NetworkAddSubnetOpts) (*hcloud.Action, *hcloud.Response, error)
	Delete(ctx context.Context, network *hcloud.Network) (*hcloud.Response, error)
}

// FirewallAPI is the subset of the hcloud firewall service we use.
type FirewallAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.Firewall, *hcloud.Response, error)
	Create(ctx context.Context, opts hcloud.FirewallCreateOpts) (hcloud.FirewallCreateResult, *hcloud.Response, error)
	SetRules(ctx context.Context, firewall *hcloud.Firewall, opts hcloud.FirewallSetRulesOpts) ([]*hcloud.Action, *hcloud.Response, error)
	Delete(ctx context.Context, firewall *hcloud.Firewall) (*hcloud.Response, error)
}

// ServerAPI is the subset of the hcloud server service we use.
type ServerAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.Server, *hcloud.Response, error)
	Create(ctx context.Context, opts hcloud.ServerCreateOpts) (hcloud.ServerCreateResult, *hcloud.Response, error)
	DeleteWithResult(ctx context.Context, server *hcloud.Server) (*hcloud.ServerDeleteResult, *hcloud.Response, error)
}

// SSHKeyAPI is the subset of the hcloud SSH key service we use.
type SSHKeyAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.SSHKey, *hcloud.Response, error)
	Create(ctx context.Context, opts hcloud.SSHKeyCreateOpts) (*hcloud.SSHKey, *hcloud.Response, error)
	Delete(ctx context.Context, key *hcloud.SSHKey) (*hcloud.Response, error)
}

// ImageAPI is the subset of the hcloud image service we use.
type ImageAPI interface {
	GetByNameAndArchitecture(ctx context.Context, name string, architecture hcloud.Architecture) (*hcloud.Image, *hcloud.Response, error)
}

// ServerTypeAPI is the subset of the hcloud server type service we use.
type ServerTypeAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.ServerType, *hcloud.Response, error)
}

// LocationAPI is the subset of the hcloud location service we use.
type LocationAPI interface {
	Get(ctx context.Context, idOrName string) (*hcloud.Location, *hcloud.Response, error)
}

// ActionAPI waits for async provider actions.
type ActionAPI interface {
	WaitFor(ctx context.Context, actions ...*hcloud.Action) error
}
