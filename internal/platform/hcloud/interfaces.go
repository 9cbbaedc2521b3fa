package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// InfrastructureManager is the cloud-provider surface the provisioning
// phases depend on. Client implements it; tests substitute fakes.
type InfrastructureManager interface {
	EnsureNetwork(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error)
	EnsureSubnet(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error
	EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string) (*hcloud.Firewall, error)
	EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)
	EnsureServer(ctx context.Context, spec ServerSpec) (*hcloud.Server, error)

	GetNetwork(ctx context.Context, name string) (*hcloud.Network, error)
	GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error)
	GetSSHKey(ctx context.Context, name string) (*hcloud.SSHKey, error)
	GetServer(ctx context.Context, name string) (*hcloud.Server, error)

	WaitForServerRunning(ctx context.Context, name string) (*hcloud.Server, error)

	DeleteServer(ctx context.Context, name string) error
	DeleteSSHKey(ctx context.Context, name string) error
	DeleteFirewall(ctx context.Context, name string) error
	DeleteNetwork(ctx context.Context, name string) error
}

var _ InfrastructureManager = (*Client)(nil)
