package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureNetwork ensures that a network exists with the given IP range.
// An existing network with a different range is an error: ranges cannot be
// changed in place without replacing everything attached to them.
func (c *Client) EnsureNetwork(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error) {
	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return nil, fmt.Errorf("invalid network CIDR %s: %w", ipRange, err)
	}

	return (&EnsureOperation[*hcloud.Network, hcloud.NetworkCreateOpts, any]{
		Name:         name,
		ResourceType: "network",
		Get:          c.network.Get,
		Create:       simpleCreate(c.network.Create),
		Validate: func(network *hcloud.Network) error {
			if network.IPRange.String() != ipNet.String() {
				return fmt.Errorf("network %s exists but with different IP range %s (expected %s)",
					name, network.IPRange.String(), ipNet.String())
			}
			return nil
		},
		CreateOptsMapper: func() hcloud.NetworkCreateOpts {
			return hcloud.NetworkCreateOpts{
				Name:    name,
				IPRange: ipNet,
				Labels:  labels,
			}
		},
	}).Execute(ctx, c)
}

// EnsureSubnet ensures that a subnet with the given range exists in the
// network.
func (c *Client) EnsureSubnet(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error {
	for _, subnet := range network.Subnets {
		if subnet.IPRange.String() == ipRange {
			return nil // exists
		}
	}

	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return fmt.Errorf("invalid subnet ip range: %w", err)
	}

	action, _, err := c.network.AddSubnet(ctx, network, hcloud.NetworkAddSubnetOpts{
		Subnet: hcloud.NetworkSubnet{
			Type:        hcloud.NetworkSubnetTypeCloud,
			IPRange:     ipNet,
			NetworkZone: hcloud.NetworkZone(networkZone),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add subnet: %w", err)
	}

	if err := c.action.WaitFor(ctx, action); err != nil {
		return fmt.Errorf("failed to wait for subnet creation: %w", err)
	}
	return nil
}

// GetNetwork returns the network by name, or nil if it doesn't exist.
func (c *Client) GetNetwork(ctx context.Context, name string) (*hcloud.Network, error) {
	network, _, err := c.network.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get network: %w", err)
	}
	return network, nil
}

// DeleteNetwork deletes the network with the given name.
func (c *Client) DeleteNetwork(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Network]{
		Name:         name,
		ResourceType: "network",
		Get:          c.network.Get,
		Delete:       c.network.Delete,
	}).Execute(ctx, c)
}
