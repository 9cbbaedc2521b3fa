package testsupport

import (
	"context"
	"net"

	hcloud_internal "github.com/edgeship/edgeship/internal/platform/hcloud"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// FakeInfra is an in-memory cloud provider.
type FakeInfra struct {
	Networks  map[string]*hcloud.Network
	Firewalls map[string]*hcloud.Firewall
	SSHKeys   map[string]*hcloud.SSHKey
	Servers   map[string]*hcloud.Server

	// Err, when set, is returned by every call.
	Err error

	nextID int64
}

// NewFakeInfra creates an empty fake provider.
func NewFakeInfra() *FakeInfra {
	return &FakeInfra{
		Networks:  map[string]*hcloud.Network{},
		Firewalls: map[string]*hcloud.Firewall{},
		SSHKeys:   map[string]*hcloud.SSHKey{},
		Servers:   map[string]*hcloud.Server{},
	}
}

var _ hcloud_internal.InfrastructureManager = (*FakeInfra)(nil)

func (f *FakeInfra) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *FakeInfra) EnsureNetwork(_ context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if existing, ok := f.Networks[name]; ok {
		return existing, nil
	}
	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return nil, err
	}
	network := &hcloud.Network{ID: f.id(), Name: name, IPRange: ipNet, Labels: labels}
	f.Networks[name] = network
	return network, nil
}

func (f *FakeInfra) EnsureSubnet(_ context.Context, network *hcloud.Network, ipRange, networkZone string) error {
	if f.Err != nil {
		return f.Err
	}
	for _, s := range network.Subnets {
		if s.IPRange != nil && s.IPRange.String() == ipRange {
			return nil
		}
	}
	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return err
	}
	network.Subnets = append(network.Subnets, hcloud.NetworkSubnet{
		Type:        hcloud.NetworkSubnetTypeCloud,
		IPRange:     ipNet,
		NetworkZone: hcloud.NetworkZone(networkZone),
	})
	return nil
}

func (f *FakeInfra) EnsureFirewall(_ context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string) (*hcloud.Firewall, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if existing, ok := f.Firewalls[name]; ok {
		existing.Rules = rules
		return existing, nil
	}
	firewall := &hcloud.Firewall{ID: f.id(), Name: name, Rules: rules, Labels: labels}
	f.Firewalls[name] = firewall
	return firewall, nil
}

func (f *FakeInfra) EnsureSSHKey(_ context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if existing, ok := f.SSHKeys[name]; ok {
		return existing, nil
	}
	key := &hcloud.SSHKey{ID: f.id(), Name: name, PublicKey: publicKey, Labels: labels}
	f.SSHKeys[name] = key
	return key, nil
}

func (f *FakeInfra) EnsureServer(_ context.Context, spec hcloud_internal.ServerSpec) (*hcloud.Server, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if existing, ok := f.Servers[spec.Name]; ok {
		return existing, nil
	}
	server := &hcloud.Server{
		ID:     f.id(),
		Name:   spec.Name,
		Status: hcloud.ServerStatusRunning,
		Labels: spec.Labels,
	}
	server.PublicNet.IPv4.IP = net.ParseIP("192.0.2.10")
	f.Servers[spec.Name] = server
	return server, nil
}

func (f *FakeInfra) GetNetwork(_ context.Context, name string) (*hcloud.Network, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Networks[name], nil
}

func (f *FakeInfra) GetFirewall(_ context.Context, name string) (*hcloud.Firewall, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Firewalls[name], nil
}

func (f *FakeInfra) GetSSHKey(_ context.Context, name string) (*hcloud.SSHKey, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.SSHKeys[name], nil
}

func (f *FakeInfra) GetServer(_ context.Context, name string) (*hcloud.Server, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Servers[name], nil
}

func (f *FakeInfra) WaitForServerRunning(_ context.Context, name string) (*hcloud.Server, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	server, ok := f.Servers[name]
	if !ok {
		return nil, errNotFound(name)
	}
	server.Status = hcloud.ServerStatusRunning
	return server, nil
}

func (f *FakeInfra) DeleteServer(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.Servers, name)
	return nil
}

func (f *FakeInfra) DeleteSSHKey(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.SSHKeys, name)
	return nil
}

func (f *FakeInfra) DeleteFirewall(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.Firewalls, name)
	return nil
}

func (f *FakeInfra) DeleteNetwork(_ context.Context, name string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.Networks, name)
	return nil
}

type errNotFound string

func (e errNotFound) Error() string {
	return "not found: " + string(e)
}
