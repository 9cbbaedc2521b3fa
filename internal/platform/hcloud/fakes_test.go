package hcloud

import (
	"context"
	"time"

	"github.com/edgeship/edgeship/internal/config"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// newTestClient returns a Client with nil services and fast retry timing.
// Tests fill in the fake services they need.
func newTestClient() *Client {
	return &Client{
		timeouts: &config.Timeouts{
			ServerCreate:      time.Minute,
			ServerRunning:     time.Minute,
			Delete:            time.Minute,
			RetryMaxAttempts:  2,
			RetryInitialDelay: time.Millisecond,
		},
		action: &fakeActionAPI{},
	}
}

func timeNonZero() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

type fakeActionAPI struct {
	waited int
	err    error
}

func (f *fakeActionAPI) WaitFor(_ context.Context, actions ...*hcloud.Action) error {
	f.waited += len(actions)
	return f.err
}

type fakeNetworkAPI struct {
	existing  *hcloud.Network
	getErr    error
	created   *hcloud.NetworkCreateOpts
	subnets   []hcloud.NetworkAddSubnetOpts
	deleted   []string
	deleteErr error
}

func (f *fakeNetworkAPI) Get(_ context.Context, _ string) (*hcloud.Network, *hcloud.Response, error) {
	return f.existing, nil, f.getErr
}

func (f *fakeNetworkAPI) Create(_ context.Context, opts hcloud.NetworkCreateOpts) (*hcloud.Network, *hcloud.Response, error) {
	f.created = &opts
	return &hcloud.Network{ID: 1, Name: opts.Name, IPRange: opts.IPRange}, nil, nil
}

func (f *fakeNetworkAPI) AddSubnet(_ context.Context, _ *hcloud.Network, opts hcloud.NetworkAddSubnetOpts) (*hcloud.Action, *hcloud.Response, error) {
	f.subnets = append(f.subnets, opts)
	return &hcloud.Action{ID: 10}, nil, nil
}

func (f *fakeNetworkAPI) Delete(_ context.Context, network *hcloud.Network) (*hcloud.Response, error) {
	f.deleted = append(f.deleted, network.Name)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.existing = nil
	return nil, nil
}

type fakeFirewallAPI struct {
	existing *hcloud.Firewall
	created  *hcloud.FirewallCreateOpts
	setRules *hcloud.FirewallSetRulesOpts
	deleted  []string
}

func (f *fakeFirewallAPI) Get(_ context.Context, _ string) (*hcloud.Firewall, *hcloud.Response, error) {
	return f.existing, nil, nil
}

func (f *fakeFirewallAPI) Create(_ context.Context, opts hcloud.FirewallCreateOpts) (hcloud.FirewallCreateResult, *hcloud.Response, error) {
	f.created = &opts
	fw := &hcloud.Firewall{ID: 2, Name: opts.Name, Rules: opts.Rules}
	return hcloud.FirewallCreateResult{Firewall: fw, Actions: []*hcloud.Action{{ID: 20}}}, nil, nil
}

func (f *fakeFirewallAPI) SetRules(_ context.Context, fw *hcloud.Firewall, opts hcloud.FirewallSetRulesOpts) ([]*hcloud.Action, *hcloud.Response, error) {
	f.setRules = &opts
	fw.Rules = opts.Rules
	return []*hcloud.Action{{ID: 21}}, nil, nil
}

func (f *fakeFirewallAPI) Delete(_ context.Context, fw *hcloud.Firewall) (*hcloud.Response, error) {
	f.deleted = append(f.deleted, fw.Name)
	f.existing = nil
	return nil, nil
}

type fakeServerAPI struct {
	existing   *hcloud.Server
	created    *hcloud.ServerCreateOpts
	createErr  error
	statusSeq  []hcloud.ServerStatus
	statusIdx  int
	deleted    []string
}

func (f *fakeServerAPI) Get(_ context.Context, _ string) (*hcloud.Server, *hcloud.Response, error) {
	if f.existing != nil && len(f.statusSeq) > 0 {
		f.existing.Status = f.statusSeq[f.statusIdx]
		if f.statusIdx < len(f.statusSeq)-1 {
			f.statusIdx++
		}
	}
	return f.existing, nil, nil
}

func (f *fakeServerAPI) Create(_ context.Context, opts hcloud.ServerCreateOpts) (hcloud.ServerCreateResult, *hcloud.Response, error) {
	if f.createErr != nil {
		return hcloud.ServerCreateResult{}, nil, f.createErr
	}
	f.created = &opts
	server := &hcloud.Server{ID: 3, Name: opts.Name, Status: hcloud.ServerStatusInitializing}
	return hcloud.ServerCreateResult{Server: server, Action: &hcloud.Action{ID: 30}}, nil, nil
}

func (f *fakeServerAPI) DeleteWithResult(_ context.Context, server *hcloud.Server) (*hcloud.ServerDeleteResult, *hcloud.Response, error) {
	f.deleted = append(f.deleted, server.Name)
	f.existing = nil
	return &hcloud.ServerDeleteResult{Action: &hcloud.Action{ID: 31}}, nil, nil
}

type fakeSSHKeyAPI struct {
	existing *hcloud.SSHKey
	created  *hcloud.SSHKeyCreateOpts
	deleted  []string
}

func (f *fakeSSHKeyAPI) Get(_ context.Context, _ string) (*hcloud.SSHKey, *hcloud.Response, error) {
	return f.existing, nil, nil
}

func (f *fakeSSHKeyAPI) Create(_ context.Context, opts hcloud.SSHKeyCreateOpts) (*hcloud.SSHKey, *hcloud.Response, error) {
	f.created = &opts
	return &hcloud.SSHKey{ID: 4, Name: opts.Name, PublicKey: opts.PublicKey}, nil, nil
}

func (f *fakeSSHKeyAPI) Delete(_ context.Context, key *hcloud.SSHKey) (*hcloud.Response, error) {
	f.deleted = append(f.deleted, key.Name)
	f.existing = nil
	return nil, nil
}

type fakeImageAPI struct {
	image *hcloud.Image
	err   error
}

func (f *fakeImageAPI) GetByNameAndArchitecture(_ context.Context, _ string, _ hcloud.Architecture) (*hcloud.Image, *hcloud.Response, error) {
	return f.image, nil, f.err
}

type fakeServerTypeAPI struct {
	serverType *hcloud.ServerType
}

func (f *fakeServerTypeAPI) Get(_ context.Context, _ string) (*hcloud.ServerType, *hcloud.Response, error) {
	return f.serverType, nil, nil
}

type fakeLocationAPI struct {
	location *hcloud.Location
}

func (f *fakeLocationAPI) Get(_ context.Context, _ string) (*hcloud.Location, *hcloud.Response, error) {
	return f.location, nil, nil
}
