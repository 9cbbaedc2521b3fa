package testsupport

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/platform/cloudflare"
)

// FakeIngress is an in-memory tunnel and DNS provider.
type FakeIngress struct {
	Zones   map[string]string // domain -> zone ID
	Tunnels map[string]*cloudflare.Tunnel
	Configs map[string]cloudflare.TunnelConfig // tunnel ID -> config
	Records map[string][]cloudflare.Record     // zone ID -> records

	// Token returned by GetTunnelToken.
	Token string

	// Err, when set, is returned by every call.
	Err error

	nextID int
}

// NewFakeIngress creates a fake with one zone for the given domain.
func NewFakeIngress(domain string) *FakeIngress {
	return &FakeIngress{
		Zones:   map[string]string{domain: "zone-1"},
		Tunnels: map[string]*cloudflare.Tunnel{},
		Configs: map[string]cloudflare.TunnelConfig{},
		Records: map[string][]cloudflare.Record{},
		Token:   "test-tunnel-token",
	}
}

var _ cloudflare.IngressManager = (*FakeIngress)(nil)

func (f *FakeIngress) GetZoneID(_ context.Context, domain string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	id, ok := f.Zones[domain]
	if !ok {
		return "", fmt.Errorf("no zone found for domain %s", domain)
	}
	return id, nil
}

func (f *FakeIngress) GetTunnelByName(_ context.Context, _, name string) (*cloudflare.Tunnel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Tunnels[name], nil
}

func (f *FakeIngress) EnsureTunnel(_ context.Context, _, name string) (*cloudflare.Tunnel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if existing, ok := f.Tunnels[name]; ok {
		return existing, nil
	}
	f.nextID++
	tunnel := &cloudflare.Tunnel{ID: fmt.Sprintf("tun-%d", f.nextID), Name: name}
	f.Tunnels[name] = tunnel
	return tunnel, nil
}

func (f *FakeIngress) DeleteTunnel(_ context.Context, _, tunnelID string) error {
	if f.Err != nil {
		return f.Err
	}
	for name, t := range f.Tunnels {
		if t.ID == tunnelID {
			delete(f.Tunnels, name)
		}
	}
	delete(f.Configs, tunnelID)
	return nil
}

func (f *FakeIngress) GetTunnelToken(_ context.Context, _, _ string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.Token, nil
}

func (f *FakeIngress) GetTunnelConfiguration(_ context.Context, _, tunnelID string) (*cloudflare.TunnelConfig, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	cfg := f.Configs[tunnelID]
	return &cfg, nil
}

func (f *FakeIngress) UpdateTunnelConfiguration(_ context.Context, _, tunnelID string, cfg cloudflare.TunnelConfig) error {
	if f.Err != nil {
		return f.Err
	}
	cfg.Ingress = cloudflare.NormalizeIngress(cfg.Ingress)
	f.Configs[tunnelID] = cfg
	return nil
}

func (f *FakeIngress) ListDNSRecords(_ context.Context, zoneID, recordType string) ([]cloudflare.Record, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var records []cloudflare.Record
	for _, r := range f.Records[zoneID] {
		if r.Type == recordType {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *FakeIngress) FindDNSRecord(_ context.Context, zoneID, recordType, name string) (*cloudflare.Record, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for i, r := range f.Records[zoneID] {
		if r.Type == recordType && r.Name == name {
			return &f.Records[zoneID][i], nil
		}
	}
	return nil, nil
}

func (f *FakeIngress) EnsureDNSRecord(ctx context.Context, zoneID string, desired cloudflare.Record) (*cloudflare.Record, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	existing, err := f.FindDNSRecord(ctx, zoneID, desired.Type, desired.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Content = desired.Content
		existing.Proxied = desired.Proxied
		return existing, nil
	}
	f.nextID++
	desired.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.Records[zoneID] = append(f.Records[zoneID], desired)
	return &desired, nil
}

func (f *FakeIngress) DeleteDNSRecord(_ context.Context, zoneID, recordID string) error {
	if f.Err != nil {
		return f.Err
	}
	records := f.Records[zoneID]
	for i, r := range records {
		if r.ID == recordID {
			f.Records[zoneID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return nil
}
