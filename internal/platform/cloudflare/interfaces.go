package cloudflare

import "context"

// IngressManager is the surface the provisioning phases use to manage
// tunnels and DNS routing.
type IngressManager interface {
	GetZoneID(ctx context.Context, domain string) (string, error)

	GetTunnelByName(ctx context.Context, accountID, name string) (*Tunnel, error)
	EnsureTunnel(ctx context.Context, accountID, name string) (*Tunnel, error)
	DeleteTunnel(ctx context.Context, accountID, tunnelID string) error
	GetTunnelToken(ctx context.Context, accountID, tunnelID string) (string, error)
	GetTunnelConfiguration(ctx context.Context, accountID, tunnelID string) (*TunnelConfig, error)
	UpdateTunnelConfiguration(ctx context.Context, accountID, tunnelID string, cfg TunnelConfig) error

	ListDNSRecords(ctx context.Context, zoneID, recordType string) ([]Record, error)
	FindDNSRecord(ctx context.Context, zoneID, recordType, name string) (*Record, error)
	EnsureDNSRecord(ctx context.Context, zoneID string, desired Record) (*Record, error)
	DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error
}

var _ IngressManager = (*Client)(nil)
