package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Tunnel is a Cloudflare Tunnel (cfd_tunnel) resource.
type Tunnel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IngressRule routes one hostname to a local service. A rule without a
// hostname is a catch-all and must come last.
type IngressRule struct {
	Hostname string `json:"hostname,omitempty"`
	Service  string `json:"service"`
}

// TunnelConfig is the remotely managed tunnel configuration.
type TunnelConfig struct {
	Ingress []IngressRule `json:"ingress"`
}

// CatchAllService rejects unmatched hostnames instead of exposing the app.
const CatchAllService = "http_status:404"

// TunnelCNAME returns the DNS target that routes a hostname through the
// given tunnel.
func TunnelCNAME(tunnelID string) string {
	return tunnelID + ".cfargotunnel.com"
}

// GetTunnelByName finds a live tunnel by name. Returns nil when no tunnel
// matches.
func (c *Client) GetTunnelByName(ctx context.Context, accountID, name string) (*Tunnel, error) {
	path := fmt.Sprintf("/accounts/%s/cfd_tunnel?name=%s&is_deleted=false", accountID, url.QueryEscape(name))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list tunnels: %w", err)
	}

	var tunnels []Tunnel
	if err := json.Unmarshal(resp.Result, &tunnels); err != nil {
		return nil, fmt.Errorf("parse tunnels: %w", err)
	}
	for i := range tunnels {
		if tunnels[i].Name == name {
			return &tunnels[i], nil
		}
	}
	return nil, nil
}

// CreateTunnel creates a remotely managed tunnel.
func (c *Client) CreateTunnel(ctx context.Context, accountID, name string) (*Tunnel, error) {
	body := map[string]string{
		"name":       name,
		"config_src": "cloudflare",
	}
	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/accounts/%s/cfd_tunnel", accountID), body)
	if err != nil {
		return nil, fmt.Errorf("create tunnel: %w", err)
	}

	var tunnel Tunnel
	if err := json.Unmarshal(resp.Result, &tunnel); err != nil {
		return nil, fmt.Errorf("parse tunnel: %w", err)
	}
	return &tunnel, nil
}

// EnsureTunnel returns the tunnel with the given name, creating it when
// missing.
func (c *Client) EnsureTunnel(ctx context.Context, accountID, name string) (*Tunnel, error) {
	tunnel, err := c.GetTunnelByName(ctx, accountID, name)
	if err != nil {
		return nil, err
	}
	if tunnel != nil {
		return tunnel, nil
	}
	return c.CreateTunnel(ctx, accountID, name)
}

// DeleteTunnel removes a tunnel. Missing tunnels are not an error.
func (c *Client) DeleteTunnel(ctx context.Context, accountID, tunnelID string) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/accounts/%s/cfd_tunnel/%s", accountID, tunnelID), nil)
	if err != nil {
		return fmt.Errorf("delete tunnel: %w", err)
	}
	return nil
}

// GetTunnelToken fetches the connector token for a tunnel. The token is a
// credential and must never be logged.
func (c *Client) GetTunnelToken(ctx context.Context, accountID, tunnelID string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%s/cfd_tunnel/%s/token", accountID, tunnelID), nil)
	if err != nil {
		return "", fmt.Errorf("get tunnel token: %w", err)
	}

	var token string
	if err := json.Unmarshal(resp.Result, &token); err != nil {
		return "", fmt.Errorf("parse tunnel token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("tunnel %s returned an empty token", tunnelID)
	}
	return token, nil
}

// GetTunnelConfiguration fetches the current ingress configuration.
func (c *Client) GetTunnelConfiguration(ctx context.Context, accountID, tunnelID string) (*TunnelConfig, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%s/cfd_tunnel/%s/configurations", accountID, tunnelID), nil)
	if err != nil {
		return nil, fmt.Errorf("get tunnel configuration: %w", err)
	}

	var wrapper struct {
		Config TunnelConfig `json:"config"`
	}
	if err := json.Unmarshal(resp.Result, &wrapper); err != nil {
		return nil, fmt.Errorf("parse tunnel configuration: %w", err)
	}
	return &wrapper.Config, nil
}

// UpdateTunnelConfiguration replaces the tunnel's ingress rules. The rules
// are normalized so a 404 catch-all always terminates the list.
func (c *Client) UpdateTunnelConfiguration(ctx context.Context, accountID, tunnelID string, cfg TunnelConfig) error {
	cfg.Ingress = NormalizeIngress(cfg.Ingress)
	body := map[string]TunnelConfig{"config": cfg}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/accounts/%s/cfd_tunnel/%s/configurations", accountID, tunnelID), body)
	if err != nil {
		return fmt.Errorf("update tunnel configuration: %w", err)
	}
	return nil
}

// NormalizeIngress strips catch-all entries and appends a single 404
// catch-all rule at the end.
func NormalizeIngress(rules []IngressRule) []IngressRule {
	out := make([]IngressRule, 0, len(rules)+1)
	for _, r := range rules {
		if r.Hostname == "" {
			continue
		}
		out = append(out, r)
	}
	return append(out, IngressRule{Service: CatchAllService})
}

// IngressEqual reports whether two rule lists route identically after
// normalization.
func IngressEqual(a, b []IngressRule) bool {
	na, nb := NormalizeIngress(a), NormalizeIngress(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}
