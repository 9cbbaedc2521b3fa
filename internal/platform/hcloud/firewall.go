package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// DesiredFirewallRules builds the security rule set for the stack.
//
// The instance accepts no inbound application traffic: the tunnel carries
// it outbound-only. Only ICMP and, when an allow list is configured, SSH
// are opened.
func DesiredFirewallRules(sshAllowList []string) ([]hcloud.FirewallRule, error) {
	anywhere := []net.IPNet{
		{IP: net.IPv4zero, Mask: net.CIDRMask(0, 32)},
		{IP: net.IPv6zero, Mask: net.CIDRMask(0, 128)},
	}

	rules := []hcloud.FirewallRule{
		{
			Direction: hcloud.FirewallRuleDirectionIn,
			Protocol:  hcloud.FirewallRuleProtocolICMP,
			SourceIPs: anywhere,
		},
	}

	if len(sshAllowList) > 0 {
		var sources []net.IPNet
		for _, cidr := range sshAllowList {
			_, ipNet, err := net.ParseCIDR(cidr)
			if err != nil {
				return nil, fmt.Errorf("invalid SSH allow list CIDR %s: %w", cidr, err)
			}
			sources = append(sources, *ipNet)
		}
		rules = append(rules, hcloud.FirewallRule{
			Direction: hcloud.FirewallRuleDirectionIn,
			Protocol:  hcloud.FirewallRuleProtocolTCP,
			Port:      hcloud.Ptr("22"),
			SourceIPs: sources,
		})
	}

	return rules, nil
}

// EnsureFirewall ensures the firewall exists with exactly the given rules,
// updating the rule set in place when it drifted.
func (c *Client) EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string) (*hcloud.Firewall, error) {
	return (&EnsureOperation[*hcloud.Firewall, hcloud.FirewallCreateOpts, hcloud.FirewallSetRulesOpts]{
		Name:         name,
		ResourceType: "firewall",
		Get:          c.firewall.Get,
		Create: func(ctx context.Context, opts hcloud.FirewallCreateOpts) (*CreateResult[*hcloud.Firewall], *hcloud.Response, error) {
			result, resp, err := c.firewall.Create(ctx, opts)
			if err != nil {
				return nil, resp, err
			}
			return &CreateResult[*hcloud.Firewall]{Resource: result.Firewall, Actions: result.Actions}, resp, nil
		},
		Update: c.firewall.SetRules,
		NeedsUpdate: func(fw *hcloud.Firewall) bool {
			return !RulesEqual(fw.Rules, rules)
		},
		CreateOptsMapper: func() hcloud.FirewallCreateOpts {
			return hcloud.FirewallCreateOpts{
				Name:   name,
				Rules:  rules,
				Labels: labels,
			}
		},
		UpdateOptsMapper: func(_ *hcloud.Firewall) hcloud.FirewallSetRulesOpts {
			return hcloud.FirewallSetRulesOpts{Rules: rules}
		},
	}).Execute(ctx, c)
}

// GetFirewall returns the firewall by name, or nil if it doesn't exist.
func (c *Client) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	fw, _, err := c.firewall.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get firewall: %w", err)
	}
	return fw, nil
}

// DeleteFirewall deletes the firewall with the given name.
func (c *Client) DeleteFirewall(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Firewall]{
		Name:         name,
		ResourceType: "firewall",
		Get:          c.firewall.Get,
		Delete:       c.firewall.Delete,
	}).Execute(ctx, c)
}

// RulesEqual compares two firewall rule sets, order-sensitively.
func RulesEqual(a, b []hcloud.FirewallRule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ruleEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func ruleEqual(a, b hcloud.FirewallRule) bool {
	if a.Direction != b.Direction || a.Protocol != b.Protocol {
		return false
	}
	if (a.Port == nil) != (b.Port == nil) {
		return false
	}
	if a.Port != nil && *a.Port != *b.Port {
		return false
	}
	if len(a.SourceIPs) != len(b.SourceIPs) {
		return false
	}
	for i := range a.SourceIPs {
		if a.SourceIPs[i].String() != b.SourceIPs[i].String() {
			return false
		}
	}
	return true
}
