package provisioning

import (
	"context"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/platform/cloudflare"
	"github.com/edgeship/edgeship/internal/platform/github"
	hcloud_internal "github.com/edgeship/edgeship/internal/platform/hcloud"
	"github.com/edgeship/edgeship/internal/state"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// State holds the in-memory results of provisioning phases. It is
// progressively populated as each phase completes and read by later phases.
// Credentials placed here (the tunnel token) stay in memory and are never
// persisted or logged.
type State struct {
	// Network phase results
	Network  *hcloud.Network
	Firewall *hcloud.Firewall

	// Ingress phase results
	ZoneID      string
	TunnelID    string
	TunnelToken string
	DNSRecordID string

	// Compute phase results. DeployPrivateKey is only set when a new key
	// pair was generated this run; the delivery phase then rotates the CI
	// deploy key secret.
	SSHKeyID         int64
	DeployPrivateKey []byte
	DeployPublicKey  []byte
	Server           *hcloud.Server
	ServerIPv4       string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state a provisioning phase needs.
type Context struct {
	context.Context
	Config   *config.Config
	Secrets  *config.Secrets
	State    *State
	Snapshot *state.Snapshot
	Infra    hcloud_internal.InfrastructureManager
	Ingress  cloudflare.IngressManager
	Repo     github.RepoManager
	Observer Observer
	Timeouts *config.Timeouts
}

// ContextOption customizes a Context.
type ContextOption func(*Context)

// WithObserver replaces the default observer.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		c.Observer = o
	}
}

// WithTimeouts replaces the default timeouts.
func WithTimeouts(t *config.Timeouts) ContextOption {
	return func(c *Context) {
		c.Timeouts = t
	}
}

// NewContext creates a provisioning context. The snapshot carries resource
// IDs from earlier runs; pass a fresh one for a new stack.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	secrets *config.Secrets,
	snap *state.Snapshot,
	infra hcloud_internal.InfrastructureManager,
	ingress cloudflare.IngressManager,
	repo github.RepoManager,
	opts ...ContextOption,
) *Context {
	c := &Context{
		Context:  ctx,
		Config:   cfg,
		Secrets:  secrets,
		State:    NewState(),
		Snapshot: snap,
		Infra:    infra,
		Ingress:  ingress,
		Repo:     repo,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
