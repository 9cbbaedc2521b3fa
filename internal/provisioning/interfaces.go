// Package provisioning provides the shared context, phase contract, and
// observability used by the stack provisioning pipeline.
//
// The pipeline is organized into focused subpackages:
//   - network/ — private network, subnet, firewall
//   - ingress/ — Cloudflare tunnel, ingress rules, DNS routing
//   - compute/ — SSH key, boot script, application server
//   - delivery/ — GitHub Actions workflow and repository secrets
//   - destroy/ — teardown in reverse dependency order
//
// This root package contains the types every subpackage shares.
package provisioning

import "github.com/edgeship/edgeship/internal/plan"

// Phase is one unit of the provisioning pipeline.
type Phase interface {
	// Name returns the phase name used in logs and plan output.
	Name() string

	// Plan inspects live resources and appends the steps this phase
	// would take. It must not change anything.
	Plan(ctx *Context, p *plan.Plan) error

	// Provision converges the phase's resources to the desired shape.
	Provision(ctx *Context) error
}

// Logger is the minimal printf-style surface kept for plain progress lines.
type Logger interface {
	Printf(format string, v ...any)
}
