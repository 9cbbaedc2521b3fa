// Package orchestration coordinates the provisioning workflow. It owns the
// phase dependency graph, resolves it into an execution order, and delegates
// the actual work to the internal/provisioning subpackages.
//
// Phase dependencies:
//
//	network  ─┐
//	          ├─> compute ─> delivery
//	ingress  ─┘
//
// The compute phase needs the network to attach the server to and the
// tunnel token from the ingress phase for its boot script; delivery needs
// the server address for the CI secrets. Network and ingress have no
// ordering constraint and run concurrently.
//
// The Reconciler is idempotent: it can run repeatedly and only makes the
// changes needed to reach the declared state.
package orchestration
