package handlers

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/orchestration"
	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
)

// Reconciler is the orchestration surface the handlers depend on.
// orchestration.Reconciler implements it; tests substitute fakes.
type Reconciler interface {
	Reconcile(ctx *provisioning.Context) error
	Plan(ctx *provisioning.Context) (*plan.Plan, error)
	Destroy(ctx *provisioning.Context) error
	PlanDestroy(ctx *provisioning.Context) (*plan.Plan, error)
	ValidateGraph() error
}

// Factory function variables for apply - can be replaced in tests.
var (
	// newReconciler creates the stack reconciler.
	newReconciler = func() Reconciler {
		return orchestration.NewReconciler()
	}

	// newProvisioningContext creates a provisioning context.
	newProvisioningContext = provisioning.NewContext
)

// Apply provisions the full application stack.
//
// The workflow is:
//  1. Load and validate the stack configuration
//  2. Read provider credentials from the environment
//  3. Load the snapshot of resource IDs from the last run
//  4. Reconcile all phases: network and ingress first (concurrently),
//     then the server, then the deploy pipeline
//  5. Save the updated snapshot
//
// The snapshot is saved even when reconciliation fails partway, so a later
// apply or destroy picks up the resources that were already created.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	if err := secrets.RequireProvisioning(); err != nil {
		return err
	}

	store, err := newStateStore(cfg, secrets)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(ctx, store, cfg.Name)
	if err != nil {
		return err
	}

	timeouts := loadTimeouts()
	pctx := newProvisioningContext(ctx, cfg, secrets, snap,
		newInfraClient(secrets.HCloudToken, timeouts),
		newIngressClient(secrets.CloudflareToken),
		newRepoClient(secrets.GitHubToken),
		provisioning.WithTimeouts(timeouts),
	)

	reconcileErr := newReconciler().Reconcile(pctx)

	// Persist whatever was provisioned before reporting the failure.
	if saveErr := store.Save(ctx, pctx.Snapshot); saveErr != nil {
		if reconcileErr != nil {
			return fmt.Errorf("%w (additionally, saving state failed: %v)", reconcileErr, saveErr)
		}
		return fmt.Errorf("failed to save state: %w", saveErr)
	}
	if reconcileErr != nil {
		return reconcileErr
	}

	printApplySuccess(pctx)
	return nil
}

// printApplySuccess outputs completion message and next steps for the user.
func printApplySuccess(pctx *provisioning.Context) {
	cfg := pctx.Config

	fmt.Printf("\nStack %s is up.\n\n", cfg.Name)
	if pctx.State.ServerIPv4 != "" {
		fmt.Printf("  Server:   %s (%s)\n", pctx.State.ServerIPv4, cfg.Instance.Type)
	}
	fmt.Printf("  App URL:  https://%s\n", cfg.Ingress.Hostname)
	fmt.Printf("  Workflow: %s@%s\n", cfg.Deploy.Repo, cfg.Deploy.Branch)
	fmt.Println()
	fmt.Println("Push to the deploy branch to ship a new version:")
	fmt.Printf("  git push origin %s\n", cfg.Deploy.Branch)
	fmt.Println()
}
