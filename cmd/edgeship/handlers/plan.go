package handlers

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
)

// Plan previews the changes apply (or destroy, when destroyPlan is true)
// would make. It reads provider state but never modifies it.
func Plan(ctx context.Context, configPath string, destroyPlan bool) error {
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

	reconciler := newReconciler()

	var p *plan.Plan
	if destroyPlan {
		p, err = reconciler.PlanDestroy(pctx)
	} else {
		p, err = reconciler.Plan(pctx)
	}
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	printPlan(p, destroyPlan)
	return nil
}

// printPlan renders the plan and a one-line summary.
func printPlan(p *plan.Plan, destroyPlan bool) {
	if !p.HasChanges() {
		if destroyPlan {
			fmt.Println("Nothing to destroy.")
		} else {
			fmt.Println("No changes. The stack matches the configuration.")
		}
		return
	}

	fmt.Print(p.Render())

	counts := p.Counts()
	fmt.Printf("\nPlan: %d to create, %d to update, %d to delete.\n",
		counts[plan.ActionCreate], counts[plan.ActionUpdate], counts[plan.ActionDelete])
}
