package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgeship/edgeship/internal/provisioning"
)

// Function variable for dependency injection in tests.
var confirmDestroy = defaultConfirmDestroy

// Destroy tears down every resource the stack owns and removes the
// snapshot. Unless force is set, the user has to confirm first.
func Destroy(ctx context.Context, configPath string, force bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	if err := secrets.RequireProvisioning(); err != nil {
		return err
	}

	if !force {
		ok, err := confirmDestroy(cfg.Name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Destroy canceled.")
			return nil
		}
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

	if err := newReconciler().Destroy(pctx); err != nil {
		// Keep the snapshot so a retry can find the leftovers.
		if saveErr := store.Save(ctx, pctx.Snapshot); saveErr != nil {
			return fmt.Errorf("%w (additionally, saving state failed: %v)", err, saveErr)
		}
		return fmt.Errorf("destroy failed: %w", err)
	}

	if err := store.Delete(ctx); err != nil {
		return fmt.Errorf("stack destroyed, but removing state failed: %w", err)
	}

	fmt.Printf("Stack %s destroyed.\n", cfg.Name)
	return nil
}

// defaultConfirmDestroy prompts via stdin.
func defaultConfirmDestroy(stack string) (bool, error) {
	fmt.Printf("This deletes the server, tunnel, DNS record, network, deploy workflow,\n")
	fmt.Printf("and repository secrets of stack %q.\n", stack)
	fmt.Print("Type the stack name to confirm: ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}
	return strings.TrimSpace(response) == stack, nil
}
