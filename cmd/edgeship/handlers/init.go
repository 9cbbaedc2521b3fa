package handlers

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig

	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing config file.
	confirmOverwrite = wizard.ConfirmOverwrite
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Init canceled.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("edgeship - tunnel-fronted app stacks on Hetzner Cloud")
	fmt.Println("=====================================================")
	fmt.Println()
	fmt.Println("This wizard creates a stack configuration with sensible defaults.")
	fmt.Println("Fields left at their defaults are omitted from the file.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Stack Summary")
	fmt.Println("-------------")
	fmt.Printf("  Name:     %s\n", cfg.Name)
	fmt.Printf("  Location: %s\n", cfg.Location)
	fmt.Printf("  Hostname: %s\n", cfg.Ingress.Hostname)
	fmt.Printf("  Repo:     %s\n", cfg.Deploy.Repo)
	fmt.Printf("  Image:    %s\n", cfg.Deploy.Image)
	if cfg.Instance.Database != "" {
		fmt.Printf("  Database: %s\n", cfg.Instance.Database)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Export the provider credentials:")
	fmt.Printf("     export %s=<hetzner-token>\n", config.EnvHCloudToken)
	fmt.Printf("     export %s=<cloudflare-token>\n", config.EnvCloudflareToken)
	fmt.Printf("     export %s=<github-token>\n", config.EnvGitHubToken)
	fmt.Printf("     export %s=<registry-token>\n", config.EnvRegistryToken)
	fmt.Println()
	fmt.Println("  2. Check the setup:")
	fmt.Println("     edgeship doctor")
	fmt.Println()
	fmt.Println("  3. Provision the stack:")
	fmt.Printf("     edgeship apply -c %s\n", outputPath)
	fmt.Println()
}
