package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgeship/edgeship/cmd/edgeship/handlers"
)

// Apply returns the command for provisioning the stack.
//
// Optional flags:
//
//	--config, -c: Path to stack configuration YAML file (default: auto-detect edgeship.yaml)
//
// Environment variables:
//
//	HCLOUD_TOKEN:         Hetzner Cloud API token (required)
//	CLOUDFLARE_API_TOKEN: Cloudflare API token (required)
//	GITHUB_TOKEN:         GitHub token with repo scope (required)
//	REGISTRY_TOKEN:       Container registry token (required)
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the stack",
		Long: `Create or update your application stack.

This command provisions the private network and firewall, the Cloudflare
Tunnel and DNS record, the app server, and the GitHub Actions deploy
pipeline. Re-running it converges existing resources without recreating
them.

If no config file is specified, it looks for edgeship.yaml in the current
directory. Use 'edgeship init' to create a configuration file.

Examples:
  # Create the stack using edgeship.yaml in current directory
  edgeship apply

  # Create the stack using a specific config file
  edgeship apply -c production.yaml

  # Re-apply after configuration changes
  edgeship apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: edgeship.yaml)")

	return cmd
}
