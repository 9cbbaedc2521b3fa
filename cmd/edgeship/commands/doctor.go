package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgeship/edgeship/cmd/edgeship/handlers"
)

// Doctor returns the command for diagnosing the stack setup.
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, credentials, and provider reachability",
		Long: `Run diagnostic checks before or after applying the stack.

Doctor validates the configuration, verifies that the required environment
variables are set, renders the boot script and deploy workflow, and checks
each provider API (Hetzner Cloud, Cloudflare, GitHub, and the state store
when S3 is configured).

Examples:
  # Run all checks
  edgeship doctor

  # Machine-readable output
  edgeship doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: edgeship.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
