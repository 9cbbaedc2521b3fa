package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgeship/edgeship/cmd/edgeship/handlers"
)

// Plan returns the command for previewing changes without applying them.
func Plan() *cobra.Command {
	var configPath string
	var destroy bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the changes apply would make",
		Long: `Show what apply (or destroy, with --destroy) would change.

Plan reads the current provider state and compares it with the configuration.
It never creates, updates, or deletes anything.

Examples:
  # Preview changes using edgeship.yaml in the current directory
  edgeship plan

  # Preview changes for a specific config file
  edgeship plan -c production.yaml

  # Preview what destroy would remove
  edgeship plan --destroy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath, destroy)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: edgeship.yaml)")
	cmd.Flags().BoolVar(&destroy, "destroy", false, "Preview what destroy would remove")

	return cmd
}
