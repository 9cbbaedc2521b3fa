package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgeship/edgeship/cmd/edgeship/handlers"
)

// Destroy returns the command for tearing down the stack.
func Destroy() *cobra.Command {
	var configPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete all stack resources",
		Long: `Delete every resource the stack owns: the deploy workflow and
repository secrets, the server and its SSH key, the tunnel and DNS record,
and finally the firewall and network.

Resources created outside the stack are never touched. The command asks
for confirmation unless --force is given.

Examples:
  # Destroy with confirmation prompt
  edgeship destroy

  # Destroy without asking
  edgeship destroy --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: edgeship.yaml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
