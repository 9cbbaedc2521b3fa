package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgeship/edgeship/cmd/edgeship/handlers"
	"github.com/edgeship/edgeship/internal/config"
)

// Init returns the command for creating a stack configuration interactively.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a stack configuration interactively",
		Long: `Create a stack configuration file through an interactive wizard.

The wizard asks for the stack name, instance sizing, the ingress hostname,
and the deployment repository, then writes an edgeship.yaml you can apply.

Examples:
  # Create edgeship.yaml in the current directory
  edgeship init

  # Write the config somewhere else
  edgeship init -o stacks/production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Path to write the configuration file")

	return cmd
}
