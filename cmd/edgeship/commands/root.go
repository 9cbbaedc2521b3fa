// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the edgeship CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edgeship",
		Short: "Provision a tunnel-fronted app stack on Hetzner Cloud",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
