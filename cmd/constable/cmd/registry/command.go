// Package registry provides commands for inspecting the constants
// registry.
package registry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axicon-labs/constable/cmd/application"
)

// NewCommand creates the registry command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registry",
		GroupID: "registry",
		Short:   "Inspect the constants registry",
		Long: `Registry inspects the loaded constants registry.

Available subcommands:
  list    - registry entries, skipped entries, and duplicate values
  lookup  - the tiers and candidates a literal would match`,
		Example: `  constable registry list --registry consts.yaml   # List all entries
  constable registry list --prefix topology        # List one group
  constable registry lookup 137.036                # What would this match?`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to help if no subcommand
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	// Add subcommands using the app context
	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewLookupCommand(app))

	return cmd
}
