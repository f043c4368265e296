package app

import (
	"github.com/spf13/cobra"

	applycmd "github.com/axicon-labs/constable/cmd/constable/cmd/apply"
	registrycmd "github.com/axicon-labs/constable/cmd/constable/cmd/registry"
	"github.com/axicon-labs/constable/cmd/constable/cmd/scan"
	"github.com/axicon-labs/constable/cmd/constable/cmd/watch"
	"github.com/axicon-labs/constable/internal/cmd/constants"
)

// NewScanCommand creates the scan command with app dependencies.
func (a *App) NewScanCommand() *cobra.Command {
	return scan.NewCommand(a)
}

// NewApplyCommand creates the apply command with app dependencies.
func (a *App) NewApplyCommand() *cobra.Command {
	return applycmd.NewCommand(a)
}

// NewWatchCommand creates the watch command with app dependencies.
func (a *App) NewWatchCommand() *cobra.Command {
	return watch.NewCommand(a)
}

// NewRegistryCommand creates the registry command with app dependencies.
func (a *App) NewRegistryCommand() *cobra.Command {
	return registrycmd.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("constable %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// NewCompletionCommand creates the shell completion command.
func (a *App) NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [shell]",
		Short:     "Generate shell completion scripts",
		Long:      "Generate a completion script for bash, zsh, fish, or powershell and write it to stdout.",
		ValidArgs: constants.Shells,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case constants.ShellBash:
				return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
			case constants.ShellZsh:
				return root.GenZshCompletion(cmd.OutOrStdout())
			case constants.ShellFish:
				return root.GenFishCompletion(cmd.OutOrStdout(), true)
			case constants.ShellPowerShell:
				return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
