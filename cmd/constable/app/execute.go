package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the constable CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	// Create root command with app context
	rootCmd := a.createRootCommand()

	// Set arguments
	rootCmd.SetArgs(args)

	// Execute with context
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "constable",
		Short:   "Reconcile numeric literals against a constants registry",
		Version: a.version,
		Long: `Constable reconciles literal numeric values in prose and markup
documents against a canonical registry of named constants.

It scans documents for numeric tokens, filters out values that are not
constant references (years, page numbers, identifiers, small counts),
matches the rest against the registry across four confidence tiers, and
either reports the findings or rewrites the literals as named references
with a timestamped backup of every touched file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "registry",
		Title: "Registry Commands:",
	})

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.constable.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Output, "output", "o", "", "output format: table, json, yaml, wide, markdown")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Engine flags, applied to every command that builds an engine
	rootCmd.PersistentFlags().StringVar(&a.config.RegistryFile, "registry", a.config.RegistryFile, "path to the constants registry YAML file")
	rootCmd.PersistentFlags().Float64Var(&a.config.Threshold, "threshold", a.config.Threshold, "minimum confidence required to plan a replacement")
	rootCmd.PersistentFlags().BoolVar(&a.config.RequireUnique, "require-unique", a.config.RequireUnique, "refuse tokens whose winning tier holds multiple candidates")
	rootCmd.PersistentFlags().IntVar(&a.config.ContextRadius, "context-radius", a.config.ContextRadius, "bytes of surrounding text captured per token (default 40)")
	rootCmd.PersistentFlags().StringVar(&a.config.BackupDir, "backup-dir", a.config.BackupDir, "directory for document backups (default alongside each document)")
	rootCmd.PersistentFlags().IntVar(&a.config.Workers, "workers", a.config.Workers, "number of documents reconciled concurrently")

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("constable {{.Version}}\n")

	// Register all commands
	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Update config from parsed flags
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	output := mustGetString(cmd, "output")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, output, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewScanCommand())
	rootCmd.AddCommand(a.NewApplyCommand())
	rootCmd.AddCommand(a.NewWatchCommand())

	// Registry commands
	rootCmd.AddCommand(a.NewRegistryCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(a.NewCompletionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
