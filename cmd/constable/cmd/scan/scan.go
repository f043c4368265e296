// Package scan provides the command that audits documents without
// writing them.
package scan

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axicon-labs/constable"
	"github.com/axicon-labs/constable/cmd/application"
	"github.com/axicon-labs/constable/internal/cmd/cmdutil"
	"github.com/axicon-labs/constable/internal/cmd/filter"
	"github.com/axicon-labs/constable/internal/cmd/globals"
	"github.com/axicon-labs/constable/internal/cmd/output"
	"github.com/axicon-labs/constable/pkg/constants"
)

// NewCommand creates the scan command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan [paths...]",
		GroupID: "core",
		Short:   "Scan documents and report matches without writing",
		Long: `Scan runs the full reconciliation pipeline over the given documents,
directories, and glob patterns, then reports every numeric token with
its match outcome. No document is ever modified.

The exit status is non-zero when any document fails to scan.`,
		Example: `  constable scan paper.md                      # Scan one document
  constable scan docs/ --registry consts.yaml  # Scan a directory tree
  constable scan '**/*.md' --report audit.json # Keep a machine-readable report
  constable scan notes.md --status proposed    # Show only plannable tokens`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	globals.AddReconcileFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, app application.Application, args []string) error {
	flags := globals.ParseReconcile(cmd)

	// Scan never writes, whatever the engine default is
	opts := []constable.Option{constable.WithDryRun(true)}
	if flags.NearMisses {
		opts = append(opts, constable.WithNearMisses(true))
	}

	eng, err := app.Engine(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
	defer cancel()

	batch, err := eng.ReconcileGlobs(ctx, args...)
	if err != nil {
		return err
	}

	if flags.Report != "" {
		if err := cmdutil.WriteReportFile(batch.Report, flags.Report); err != nil {
			return err
		}
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Scanned %d documents, %d tokens\n",
			batch.Report.Summary.Documents, batch.Report.Summary.Tokens)
	}

	recordFilter := &filter.RecordFilter{Status: flags.Status}
	if err := cmdutil.PrintReport(cmd.OutOrStdout(), batch.Report, format, recordFilter); err != nil {
		return err
	}

	if len(batch.Errors) > 0 {
		return fmt.Errorf("%d of %d documents failed to scan",
			len(batch.Errors), len(batch.Errors)+batch.Report.Summary.Documents)
	}

	return nil
}
