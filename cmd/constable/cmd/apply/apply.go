// Package apply provides the command that rewrites matched literals in
// place.
package apply

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

// NewCommand creates the apply command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apply [paths...]",
		GroupID: "core",
		Short:   "Rewrite matched literals as registry references",
		Long: `Apply runs the full reconciliation pipeline over the given documents,
directories, and glob patterns, and rewrites every confidently matched
literal as a named registry reference. Each modified document gets a
timestamped backup alongside it (or under --backup-dir) before the
rewrite, and the rewrite itself is atomic per document.

Ambiguous and low-confidence tokens are never rewritten; they are
reported so the decision stays with you.`,
		Example: `  constable apply paper.md                        # Rewrite one document
  constable apply docs/ --registry consts.yaml    # Rewrite a directory tree
  constable apply '**/*.md' --dry-run             # Plan without writing
  constable apply notes.md --report applied.yaml  # Keep the audit trail`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	globals.AddReconcileFlags(cmd)
	cmd.Flags().Bool("dry-run", false,
		"Plan edits and report them without writing any document")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, args []string) error {
	flags := globals.ParseReconcile(cmd)
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	var opts []constable.Option
	if dryRun {
		opts = append(opts, constable.WithDryRun(true))
	}
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
		verb := "Applied"
		count := batch.Report.Summary.Applied
		if dryRun {
			verb = "Proposed"
			count = batch.Report.Summary.Proposed
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d edits across %d documents\n",
			verb, count, batch.Report.Summary.Documents)
	}

	recordFilter := &filter.RecordFilter{Status: flags.Status}
	if err := cmdutil.PrintReport(cmd.OutOrStdout(), batch.Report, format, recordFilter); err != nil {
		return err
	}

	if len(batch.Errors) > 0 {
		return fmt.Errorf("%d of %d documents failed to reconcile",
			len(batch.Errors), len(batch.Errors)+batch.Report.Summary.Documents)
	}

	return nil
}
