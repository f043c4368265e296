// Package watch provides the command that re-scans documents as they
// change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axicon-labs/constable"
	"github.com/axicon-labs/constable/cmd/application"
	"github.com/axicon-labs/constable/internal/cmd/globals"
)

// NewCommand creates the watch command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch [paths...]",
		GroupID: "core",
		Short:   "Re-scan documents whenever they change",
		Long: `Watch reconciles the given documents once, then keeps watching their
directories and re-scans each document after it is written or created.
Rapid editor write bursts are coalesced before a re-scan.

Watch never modifies a document; each cycle reports what apply would
do. Stop it with Ctrl-C.`,
		Example: `  constable watch docs/ --registry consts.yaml  # Watch a directory tree
  constable watch paper.md notes.md             # Watch two documents`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, app application.Application, args []string) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		out := cmd.OutOrStdout()
		eng.OnDocumentReconciled(func(res constable.Result) {
			fmt.Fprintf(out, "%s: %d tokens, %d would change\n",
				res.DocumentID, len(res.Tokens), len(res.Plan.Edits))
		})
	}

	err = eng.Watch(cmd.Context(), args...)
	if errors.Is(err, context.Canceled) {
		// Signal-driven shutdown is the normal way out
		return nil
	}
	return err
}
