package registry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axicon-labs/constable"
	"github.com/axicon-labs/constable/cmd/application"
	"github.com/axicon-labs/constable/internal/cmd/globals"
	"github.com/axicon-labs/constable/internal/cmd/output"
	"github.com/axicon-labs/constable/internal/cmd/table"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/plan"
)

// NewLookupCommand creates the registry lookup subcommand.
func NewLookupCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <literal>",
		Short: "Show what a literal would match",
		Long: `Lookup runs a single literal through the real reconciliation
pipeline and shows the outcome: the candidates of the winning tier with
their confidences, lower-tier near misses, or the exclusion rule that
would keep the literal from matching at all.

The literal is taken verbatim, so notation matters: "1.38e-23" and
"13.8" exercise different tiers.`,
		Example: `  constable registry lookup 137.036   # Exact or rounded candidates
  constable registry lookup 1.4e2     # Scientific-notation matching
  constable registry lookup 2024      # Excluded as a calendar year`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, app, args[0])
		},
	}

	return cmd
}

func runLookup(cmd *cobra.Command, app application.Application, literal string) error {
	// Near misses make lookup explain itself even when a tier wins
	eng, err := app.Engine(
		constable.WithDryRun(true),
		constable.WithNearMisses(true),
	)
	if err != nil {
		return err
	}

	doc := document.New("lookup", literal)
	res, err := eng.Reconcile(cmd.Context(), doc)
	if err != nil {
		return err
	}

	if len(res.Tokens) == 0 {
		return fmt.Errorf("no numeric literal found in %q", literal)
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

	// Serialized formats get the full result
	if format == output.FormatJSON || format == output.FormatYAML {
		formatter := output.NewFormatter(format)
		return formatter.Format(cmd.OutOrStdout(), res)
	}

	formatter := output.NewFormatter(format)
	for _, rec := range res.Records {
		if rec.Status == plan.StatusExcluded {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: excluded (%s)\n", rec.OriginalText, rec.Reason)
			continue
		}

		candidates := candidatesFor(res.Matches, rec.SpanStart)
		if len(candidates) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no tier matched\n", rec.OriginalText)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", rec.OriginalText)
		if err := formatter.Format(cmd.OutOrStdout(), table.CandidatesToTableData(candidates)); err != nil {
			return err
		}
	}

	return nil
}

// candidatesFor returns the winning-tier candidates and near misses of
// the match whose token starts at spanStart.
func candidatesFor(matches []match.Match, spanStart int) []match.Candidate {
	for _, m := range matches {
		if m.Token.Span.Start != spanStart {
			continue
		}
		out := make([]match.Candidate, 0, len(m.Candidates)+len(m.NearMisses))
		out = append(out, m.Candidates...)
		out = append(out, m.NearMisses...)
		return out
	}
	return nil
}
