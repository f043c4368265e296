package registry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axicon-labs/constable/cmd/application"
	"github.com/axicon-labs/constable/internal/cmd/filter"
	"github.com/axicon-labs/constable/internal/cmd/globals"
	"github.com/axicon-labs/constable/internal/cmd/output"
	"github.com/axicon-labs/constable/internal/cmd/table"
)

// NewListCommand creates the registry list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registry entries",
		Long: `List shows the flattened registry entries in lexical path order.

With --skipped it instead shows the entries the loader rejected and
why; with --duplicates, the values shared by more than one path.`,
		Example: `  constable registry list                       # All entries
  constable registry list --prefix couplings    # One dotted group
  constable registry list --search alpha        # Path substring search
  constable registry list --duplicates          # Values with multiple paths
  constable registry list --skipped             # Rejected entries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app)
		},
	}

	globals.AddRegistryFlags(cmd)
	cmd.Flags().Bool("skipped", false,
		"Show entries the loader skipped instead")
	cmd.Flags().Bool("duplicates", false,
		"Show duplicate value groups instead")

	return cmd
}

func runList(cmd *cobra.Command, app application.Application) error {
	idx, err := app.Registry()
	if err != nil {
		return err
	}

	showSkipped, err := cmd.Flags().GetBool("skipped")
	if err != nil {
		return err
	}
	showDuplicates, err := cmd.Flags().GetBool("duplicates")
	if err != nil {
		return err
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
	formatter := output.NewFormatter(format)

	tabular := format == output.FormatTable || format == output.FormatWide || format == output.FormatMarkdown

	if showSkipped {
		skipped := idx.Skipped()
		if !globalFlags.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d entries from %s\n", len(skipped), idx.Source())
		}
		var data any = skipped
		if tabular {
			data = table.SkippedToTableData(skipped)
		}
		return formatter.Format(cmd.OutOrStdout(), data)
	}

	if showDuplicates {
		duplicates := idx.Duplicates()
		if !globalFlags.Quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Found %d duplicate value groups in %s\n", len(duplicates), idx.Source())
		}
		var data any = duplicates
		if tabular {
			data = table.DuplicatesToTableData(duplicates)
		}
		return formatter.Format(cmd.OutOrStdout(), data)
	}

	flags := globals.ParseRegistry(cmd)
	entryFilter := &filter.EntryFilter{
		Prefix: flags.Prefix,
		Search: flags.Search,
	}
	entries := entryFilter.Apply(idx.Entries())

	// Apply limit
	if flags.Limit > 0 && len(entries) > flags.Limit {
		entries = entries[:flags.Limit]
	}

	if !globalFlags.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d entries in %s\n", len(entries), idx.Source())
	}

	var data any = entries
	if tabular {
		data = table.EntriesToTableData(entries, format == output.FormatWide)
	}
	return formatter.Format(cmd.OutOrStdout(), data)
}
