package globals

import "github.com/spf13/cobra"

// RegistryFlags holds flags for registry listing and lookup commands.
type RegistryFlags struct {
	Prefix string
	Search string
	Limit  int
}

// AddRegistryFlags adds registry filter flags to a command.
func AddRegistryFlags(cmd *cobra.Command) *RegistryFlags {
	flags := &RegistryFlags{}

	cmd.Flags().StringVarP(&flags.Prefix, "prefix", "p", "",
		"Filter by dotted path prefix (e.g. 'topology')")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term to filter entry paths")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// ParseRegistry extracts registry flags from a command.
// The command must have had AddRegistryFlags called on it, otherwise this will panic.
func ParseRegistry(cmd *cobra.Command) *RegistryFlags {
	return &RegistryFlags{
		Prefix: mustGetString(cmd, "prefix"),
		Search: mustGetString(cmd, "search"),
		Limit:  mustGetInt(cmd, "limit"),
	}
}

// ReconcileFlags holds flags shared by the scan and apply commands.
type ReconcileFlags struct {
	Report     string
	Status     string
	NearMisses bool
}

// AddReconcileFlags adds reconciliation flags to a command.
func AddReconcileFlags(cmd *cobra.Command) *ReconcileFlags {
	flags := &ReconcileFlags{}

	cmd.Flags().StringVarP(&flags.Report, "report", "r", "",
		"Write the audit report to a file (.json, .yaml, or .md)")
	cmd.Flags().StringVar(&flags.Status, "status", "",
		"Show only records with this status (applied, proposed, excluded, skipped_ambiguous, skipped_low_confidence)")
	cmd.Flags().BoolVar(&flags.NearMisses, "near-misses", false,
		"Record lower-tier candidates alongside each match")

	return flags
}

// ParseReconcile extracts reconciliation flags from a command.
// The command must have had AddReconcileFlags called on it, otherwise this will panic.
func ParseReconcile(cmd *cobra.Command) *ReconcileFlags {
	return &ReconcileFlags{
		Report:     mustGetString(cmd, "report"),
		Status:     mustGetString(cmd, "status"),
		NearMisses: mustGetBool(cmd, "near-misses"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
