package globals

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseWalksToRoot(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String("output", "", "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("no-color", false, "")

	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommand(child)

	root.SetArgs([]string{"child", "--output", "yaml", "--quiet", "--no-color"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	flags, err := Parse(child)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if flags.Output != "yaml" {
		t.Errorf("Output = %q, want yaml", flags.Output)
	}
	if !flags.Quiet {
		t.Error("Quiet = false, want true")
	}
	if flags.Verbose {
		t.Error("Verbose = true, want false")
	}
	if !flags.NoColor {
		t.Error("NoColor = false, want true")
	}
}

func TestParseWithoutFlagsReturnsZeroValues(t *testing.T) {
	cmd := &cobra.Command{Use: "bare"}

	flags, err := Parse(cmd)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if flags.Output != "" || flags.Quiet || flags.Verbose || flags.NoColor {
		t.Errorf("flags = %+v, want zero values", flags)
	}
}

func TestReconcileFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "scan", RunE: func(*cobra.Command, []string) error { return nil }}
	AddReconcileFlags(cmd)

	cmd.SetArgs([]string{"--report", "audit.json", "--status", "proposed", "--near-misses"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	flags := ParseReconcile(cmd)
	if flags.Report != "audit.json" {
		t.Errorf("Report = %q, want audit.json", flags.Report)
	}
	if flags.Status != "proposed" {
		t.Errorf("Status = %q, want proposed", flags.Status)
	}
	if !flags.NearMisses {
		t.Error("NearMisses = false, want true")
	}
}

func TestRegistryFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	AddRegistryFlags(cmd)

	cmd.SetArgs([]string{"-p", "topology", "--search", "gen", "-l", "5"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	flags := ParseRegistry(cmd)
	if flags.Prefix != "topology" {
		t.Errorf("Prefix = %q, want topology", flags.Prefix)
	}
	if flags.Search != "gen" {
		t.Errorf("Search = %q, want gen", flags.Search)
	}
	if flags.Limit != 5 {
		t.Errorf("Limit = %d, want 5", flags.Limit)
	}
}

func TestParseReconcilePanicsWithoutFlags(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a command without reconcile flags")
		}
	}()
	ParseReconcile(&cobra.Command{Use: "bare"})
}
