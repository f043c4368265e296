package filter

import (
	"testing"

	"github.com/axicon-labs/constable/internal/utils/ptr"
	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/plan"
	"github.com/axicon-labs/constable/pkg/registry"
)

func testEntries() []registry.Entry {
	return []registry.Entry{
		{Path: "couplings.alpha_inv", Value: 137.035999},
		{Path: "topology.chi_eff", Value: 144.0},
		{Path: "topology.n_gen", Value: 3.0},
		{Path: "topologies.other", Value: 7.0},
	}
}

func TestEntryFilterPrefix(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		wantPaths []string
	}{
		{
			name:      "group prefix",
			prefix:    "topology",
			wantPaths: []string{"topology.chi_eff", "topology.n_gen"},
		},
		{
			name:      "exact path",
			prefix:    "couplings.alpha_inv",
			wantPaths: []string{"couplings.alpha_inv"},
		},
		{
			name:      "no boundary bleed",
			prefix:    "topolog",
			wantPaths: nil,
		},
		{
			name:      "unknown group",
			prefix:    "cosmology",
			wantPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &EntryFilter{Prefix: tt.prefix}
			got := f.Apply(testEntries())

			if len(got) != len(tt.wantPaths) {
				t.Fatalf("Apply() returned %d entries, want %d", len(got), len(tt.wantPaths))
			}
			for i, want := range tt.wantPaths {
				if got[i].Path.String() != want {
					t.Errorf("entry %d = %s, want %s", i, got[i].Path, want)
				}
			}
		})
	}
}

func TestEntryFilterSearch(t *testing.T) {
	f := &EntryFilter{Search: "ALPHA"}
	got := f.Apply(testEntries())

	if len(got) != 1 || got[0].Path != "couplings.alpha_inv" {
		t.Errorf("Apply() = %+v, want the alpha_inv entry", got)
	}
}

func TestEntryFilterNilAndEmptyPassThrough(t *testing.T) {
	entries := testEntries()

	var nilFilter *EntryFilter
	if got := nilFilter.Apply(entries); len(got) != len(entries) {
		t.Errorf("nil filter dropped entries: %d of %d", len(got), len(entries))
	}

	empty := &EntryFilter{}
	if got := empty.Apply(entries); len(got) != len(entries) {
		t.Errorf("empty filter dropped entries: %d of %d", len(got), len(entries))
	}
}

func testRecords() []audit.Record {
	return []audit.Record{
		{DocumentID: "a.md", Status: plan.StatusApplied, MatchType: ptr.To("exact")},
		{DocumentID: "a.md", Status: plan.StatusExcluded},
		{DocumentID: "b.md", Status: plan.StatusProposed, MatchType: ptr.To("rounded")},
	}
}

func TestRecordFilterStatus(t *testing.T) {
	f := &RecordFilter{Status: "excluded"}
	got := f.Apply(testRecords())

	if len(got) != 1 || got[0].Status != plan.StatusExcluded {
		t.Errorf("Apply() = %+v, want only the excluded record", got)
	}
}

func TestRecordFilterTierSkipsUnmatchedRecords(t *testing.T) {
	f := &RecordFilter{Tier: "exact"}
	got := f.Apply(testRecords())

	if len(got) != 1 {
		t.Fatalf("Apply() returned %d records, want 1", len(got))
	}
	if got[0].MatchType == nil || *got[0].MatchType != "exact" {
		t.Errorf("Apply() kept %+v, want the exact-tier record", got[0])
	}
}

func TestRecordFilterDocument(t *testing.T) {
	f := &RecordFilter{Document: "b.md"}
	got := f.Apply(testRecords())

	if len(got) != 1 || got[0].DocumentID != "b.md" {
		t.Errorf("Apply() = %+v, want only b.md records", got)
	}
}

func TestRecordFilterCombined(t *testing.T) {
	f := &RecordFilter{Status: "applied", Tier: "rounded"}
	if got := f.Apply(testRecords()); len(got) != 0 {
		t.Errorf("Apply() = %+v, want no records for a contradictory filter", got)
	}
}
