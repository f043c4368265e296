package cmdutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/axicon-labs/constable/internal/cmd/filter"
	"github.com/axicon-labs/constable/internal/cmd/output"
	"github.com/axicon-labs/constable/internal/utils/ptr"
	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/plan"
)

func sampleReport() *audit.Report {
	return &audit.Report{
		RunID: "run-1",
		Records: []audit.Record{
			{
				DocumentID:   "paper.md",
				SpanStart:    39,
				SpanEnd:      49,
				OriginalText: "137.035999",
				RegistryPath: ptr.To("couplings.alpha_inv"),
				MatchType:    ptr.To("exact"),
				Confidence:   ptr.To(1.0),
				Status:       plan.StatusProposed,
				Reason:       "unique match at exact tier",
			},
			{
				DocumentID:   "paper.md",
				SpanStart:    110,
				SpanEnd:      114,
				OriginalText: "2024",
				Status:       plan.StatusExcluded,
				Reason:       "year_pattern",
			},
		},
		Summary: audit.Summary{
			Documents: 1,
			Tokens:    2,
			Proposed:  1,
			Excluded:  1,
			ByTier:    map[string]int{"exact": 1},
		},
	}
}

func TestWriteReportFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"json", "report.json", `"run_id"`},
		{"yaml", "report.yaml", "run_id: run-1"},
		{"yml", "report.yml", "run_id: run-1"},
		{"markdown", "report.md", "# Numeric Reconciliation Report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := WriteReportFile(sampleReport(), path); err != nil {
				t.Fatalf("WriteReportFile() failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading report: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("report missing %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestWriteReportFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	err := WriteReportFile(sampleReport(), path)
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
	if !strings.Contains(err.Error(), "report extension") {
		t.Errorf("error = %v", err)
	}
}

func TestPrintReportSerializedFormats(t *testing.T) {
	tests := []struct {
		format output.Format
		want   string
	}{
		{output.FormatJSON, `"run_id"`},
		{output.FormatYAML, "run_id: run-1"},
		{output.FormatMarkdown, "# Numeric Reconciliation Report"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := PrintReport(&buf, sampleReport(), tt.format, nil); err != nil {
				t.Fatalf("PrintReport() failed: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPrintReportTable(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintReport(&buf, sampleReport(), output.FormatTable, nil); err != nil {
		t.Fatalf("PrintReport() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"run-1", "Exact", "137.035999", "2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReportTableFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	recordFilter := &filter.RecordFilter{Status: "excluded"}
	if err := PrintReport(&buf, sampleReport(), output.FormatTable, recordFilter); err != nil {
		t.Fatalf("PrintReport() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2024") {
		t.Errorf("filtered output missing the excluded record:\n%s", out)
	}
	if strings.Contains(out, "137.035999") {
		t.Errorf("filtered output leaked the proposed record:\n%s", out)
	}
}
