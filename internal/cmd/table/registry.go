package table

import (
	"strconv"
	"strings"

	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/registry"
)

// EntriesToTableData converts registry entries to table format.
func EntriesToTableData(entries []registry.Entry, wide bool) Data {
	headers := []string{"Path", "Value", "Unit"}
	if wide {
		headers = append(headers, "Uncertainty", "Display")
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		unit := entry.Unit
		if unit == "" {
			unit = "-"
		}

		row := []string{
			entry.Path.String(),
			FormatValue(entry.Value),
			unit,
		}

		if wide {
			uncertainty := "-"
			if entry.Uncertainty != nil {
				uncertainty = FormatValue(*entry.Uncertainty)
			}
			display := entry.Display
			if display == "" {
				display = "-"
			}
			row = append(row, uncertainty, display)
		}

		rows = append(rows, row)
	}

	alignment := []Align{AlignLeft, AlignRight, AlignLeft}
	if wide {
		alignment = append(alignment, AlignRight, AlignLeft)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// SkippedToTableData converts skipped registry entries to table format.
func SkippedToTableData(skipped []registry.Skipped) Data {
	rows := make([][]string, 0, len(skipped))
	for _, s := range skipped {
		rows = append(rows, []string{s.Path.String(), s.Reason})
	}

	return Data{
		Headers: []string{"Path", "Reason"},
		Rows:    rows,
	}
}

// DuplicatesToTableData converts duplicate value groups to table format.
func DuplicatesToTableData(duplicates []registry.Duplicate) Data {
	rows := make([][]string, 0, len(duplicates))
	for _, dup := range duplicates {
		paths := make([]string, 0, len(dup.Paths))
		for _, p := range dup.Paths {
			paths = append(paths, p.String())
		}
		rows = append(rows, []string{
			FormatValue(dup.Value),
			strings.Join(paths, ", "),
		})
	}

	return Data{
		Headers:         []string{"Value", "Paths"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// CandidatesToTableData converts match candidates to table format.
func CandidatesToTableData(candidates []match.Candidate) Data {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		nearMiss := ""
		if c.NearMiss {
			nearMiss = "near miss"
		}
		rows = append(rows, []string{
			c.Path.String(),
			FormatValue(c.Value),
			string(c.Tier),
			strconv.FormatFloat(c.Confidence, 'f', 2, 64),
			nearMiss,
		})
	}

	return Data{
		Headers:         []string{"Path", "Value", "Tier", "Confidence", ""},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignRight, AlignLeft},
	}
}

// FormatValue renders a registry value in its shortest exact form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
