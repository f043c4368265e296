package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/axicon-labs/constable/pkg/audit"
)

// RecordsToTableData converts audit records to table format.
func RecordsToTableData(records []audit.Record, wide bool) Data {
	headers := []string{"Document", "Text", "Path", "Tier", "Confidence", "Status"}
	if wide {
		headers = append(headers, "Span", "Reason")
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.DocumentID,
			rec.OriginalText,
			orDash(rec.RegistryPath),
			orDash(rec.MatchType),
			confidenceString(rec.Confidence),
			TitleWords(string(rec.Status)),
		}

		if wide {
			row = append(row,
				fmt.Sprintf("%d-%d", rec.SpanStart, rec.SpanEnd),
				rec.Reason,
			)
		}

		rows = append(rows, row)
	}

	alignment := []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		alignment = append(alignment, AlignRight, AlignLeft)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// SummaryToTableData converts a report summary to a key-value table.
func SummaryToTableData(rep *audit.Report) Data {
	rows := [][]string{
		{"Run", rep.RunID},
		{"Documents", strconv.Itoa(rep.Summary.Documents)},
		{"Failed documents", strconv.Itoa(rep.Summary.Failed)},
		{"Tokens", strconv.Itoa(rep.Summary.Tokens)},
		{"Applied", strconv.Itoa(rep.Summary.Applied)},
		{"Proposed", strconv.Itoa(rep.Summary.Proposed)},
		{"Excluded", strconv.Itoa(rep.Summary.Excluded)},
		{"Skipped ambiguous", strconv.Itoa(rep.Summary.SkippedAmbiguous)},
		{"Skipped low confidence", strconv.Itoa(rep.Summary.SkippedLowConfidence)},
	}

	return Data{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

// TiersToTableData converts the per-tier token counts to table format,
// sorted by tier name.
func TiersToTableData(byTier map[string]int) Data {
	tiers := make([]string, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	rows := make([][]string, 0, len(tiers))
	for _, tier := range tiers {
		rows = append(rows, []string{TitleWords(tier), strconv.Itoa(byTier[tier])})
	}

	return Data{
		Headers:         []string{"Tier", "Tokens"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// AmbiguousToTableData converts ambiguous tokens to table format.
func AmbiguousToTableData(tokens []audit.AmbiguousToken) Data {
	rows := make([][]string, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []string{
			tok.DocumentID,
			tok.OriginalText,
			strings.Join(tok.Candidates, ", "),
		})
	}

	return Data{
		Headers: []string{"Document", "Text", "Candidates"},
		Rows:    rows,
	}
}

// orDash renders a nullable string field, using "-" for null.
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// confidenceString renders a nullable confidence, using "-" for null.
func confidenceString(c *float64) string {
	if c == nil {
		return "-"
	}
	return strconv.FormatFloat(*c, 'f', 2, 64)
}
