package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"
)

// WriteJSON writes the report as indented JSON.
func (rep *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteYAML writes the report as YAML.
func (rep *Report) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteMarkdown writes the report as a human-readable Markdown document.
func (rep *Report) WriteMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)

	doc.H1("Numeric Reconciliation Report")
	doc.PlainTextf("Run %s, started %s, finished %s.",
		md.Code(rep.RunID),
		rep.StartedAt.Format(time.RFC3339),
		rep.FinishedAt.Format(time.RFC3339))
	doc.LF()

	s := rep.Summary
	doc.H2("Summary")
	doc.BulletList(
		fmt.Sprintf("Documents: %d", s.Documents),
		fmt.Sprintf("Failed documents: %d", s.Failed),
		fmt.Sprintf("Tokens: %d", s.Tokens),
		fmt.Sprintf("Applied: %d", s.Applied),
		fmt.Sprintf("Proposed: %d", s.Proposed),
		fmt.Sprintf("Excluded: %d", s.Excluded),
		fmt.Sprintf("Skipped ambiguous: %d", s.SkippedAmbiguous),
		fmt.Sprintf("Skipped low confidence: %d", s.SkippedLowConfidence),
	)
	doc.LF()

	doc.H2("Matches by tier")
	if len(s.ByTier) == 0 {
		doc.PlainText("No tokens matched any tier.")
		doc.LF()
	} else {
		tiers := make([]string, 0, len(s.ByTier))
		for tier := range s.ByTier {
			tiers = append(tiers, tier)
		}
		sort.Strings(tiers)

		rows := make([][]string, 0, len(tiers))
		for _, tier := range tiers {
			rows = append(rows, []string{tier, fmt.Sprintf("%d", s.ByTier[tier])})
		}
		doc.Table(md.TableSet{
			Header: []string{"Tier", "Tokens"},
			Rows:   rows,
		})
	}

	doc.H2("Ambiguous tokens")
	if len(s.AmbiguousTokens) == 0 {
		doc.PlainText("None.")
		doc.LF()
	} else {
		rows := make([][]string, 0, len(s.AmbiguousTokens))
		for _, amb := range s.AmbiguousTokens {
			rows = append(rows, []string{
				amb.DocumentID,
				md.Code(amb.OriginalText),
				strings.Join(amb.Candidates, ", "),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Document", "Text", "Candidates"},
			Rows:   rows,
		})
	}

	doc.H2("Records")
	rows := make([][]string, 0, len(rep.Records))
	for _, rec := range rep.Records {
		rows = append(rows, []string{
			rec.DocumentID,
			fmt.Sprintf("%d-%d", rec.SpanStart, rec.SpanEnd),
			md.Code(rec.OriginalText),
			orDash(rec.RegistryPath),
			orDash(rec.MatchType),
			confidenceString(rec.Confidence),
			string(rec.Status),
			rec.Reason,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Document", "Span", "Text", "Path", "Tier", "Confidence", "Status", "Reason"},
		Rows:   rows,
	})

	return doc.Build()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func confidenceString(c *float64) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *c)
}
