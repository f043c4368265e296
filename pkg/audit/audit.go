// Package audit assembles the immutable trail of a reconciliation run:
// one record per scanned token with its final status, no token ever
// dropped, plus a computed summary. Reports serialize to JSON, YAML, and
// Markdown.
package audit

import (
	"github.com/agentstation/utc"

	"github.com/axicon-labs/constable/internal/utils/ptr"
	"github.com/axicon-labs/constable/pkg/plan"
)

// Record is one token's final accounting. Null fields are emitted as
// null, not omitted: an excluded token has no registry path, tier, or
// confidence, and the record says so explicitly.
type Record struct {
	DocumentID   string      `json:"document_id" yaml:"document_id"`
	SpanStart    int         `json:"span_start" yaml:"span_start"`
	SpanEnd      int         `json:"span_end" yaml:"span_end"`
	OriginalText string      `json:"original_text" yaml:"original_text"`
	RegistryPath *string     `json:"registry_path" yaml:"registry_path"`
	MatchType    *string     `json:"match_type" yaml:"match_type"`
	Confidence   *float64    `json:"confidence" yaml:"confidence"`
	Status       plan.Status `json:"status" yaml:"status"`
	Reason       string      `json:"reason" yaml:"reason"`
}

// AmbiguousToken names one token the planner refused to resolve and the
// registry paths that tied for it.
type AmbiguousToken struct {
	DocumentID   string   `json:"document_id" yaml:"document_id"`
	SpanStart    int      `json:"span_start" yaml:"span_start"`
	OriginalText string   `json:"original_text" yaml:"original_text"`
	Candidates   []string `json:"candidates" yaml:"candidates"`
}

// Summary aggregates a run for human consumption.
type Summary struct {
	Documents            int              `json:"documents" yaml:"documents"`
	Failed               int              `json:"failed" yaml:"failed"`
	Tokens               int              `json:"tokens" yaml:"tokens"`
	Applied              int              `json:"applied" yaml:"applied"`
	Proposed             int              `json:"proposed" yaml:"proposed"`
	Excluded             int              `json:"excluded" yaml:"excluded"`
	SkippedAmbiguous     int              `json:"skipped_ambiguous" yaml:"skipped_ambiguous"`
	SkippedLowConfidence int              `json:"skipped_low_confidence" yaml:"skipped_low_confidence"`
	ByTier               map[string]int   `json:"by_tier" yaml:"by_tier"`
	AmbiguousTokens      []AmbiguousToken `json:"ambiguous_tokens" yaml:"ambiguous_tokens"`
}

// Report is the complete audit output of one run.
type Report struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
	Records    []Record `json:"records" yaml:"records"`
	Summary    Summary  `json:"summary" yaml:"summary"`
}

// RecordsFor flattens a document plan into audit records, one per token
// in span order. applied reports whether the plan's proposed edits were
// written.
func RecordsFor(documentID string, p *plan.Plan, applied bool) []Record {
	records := make([]Record, 0, len(p.Decisions))
	for _, dec := range p.Decisions {
		records = append(records, recordFor(documentID, dec, applied))
	}
	return records
}

// recordFor flattens one planner decision into an audit record. applied
// reports whether the document's proposed edits were actually written.
func recordFor(docID string, dec plan.Decision, applied bool) Record {
	rec := Record{
		DocumentID:   docID,
		SpanStart:    dec.Token.Span.Start,
		SpanEnd:      dec.Token.Span.End,
		OriginalText: dec.Token.Text,
		Status:       dec.Status,
		Reason:       dec.Reason,
	}
	if dec.Status == plan.StatusProposed && applied {
		rec.Status = plan.StatusApplied
	}

	if dec.Match.Matched() {
		rec.MatchType = ptr.To(string(dec.Match.Tier))
		rec.Confidence = ptr.To(dec.Match.Candidates[0].Confidence)
	}
	if dec.Edit != nil {
		rec.RegistryPath = ptr.To(string(dec.Edit.Path))
	}
	return rec
}
