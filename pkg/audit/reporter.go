package audit

import (
	"sort"
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/axicon-labs/constable/pkg/plan"
)

// Reporter accumulates records across documents. It is safe for the
// parallel document workers to feed one Reporter.
type Reporter struct {
	mu        sync.Mutex
	runID     string
	startedAt utc.Time
	documents map[string]struct{}
	failed    map[string]struct{}
	records   []Record
	ambiguous []AmbiguousToken
}

// NewReporter starts an empty report with a fresh run ID.
func NewReporter() *Reporter {
	return &Reporter{
		runID:     uuid.New().String(),
		startedAt: utc.Now(),
		documents: make(map[string]struct{}),
		failed:    make(map[string]struct{}),
	}
}

// RunID returns the report's run identifier.
func (r *Reporter) RunID() string {
	return r.runID
}

// AddDocument folds one document's plan into the report. applied reports
// whether the plan's proposed edits were written to disk.
func (r *Reporter) AddDocument(p *plan.Plan, applied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.documents[p.DocumentID] = struct{}{}
	for _, dec := range p.Decisions {
		r.records = append(r.records, recordFor(p.DocumentID, dec, applied))

		if dec.Status != plan.StatusSkippedAmbiguous {
			continue
		}
		candidates := make([]string, 0, len(dec.Qualifying))
		for _, c := range dec.Qualifying {
			candidates = append(candidates, string(c.Path))
		}
		r.ambiguous = append(r.ambiguous, AmbiguousToken{
			DocumentID:   p.DocumentID,
			SpanStart:    dec.Token.Span.Start,
			OriginalText: dec.Token.Text,
			Candidates:   candidates,
		})
	}
}

// AddFailure records a document that could not be reconciled. Its
// tokens, if any were scanned, never reach the report.
func (r *Reporter) AddFailure(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[documentID] = struct{}{}
}

// Report finalizes and returns the run report. Records are ordered by
// document and span so identical runs serialize identically.
func (r *Reporter) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]Record, len(r.records))
	copy(records, r.records)
	sort.Slice(records, func(i, j int) bool {
		if records[i].DocumentID != records[j].DocumentID {
			return records[i].DocumentID < records[j].DocumentID
		}
		return records[i].SpanStart < records[j].SpanStart
	})

	ambiguous := make([]AmbiguousToken, len(r.ambiguous))
	copy(ambiguous, r.ambiguous)
	sort.Slice(ambiguous, func(i, j int) bool {
		if ambiguous[i].DocumentID != ambiguous[j].DocumentID {
			return ambiguous[i].DocumentID < ambiguous[j].DocumentID
		}
		return ambiguous[i].SpanStart < ambiguous[j].SpanStart
	})

	return &Report{
		RunID:      r.runID,
		StartedAt:  r.startedAt,
		FinishedAt: utc.Now(),
		Records:    records,
		Summary:    summarize(len(r.documents), len(r.failed), records, ambiguous),
	}
}

func summarize(documents, failed int, records []Record, ambiguous []AmbiguousToken) Summary {
	s := Summary{
		Documents:       documents,
		Failed:          failed,
		Tokens:          len(records),
		ByTier:          make(map[string]int),
		AmbiguousTokens: ambiguous,
	}
	for _, rec := range records {
		switch rec.Status {
		case plan.StatusApplied:
			s.Applied++
		case plan.StatusProposed:
			s.Proposed++
		case plan.StatusExcluded:
			s.Excluded++
		case plan.StatusSkippedAmbiguous:
			s.SkippedAmbiguous++
		case plan.StatusSkippedLowConfidence:
			s.SkippedLowConfidence++
		}
		if rec.MatchType != nil {
			s.ByTier[*rec.MatchType]++
		}
	}
	return s
}
