// Package plan turns classified tokens and their matches into a
// replacement plan: one proposed edit per token with a unique qualifying
// match, an explicit skip for everything else. Ambiguity is never
// resolved by the planner, only reported.
package plan

import (
	"fmt"
	"sort"

	"github.com/axicon-labs/constable/pkg/classify"
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Status is the terminal state of one token within a run.
type Status string

// Token statuses as they appear in audit records.
const (
	StatusApplied              Status = "applied"
	StatusProposed             Status = "proposed"
	StatusSkippedAmbiguous     Status = "skipped_ambiguous"
	StatusSkippedLowConfidence Status = "skipped_low_confidence"
	StatusExcluded             Status = "excluded"
)

// Edit replaces one token span with a rendered registry reference.
type Edit struct {
	DocumentID  string        `json:"document_id" yaml:"document_id"`
	Span        document.Span `json:"span" yaml:"span"`
	Original    string        `json:"original" yaml:"original"`
	Replacement string        `json:"replacement" yaml:"replacement"`
	Path        registry.Path `json:"path" yaml:"path"`
	Tier        match.Tier    `json:"tier" yaml:"tier"`
	Confidence  float64       `json:"confidence" yaml:"confidence"`
}

// Decision records what the planner did with one token and why.
// Qualifying holds the winning tier's candidates at or above the
// threshold, so an ambiguous skip can name the contenders it refused
// to pick between. Near misses never appear here.
type Decision struct {
	Token      document.Token
	Match      match.Match
	Status     Status
	Reason     string
	Qualifying []match.Candidate
	Edit       *Edit
}

// Plan is the full outcome for one document: one decision per token in
// span order, and the proposed edits in ascending span order.
type Plan struct {
	DocumentID string
	Decisions  []Decision
	Edits      []Edit
}

// Planner converts classification results and matches into plans.
type Planner struct {
	threshold     float64
	requireUnique bool
	template      string
}

// Option configures a Planner.
type Option func(*Planner)

// WithThreshold sets the minimum confidence a match needs before it can
// produce an edit.
func WithThreshold(threshold float64) Option {
	return func(p *Planner) {
		p.threshold = threshold
	}
}

// WithRequireUnique demands exactly one qualifying candidate overall
// rather than a unique top-confidence candidate.
func WithRequireUnique(require bool) Option {
	return func(p *Planner) {
		p.requireUnique = require
	}
}

// WithTemplate sets the reference template. The template must contain one
// %s verb, which receives the registry path.
func WithTemplate(template string) Option {
	return func(p *Planner) {
		p.template = template
	}
}

// New creates a Planner with the default threshold, non-strict
// uniqueness, and the default reference template.
func New(opts ...Option) *Planner {
	p := &Planner{
		threshold:     constants.DefaultThreshold,
		requireUnique: false,
		template:      constants.DefaultReferenceTemplate,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Threshold returns the planner's qualifying confidence.
func (p *Planner) Threshold() float64 {
	return p.threshold
}

// Plan decides every token of one document. results holds all scanned
// tokens in span order; matches holds one entry per non-excluded result,
// in the same order. Text outside the returned edit spans is untouched by
// construction: edits carry only the token span and its replacement.
func (p *Planner) Plan(doc document.Document, results []classify.Result, matches []match.Match) (*Plan, error) {
	out := &Plan{DocumentID: doc.ID}

	next := 0
	for _, res := range results {
		if res.Excluded {
			out.Decisions = append(out.Decisions, Decision{
				Token:  res.Token,
				Status: StatusExcluded,
				Reason: res.Reason,
			})
			continue
		}

		if next >= len(matches) {
			return nil, errors.NewValidationError("matches", doc.ID, "fewer matches than candidate tokens")
		}
		m := matches[next]
		next++

		dec := p.decide(doc.ID, res.Token, m)
		if dec.Edit != nil {
			out.Edits = append(out.Edits, *dec.Edit)
		}
		out.Decisions = append(out.Decisions, dec)
	}
	if next != len(matches) {
		return nil, errors.NewValidationError("matches", doc.ID, "more matches than candidate tokens")
	}

	sort.Slice(out.Edits, func(i, j int) bool {
		return out.Edits[i].Span.Start < out.Edits[j].Span.Start
	})
	for i := 1; i < len(out.Edits); i++ {
		if out.Edits[i-1].Span.End > out.Edits[i].Span.Start {
			return nil, errors.WrapDocument(doc.ID, "plan", errors.ErrOverlappingEdits)
		}
	}

	return out, nil
}

// decide applies the threshold and uniqueness policy to one match.
func (p *Planner) decide(docID string, tok document.Token, m match.Match) Decision {
	dec := Decision{Token: tok, Match: m}

	if !m.Matched() {
		dec.Status = StatusSkippedLowConfidence
		dec.Reason = "no tier produced a match"
		return dec
	}

	// Near misses are audit data; only the winning tier's candidates can
	// qualify for an edit.
	var qualifying []match.Candidate
	for _, c := range m.Candidates {
		if c.Confidence >= p.threshold {
			qualifying = append(qualifying, c)
		}
	}
	dec.Qualifying = qualifying
	if len(qualifying) == 0 {
		best, _ := m.Best()
		dec.Status = StatusSkippedLowConfidence
		dec.Reason = fmt.Sprintf("best confidence %.2f below threshold %.2f", best.Confidence, p.threshold)
		return dec
	}

	if p.requireUnique && len(qualifying) > 1 {
		dec.Status = StatusSkippedAmbiguous
		dec.Reason = fmt.Sprintf("%d qualifying candidates, unique match required", len(qualifying))
		return dec
	}

	top := qualifying[0]
	ties := 0
	for _, c := range qualifying {
		if c.Confidence == top.Confidence {
			ties++
		}
	}
	if ties > 1 {
		dec.Status = StatusSkippedAmbiguous
		dec.Reason = fmt.Sprintf("%d candidates tied at confidence %.2f", ties, top.Confidence)
		return dec
	}

	dec.Status = StatusProposed
	dec.Reason = fmt.Sprintf("unique match at %s tier", top.Tier)
	dec.Edit = &Edit{
		DocumentID:  docID,
		Span:        tok.Span,
		Original:    tok.Text,
		Replacement: fmt.Sprintf(p.template, top.Path),
		Path:        top.Path,
		Tier:        top.Tier,
		Confidence:  top.Confidence,
	}
	return dec
}
