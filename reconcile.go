package constable

import (
	"context"

	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/classify"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/logging"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/plan"
)

// Compile-time interface check to ensure proper implementation.
var _ Reconciler = (*engine)(nil)

// Reconciler runs the reconciliation pipeline over documents.
type Reconciler interface {
	// Reconcile runs the pipeline on one document. Documents without a
	// filesystem path are planned but never written.
	Reconcile(ctx context.Context, doc document.Document) (*Result, error)

	// ReconcileFile loads one file and reconciles it
	ReconcileFile(ctx context.Context, path string) (*Result, error)

	// ReconcileGlobs resolves paths and glob patterns and reconciles
	// every document found
	ReconcileGlobs(ctx context.Context, patterns ...string) (*BatchResult, error)
}

// Result is the outcome of reconciling one document.
type Result struct {
	DocumentID string           `json:"document_id" yaml:"document_id"`
	Tokens     []document.Token `json:"tokens" yaml:"tokens"`
	Matches    []match.Match    `json:"matches" yaml:"matches"`
	Plan       *plan.Plan       `json:"plan" yaml:"plan"`
	Applied    bool             `json:"applied" yaml:"applied"`
	BackupPath string           `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Records    []audit.Record   `json:"records" yaml:"records"`
}

// Reconcile runs the document pipeline. Nothing is written until the
// whole plan exists, and dry-run mode never writes at all.
func (e *engine) Reconcile(ctx context.Context, doc document.Document) (*Result, error) {
	return e.reconcile(ctx, doc, !e.options.dryRun)
}

// ReconcileFile loads one file and reconciles it. The document ID is
// the path as given.
func (e *engine) ReconcileFile(ctx context.Context, path string) (*Result, error) {
	return e.reconcilePath(ctx, path, !e.options.dryRun)
}

func (e *engine) reconcilePath(ctx context.Context, path string, write bool) (*Result, error) {
	doc, err := document.NewFromFile(path)
	if err != nil {
		return nil, err
	}
	return e.reconcile(ctx, doc, write)
}

func (e *engine) reconcile(ctx context.Context, doc document.Document, write bool) (*Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Ctx(ctx)

	// Step 1: Honor cancellation before any work
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Scan for numeric literals
	tokens, err := e.scanner.Scan(doc, e.options.markup)
	if err != nil {
		return nil, errors.WrapDocument(doc.ID, "scan", err)
	}
	logger.Debug().
		Str("document", doc.ID).
		Int("tokens", len(tokens)).
		Msg("Scanned numeric literals")

	// Step 3: Classify exclusions
	results := e.classifier.Classify(doc, e.options.markup, tokens)
	candidates := classify.Candidates(results)

	// Step 4: Match candidates against the registry
	matches := e.matcher.MatchAll(candidates)

	// Step 5: Plan replacements
	p, err := e.planner.Plan(doc, results, matches)
	if err != nil {
		return nil, err
	}

	// Step 6: Apply edits unless this is a dry run or the document has
	// no backing file
	applied := false
	backupPath := ""
	if write && doc.Path != "" && len(p.Edits) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		applyResult, err := e.applier.Apply(doc, p.Edits)
		if err != nil {
			return nil, err
		}
		applied = true
		backupPath = applyResult.BackupPath
		e.hooks.triggerEditsApplied(doc.ID, p.Edits)
		logger.Info().
			Str("document", doc.ID).
			Int("edits", applyResult.Applied).
			Str("backup", applyResult.BackupPath).
			Msg("Applied edits")
	} else if len(p.Edits) > 0 {
		logger.Info().
			Str("document", doc.ID).
			Int("proposed", len(p.Edits)).
			Msg("Proposed edits, none applied")
	}

	// Step 7: Assemble the result and trigger hooks
	result := &Result{
		DocumentID: doc.ID,
		Tokens:     tokens,
		Matches:    matches,
		Plan:       p,
		Applied:    applied,
		BackupPath: backupPath,
		Records:    audit.RecordsFor(doc.ID, p, applied),
	}
	e.hooks.triggerDocumentReconciled(*result)

	return result, nil
}
