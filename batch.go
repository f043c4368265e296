package constable

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/axicon-labs/constable/internal/discover"
	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/logging"
)

// BatchResult aggregates a multi-document run.
type BatchResult struct {
	// Results holds the per-document outcomes, ordered by document ID
	Results []Result

	// Errors holds failed documents keyed by path. A failed document
	// never blocks the rest of the batch.
	Errors map[string]error

	// Report is the merged audit report for the whole run
	Report *audit.Report
}

// ReconcileGlobs resolves paths and glob patterns and reconciles every
// document found. Documents are processed concurrently over a shared
// read-only index; results are deterministic regardless of worker
// interleaving.
func (e *engine) ReconcileGlobs(ctx context.Context, patterns ...string) (*BatchResult, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Ctx(ctx)

	// Step 1: Resolve patterns to document files
	files, err := discover.New().Resolve(patterns...)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("documents", len(files)).
		Int("workers", e.options.workers).
		Msg("Reconciling documents")

	// Step 2: Reconcile concurrently. The reporter is mutex-guarded, so
	// all workers feed the same report.
	reporter := audit.NewReporter()
	batch := &BatchResult{Errors: make(map[string]error)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			res, err := e.ReconcileFile(gctx, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Cancellation ends the batch; any other failure stays
				// local to the document.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Error().Err(err).Str("document", path).Msg("Document failed")
				batch.Errors[path] = err
				reporter.AddFailure(path)
				return nil
			}
			batch.Results = append(batch.Results, *res)
			reporter.AddDocument(res.Plan, res.Applied)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 3: Order results and finalize the merged report
	sort.Slice(batch.Results, func(i, j int) bool {
		return batch.Results[i].DocumentID < batch.Results[j].DocumentID
	})
	batch.Report = reporter.Report()

	logger.Info().
		Int("reconciled", len(batch.Results)).
		Int("failed", len(batch.Errors)).
		Int("applied", batch.Report.Summary.Applied).
		Int("proposed", batch.Report.Summary.Proposed).
		Msg("Batch complete")

	return batch, nil
}
