// Package constable reconciles literal numeric values in prose and
// markup documents against a canonical registry of named constants.
// It finds numeric literals, filters out incidental numbers such as
// years and page references, matches the remainder against the registry
// through tiered comparison strategies, and replaces confident matches
// with symbolic references, backing up every document before it is
// touched.
//
// The pipeline is deterministic: the same documents and registry always
// produce the same edits and, timestamps aside, the same audit report.
//
// Example usage:
//
//	// Create an engine over a registry file
//	eng, err := constable.New(
//	    constable.WithRegistryFile("constants.yaml"),
//	    constable.WithDryRun(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register event hooks
//	eng.OnDocumentReconciled(func(res constable.Result) {
//	    log.Printf("%s: %d edits planned", res.DocumentID, len(res.Plan.Edits))
//	})
//
//	// Reconcile a tree of documents
//	batch, err := eng.ReconcileGlobs(ctx, "docs/**/*.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = batch.Report.WriteMarkdown(os.Stdout)
package constable

import (
	"github.com/axicon-labs/constable/pkg/apply"
	"github.com/axicon-labs/constable/pkg/classify"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/logging"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/plan"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Compile-time interface check to ensure proper implementation.
var _ Engine = (*engine)(nil)

// Engine reconciles documents against an immutable registry index.
type Engine interface {

	// Reconciler runs the pipeline over documents, files, and globs
	Reconciler

	// Watcher re-reconciles documents as they change on disk
	Watcher

	// Hooks provides access to event callback registration
	Hooks

	// Registry returns the value index the engine matches against
	Registry() *registry.Index
}

// engine is the internal implementation of the Engine interface.
type engine struct {

	// options are the configured options for the engine
	options *options

	// index is the immutable registry index built once at New
	index *registry.Index

	// pipeline stages, configured once and shared by all documents
	scanner    *document.Scanner
	classifier *classify.Classifier
	matcher    *match.Engine
	planner    *plan.Planner
	applier    *apply.Applier

	// hooks are the event callbacks for reconciliation events
	hooks *hooks
}

// New creates a new Engine with the given options. The registry is
// loaded and indexed here, exactly once; a load failure is fatal.
func New(opts ...Option) (Engine, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	reg, err := options.loadRegistry()
	if err != nil {
		return nil, err
	}
	index, err := registry.NewIndex(reg)
	if err != nil {
		return nil, err
	}
	for _, skipped := range index.Skipped() {
		logging.Warn().
			Str("path", string(skipped.Path)).
			Str("reason", skipped.Reason).
			Msg("Registry entry skipped")
	}
	for _, dup := range index.Duplicates() {
		logging.Debug().
			Float64("value", dup.Value).
			Int("paths", len(dup.Paths)).
			Msg("Registry value shared by multiple paths")
	}

	applyOpts := []apply.Option{}
	if options.backupDir != "" {
		applyOpts = append(applyOpts, apply.WithBackupDir(options.backupDir))
	}

	e := &engine{
		options: options,
		index:   index,
		scanner: document.NewScanner(
			document.WithContextRadius(options.contextRadius),
		),
		classifier: classify.New(
			classify.WithSmallIntegerThreshold(options.smallIntegerThreshold),
			classify.WithContextRadius(options.contextRadius),
		),
		matcher: match.NewEngine(index,
			match.WithTolerances(options.tolerances),
			match.WithNearMisses(options.nearMisses),
		),
		planner: plan.New(
			plan.WithThreshold(options.threshold),
			plan.WithRequireUnique(options.requireUnique),
			plan.WithTemplate(options.template),
		),
		applier: apply.New(applyOpts...),
		hooks:   newHooks(),
	}

	logging.Debug().
		Str("source", index.Source()).
		Int("entries", index.Len()).
		Msg("Engine ready")

	return e, nil
}

// Registry returns the value index the engine matches against.
func (e *engine) Registry() *registry.Index {
	return e.index
}
