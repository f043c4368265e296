package constable

import (
	"sync"

	"github.com/axicon-labs/constable/pkg/plan"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*engine)(nil)

// Hook function types for reconciliation events
type (
	// DocumentReconciledHook is called after a document completes the
	// pipeline, whether or not any edits were applied
	DocumentReconciledHook func(result Result)

	// EditAppliedHook is called once per edit written to disk
	EditAppliedHook func(documentID string, edit plan.Edit)
)

// Hooks provides access to event callback registration.
type Hooks interface {
	// OnDocumentReconciled registers a callback for completed documents
	OnDocumentReconciled(DocumentReconciledHook)

	// OnEditApplied registers a callback for applied edits
	OnEditApplied(EditAppliedHook)
}

// hooks manages event callbacks for reconciliation events.
type hooks struct {
	mu                   sync.RWMutex
	onDocumentReconciled []DocumentReconciledHook
	onEditApplied        []EditAppliedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// OnDocumentReconciled registers a callback for completed documents.
func (e *engine) OnDocumentReconciled(fn DocumentReconciledHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onDocumentReconciled = append(e.hooks.onDocumentReconciled, fn)
}

// OnEditApplied registers a callback for applied edits.
func (e *engine) OnEditApplied(fn EditAppliedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onEditApplied = append(e.hooks.onEditApplied, fn)
}

// triggerDocumentReconciled invokes the registered document hooks.
func (h *hooks) triggerDocumentReconciled(result Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onDocumentReconciled {
		hook(result)
	}
}

// triggerEditsApplied invokes the registered edit hooks, one call per
// applied edit.
func (h *hooks) triggerEditsApplied(documentID string, edits []plan.Edit) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onEditApplied {
		for _, edit := range edits {
			hook(documentID, edit)
		}
	}
}
