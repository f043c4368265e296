package constable

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/logging"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/plan"
	"github.com/axicon-labs/constable/pkg/registry"
)

const testRegistryYAML = `
topology:
  n_gen: 3.0
  chi_eff: 144.0
couplings:
  alpha_inv: 137.035999
`

func newTestEngine(t *testing.T, opts ...Option) Engine {
	t.Helper()
	logging.DisableLoggingForTest(t)

	reg, err := registry.Parse([]byte(testRegistryYAML), "registry.yaml")
	require.NoError(t, err)

	eng, err := New(append([]Option{WithRegistry(reg)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestNewRequiresRegistry(t *testing.T) {
	logging.DisableLoggingForTest(t)

	_, err := New()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewRejectsConflictingRegistrySources(t *testing.T) {
	logging.DisableLoggingForTest(t)

	reg, err := registry.Parse([]byte(testRegistryYAML), "registry.yaml")
	require.NoError(t, err)

	_, err = New(WithRegistry(reg), WithRegistryFile("registry.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestOptionValidation(t *testing.T) {
	logging.DisableLoggingForTest(t)

	tests := []struct {
		name string
		opt  Option
	}{
		{"nil registry", WithRegistry(nil)},
		{"empty registry file", WithRegistryFile("")},
		{"threshold above one", WithThreshold(1.5)},
		{"negative threshold", WithThreshold(-0.1)},
		{"zero workers", WithWorkers(0)},
		{"too many workers", WithWorkers(33)},
		{"template without verb", WithReferenceTemplate("no placeholder")},
		{"template with two verbs", WithReferenceTemplate("%s and %s")},
		{"empty backup dir", WithBackupDir("")},
		{"negative small integer threshold", WithSmallIntegerThreshold(-1)},
		{"negative context radius", WithContextRadius(-1)},
		{"negative tolerance", WithTolerances(match.Tolerances{Relative: -1, Absolute: 0, Magnitude: 0.1})},
		{"zero magnitude tolerance", WithTolerances(match.Tolerances{Relative: 1e-6, Absolute: 1e-12, Magnitude: 0})},
		{"nil markup", WithMarkup(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestEngineRegistry(t *testing.T) {
	eng := newTestEngine(t)

	idx := eng.Registry()
	assert.Equal(t, 3, idx.Len())

	entry, err := idx.ByPath("topology.chi_eff")
	require.NoError(t, err)
	assert.Equal(t, 144.0, entry.Value)
}

func TestReconcileDryRun(t *testing.T) {
	eng := newTestEngine(t, WithDryRun(true))

	doc := document.New("paper.md", "yields 144 from the torsion count, giving 3 generations")
	res, err := eng.Reconcile(context.Background(), doc)
	require.NoError(t, err)

	assert.False(t, res.Applied)
	assert.Empty(t, res.BackupPath)
	require.Len(t, res.Plan.Edits, 2)
	assert.Equal(t, "{{const:topology.chi_eff}}", res.Plan.Edits[0].Replacement)
	assert.Equal(t, "{{const:topology.n_gen}}", res.Plan.Edits[1].Replacement)

	require.Len(t, res.Records, 2)
	for _, rec := range res.Records {
		assert.Equal(t, plan.StatusProposed, rec.Status)
	}
}

func TestReconcileInMemoryNeverWrites(t *testing.T) {
	eng := newTestEngine(t)

	// Write mode, but the document has no backing file.
	doc := document.New("mem", "yields 144 from the torsion count")
	res, err := eng.Reconcile(context.Background(), doc)
	require.NoError(t, err)

	assert.False(t, res.Applied)
	require.Len(t, res.Plan.Edits, 1)
	require.Len(t, res.Records, 1)
	assert.Equal(t, plan.StatusProposed, res.Records[0].Status)
}

func TestReconcileCanceledContext(t *testing.T) {
	eng := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Reconcile(ctx, document.New("paper.md", "yields 144 here"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReconcileFileAppliesAndIsIdempotent(t *testing.T) {
	eng := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	original := "yields 144 from the torsion count, giving 3 generations"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	res, err := eng.ReconcileFile(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, res.Applied)
	require.NotEmpty(t, res.BackupPath)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"yields {{const:topology.chi_eff}} from the torsion count, giving {{const:topology.n_gen}} generations",
		string(content))

	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	for _, rec := range res.Records {
		assert.Equal(t, plan.StatusApplied, rec.Status)
	}

	// A second run over its own output proposes nothing.
	res2, err := eng.ReconcileFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res2.Applied)
	assert.Empty(t, res2.Plan.Edits)
}

func TestReconcileHooks(t *testing.T) {
	eng := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	require.NoError(t, os.WriteFile(path, []byte("yields 144 from the torsion count, giving 3 generations"), 0o644))

	var docs []string
	var edits []plan.Edit
	eng.OnDocumentReconciled(func(res Result) { docs = append(docs, res.DocumentID) })
	eng.OnEditApplied(func(documentID string, edit plan.Edit) { edits = append(edits, edit) })

	_, err := eng.ReconcileFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{path}, docs)
	require.Len(t, edits, 2)
	assert.Equal(t, "144", edits[0].Original)
	assert.Equal(t, "3", edits[1].Original)
}

func TestReconcileGlobs(t *testing.T) {
	eng := newTestEngine(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	huge := filepath.Join(dir, "huge.md")
	require.NoError(t, os.WriteFile(a, []byte("yields 144 from the torsion count"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("giving 3 generations and measures 137.035999 too"), 0o644))
	require.NoError(t, os.WriteFile(huge, []byte(strings.Repeat("11 ", 10001)), 0o644))

	batch, err := eng.ReconcileGlobs(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, batch.Results, 2)
	assert.Equal(t, a, batch.Results[0].DocumentID)
	assert.Equal(t, b, batch.Results[1].DocumentID)

	require.Contains(t, batch.Errors, huge)
	assert.True(t, errors.IsValidationError(batch.Errors[huge]))

	s := batch.Report.Summary
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3, s.Tokens)
	assert.Equal(t, 3, s.Applied)

	content, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "yields {{const:topology.chi_eff}} from the torsion count", string(content))
}

func TestReconcileGlobsDryRun(t *testing.T) {
	eng := newTestEngine(t, WithDryRun(true))

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	original := "yields 144 from the torsion count"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	batch, err := eng.ReconcileGlobs(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Report.Summary.Proposed)
	assert.Equal(t, 0, batch.Report.Summary.Applied)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))

	backups, err := filepath.Glob(path + ".*.bak")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestReconcileGlobsCanceledContext(t *testing.T) {
	eng := newTestEngine(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.md"), []byte("yields 144 here"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.ReconcileGlobs(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatchRescansOnChange(t *testing.T) {
	eng := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	require.NoError(t, os.WriteFile(path, []byte("yields 144 from the torsion count"), 0o644))

	events := make(chan Result, 16)
	eng.OnDocumentReconciled(func(res Result) { events <- res })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- eng.Watch(ctx, dir) }()

	select {
	case res := <-events:
		assert.Equal(t, path, res.DocumentID)
		assert.False(t, res.Applied, "watch never writes")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial pass")
	}

	require.NoError(t, os.WriteFile(path, []byte("measures 137.035999 precisely"), 0o644))

	select {
	case res := <-events:
		assert.Equal(t, path, res.DocumentID)
		require.NotEmpty(t, res.Plan.Edits)
		assert.Equal(t, "{{const:couplings.alpha_inv}}", res.Plan.Edits[0].Replacement)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the rescan")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancellation")
	}
}
