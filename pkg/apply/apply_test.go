package apply_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axicon-labs/constable/pkg/apply"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/plan"
)

func editFor(t *testing.T, content, original, replacement string) plan.Edit {
	t.Helper()
	idx := strings.Index(content, original)
	require.GreaterOrEqual(t, idx, 0, "original %q not in content", original)

	return plan.Edit{
		DocumentID:  "test.md",
		Span:        document.Span{Start: idx, End: idx + len(original)},
		Original:    original,
		Replacement: replacement,
		Path:        "topology.chi_eff",
		Tier:        match.TierExact,
		Confidence:  1.0,
	}
}

func TestRender(t *testing.T) {
	content := "yields 144 from chi_eff, giving 3 generations"
	edits := []plan.Edit{
		editFor(t, content, "144", "{{const:topology.chi_eff}}"),
		editFor(t, content, "3", "{{const:topology.n_gen}}"),
	}

	out, err := apply.Render(content, edits)
	require.NoError(t, err)

	assert.Equal(t, "yields {{const:topology.chi_eff}} from chi_eff, giving {{const:topology.n_gen}} generations", out)
}

func TestRenderPreservesSurroundingBytes(t *testing.T) {
	content := "a 144 b 3.0 c"
	edits := []plan.Edit{
		editFor(t, content, "144", "{{const:x}}"),
		editFor(t, content, "3.0", "{{const:y}}"),
	}

	out, err := apply.Render(content, edits)
	require.NoError(t, err)

	removed := 0
	added := 0
	for _, e := range edits {
		removed += e.Span.Len()
		added += len(e.Replacement)
	}
	assert.Len(t, out, len(content)-removed+added)
	assert.True(t, strings.HasPrefix(out, "a "))
	assert.True(t, strings.HasSuffix(out, " c"))
	assert.Contains(t, out, " b ")
}

func TestRenderAcceptsUnsortedEdits(t *testing.T) {
	content := "first 144 then 137"
	edits := []plan.Edit{
		editFor(t, content, "137", "B"),
		editFor(t, content, "144", "A"),
	}

	out, err := apply.Render(content, edits)
	require.NoError(t, err)
	assert.Equal(t, "first A then B", out)
}

func TestRenderNoEdits(t *testing.T) {
	out, err := apply.Render("untouched", nil)
	require.NoError(t, err)
	assert.Equal(t, "untouched", out)
}

func TestRenderErrors(t *testing.T) {
	content := "value 144 here"

	t.Run("text mismatch", func(t *testing.T) {
		e := editFor(t, content, "144", "X")
		e.Original = "145"
		_, err := apply.Render(content, []plan.Edit{e})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("overlap", func(t *testing.T) {
		a := editFor(t, content, "value 144", "X")
		b := editFor(t, content, "144 here", "Y")
		_, err := apply.Render(content, []plan.Edit{a, b})
		assert.ErrorIs(t, err, errors.ErrOverlappingEdits)
	})

	t.Run("span out of bounds", func(t *testing.T) {
		e := editFor(t, content, "144", "X")
		e.Span.End = len(content) + 5
		_, err := apply.Render(content, []plan.Edit{e})
		assert.True(t, errors.IsValidationError(err))
	})
}

func writeDoc(t *testing.T, content string) document.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paper.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := document.NewFromFile(path)
	require.NoError(t, err)
	return doc
}

func backupsFor(t *testing.T, path string) []string {
	t.Helper()
	matches, err := filepath.Glob(path + ".*.bak")
	require.NoError(t, err)
	return matches
}

func TestApply(t *testing.T) {
	doc := writeDoc(t, "yields 144 here")
	edits := []plan.Edit{editFor(t, doc.Content, "144", "{{const:topology.chi_eff}}")}

	res, err := apply.New().Apply(doc, edits)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, "yields {{const:topology.chi_eff}} here", res.Content)

	written, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Content, string(written))

	require.NotEmpty(t, res.BackupPath)
	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "yields 144 here", string(backup))
	assert.Contains(t, backupsFor(t, doc.Path), res.BackupPath)

	info, err := os.Stat(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestApplyNoEdits(t *testing.T) {
	doc := writeDoc(t, "nothing numeric to do")

	res, err := apply.New().Apply(doc, nil)
	require.NoError(t, err)

	assert.Zero(t, res.Applied)
	assert.Empty(t, res.BackupPath)
	assert.Empty(t, backupsFor(t, doc.Path))

	written, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, string(written))
}

func TestApplyRequiresPath(t *testing.T) {
	doc := document.New("memo", "yields 144 here")
	edits := []plan.Edit{editFor(t, doc.Content, "144", "X")}

	_, err := apply.New().Apply(doc, edits)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestApplyDetectsConcurrentChange(t *testing.T) {
	doc := writeDoc(t, "yields 144 here")
	edits := []plan.Edit{editFor(t, doc.Content, "144", "X")}

	require.NoError(t, os.WriteFile(doc.Path, []byte("yields 145 here"), 0o644))

	_, err := apply.New().Apply(doc, edits)
	require.Error(t, err)

	var applyErr *errors.ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, "verify", applyErr.Stage)
	assert.Empty(t, applyErr.Backup)
	assert.Empty(t, backupsFor(t, doc.Path))

	written, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "yields 145 here", string(written))
}

func TestApplyStaleSpanLeavesFileUntouched(t *testing.T) {
	doc := writeDoc(t, "yields 144 here")
	stale := editFor(t, doc.Content, "144", "X")
	stale.Original = "999"

	_, err := apply.New().Apply(doc, []plan.Edit{stale})
	require.Error(t, err)

	var applyErr *errors.ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, "verify", applyErr.Stage)

	written, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "yields 144 here", string(written))
}

func TestApplyBackupDir(t *testing.T) {
	doc := writeDoc(t, "yields 144 here")
	backupDir := filepath.Join(t.TempDir(), "backups")
	edits := []plan.Edit{editFor(t, doc.Content, "144", "X")}

	res, err := apply.New(apply.WithBackupDir(backupDir)).Apply(doc, edits)
	require.NoError(t, err)

	assert.Equal(t, backupDir, filepath.Dir(res.BackupPath))
	assert.True(t, strings.HasPrefix(filepath.Base(res.BackupPath), "paper.md."))
	assert.True(t, strings.HasSuffix(res.BackupPath, ".bak"))

	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "yields 144 here", string(backup))

	assert.Empty(t, backupsFor(t, doc.Path), "no backup should sit next to the original")
}
