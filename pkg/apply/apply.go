// Package apply renders planned edits into transformed content and
// writes it back to disk transactionally: timestamped backup first, then
// a temp file in the target directory, then an atomic rename. A failure
// at any stage leaves the original file untouched, and any backup
// already written is retained for manual recovery.
package apply

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/utc"

	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/plan"
)

// backupStampLayout names backups down to the second; a rerun within the
// same second overwrites its own backup of the identical original.
const backupStampLayout = "20060102T150405Z"

// Result reports one completed application.
type Result struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Path       string `json:"path" yaml:"path"`
	BackupPath string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Applied    int    `json:"applied" yaml:"applied"`
	Content    string `json:"-" yaml:"-"`
}

// Applier writes transformed documents back to their files.
type Applier struct {
	backupDir string
	now       func() utc.Time
}

// Option configures an Applier.
type Option func(*Applier)

// WithBackupDir redirects backups into one directory instead of writing
// them next to each original.
func WithBackupDir(dir string) Option {
	return func(a *Applier) {
		a.backupDir = dir
	}
}

// New creates an Applier.
func New(opts ...Option) *Applier {
	a := &Applier{now: utc.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Render splices the edits into the content and returns the transformed
// text. Every span is verified against the edit's recorded original text
// before any splicing, so a stale plan fails cleanly instead of mangling
// the document. Text outside the edit spans is preserved byte for byte.
func Render(content string, edits []plan.Edit) (string, error) {
	ordered := make([]plan.Edit, len(edits))
	copy(ordered, edits)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Span.Start < ordered[j].Span.Start
	})

	for i, e := range ordered {
		if e.Span.Start < 0 || e.Span.End > len(content) || e.Span.Start > e.Span.End {
			return "", errors.NewValidationError("edit", e.Original, "span out of document bounds")
		}
		if i > 0 && ordered[i-1].Span.End > e.Span.Start {
			return "", errors.ErrOverlappingEdits
		}
		if content[e.Span.Start:e.Span.End] != e.Original {
			return "", errors.NewValidationError("edit", e.Original, "document text at span has changed")
		}
	}

	var b strings.Builder
	prev := 0
	for _, e := range ordered {
		b.WriteString(content[prev:e.Span.Start])
		b.WriteString(e.Replacement)
		prev = e.Span.End
	}
	b.WriteString(content[prev:])
	return b.String(), nil
}

// Apply writes the edited document back to its path. The sequence is
// all-or-nothing per document: verify, back up, stage to a temp file,
// rename over the original. With no edits the file is left alone.
func (a *Applier) Apply(doc document.Document, edits []plan.Edit) (*Result, error) {
	res := &Result{DocumentID: doc.ID, Path: doc.Path, Content: doc.Content}
	if len(edits) == 0 {
		return res, nil
	}
	if doc.Path == "" {
		return nil, errors.NewValidationError("document", doc.ID, "no filesystem path to apply edits to")
	}

	rendered, err := Render(doc.Content, edits)
	if err != nil {
		return nil, errors.WrapApply(doc.Path, "verify", "", err)
	}

	info, err := os.Stat(doc.Path)
	if err != nil {
		return nil, errors.WrapApply(doc.Path, "verify", "", err)
	}
	current, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, errors.WrapApply(doc.Path, "verify", "", err)
	}
	if string(current) != doc.Content {
		return nil, errors.WrapApply(doc.Path, "verify", "",
			errors.NewValidationError("document", doc.ID, "file changed since it was read"))
	}

	backupPath, err := a.writeBackup(doc.Path, current, info.Mode().Perm())
	if err != nil {
		return nil, errors.WrapApply(doc.Path, "backup", "", err)
	}
	res.BackupPath = backupPath

	tempFile, err := os.CreateTemp(filepath.Dir(doc.Path), filepath.Base(doc.Path)+".tmp-*")
	if err != nil {
		return nil, errors.WrapApply(doc.Path, "stage", backupPath, err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.WriteString(rendered); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return nil, errors.WrapApply(doc.Path, "stage", backupPath, err)
	}
	if err := tempFile.Chmod(info.Mode().Perm()); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return nil, errors.WrapApply(doc.Path, "stage", backupPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return nil, errors.WrapApply(doc.Path, "stage", backupPath, err)
	}

	if err := os.Rename(tempPath, doc.Path); err != nil {
		_ = os.Remove(tempPath)
		return nil, errors.WrapApply(doc.Path, "rename", backupPath, err)
	}

	res.Applied = len(edits)
	res.Content = rendered
	return res, nil
}

// writeBackup copies the original bytes aside before any mutation.
func (a *Applier) writeBackup(path string, content []byte, perm os.FileMode) (string, error) {
	stamp := a.now().Format(backupStampLayout)
	name := filepath.Base(path) + "." + stamp + ".bak"

	backupPath := path + "." + stamp + ".bak"
	if a.backupDir != "" {
		if err := os.MkdirAll(a.backupDir, constants.DirPermissions); err != nil {
			return "", err
		}
		backupPath = filepath.Join(a.backupDir, name)
	}

	if err := os.WriteFile(backupPath, content, perm); err != nil {
		return "", err
	}
	return backupPath, nil
}
