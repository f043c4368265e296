// Package document defines documents, spans, numeric tokens, and the
// scanner that extracts every maximal numeric literal from prose.
package document

import (
	"os"

	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/errors"
)

// Document is a unit of prose under reconciliation. Content is immutable;
// transformed output is produced as a new string by the applier.
type Document struct {
	ID      string // stable identifier, the file path for file-backed documents
	Path    string // filesystem origin, empty for in-memory documents
	Content string
}

// New creates an in-memory document.
func New(id, content string) Document {
	return Document{ID: id, Content: content}
}

// NewFromFile reads a document from disk. A read failure is fatal for this
// document only; callers processing a batch continue with the rest.
func NewFromFile(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, errors.WrapIO("stat", path, err)
	}
	if info.Size() > constants.MaxDocumentSize {
		return Document{}, errors.NewValidationError("document", path, "exceeds maximum document size")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.WrapIO("read", path, err)
	}

	return Document{ID: path, Path: path, Content: string(data)}, nil
}
