// Package errors provides custom error types for the constable system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the constable system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyRegistry indicates that a registry contained no usable entries
	ErrEmptyRegistry = errors.New("empty registry")

	// ErrAmbiguousMatch indicates that a value matched more than one
	// registry entry at the same confidence
	ErrAmbiguousMatch = errors.New("ambiguous match")

	// ErrNoMatch indicates that a value matched no registry entry
	ErrNoMatch = errors.New("no match")

	// ErrOverlappingEdits indicates that a plan contained edits with
	// intersecting spans
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrReadOnly indicates an attempt to modify documents through a
	// dry-run engine
	ErrReadOnly = errors.New("read only")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// AmbiguityError represents a value that resolved to multiple registry
// entries at equal confidence. Candidates are sorted registry paths.
type AmbiguityError struct {
	Value      float64
	Candidates []string
}

// Error implements the error interface
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("value %v matches %d registry entries: %v", e.Value, len(e.Candidates), e.Candidates)
}

// Is implements errors.Is support
func (e *AmbiguityError) Is(target error) bool {
	return target == ErrAmbiguousMatch
}

// NewAmbiguityError creates a new AmbiguityError
func NewAmbiguityError(value float64, candidates []string) *AmbiguityError {
	return &AmbiguityError{Value: value, Candidates: candidates}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", etc.
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "remove"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// DocumentError represents a failure while processing a single document.
// A DocumentError is fatal for its document but never for the batch.
type DocumentError struct {
	DocumentID string
	Stage      string // "scan", "classify", "match", "plan", "apply"
	Err        error
}

// Error implements the error interface
func (e *DocumentError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("document %s failed during %s: %v", e.DocumentID, e.Stage, e.Err)
	}
	return fmt.Sprintf("document %s failed: %v", e.DocumentID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError
func NewDocumentError(documentID, stage string, err error) *DocumentError {
	return &DocumentError{
		DocumentID: documentID,
		Stage:      stage,
		Err:        err,
	}
}

// ApplyError represents a failure during the transactional write of a
// transformed document. Backup reports the backup file if one was written
// before the failure; the original document is never modified on error.
type ApplyError struct {
	Path   string
	Stage  string // "backup", "stage", "rename", "verify"
	Backup string
	Err    error
}

// Error implements the error interface
func (e *ApplyError) Error() string {
	if e.Backup != "" {
		return fmt.Sprintf("apply failed for %s during %s (backup retained at %s): %v", e.Path, e.Stage, e.Backup, e.Err)
	}
	return fmt.Sprintf("apply failed for %s during %s: %v", e.Path, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// NewApplyError creates a new ApplyError
func NewApplyError(path, stage, backup string, err error) *ApplyError {
	return &ApplyError{
		Path:   path,
		Stage:  stage,
		Backup: backup,
		Err:    err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAmbiguous checks if an error is an ambiguous match error
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapDocument wraps an error as a DocumentError
func WrapDocument(documentID, stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewDocumentError(documentID, stage, err)
}

// WrapApply wraps an error as an ApplyError
func WrapApply(path, stage, backup string, err error) error {
	if err == nil {
		return nil
	}
	return NewApplyError(path, stage, backup, err)
}
