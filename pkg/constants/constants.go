// Package constants provides shared constants used throughout the constable codebase.
// This includes matching tolerances, confidence levels, scanner limits, file
// permissions, and other configuration values that should be consistent across
// the application.
package constants

import "time"

// Tolerance constants define the numeric comparison windows used by the match
// tiers. All of them are overridable per engine; these are the defaults.
const (
	// RelativeTolerance is the default relative tolerance for exact matching
	RelativeTolerance = 1e-6

	// AbsoluteTolerance is the default absolute tolerance for exact matching
	// of values near zero, where relative comparison degenerates
	AbsoluteTolerance = 1e-12

	// MagnitudeTolerance is the default relative deviation allowed for an
	// order-of-magnitude match (10%)
	MagnitudeTolerance = 0.10
)

// Confidence constants define the fixed confidence assigned to each match tier.
// Confidences are compared, never summed, so only their ordering matters.
const (
	// ExactConfidence is assigned to matches within strict numeric tolerance
	ExactConfidence = 1.0

	// ScientificConfidence is assigned to scientific-notation matches
	ScientificConfidence = 0.95

	// RoundedConfidence is assigned to matches at the token's displayed precision
	RoundedConfidence = 0.90

	// MagnitudeConfidence is assigned to order-of-magnitude matches
	MagnitudeConfidence = 0.75

	// DefaultThreshold is the minimum confidence required before a
	// replacement is planned
	DefaultThreshold = 0.85
)

// Scanner constants define limits and windows for document scanning
const (
	// ContextRadius is the number of bytes captured on each side of a token
	// for exclusion-rule evaluation and audit context
	ContextRadius = 40

	// MaxTokensPerDocument is the maximum number of numeric tokens allowed
	// in a single document before scanning aborts
	MaxTokensPerDocument = 10000

	// MaxDocumentSize is the maximum document size in bytes (8 MB)
	MaxDocumentSize = 8 * 1024 * 1024

	// SmallIntegerThreshold is the default absolute value below which bare
	// integers are excluded as prose counts
	SmallIntegerThreshold = 10
)

// Rounding constants bound the significant-digit window honored by the
// registry index for rounded matching
const (
	// MinRoundedDigits is the fewest significant digits a rounded match considers
	MinRoundedDigits = 2

	// MaxRoundedDigits is the most significant digits a rounded match considers
	MaxRoundedDigits = 4
)

// Year constants bound the calendar-year exclusion window
const (
	// MinYear is the lower bound of the year exclusion range
	MinYear = 1900

	// MaxYear is the upper bound of the year exclusion range
	MaxYear = 2100
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Concurrency constants define worker limits for batch processing
const (
	// DefaultWorkers is the default number of documents processed concurrently
	DefaultWorkers = 4

	// MaxWorkers is the maximum number of concurrent document workers
	MaxWorkers = 32
)

// Timeout constants define durations for long-running operations
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// WatchDebounce is the delay after a filesystem event before a watched
	// document is rescanned, coalescing editor write bursts
	WatchDebounce = 500 * time.Millisecond
)

// Template constants define replacement construct defaults
const (
	// DefaultReferenceTemplate is the construct substituted for a matched
	// literal; the verb placeholder receives the registry path
	DefaultReferenceTemplate = "{{const:%s}}"
)
