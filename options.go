package constable

import (
	"strings"

	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/match"
	"github.com/axicon-labs/constable/pkg/registry"
)

// options configures an Engine.
type options struct {
	registry     *registry.Registry
	registryFile string

	tolerances match.Tolerances
	nearMisses bool

	threshold             float64
	requireUnique         bool
	smallIntegerThreshold float64
	contextRadius         int
	template              string

	markup    document.Markup
	dryRun    bool
	backupDir string
	workers   int
}

func defaultOptions() *options {
	return &options{
		tolerances:            match.DefaultTolerances(),
		threshold:             constants.DefaultThreshold,
		smallIntegerThreshold: constants.SmallIntegerThreshold,
		contextRadius:         constants.ContextRadius,
		template:              constants.DefaultReferenceTemplate,
		workers:               constants.DefaultWorkers,
	}
}

// Option is a function that configures an Engine.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// loadRegistry resolves the configured registry source. Exactly one of
// WithRegistry and WithRegistryFile must have been given.
func (o *options) loadRegistry() (*registry.Registry, error) {
	switch {
	case o.registry != nil && o.registryFile != "":
		return nil, errors.NewValidationError("registry", o.registryFile, "registry and registry file are mutually exclusive")
	case o.registry != nil:
		return o.registry, nil
	case o.registryFile != "":
		return registry.Load(o.registryFile)
	default:
		return nil, errors.NewConfigError("registry", "a registry is required", nil)
	}
}

// WithRegistry sets an already parsed registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.NewValidationError("registry", nil, "cannot be nil")
		}
		o.registry = reg
		return nil
	}
}

// WithRegistryFile sets the YAML registry file to load at New.
func WithRegistryFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewValidationError("registryFile", path, "cannot be empty")
		}
		o.registryFile = path
		return nil
	}
}

// WithTolerances sets the numeric comparison tolerances for matching.
func WithTolerances(tol match.Tolerances) Option {
	return func(o *options) error {
		if tol.Relative < 0 || tol.Absolute < 0 {
			return errors.NewValidationError("tolerances", tol, "tolerances cannot be negative")
		}
		if tol.Magnitude <= 0 {
			return errors.NewValidationError("tolerances", tol, "magnitude tolerance must be positive")
		}
		o.tolerances = tol
		return nil
	}
}

// WithThreshold sets the minimum confidence a match needs before its
// edit is planned.
func WithThreshold(threshold float64) Option {
	return func(o *options) error {
		if threshold < 0 || threshold > 1 {
			return errors.NewValidationError("threshold", threshold, "must be between 0 and 1")
		}
		o.threshold = threshold
		return nil
	}
}

// WithRequireUnique requires exactly one qualifying candidate before an
// edit is planned, instead of a unique top-confidence candidate.
func WithRequireUnique(enabled bool) Option {
	return func(o *options) error {
		o.requireUnique = enabled
		return nil
	}
}

// WithSmallIntegerThreshold sets the absolute value below which bare
// integers are excluded as prose counts.
func WithSmallIntegerThreshold(threshold float64) Option {
	return func(o *options) error {
		if threshold < 0 {
			return errors.NewValidationError("smallIntegerThreshold", threshold, "cannot be negative")
		}
		o.smallIntegerThreshold = threshold
		return nil
	}
}

// WithContextRadius sets how many bytes of surrounding text are captured
// on each side of every token, for both exclusion rules and reports.
func WithContextRadius(radius int) Option {
	return func(o *options) error {
		if radius < 0 {
			return errors.NewValidationError("contextRadius", radius, "cannot be negative")
		}
		o.contextRadius = radius
		return nil
	}
}

// WithReferenceTemplate sets the replacement construct. The template
// must contain exactly one %s verb, which receives the registry path.
func WithReferenceTemplate(template string) Option {
	return func(o *options) error {
		if strings.Count(template, "%s") != 1 {
			return errors.NewValidationError("referenceTemplate", template, "must contain exactly one %s")
		}
		o.template = template
		return nil
	}
}

// WithMarkup sets the markup analyzer used to classify non-prose
// regions and existing references.
func WithMarkup(markup document.Markup) Option {
	return func(o *options) error {
		if markup == nil {
			return errors.NewValidationError("markup", nil, "cannot be nil")
		}
		o.markup = markup
		return nil
	}
}

// WithDryRun plans edits without ever writing documents.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithBackupDir redirects pre-edit backups into the given directory
// instead of writing them next to each document.
func WithBackupDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("backupDir", dir, "cannot be empty")
		}
		o.backupDir = dir
		return nil
	}
}

// WithNearMisses records lower-tier candidates alongside each winning
// match.
func WithNearMisses(enabled bool) Option {
	return func(o *options) error {
		o.nearMisses = enabled
		return nil
	}
}

// WithWorkers sets how many documents a batch reconciles concurrently.
func WithWorkers(workers int) Option {
	return func(o *options) error {
		if workers < 1 || workers > constants.MaxWorkers {
			return errors.NewValidationError("workers", workers, "must be between 1 and 32")
		}
		o.workers = workers
		return nil
	}
}
