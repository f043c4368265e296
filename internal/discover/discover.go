// Package discover expands paths and glob patterns into the concrete
// list of document files a reconciliation run will read. Patterns
// support doublestar globs, directories expand recursively to known
// document extensions, and exclude patterns prune the result.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/axicon-labs/constable/pkg/errors"
)

// defaultExtensions are the file extensions a directory expands to.
var defaultExtensions = []string{".md", ".markdown", ".txt", ".tex", ".rst"}

// defaultExcludes prune applier backups and repository metadata from
// every resolution.
var defaultExcludes = []string{"*.bak", ".git", "node_modules"}

// Discoverer resolves document paths. Exclude patterns without a path
// separator are matched against each path segment, so "*.bak" drops
// backup files anywhere in the tree; patterns with a separator are
// matched against the whole slash-separated path.
type Discoverer struct {
	extensions []string
	excludes   []string
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithExtensions replaces the extensions a directory expands to.
// Extensions are normalized to a leading dot and lower case.
func WithExtensions(exts ...string) Option {
	return func(d *Discoverer) {
		normalized := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		if len(normalized) > 0 {
			d.extensions = normalized
		}
	}
}

// WithExcludes adds exclude patterns on top of the defaults.
func WithExcludes(patterns ...string) Option {
	return func(d *Discoverer) {
		d.excludes = append(d.excludes, patterns...)
	}
}

// New returns a Discoverer with the default extensions and excludes.
func New(opts ...Option) *Discoverer {
	d := &Discoverer{
		extensions: append([]string(nil), defaultExtensions...),
		excludes:   append([]string(nil), defaultExcludes...),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve expands the given paths and patterns into a deduplicated,
// sorted list of document files. A literal file path is accepted as
// given, a directory expands recursively to the configured extensions,
// and a glob pattern expands through doublestar. A pattern that yields
// no documents is an error.
func (d *Discoverer) Resolve(patterns ...string) ([]string, error) {
	for _, pattern := range d.excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.NewValidationError("exclude", pattern, "invalid glob pattern")
		}
	}

	var files []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := d.resolvePattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			if d.excluded(path) {
				continue
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a path looks like a document this Discoverer
// would resolve: a configured extension and no exclude hit.
func (d *Discoverer) Matches(path string) bool {
	if d.excluded(path) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range d.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (d *Discoverer) resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, errors.WrapIO("stat", pattern, err)
		}
		if !info.IsDir() {
			// An explicitly named file is taken as given, whatever
			// its extension.
			return []string{pattern}, nil
		}
		files, err := d.resolveDir(pattern)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, errors.NewNotFoundError("documents", pattern)
		}
		return files, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.WrapValidation("pattern", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if info.IsDir() {
			expanded, err := d.resolveDir(match)
			if err != nil {
				return nil, err
			}
			files = append(files, expanded...)
			continue
		}
		files = append(files, match)
	}
	if len(files) == 0 {
		return nil, errors.NewNotFoundError("documents", pattern)
	}
	return files, nil
}

func (d *Discoverer) resolveDir(dir string) ([]string, error) {
	var files []string
	for _, ext := range d.extensions {
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*"+ext), doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.WrapIO("glob", dir, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func (d *Discoverer) excluded(path string) bool {
	slash := filepath.ToSlash(path)
	segments := strings.Split(slash, "/")
	for _, pattern := range d.excludes {
		if strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, slash); err == nil && ok {
				return true
			}
			continue
		}
		for _, segment := range segments {
			if ok, err := doublestar.Match(pattern, segment); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
