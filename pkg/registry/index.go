package registry

import (
	"math"
	"sort"

	"github.com/axicon-labs/constable/internal/numerics"
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/errors"
)

// Index is the immutable lookup structure built once per run from a parsed
// Registry. It supports path lookup, tolerance-based exact lookup,
// significant-digit rounded lookup, and order-of-magnitude bucket lookup.
// An Index is safe for concurrent readers; it is never mutated after
// construction.
type Index struct {
	source     string
	entries    []Entry // sorted by path
	byPath     map[Path]int
	byExponent map[int][]int // decimal exponent -> entry indices
	byRounded  map[roundedKey][]int
	zeros      []int // entries whose value is exactly zero
	duplicates []Duplicate
	skipped    []Skipped
}

type roundedKey struct {
	digits int
	key    string
}

// Duplicate records a value shared by two or more registry paths. Both
// entries stay in the index; the collision is surfaced so ambiguity can be
// reported rather than silently resolved.
type Duplicate struct {
	Value float64 `json:"value" yaml:"value"`
	Paths []Path  `json:"paths" yaml:"paths"`
}

// NewIndex builds an Index from a parsed registry. An empty registry is an
// error: a run with nothing to match against is a configuration mistake,
// not a valid no-op.
func NewIndex(reg *Registry) (*Index, error) {
	if reg == nil || len(reg.Entries) == 0 {
		return nil, errors.ErrEmptyRegistry
	}

	idx := &Index{
		source:     reg.Source,
		entries:    make([]Entry, len(reg.Entries)),
		byPath:     make(map[Path]int, len(reg.Entries)),
		byExponent: make(map[int][]int),
		byRounded:  make(map[roundedKey][]int),
		skipped:    append([]Skipped(nil), reg.Skipped...),
	}
	copy(idx.entries, reg.Entries)
	sort.Slice(idx.entries, func(i, j int) bool {
		return idx.entries[i].Path < idx.entries[j].Path
	})

	exactGroups := make(map[string][]Path)
	for i := range idx.entries {
		e := idx.entries[i]
		if _, dup := idx.byPath[e.Path]; dup {
			return nil, errors.NewValidationError("path", string(e.Path), "duplicate registry path")
		}
		idx.byPath[e.Path] = i

		if exp, ok := numerics.DecimalExponent(e.Value); ok {
			idx.byExponent[exp] = append(idx.byExponent[exp], i)
		} else if e.Value == 0 {
			idx.zeros = append(idx.zeros, i)
		}

		for d := constants.MinRoundedDigits; d <= constants.MaxRoundedDigits; d++ {
			k := roundedKey{digits: d, key: numerics.RoundedKey(e.Value, d)}
			idx.byRounded[k] = append(idx.byRounded[k], i)
		}

		key := numerics.ExactKey(e.Value)
		exactGroups[key] = append(exactGroups[key], e.Path)
	}

	for _, paths := range exactGroups {
		if len(paths) < 2 {
			continue
		}
		value := idx.entries[idx.byPath[paths[0]]].Value
		idx.duplicates = append(idx.duplicates, Duplicate{Value: value, Paths: paths})
	}
	sort.Slice(idx.duplicates, func(i, j int) bool {
		return idx.duplicates[i].Value < idx.duplicates[j].Value
	})

	return idx, nil
}

// Len returns the number of usable entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Source returns the origin of the indexed registry.
func (idx *Index) Source() string {
	return idx.source
}

// Paths returns all entry paths in lexical order.
func (idx *Index) Paths() []Path {
	out := make([]Path, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = e.Path
	}
	return out
}

// Entries returns a copy of all entries in lexical path order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Skipped returns the entries that were dropped during load.
func (idx *Index) Skipped() []Skipped {
	out := make([]Skipped, len(idx.skipped))
	copy(out, idx.skipped)
	return out
}

// Duplicates returns the recorded value collisions, ordered by value.
func (idx *Index) Duplicates() []Duplicate {
	out := make([]Duplicate, len(idx.duplicates))
	copy(out, idx.duplicates)
	return out
}

// ByPath returns the entry with the given path.
func (idx *Index) ByPath(p Path) (Entry, error) {
	i, ok := idx.byPath[p]
	if !ok {
		return Entry{}, errors.NewNotFoundError("registry entry", string(p))
	}
	return idx.entries[i], nil
}

// Exact returns all entries equal to v within the combined relative and
// absolute tolerance, in lexical path order. Neighboring exponent buckets
// are probed so values straddling a power of ten are still found.
func (idx *Index) Exact(v, relTol, absTol float64) []Entry {
	if !numerics.IsFinite(v) {
		return nil
	}

	var candidates []int
	if v == 0 {
		candidates = append(candidates, idx.zeros...)
		// Near-zero entries within the absolute tolerance also qualify.
		if absTolExp, ok := numerics.DecimalExponent(absTol); ok {
			for exp, ids := range idx.byExponent {
				if exp <= absTolExp {
					candidates = append(candidates, ids...)
				}
			}
		}
	} else {
		exp, _ := numerics.DecimalExponent(v)
		for _, e := range [3]int{exp - 1, exp, exp + 1} {
			candidates = append(candidates, idx.byExponent[e]...)
		}
		if math.Abs(v) <= absTol {
			candidates = append(candidates, idx.zeros...)
		}
	}

	var out []Entry
	for _, i := range candidates {
		if numerics.WithinTolerance(v, idx.entries[i].Value, relTol, absTol) {
			out = append(out, idx.entries[i])
		}
	}
	sortByPath(out)
	return out
}

// Rounded returns all entries that agree with v when both are rounded to
// the given number of significant digits. The digit count is clamped to
// the window the index was built for.
func (idx *Index) Rounded(v float64, digits int) []Entry {
	if !numerics.IsFinite(v) {
		return nil
	}
	if digits < constants.MinRoundedDigits {
		digits = constants.MinRoundedDigits
	}
	if digits > constants.MaxRoundedDigits {
		digits = constants.MaxRoundedDigits
	}

	k := roundedKey{digits: digits, key: numerics.RoundedKey(v, digits)}
	ids := idx.byRounded[k]
	out := make([]Entry, 0, len(ids))
	for _, i := range ids {
		out = append(out, idx.entries[i])
	}
	return out
}

// SameExponent returns all entries sharing v's base-10 exponent, in
// lexical path order. Zero, NaN, and infinities share no exponent with
// anything.
func (idx *Index) SameExponent(v float64) []Entry {
	exp, ok := numerics.DecimalExponent(v)
	if !ok {
		return nil
	}

	ids := idx.byExponent[exp]
	out := make([]Entry, 0, len(ids))
	for _, i := range ids {
		out = append(out, idx.entries[i])
	}
	return out
}

// Magnitude returns all entries sharing v's base-10 exponent whose relative
// difference from v is within tol, in lexical path order. Zero has no
// defined magnitude and matches nothing here.
func (idx *Index) Magnitude(v, tol float64) []Entry {
	exp, ok := numerics.DecimalExponent(v)
	if !ok {
		return nil
	}

	var out []Entry
	for _, i := range idx.byExponent[exp] {
		if numerics.RelativeDiff(v, idx.entries[i].Value) <= tol {
			out = append(out, idx.entries[i])
		}
	}
	return out
}

func sortByPath(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}
