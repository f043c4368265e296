// Package registry loads the canonical constant registry and builds the
// immutable value index the rest of the pipeline matches against.
//
// A registry file is a nested YAML mapping from category to parameter to
// either a bare numeric value or a small mapping with value plus optional
// metadata:
//
//	topology:
//	  n_gen: 3.0
//	  chi_eff: {value: 144.0, display: "144"}
//	couplings:
//	  alpha_inv: {value: 137.035999, uncertainty: 2.1e-8}
//
// Nesting depth is arbitrary; the flattened dotted path (topology.chi_eff)
// is the entry's stable identifier.
package registry

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/axicon-labs/constable/internal/numerics"
	"github.com/axicon-labs/constable/internal/utils/ptr"
	"github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/logging"
)

// Path is the dotted identifier of a registry entry (e.g. "topology.chi_eff").
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Entry represents a single canonical constant.
type Entry struct {
	Path        Path     `json:"path" yaml:"path"`
	Value       float64  `json:"value" yaml:"value"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`               // Display unit, informational only
	Uncertainty *float64 `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"` // Published uncertainty, informational only
	Display     string   `json:"display,omitempty" yaml:"display,omitempty"`         // Preferred rendering of the value
	Source      string   `json:"-" yaml:"-"`                                         // File the entry was loaded from
}

// Skipped records a registry entry that could not be used, with the reason.
// Skipped entries are recoverable: they are logged and reported but never
// fail the load.
type Skipped struct {
	Path   Path   `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Registry is the parsed, flattened set of entries prior to indexing.
type Registry struct {
	Entries []Entry
	Skipped []Skipped
	Source  string
}

// Load reads and parses a registry file from disk. A read failure or a
// malformed top-level structure is fatal for the run.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse parses registry YAML. source names the origin for error messages
// and entry provenance.
func Parse(data []byte, source string) (*Registry, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}

	reg := &Registry{Source: source}
	flatten("", root, reg)

	sort.Slice(reg.Entries, func(i, j int) bool {
		return reg.Entries[i].Path < reg.Entries[j].Path
	})
	sort.Slice(reg.Skipped, func(i, j int) bool {
		return reg.Skipped[i].Path < reg.Skipped[j].Path
	})

	for _, s := range reg.Skipped {
		logging.Warn().
			Str("registry", source).
			Str("path", string(s.Path)).
			Str("reason", s.Reason).
			Msg("Skipping registry entry")
	}

	return reg, nil
}

// flatten walks the nested mapping depth-first, joining keys with dots.
// A node is a leaf when it is a scalar or a mapping that carries a "value"
// key; every other mapping is a category and is descended into.
func flatten(prefix string, node map[string]any, reg *Registry) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := node[key].(type) {
		case map[string]any:
			if _, ok := v["value"]; ok {
				addLeaf(Path(path), v, reg)
			} else {
				flatten(path, v, reg)
			}
		default:
			value, ok := toFloat(v)
			if !ok {
				reg.Skipped = append(reg.Skipped, Skipped{Path: Path(path), Reason: "non-numeric value"})
				continue
			}
			if !numerics.IsFinite(value) {
				reg.Skipped = append(reg.Skipped, Skipped{Path: Path(path), Reason: "value is not finite"})
				continue
			}
			reg.Entries = append(reg.Entries, Entry{Path: Path(path), Value: value, Source: reg.Source})
		}
	}
}

// addLeaf builds an Entry from an explicit {value, unit?, uncertainty?,
// display?} mapping.
func addLeaf(path Path, m map[string]any, reg *Registry) {
	value, ok := toFloat(m["value"])
	if !ok {
		reg.Skipped = append(reg.Skipped, Skipped{Path: path, Reason: "non-numeric value"})
		return
	}
	if !numerics.IsFinite(value) {
		reg.Skipped = append(reg.Skipped, Skipped{Path: path, Reason: "value is not finite"})
		return
	}

	entry := Entry{Path: path, Value: value, Source: reg.Source}

	if unit, ok := m["unit"].(string); ok {
		entry.Unit = unit
	}
	if display, ok := m["display"].(string); ok {
		entry.Display = display
	}
	if raw, ok := m["uncertainty"]; ok {
		if u, ok := toFloat(raw); ok && numerics.IsFinite(u) {
			entry.Uncertainty = ptr.To(u)
		}
	}

	reg.Entries = append(reg.Entries, entry)
}

// toFloat converts the scalar types the YAML decoder produces into float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
