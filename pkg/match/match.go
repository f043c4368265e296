// Package match runs candidate tokens against the registry index through
// an ordered list of matching tiers. Higher tiers claim a token before
// lower tiers see it, every tier's output is deterministic, and ties
// within a tier are kept side by side rather than resolved.
package match

import (
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Tier names a matching level. The values double as the match_type field
// of audit records.
type Tier string

// Matching tiers, strongest first.
const (
	TierExact      Tier = "exact"
	TierScientific Tier = "scientific"
	TierRounded    Tier = "rounded"
	TierMagnitude  Tier = "order_of_magnitude"
)

// Tolerances bundles the numeric slack each tier works with.
type Tolerances struct {
	Relative  float64 `json:"relative" yaml:"relative"`
	Absolute  float64 `json:"absolute" yaml:"absolute"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
}

// DefaultTolerances returns the stock tolerances. They are defaults, not
// calibrated truths; callers with observed false-positive rates should
// override them.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Relative:  constants.RelativeTolerance,
		Absolute:  constants.AbsoluteTolerance,
		Magnitude: constants.MagnitudeTolerance,
	}
}

// Candidate is one registry entry a token may refer to.
type Candidate struct {
	Path       registry.Path `json:"path" yaml:"path"`
	Value      float64       `json:"value" yaml:"value"`
	Tier       Tier          `json:"tier" yaml:"tier"`
	Confidence float64       `json:"confidence" yaml:"confidence"`
	NearMiss   bool          `json:"near_miss,omitempty" yaml:"near_miss,omitempty"`
}

// Match is the outcome of running one token through the tiers.
// Candidates holds the winning tier's entries in lexical path order;
// NearMisses holds lower-tier entries recorded for audit transparency
// when near-miss capture is enabled.
type Match struct {
	Token      document.Token `json:"token" yaml:"token"`
	Tier       Tier           `json:"tier,omitempty" yaml:"tier,omitempty"`
	Candidates []Candidate    `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	NearMisses []Candidate    `json:"near_misses,omitempty" yaml:"near_misses,omitempty"`
}

// Matched reports whether any tier claimed the token.
func (m Match) Matched() bool {
	return len(m.Candidates) > 0
}

// Ambiguous reports whether the winning tier holds more than one entry.
func (m Match) Ambiguous() bool {
	return len(m.Candidates) > 1
}

// Best returns the first candidate of the winning tier, which by
// construction is the lexically first path at the highest confidence.
func (m Match) Best() (Candidate, bool) {
	if len(m.Candidates) == 0 {
		return Candidate{}, false
	}
	return m.Candidates[0], true
}

// AtOrAbove returns every recorded candidate, near misses included, whose
// confidence meets the threshold. Order is winning tier first, then near
// misses in tier order.
func (m Match) AtOrAbove(threshold float64) []Candidate {
	var out []Candidate
	for _, c := range m.Candidates {
		if c.Confidence >= threshold {
			out = append(out, c)
		}
	}
	for _, c := range m.NearMisses {
		if c.Confidence >= threshold {
			out = append(out, c)
		}
	}
	return out
}
