package match

import (
	"github.com/axicon-labs/constable/internal/numerics"
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Strategy is one matching tier. Evaluate returns every qualifying entry
// in lexical path order, or nothing when the tier does not engage for the
// token. Strategies never depend on error recovery to decline: an
// unavailable tier simply returns no candidates.
type Strategy interface {
	Name() string
	Tier() Tier
	Confidence() float64
	Evaluate(tok document.Token, idx *registry.Index, tol Tolerances) []Candidate
}

// DefaultStrategies returns the standard tier order: exact, scientific,
// rounded, order of magnitude.
func DefaultStrategies() []Strategy {
	return []Strategy{
		exactStrategy{},
		scientificStrategy{},
		roundedStrategy{},
		magnitudeStrategy{},
	}
}

func toCandidates(entries []registry.Entry, tier Tier, confidence float64) []Candidate {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, Candidate{
			Path:       e.Path,
			Value:      e.Value,
			Tier:       tier,
			Confidence: confidence,
		})
	}
	return out
}

// exactStrategy matches values equal within the relative and absolute
// tolerances.
type exactStrategy struct{}

func (exactStrategy) Name() string        { return "exact" }
func (exactStrategy) Tier() Tier          { return TierExact }
func (exactStrategy) Confidence() float64 { return constants.ExactConfidence }

func (s exactStrategy) Evaluate(tok document.Token, idx *registry.Index, tol Tolerances) []Candidate {
	entries := idx.Exact(tok.Value, tol.Relative, tol.Absolute)
	return toCandidates(entries, s.Tier(), s.Confidence())
}

// scientificStrategy engages only for tokens written in exponent
// notation. An entry qualifies when it shares the token's normalized
// exponent and its mantissa, rounded to the precision the token actually
// displays, reproduces the token exactly.
type scientificStrategy struct{}

func (scientificStrategy) Name() string        { return "scientific" }
func (scientificStrategy) Tier() Tier          { return TierScientific }
func (scientificStrategy) Confidence() float64 { return constants.ScientificConfidence }

func (s scientificStrategy) Evaluate(tok document.Token, idx *registry.Index, tol Tolerances) []Candidate {
	if !tok.IsScientific() {
		return nil
	}
	digits := displayDigits(tok)
	key := numerics.RoundedKey(tok.Value, digits)

	var entries []registry.Entry
	for _, e := range idx.SameExponent(tok.Value) {
		if numerics.RoundedKey(e.Value, digits) == key {
			entries = append(entries, e)
		}
	}
	return toCandidates(entries, s.Tier(), s.Confidence())
}

// roundedStrategy matches when token and entry agree after both are
// rounded to the token's own displayed significant-digit count. Unlike
// the scientific tier this may cross an exponent boundary: 999.6 rounded
// to two digits is 1.0e3.
type roundedStrategy struct{}

func (roundedStrategy) Name() string        { return "rounded" }
func (roundedStrategy) Tier() Tier          { return TierRounded }
func (roundedStrategy) Confidence() float64 { return constants.RoundedConfidence }

func (s roundedStrategy) Evaluate(tok document.Token, idx *registry.Index, tol Tolerances) []Candidate {
	digits := displayDigits(tok)

	var entries []registry.Entry
	if digits >= constants.MinRoundedDigits && digits <= constants.MaxRoundedDigits {
		entries = idx.Rounded(tok.Value, digits)
	} else {
		// Outside the precomputed window; compare directly.
		key := numerics.RoundedKey(tok.Value, digits)
		for _, e := range idx.Entries() {
			if numerics.RoundedKey(e.Value, digits) == key {
				entries = append(entries, e)
			}
		}
	}
	return toCandidates(entries, s.Tier(), s.Confidence())
}

// magnitudeStrategy matches entries in the same decimal order of
// magnitude within the magnitude tolerance.
type magnitudeStrategy struct{}

func (magnitudeStrategy) Name() string        { return "order_of_magnitude" }
func (magnitudeStrategy) Tier() Tier          { return TierMagnitude }
func (magnitudeStrategy) Confidence() float64 { return constants.MagnitudeConfidence }

func (s magnitudeStrategy) Evaluate(tok document.Token, idx *registry.Index, tol Tolerances) []Candidate {
	entries := idx.Magnitude(tok.Value, tol.Magnitude)
	return toCandidates(entries, s.Tier(), s.Confidence())
}

func displayDigits(tok document.Token) int {
	if tok.SigDigits < 1 {
		return 1
	}
	return tok.SigDigits
}
