package classify

import (
	"math"

	"github.com/axicon-labs/constable/internal/patterns"
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
)

func defaultRules() []Rule {
	return []Rule{
		taggedReferenceRule{},
		yearRule{},
		identifierRule{},
		pageRule{},
		smallIntegerRule{threshold: constants.SmallIntegerThreshold},
	}
}

// taggedReferenceRule excludes tokens already sitting inside a reference
// construct, which keeps the engine idempotent over its own output.
type taggedReferenceRule struct{}

func (taggedReferenceRule) Name() string { return "tagged_reference" }

func (taggedReferenceRule) Excludes(sub Subject) bool {
	return sub.Tagged
}

// yearRule excludes plausible calendar years unless the surroundings read
// as physics.
type yearRule struct{}

func (yearRule) Name() string { return "year_pattern" }

func (yearRule) Excludes(sub Subject) bool {
	if sub.Token.Notation != document.NotationPlain {
		return false
	}
	if !patterns.Year.MatchString(sub.Token.Text) {
		return false
	}
	if sub.Token.Value < constants.MinYear || sub.Token.Value > constants.MaxYear {
		return false
	}
	if patterns.HasRelationalCue(sub.Before) {
		return false
	}
	return !patterns.HasPhysicsCue(sub.After, sub.Token.Context)
}

// identifierRule excludes persistent identifiers: DOI runs, which the
// scanner already marks, and preprint-shaped decimals like 2004.02254.
type identifierRule struct{}

func (identifierRule) Name() string { return "identifier_pattern" }

func (identifierRule) Excludes(sub Subject) bool {
	if sub.Token.Notation == document.NotationIdentifier {
		return true
	}
	return patterns.Arxiv.MatchString(sub.Token.Text)
}

// pageRule excludes page numbers and bracketed citation indices.
type pageRule struct{}

func (pageRule) Name() string { return "page_pattern" }

func (pageRule) Excludes(sub Subject) bool {
	return patterns.IsPageReference(sub.Before, sub.After)
}

// smallIntegerRule excludes bare integers below the threshold when
// nothing nearby marks them as a quantity. "3 generations" survives;
// "chapter 3" does not.
type smallIntegerRule struct {
	threshold float64
}

func (smallIntegerRule) Name() string { return "small_integer" }

func (r smallIntegerRule) Excludes(sub Subject) bool {
	if sub.Token.Notation != document.NotationPlain {
		return false
	}
	if math.Abs(sub.Token.Value) >= r.threshold {
		return false
	}
	return !patterns.HasUnitCue(sub.After, sub.Token.Context)
}
