// Package patterns holds the compiled lexical patterns token
// classification runs against: calendar years, persistent identifiers,
// page citations, and the unit and physics vocabulary that keeps a
// numeral from being dismissed as incidental.
package patterns

import "regexp"

// Token text shapes.
var (
	// Year matches the shape of a bare four-digit numeral. The classifier
	// bounds the plausible calendar range numerically.
	Year = regexp.MustCompile(`^\d{4}$`)

	// Arxiv matches a preprint identifier such as 2004.02254.
	Arxiv = regexp.MustCompile(`^\d{4}\.\d{4,5}$`)

	// DOI matches a whole DOI-like identifier.
	DOI = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

// Neighborhood shapes, applied to the bounded text just before or just
// after a token.
var (
	pageBeforePattern = regexp.MustCompile(`\bpp?\.\s*$`)
	pageRangePattern  = regexp.MustCompile(`\bpp?\.\s*\d+\s*[-–—]\s*$`)
	indexOpenPattern  = regexp.MustCompile(`\[\s*$`)
	indexClosePattern = regexp.MustCompile(`^\s*\]`)

	// relationalBeforePattern recognizes an assignment or approximation
	// operator directly before a token. A numeral being equated to
	// something is a quantity, whatever its digits look like.
	relationalBeforePattern = regexp.MustCompile(`[=≈±∼]\s*$`)
)

// unitAdjacentPattern recognizes a unit symbol directly after a token.
// Symbols are matched case-sensitively and longest first: single-letter
// units are too ambiguous to search for anywhere else in the context.
var unitAdjacentPattern = regexp.MustCompile(
	`^\s{0,3}(?:(?:GeV|MeV|TeV|keV|eV|kHz|MHz|GHz|Hz|kg|mg|km|cm|mm|nm|fm|mol|Pa|rad|sr|ms|ns|[KJNCVTWAsmg])\b|[%°])`)

// unitWordPattern recognizes spelled-out units and counting nouns
// anywhere in the context window. A small integer next to "generations"
// is a quantity, not an incidental numeral.
var unitWordPattern = regexp.MustCompile(
	`(?i)\b(?:units?|percent|degrees?|radians?|meters?|metres?|seconds?|minutes?|hours?|grams?|kilograms?|kelvin|joules?|volts?|watts?|newtons?|pascals?|hertz|electron.?volts?|generations?|dimensions?|families|flavou?rs?|colou?rs?|loops?|species|modes?|states?|particles?|bosons?|fermions?|quarks?|leptons?)\b`)

// physicsWordPattern recognizes the vocabulary that marks a numeral as a
// physical quantity rather than a date.
var physicsWordPattern = regexp.MustCompile(
	`(?i)\b(?:constants?|couplings?|mass(?:es)?|energy|energies|scales?|parameters?|ratios?|factors?|charges?|momentum|momenta|spin|fields?|symmetr(?:y|ies)|lattices?|topolog\w*|eigenvalues?|coefficients?|amplitudes?|cross.sections?|decays?|invariants?|curvatures?|tensors?|values?|predictions?|measurements?|uncertaint\w*)\b`)

// HasUnitCue reports whether a unit symbol sits directly after the token
// or a unit word appears in its context window.
func HasUnitCue(after, context string) bool {
	return unitAdjacentPattern.MatchString(after) || unitWordPattern.MatchString(context)
}

// HasPhysicsCue reports whether the token's surroundings read as physics:
// a unit cue, or physics vocabulary in the context window.
func HasPhysicsCue(after, context string) bool {
	return HasUnitCue(after, context) || physicsWordPattern.MatchString(context)
}

// HasRelationalCue reports whether the text directly before a token ends
// in a relational operator (=, ≈, ±, ∼).
func HasRelationalCue(before string) bool {
	return relationalBeforePattern.MatchString(before)
}

// IsPageReference reports whether the text around a token marks it as a
// page number ("p. 45", "pp. 12-34") or a citation index ("[7]").
func IsPageReference(before, after string) bool {
	if pageBeforePattern.MatchString(before) || pageRangePattern.MatchString(before) {
		return true
	}
	return indexOpenPattern.MatchString(before) && indexClosePattern.MatchString(after)
}
