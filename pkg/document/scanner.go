package document

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/errors"
)

// Literal sub-patterns, combined into one alternation below. Go's regexp
// engine takes the leftmost alternative that matches rather than the
// longest match, so the forms are ordered longest first: a plain integer
// listed early would split "6.626e-34" at the mantissa.
const (
	doiPattern        = `10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`
	supTimesPattern   = `[+-]?\d+(?:\.\d+)?\s*[xX×]\s*10[⁺⁻]?[⁰¹²³⁴⁵⁶⁷⁸⁹]+`
	caretTimesPattern = `[+-]?\d+(?:\.\d+)?\s*[xX×]\s*10\^\{?[+-]?\d+\}?`
	sciPattern        = `[+-]?\d+(?:\.\d+)?[eE][+-]?\d+`
	supPowerPattern   = `10[⁺⁻]?[⁰¹²³⁴⁵⁶⁷⁸⁹]+`
	caretPowerPattern = `10\^\{?[+-]?\d+\}?`
	commaPattern      = `[+-]?\d{1,3}(?:,\d{3})+(?:\.\d+)?`
	decimalPattern    = `[+-]?\d+\.\d+`
	integerPattern    = `[+-]?\d+`
)

var literalPattern = regexp.MustCompile(strings.Join([]string{
	doiPattern,
	supTimesPattern,
	caretTimesPattern,
	sciPattern,
	supPowerPattern,
	caretPowerPattern,
	commaPattern,
	decimalPattern,
	integerPattern,
}, "|"))

// Anchored forms classify a raw match and capture its mantissa and
// exponent for decimal-exact value construction.
var (
	doiForm        = regexp.MustCompile(`^` + doiPattern + `$`)
	doiValue       = regexp.MustCompile(`^\d+\.\d+`)
	supTimesForm   = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)\s*[xX×]\s*10([⁺⁻]?[⁰¹²³⁴⁵⁶⁷⁸⁹]+)$`)
	caretTimesForm = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)\s*[xX×]\s*10\^\{?([+-]?\d+)\}?$`)
	sciForm        = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)[eE]([+-]?\d+)$`)
	supPowerForm   = regexp.MustCompile(`^10([⁺⁻]?[⁰¹²³⁴⁵⁶⁷⁸⁹]+)$`)
	caretPowerForm = regexp.MustCompile(`^10\^\{?([+-]?\d+)\}?$`)
	commaForm      = regexp.MustCompile(`^[+-]?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
	decimalForm    = regexp.MustCompile(`^[+-]?\d+\.\d+$`)
	integerForm    = regexp.MustCompile(`^[+-]?\d+$`)
)

// Scanner extracts every maximal numeric literal from document content.
// Extraction is structural only: the scanner decides what is a numeric
// literal and what surrounds it, never whether it should be reconciled.
type Scanner struct {
	maxTokens     int
	contextRadius int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithMaxTokens caps how many tokens a single document may produce before
// scanning fails for that document.
func WithMaxTokens(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// WithContextRadius sets how many bytes of surrounding text are captured
// on each side of a token.
func WithContextRadius(n int) ScannerOption {
	return func(s *Scanner) {
		if n >= 0 {
			s.contextRadius = n
		}
	}
}

// NewScanner creates a Scanner with default limits.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		maxTokens:     constants.MaxTokensPerDocument,
		contextRadius: constants.ContextRadius,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan extracts numeric tokens from the document in span order. A nil
// markup gets DefaultMarkup over the document content. Tokens inside
// non-prose regions are dropped silently; tokens inside tagged reference
// constructs are kept for the classifier to exclude, so the audit trail
// still records them.
func (s *Scanner) Scan(doc Document, markup Markup) ([]Token, error) {
	if markup == nil {
		markup = DefaultMarkup(doc.Content)
	}

	content := doc.Content
	var tokens []Token
	for _, loc := range literalPattern.FindAllStringIndex(content, -1) {
		start, end := loc[0], loc[1]
		text := content[start:end]

		// A sign reached through a preceding digit is a range dash, not
		// part of the literal: "12-34" reads as 12 and 34.
		if (text[0] == '+' || text[0] == '-') && start > 0 && isWordByte(content[start-1]) {
			if !isDigitByte(content[start-1]) {
				continue
			}
			start++
			text = text[1:]
		}
		// Digits flush against an identifier are part of it, not a
		// numeric literal: "0x1F", "45m", "PhysRevD.108".
		if start > 0 && isWordByte(content[start-1]) {
			continue
		}
		if start > 1 && content[start-1] == '.' && isWordByte(content[start-2]) {
			continue
		}
		if end < len(content) && isWordByte(content[end]) {
			continue
		}
		// A trailing superscript means exponentiation of the literal
		// itself ("144²"), which is not a value we can read off.
		if r, _ := utf8.DecodeRuneInString(content[end:]); isSuperscriptRune(r) {
			continue
		}

		tok, ok := s.buildToken(doc, Span{Start: start, End: end}, text)
		if !ok {
			continue
		}
		if markup.InNonProse(tok.Span) {
			continue
		}

		tokens = append(tokens, tok)
		if len(tokens) > s.maxTokens {
			return nil, errors.NewValidationError("document", doc.ID, "numeric literal count exceeds scanner limit")
		}
	}

	return tokens, nil
}

// buildToken classifies the raw match, derives its value and displayed
// precision, and attaches the surrounding context window. A match no
// anchored form accepts, or whose value does not fit a float64, produces
// no token.
func (s *Scanner) buildToken(doc Document, span Span, text string) (Token, bool) {
	if doiForm.MatchString(text) {
		return s.identifierToken(doc, span, text)
	}

	value, notation, digits, ok := parseLiteral(text)
	if !ok {
		return Token{}, false
	}

	return Token{
		DocumentID: doc.ID,
		Span:       span,
		Text:       text,
		Value:      value,
		Notation:   notation,
		SigDigits:  digits,
		Context:    contextWindow(doc.Content, span, s.contextRadius),
	}, true
}

// identifierToken emits a DOI run as a single identifier token covering
// the whole identifier, so its digit groups never surface as separate
// numeric literals. Sentence punctuation swallowed by the greedy char
// class is trimmed back off.
func (s *Scanner) identifierToken(doc Document, span Span, text string) (Token, bool) {
	trimmed := strings.TrimRight(text, ".,;:)")
	if !doiForm.MatchString(trimmed) {
		return Token{}, false
	}
	span.End = span.Start + len(trimmed)

	prefix := doiValue.FindString(trimmed)
	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return Token{}, false
	}

	return Token{
		DocumentID: doc.ID,
		Span:       span,
		Text:       trimmed,
		Value:      value,
		Notation:   NotationIdentifier,
		SigDigits:  countSigDigits(prefix),
		Context:    contextWindow(doc.Content, span, s.contextRadius),
	}, true
}

// parseLiteral derives value, notation, and displayed significant digits
// from a raw match. Exponent forms are reassembled into standard
// e-notation so the parsed value is exactly the decimal written, with no
// intermediate power-of-ten arithmetic.
func parseLiteral(text string) (float64, Notation, int, bool) {
	if m := supTimesForm.FindStringSubmatch(text); m != nil {
		return exponentValue(m[1], translateSuperscript(m[2]), NotationSuperscript)
	}
	if m := caretTimesForm.FindStringSubmatch(text); m != nil {
		return exponentValue(m[1], m[2], NotationScientific)
	}
	if m := sciForm.FindStringSubmatch(text); m != nil {
		return exponentValue(m[1], m[2], NotationScientific)
	}
	if m := supPowerForm.FindStringSubmatch(text); m != nil {
		return exponentValue("1", translateSuperscript(m[1]), NotationSuperscript)
	}
	if m := caretPowerForm.FindStringSubmatch(text); m != nil {
		return exponentValue("1", m[1], NotationScientific)
	}
	if commaForm.MatchString(text) {
		plain := strings.ReplaceAll(text, ",", "")
		value, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			return 0, "", 0, false
		}
		notation := NotationPlain
		if strings.Contains(plain, ".") {
			notation = NotationDecimal
		}
		return value, notation, countSigDigits(plain), true
	}
	if decimalForm.MatchString(text) {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, "", 0, false
		}
		return value, NotationDecimal, countSigDigits(text), true
	}
	if integerForm.MatchString(text) {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, "", 0, false
		}
		return value, NotationPlain, countSigDigits(text), true
	}
	return 0, "", 0, false
}

// exponentValue parses mantissa and decimal exponent as e-notation.
func exponentValue(mantissa, exponent string, notation Notation) (float64, Notation, int, bool) {
	value, err := strconv.ParseFloat(mantissa+"e"+exponent, 64)
	if err != nil {
		return 0, "", 0, false
	}
	return value, notation, countSigDigits(mantissa), true
}

// countSigDigits counts the significant digits a mantissa displays:
// leading zeros are placeholders, trailing zeros are deliberate. "140"
// displays three digits, "0.0021" two, "3.0" two.
func countSigDigits(mantissa string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, mantissa)
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 1
	}
	return len(digits)
}

// translateSuperscript rewrites superscript digits and signs into their
// ASCII forms.
func translateSuperscript(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '⁰':
			return '0'
		case '¹':
			return '1'
		case '²':
			return '2'
		case '³':
			return '3'
		case '⁴':
			return '4'
		case '⁵':
			return '5'
		case '⁶':
			return '6'
		case '⁷':
			return '7'
		case '⁸':
			return '8'
		case '⁹':
			return '9'
		case '⁺':
			return '+'
		case '⁻':
			return '-'
		}
		return r
	}, s)
}

// contextWindow returns the text around the span, clamped to the document
// and snapped outward to rune boundaries.
func contextWindow(content string, span Span, radius int) string {
	start := span.Start - radius
	if start < 0 {
		start = 0
	}
	end := span.End + radius
	if end > len(content) {
		end = len(content)
	}
	for start < len(content) && !utf8.RuneStart(content[start]) {
		start++
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}
	return content[start:end]
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSuperscriptRune(r rune) bool {
	switch r {
	case '⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹', '⁺', '⁻':
		return true
	}
	return false
}
