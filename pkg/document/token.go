package document

// Notation records the textual form a numeric literal was written in.
// Matching tiers care about the distinction: scientific-notation matching
// only engages for tokens actually written with an exponent.
type Notation string

// Notation values.
const (
	NotationPlain       Notation = "plain"       // 144, -7
	NotationDecimal     Notation = "decimal"     // 3.14, 0.002
	NotationScientific  Notation = "scientific"  // 1.23e-4, 6.626 x 10^-34
	NotationSuperscript Notation = "superscript" // 6.626 × 10⁻³⁴
	NotationIdentifier  Notation = "identifier"  // 10.1103/PhysRevD.123.456
)

// Token is a numeric literal extracted from a document.
type Token struct {
	DocumentID string   `json:"document_id" yaml:"document_id"`
	Span       Span     `json:"span" yaml:"span"`
	Text       string   `json:"text" yaml:"text"`
	Value      float64  `json:"value" yaml:"value"`
	Notation   Notation `json:"notation" yaml:"notation"`
	SigDigits  int      `json:"sig_digits" yaml:"sig_digits"` // digits displayed in the mantissa
	Context    string   `json:"context" yaml:"context"`       // surrounding window for classification and audit
}

// IsScientific reports whether the token was written in an exponent form.
func (t Token) IsScientific() bool {
	return t.Notation == NotationScientific || t.Notation == NotationSuperscript
}
