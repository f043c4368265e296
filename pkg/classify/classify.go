// Package classify separates reconciliation candidates from incidental
// numerals. Rules are pure and per-token: classifying one token never
// depends on any other token, and the first rule that fires wins.
package classify

import (
	"github.com/axicon-labs/constable/pkg/constants"
	"github.com/axicon-labs/constable/pkg/document"
)

// Subject is one token plus the document surroundings a rule may consult:
// a bounded slice of text on each side and whether the token already sits
// inside a tagged reference construct.
type Subject struct {
	Token  document.Token
	Before string
	After  string
	Tagged bool
}

// Rule is one exclusion test. Name is the reason recorded when the rule
// fires.
type Rule interface {
	Name() string
	Excludes(sub Subject) bool
}

// Result pairs a token with its classification outcome.
type Result struct {
	Token    document.Token
	Excluded bool
	Reason   string
}

// Candidates returns the tokens that survived exclusion, in document order.
func Candidates(results []Result) []document.Token {
	var tokens []document.Token
	for _, res := range results {
		if !res.Excluded {
			tokens = append(tokens, res.Token)
		}
	}
	return tokens
}

// Classifier runs an ordered rule list over scanned tokens.
type Classifier struct {
	rules  []Rule
	radius int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSmallIntegerThreshold overrides the absolute value below which bare
// integers without a unit cue are excluded.
func WithSmallIntegerThreshold(threshold float64) Option {
	return func(c *Classifier) {
		for i, rule := range c.rules {
			if _, ok := rule.(smallIntegerRule); ok {
				c.rules[i] = smallIntegerRule{threshold: threshold}
			}
		}
	}
}

// WithRules replaces the rule list entirely. Order is significant.
func WithRules(rules ...Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithContextRadius overrides how many bytes of surrounding text each rule
// sees on either side of a token.
func WithContextRadius(radius int) Option {
	return func(c *Classifier) {
		if radius >= 0 {
			c.radius = radius
		}
	}
}

// New creates a Classifier with the default rule order: tagged reference,
// calendar year, persistent identifier, page reference, small integer.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:  defaultRules(),
		radius: constants.ContextRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify evaluates every token against the rule list. A nil markup gets
// DefaultMarkup over the document content. Results are returned in token
// order, one per token, excluded or not.
func (c *Classifier) Classify(doc document.Document, markup document.Markup, tokens []document.Token) []Result {
	if markup == nil {
		markup = document.DefaultMarkup(doc.Content)
	}

	results := make([]Result, 0, len(tokens))
	for _, tok := range tokens {
		results = append(results, c.classifyToken(doc, markup, tok))
	}
	return results
}

func (c *Classifier) classifyToken(doc document.Document, markup document.Markup, tok document.Token) Result {
	sub := Subject{
		Token:  tok,
		Before: beforeWindow(doc.Content, tok.Span, c.radius),
		After:  afterWindow(doc.Content, tok.Span, c.radius),
		Tagged: markup.InTaggedReference(tok.Span),
	}

	for _, rule := range c.rules {
		if rule.Excludes(sub) {
			return Result{Token: tok, Excluded: true, Reason: rule.Name()}
		}
	}
	return Result{Token: tok}
}

func beforeWindow(content string, span document.Span, radius int) string {
	start := span.Start - radius
	if start < 0 {
		start = 0
	}
	if span.Start > len(content) {
		return ""
	}
	return content[start:span.Start]
}

func afterWindow(content string, span document.Span, radius int) string {
	if span.End > len(content) {
		return ""
	}
	end := span.End + radius
	if end > len(content) {
		end = len(content)
	}
	return content[span.End:end]
}
