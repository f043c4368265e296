package document

import "regexp"

// Markup answers the two structural questions the engine asks about a
// document: whether a span sits inside a non-prose region (scanner skips
// it entirely) and whether it sits inside an already-tagged reference
// construct (scanner keeps it; the classifier excludes it so the audit
// trail still shows it).
type Markup interface {
	InNonProse(s Span) bool
	InTaggedReference(s Span) bool
}

// MarkupFuncs adapts two predicate functions to the Markup interface.
// A nil function reports false.
type MarkupFuncs struct {
	NonProse        func(Span) bool
	TaggedReference func(Span) bool
}

// InNonProse implements Markup.
func (m MarkupFuncs) InNonProse(s Span) bool {
	if m.NonProse == nil {
		return false
	}
	return m.NonProse(s)
}

// InTaggedReference implements Markup.
func (m MarkupFuncs) InTaggedReference(s Span) bool {
	if m.TaggedReference == nil {
		return false
	}
	return m.TaggedReference(s)
}

// PlainText returns a Markup under which the whole document is prose.
func PlainText() Markup {
	return MarkupFuncs{}
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern  = regexp.MustCompile("`[^`\n]+`")
	urlPattern         = regexp.MustCompile(`https?://[^\s<>")]+`)
	referencePattern   = regexp.MustCompile(`\{\{const:[^}]*\}\}`)
)

// regionMarkup is a precomputed Markup over fixed span lists.
type regionMarkup struct {
	nonProse []Span
	tagged   []Span
}

// DefaultMarkup scans Markdown-ish content for fenced code blocks, inline
// code spans, URLs, and {{const:...}} reference constructs. Code and URLs
// are non-prose; reference constructs are tagged. Callers using a
// different reference template or markup dialect supply their own Markup.
func DefaultMarkup(content string) Markup {
	m := &regionMarkup{}

	for _, loc := range fencedBlockPattern.FindAllStringIndex(content, -1) {
		m.nonProse = append(m.nonProse, Span{Start: loc[0], End: loc[1]})
	}
	for _, loc := range inlineCodePattern.FindAllStringIndex(content, -1) {
		m.nonProse = append(m.nonProse, Span{Start: loc[0], End: loc[1]})
	}
	for _, loc := range urlPattern.FindAllStringIndex(content, -1) {
		m.nonProse = append(m.nonProse, Span{Start: loc[0], End: loc[1]})
	}
	for _, loc := range referencePattern.FindAllStringIndex(content, -1) {
		m.tagged = append(m.tagged, Span{Start: loc[0], End: loc[1]})
	}

	return m
}

// InNonProse implements Markup.
func (m *regionMarkup) InNonProse(s Span) bool {
	return anyContains(m.nonProse, s)
}

// InTaggedReference implements Markup.
func (m *regionMarkup) InTaggedReference(s Span) bool {
	return anyContains(m.tagged, s)
}

func anyContains(regions []Span, s Span) bool {
	for _, r := range regions {
		if r.Contains(s) {
			return true
		}
	}
	return false
}
