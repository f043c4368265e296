// Package table converts reconciliation results into tabular data for
// CLI output.
package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var titleCaser = cases.Title(language.English)

// TitleWords renders a snake_case identifier as spaced title words,
// e.g. "skipped_low_confidence" becomes "Skipped Low Confidence".
func TitleWords(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}
