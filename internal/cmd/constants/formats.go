// Package constants provides shared constants for CLI commands.
package constants

// Output format constants used throughout the CLI.
const (
	// FormatTable is the default table output format.
	FormatTable = "table"

	// FormatWide is an extended table format with more columns.
	FormatWide = "wide"

	// FormatJSON outputs data as JSON.
	FormatJSON = "json"

	// FormatYAML outputs data as YAML.
	FormatYAML = "yaml"

	// FormatMarkdown outputs as a markdown document.
	FormatMarkdown = "markdown"
)

// Report file extensions recognized when picking a report writer.
const (
	// ExtJSON selects the JSON report writer.
	ExtJSON = ".json"

	// ExtYAML selects the YAML report writer.
	ExtYAML = ".yaml"

	// ExtYML is the short YAML extension.
	ExtYML = ".yml"

	// ExtMarkdown selects the Markdown report writer.
	ExtMarkdown = ".md"
)
