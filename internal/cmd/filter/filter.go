// Package filter applies CLI filter flags to registry entries and audit
// records.
package filter

import (
	"strings"

	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/registry"
)

// EntryFilter applies filters to registry entry lists.
type EntryFilter struct {
	Prefix string // Dotted path prefix, matched on group boundaries
	Search string // Case-insensitive substring of the path
}

// Apply filters a slice of registry entries.
func (f *EntryFilter) Apply(entries []registry.Entry) []registry.Entry {
	if f == nil || f.isEmpty() {
		return entries
	}

	var filtered []registry.Entry
	for _, entry := range entries {
		if f.matches(entry) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

func (f *EntryFilter) isEmpty() bool {
	return f.Prefix == "" && f.Search == ""
}

func (f *EntryFilter) matches(entry registry.Entry) bool {
	path := entry.Path.String()

	// Prefix filter: "topology" matches "topology.chi_eff" but not
	// "topologies.x"
	if f.Prefix != "" {
		if path != f.Prefix && !strings.HasPrefix(path, f.Prefix+".") {
			return false
		}
	}

	// Search filter
	if f.Search != "" && !strings.Contains(strings.ToLower(path), strings.ToLower(f.Search)) {
		return false
	}

	return true
}

// RecordFilter applies filters to audit record lists.
type RecordFilter struct {
	Status   string // Final status name, e.g. "proposed"
	Tier     string // Match tier name, e.g. "exact"
	Document string // Document ID
}

// Apply filters a slice of audit records.
func (f *RecordFilter) Apply(records []audit.Record) []audit.Record {
	if f == nil || f.isEmpty() {
		return records
	}

	var filtered []audit.Record
	for _, rec := range records {
		if f.matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

func (f *RecordFilter) isEmpty() bool {
	return f.Status == "" && f.Tier == "" && f.Document == ""
}

func (f *RecordFilter) matches(rec audit.Record) bool {
	// Status filter
	if f.Status != "" && string(rec.Status) != f.Status {
		return false
	}

	// Tier filter: excluded records carry no tier and never match
	if f.Tier != "" {
		if rec.MatchType == nil || *rec.MatchType != f.Tier {
			return false
		}
	}

	// Document filter
	if f.Document != "" && rec.DocumentID != f.Document {
		return false
	}

	return true
}
