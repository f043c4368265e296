// Package cmdutil provides shared report rendering utilities for
// constable commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/axicon-labs/constable/internal/cmd/constants"
	"github.com/axicon-labs/constable/internal/cmd/filter"
	"github.com/axicon-labs/constable/internal/cmd/output"
	"github.com/axicon-labs/constable/internal/cmd/table"
	"github.com/axicon-labs/constable/pkg/audit"
	"github.com/axicon-labs/constable/pkg/errors"
)

// WriteReportFile writes an audit report to path, picking the writer
// from the file extension: .json, .yaml/.yml, or .md.
func WriteReportFile(rep *audit.Report, path string) error {
	file, err := os.Create(path) // #nosec G304 - path is the user's own --report argument
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtJSON:
		err = rep.WriteJSON(file)
	case constants.ExtYAML, constants.ExtYML:
		err = rep.WriteYAML(file)
	case constants.ExtMarkdown:
		err = rep.WriteMarkdown(file)
	default:
		err = errors.NewValidationError("report", path,
			"report extension must be .json, .yaml, .yml, or .md")
	}
	if err != nil {
		return err
	}

	return nil
}

// PrintReport renders an audit report to w in the requested format.
// Table formats print the summary, per-tier counts, and the (optionally
// filtered) records; serialized formats emit the full report untouched.
func PrintReport(w io.Writer, rep *audit.Report, format output.Format, recordFilter *filter.RecordFilter) error {
	switch format {
	case output.FormatJSON:
		return rep.WriteJSON(w)
	case output.FormatYAML:
		return rep.WriteYAML(w)
	case output.FormatMarkdown:
		return rep.WriteMarkdown(w)
	}

	wide := format == output.FormatWide
	formatter := output.NewFormatter(format)

	if err := formatter.Format(w, table.SummaryToTableData(rep)); err != nil {
		return err
	}

	if len(rep.Summary.ByTier) > 0 {
		fmt.Fprintln(w)
		if err := formatter.Format(w, table.TiersToTableData(rep.Summary.ByTier)); err != nil {
			return err
		}
	}

	records := recordFilter.Apply(rep.Records)
	if len(records) > 0 {
		fmt.Fprintln(w)
		if err := formatter.Format(w, table.RecordsToTableData(records, wide)); err != nil {
			return err
		}
	}

	if len(rep.Summary.AmbiguousTokens) > 0 {
		fmt.Fprintln(w)
		if err := formatter.Format(w, table.AmbiguousToTableData(rep.Summary.AmbiguousTokens)); err != nil {
			return err
		}
	}

	return nil
}
