// Package report renders assessments as downloadable CSV, XLSX and PNG files.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// Format is an export file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPNG  Format = "png"
)

// ErrUnknownFormat is returned by ParseFormat for anything but csv, xlsx or png
var ErrUnknownFormat = errors.New("report: unknown format")

// ErrNothingToExport is returned when there is no assessment to render
var ErrNothingToExport = errors.New("report: nothing to export")

// ParseFormat reads a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Filename returns the download name for the format
func (f Format) Filename() string {
	return "mci_report." + string(f)
}

// Write renders assessments in the given format
func Write(w io.Writer, f Format, assessments []domain.Assessment) error {
	if len(assessments) == 0 {
		return ErrNothingToExport
	}
	switch f {
	case FormatCSV:
		return WriteCSV(w, assessments)
	case FormatXLSX:
		return WriteXLSX(w, assessments)
	case FormatPNG:
		a := assessments[0]
		if a.Analysis == nil {
			return ErrNothingToExport
		}
		return WriteChart(w, a.Analysis, chartTitle(a.Metal))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

var summaryHeader = []string{"metal", "predicted_MCI", "ci_lower", "ci_upper", "recommendations"}

// summaryRecord flattens one assessment into the download columns
func summaryRecord(a domain.Assessment) []string {
	var recs []string
	if a.Analysis != nil {
		recs = a.Analysis.Recommendations
	}
	return []string{
		a.Metal,
		formatFloat(a.Prediction.PredictedMCI),
		formatFloat(a.Prediction.CILower),
		formatFloat(a.Prediction.CIUpper),
		strings.Join(recs, "; "),
	}
}

// WriteCSV writes one summary line per assessment
func WriteCSV(w io.Writer, assessments []domain.Assessment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("report: failed to write csv header: %w", err)
	}
	for _, a := range assessments {
		if err := cw.Write(summaryRecord(a)); err != nil {
			return fmt.Errorf("report: failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ComparisonTable lays out the baseline, optimized and ideal rows side by
// side, followed by their MCI scores and efficiencies
func ComparisonTable(res *domain.AnalysisResult) [][]any {
	table := [][]any{{"Parameter", "Baseline", "Optimized", "Ideal"}}
	if s := res.AlignedInput.Schema(); s != nil {
		for i, f := range s.Fields() {
			table = append(table, []any{
				f.Name,
				res.AlignedInput.At(i).Interface(),
				res.OptimizedInput.At(i).Interface(),
				res.IdealInput.At(i).Interface(),
			})
		}
	}
	table = append(table,
		[]any{"MCI Score", res.Baseline.MCI, res.Optimized.MCI, res.Ideal.MCI},
		[]any{"Efficiency %", res.Baseline.EfficiencyPct, res.Optimized.EfficiencyPct, 100.0},
	)
	return table
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
