package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	defaultSheet1 = "Sheet1"
)

// WriteXLSX writes a workbook with a summary sheet and one comparison sheet per assessment
func WriteXLSX(w io.Writer, assessments []domain.Assessment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet1, summarySheet); err != nil {
		return fmt.Errorf("report: failed to name summary sheet: %w", err)
	}
	rows := [][]any{toAny(summaryHeader)}
	for _, a := range assessments {
		rows = append(rows, toAny(summaryRecord(a)))
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	used := map[string]bool{summarySheet: true}
	for i, a := range assessments {
		if a.Analysis == nil {
			continue
		}
		name := comparisonSheetName(a.Metal, i, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("report: failed to add sheet %q: %w", name, err)
		}
		if err := writeRows(f, name, ComparisonTable(a.Analysis)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("report: bad cell %d,%d: %w", c+1, r+1, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("report: failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func comparisonSheetName(metal string, i int, used map[string]bool) string {
	name := "Comparison " + metal
	if metal == "" || used[name] {
		name = fmt.Sprintf("Comparison %d", i+1)
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	used[name] = true
	return name
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
