package reporting

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SaveXLSX writes the report as a two-sheet workbook: a summary sheet
// and one row per flagged or failed file.
func (r *Report) SaveXLSX(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	summaryRows := [][]any{
		{"Root path", r.Summary.RootPath},
		{"Total files", r.Summary.TotalFiles},
		{"Clean files", r.Summary.CleanFiles},
		{"Flagged files", r.Summary.FlaggedFiles},
		{"Errors", r.Summary.ErrorFiles},
		{"Started", r.Summary.StartTime.Format("2006-01-02 15:04:05")},
		{"Duration", r.Summary.ScanDuration.String()},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	const findingsSheet = "Findings"
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return err
	}

	header := []any{"File", "Risk", "Valid", "Findings", "Quarantined", "Error"}
	if err := f.SetSheetRow(findingsSheet, "A1", &header); err != nil {
		return err
	}
	for i, e := range r.Entries {
		var msgs []string
		for _, finding := range e.Findings {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", finding.Severity, finding.Message))
		}
		row := []any{
			e.Path,
			e.Risk.String(),
			e.Valid,
			strings.Join(msgs, "; "),
			e.Quarantined,
			e.Error,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(findingsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(findingsSheet, "A", "A", 48); err != nil {
		return err
	}
	if err := f.SetColWidth(findingsSheet, "D", "D", 64); err != nil {
		return err
	}

	return f.SaveAs(filename)
}
