package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReportSheet is the name of the single worksheet in the exported file.
const ReportSheet = "Upload Report"

// reportColumns mirrors the ReportEntry fields, in report order.
var reportColumns = []string{"team", "file_count", "login_ids", "last_modified"}

// WriteReportXLSX renders the report as a spreadsheet: a header row
// followed by one row per team, in report order.
func WriteReportXLSX(entries []ReportEntry) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", ReportSheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %v", err)
	}

	for i, column := range reportColumns {
		if err := setCell(file, i+1, 1, column); err != nil {
			return nil, err
		}
	}

	for row, entry := range entries {
		lastModified := ""
		if entry.LastModified != nil {
			lastModified = *entry.LastModified
		}
		values := []any{
			entry.Team,
			entry.FileCount,
			strings.Join(entry.LoginIDs, ", "),
			lastModified,
		}
		for col, value := range values {
			if err := setCell(file, col+1, row+2, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %v", err)
	}
	return buf.Bytes(), nil
}

func setCell(file *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to address cell (%d, %d): %v", col, row, err)
	}
	if err := file.SetCellValue(ReportSheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %v", cell, err)
	}
	return nil
}
