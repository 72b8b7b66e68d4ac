package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"hia/internal/domain"
)

const reportSheet = "Reports"

// WriteReportsXLSX writes a batch of analysis reports to w as an XLSX
// workbook with a single sheet.
func WriteReportsXLSX(w io.Writer, reports []domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("export.WriteReportsXLSX: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export.WriteReportsXLSX: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export.WriteReportsXLSX: %w", err)
		}
		if err := f.SetCellValue(reportSheet, cell, name); err != nil {
			return fmt.Errorf("export.WriteReportsXLSX: %w", err)
		}
	}

	for i := range reports {
		r := &reports[i]
		values := []any{
			r.ID.String(),
			r.UserID.String(),
			r.InputKind,
			formatBool(r.Succeeded),
			r.ModelUsed,
			r.Warnings,
			r.ResultText,
			r.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("export.WriteReportsXLSX: %w", err)
			}
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return fmt.Errorf("export.WriteReportsXLSX: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteReportsXLSX: %w", err)
	}
	return nil
}
