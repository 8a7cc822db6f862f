package renderer

import (
	"context"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName    = "Report"
	defaultSheet = "Sheet1"
)

func (r *implRenderer) renderExcel(ctx context.Context, path string, rows []summaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]any{"Key", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "B1", header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]any{row.Key, row.Value}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 48); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		r.l.Errorf(ctx, "report.renderer.renderExcel: %v", err)
		return err
	}
	return nil
}
