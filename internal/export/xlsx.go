package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ordermart/internal/model"
)

const xlsxSheet = "analytics"

// WriteXLSX writes recs to path as a single-sheet workbook with the output
// columns as the header row.
func WriteXLSX(path string, recs []model.AnalyticsRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: delete default sheet: %w", err)
	}

	header := make([]any, 0, len(model.Columns()))
	for _, c := range model.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}

	for i, rec := range recs {
		row := rec.Values()
		// Times render better as strings than as raw excel serials here.
		row[6] = rec.PurchasedAt.Format(exportTimeLayout)
		row[7] = rec.DeliveredAt.Format(exportTimeLayout)
		row[8] = rec.EstimatedAt.Format(exportTimeLayout)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %q: %w", path, err)
	}
	return nil
}
