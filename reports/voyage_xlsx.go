package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/skybridgeair/flightops/calc"
	"github.com/skybridgeair/flightops/types"
)

// VoyageWorkbook builds the monthly pilot-logbook export as an Excel
// workbook: one row per voyage report plus a totals row. The caller is
// responsible for closing the file.
func VoyageWorkbook(month string, entries []types.VoyageReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Voyage Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Date", "Flight", "PIC", "SIC", "Block Off", "Block On", "Flight Time", "Landings", "Remarks"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	var totalTime float64
	var totalLandings int
	for rowIdx, entry := range entries {
		values := []interface{}{
			entry.Date,
			entry.FlightID,
			entry.PIC,
			entry.SIC,
			entry.BlockOff,
			entry.BlockOn,
			calc.DecimalToHm(entry.FlightTime),
			entry.Landings,
			entry.Remarks,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		totalTime += entry.FlightTime
		totalLandings += entry.Landings
	}

	totalsRow := len(entries) + 2
	totals := map[int]interface{}{
		1: fmt.Sprintf("Totals for %s", month),
		7: calc.DecimalToHm(totalTime),
		8: totalLandings,
	}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col, totalsRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, err
		}
	}

	return f, nil
}
