package report

import (
	"fmt"
	"io"

	coolingload "Frostline/internal/calc/coolingload"
	"github.com/xuri/excelize/v2"
)

// XLSXFileName is the default download name of the spreadsheet report.
const XLSXFileName = "Cooling_Load_Detailed_Report.xlsx"

// Workbook builds the detailed report. The caller closes the file.
func Workbook(fields coolingload.Fields) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating style: %w", err)
	}

	for i, row := range Rows(fields) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		cells := row.Cells
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
		if row.Header {
			last, _ := excelize.CoordinatesToCellName(len(cells), i+1)
			if err := f.SetCellStyle(SheetName, cell, last, bold); err != nil {
				f.Close()
				return nil, fmt.Errorf("styling row %d: %w", i+1, err)
			}
		}
	}

	for i, width := range ColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("setting width of %s: %w", col, err)
		}
	}
	return f, nil
}

// WriteXLSX writes the detailed report to w.
func WriteXLSX(w io.Writer, fields coolingload.Fields) error {
	f, err := Workbook(fields)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
