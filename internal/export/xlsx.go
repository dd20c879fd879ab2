package export

import (
	"errors"
	"fmt"

	"github.com/refugiapp/refugiapp/models"
	"github.com/xuri/excelize/v2"
)

// MimeTypeXLSX is the media type of the spreadsheet artifact.
const MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheetName = "Reporte"

// ErrNothingToExport is returned when an artifact is requested for zero
// records.
var ErrNothingToExport = errors.New("nothing to export")

// RecordsToXLSX renders records as a single-sheet workbook using the same
// header and cell contract as [RecordsToCSV]. All cells are text.
func RecordsToXLSX(sheet string, records []models.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	sheet = sheetName(sheet)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	columns := Columns(records)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, rec := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			v, _ := rec.Get(c)
			row[i] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName fits title into the workbook's sheet-name rules: at most 31
// characters, none of : \ / ? * [ ] and no apostrophe at either end.
func sheetName(title string) string {
	var out []rune
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			r = '_'
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	if len(out) == 0 {
		return defaultSheetName
	}
	if out[0] == '\'' {
		out[0] = '_'
	}
	if out[len(out)-1] == '\'' {
		out[len(out)-1] = '_'
	}
	return string(out)
}
