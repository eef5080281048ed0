package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrNoSheets = errors.New("workbook needs at least one sheet")

// Sheet is one worksheet: an optional title line, a header row and data rows.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]interface{}
	Widths  map[string]float64 // column letter -> width
}

// WriteXLSX renders sheets into an in-memory workbook.
func WriteXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, titleStyle); err != nil {
			return nil, fmt.Errorf("write sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, titleStyle int) error {
	row := 1
	if sheet.Title != "" {
		if err := f.SetCellValue(sheet.Name, "A1", sheet.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", "A1", titleStyle); err != nil {
			return err
		}
		row = 3
	}

	if len(sheet.Headers) > 0 {
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		headers := make([]interface{}, len(sheet.Headers))
		for i, h := range sheet.Headers {
			headers[i] = h
		}
		if err := f.SetSheetRow(sheet.Name, start, &headers); err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(len(sheet.Headers), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, start, end, headerStyle); err != nil {
			return err
		}
		row++
	}

	for _, values := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := values
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
		row++
	}

	for col, width := range sheet.Widths {
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
