package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// header is the fixed 7-column layout Kahoot's spreadsheet import expects.
var header = []string{"Question", "Answer 1", "Answer 2", "Answer 3", "Answer 4", "Time", "Correct"}

const sheetName = "Sheet1"

// WriteXLSX writes rows as a Kahoot import spreadsheet.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.Question,
			row.Answers[0],
			row.Answers[1],
			row.Answers[2],
			row.Answers[3],
			row.TimeSeconds,
			row.CorrectPosition,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("row %d cell: %w", i+1, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
