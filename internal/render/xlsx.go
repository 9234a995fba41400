package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

func init() {
	register(Format{
		Name:          "xlsx",
		Write:         writeXLSX,
		OptionsSchema: xlsxSchema,
	})
}

const xlsxSchema = `
import "strings"

close({
	// sheet names the worksheet (default "Data").
	sheet?: string & strings.MinRunes(1) & strings.MaxRunes(31)
})
`

// writeXLSX renders the document as a single-sheet workbook. Numeric cells
// are written as numbers so spreadsheet consumers can aggregate them.
func writeXLSX(w io.Writer, doc *Doc, opts Options) error {
	sheet := opts["sheet"]
	if sheet == "" {
		sheet = "Data"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	rowNum := 1
	writeRow := func(cells []string, asNumbers bool) error {
		for j, cell := range cells {
			ref, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return err
			}
			var value any = cell
			if asNumbers {
				if n, perr := strconv.ParseFloat(cell, 64); perr == nil {
					value = n
				}
			}
			if cell == "" && asNumbers {
				continue // leave missing cells empty
			}
			if err := f.SetCellValue(sheet, ref, value); err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}
		}
		rowNum++
		return nil
	}

	for _, header := range doc.Headers {
		if err := writeRow(header, false); err != nil {
			return err
		}
	}
	for _, row := range doc.Rows {
		if err := writeRow(row, true); err != nil {
			return err
		}
	}

	return f.Write(w)
}
