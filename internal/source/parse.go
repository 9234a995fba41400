package source

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/retailgrid/internal/dataset"
)

// indexWidth is the number of leading index columns (Year, Month, State).
const indexWidth = 3

// headerDepth is the number of header rows (Sector, Metric, Unit).
const headerDepth = 3

// ParseWorkbook decodes the source spreadsheet into a normalized dataset.
//
// The sheet layout is fixed: a 3-row header block (sector, metric, unit)
// over a 3-column index block (year, month, state). Merged sector cells
// arrive empty and are forward-filled. Reading stops at the first row
// whose year cell is not an integer, which is the trailing footer line.
// Status columns are dropped during dataset construction.
func ParseWorkbook(data []byte) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(grid) <= headerDepth {
		return nil, fmt.Errorf("sheet %q has no data below the header block", sheets[0])
	}

	cols, err := parseHeader(grid[:headerDepth])
	if err != nil {
		return nil, err
	}

	var rows []dataset.RowKey
	var cells [][]float64
	for _, line := range grid[headerDepth:] {
		key, ok := parseRowKey(line)
		if !ok {
			break // footer line
		}
		rows = append(rows, key)
		cells = append(cells, parseValues(line, len(cols)))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	return dataset.New(rows, cols, cells)
}

// parseHeader turns the 3-row header block into column keys, skipping the
// index block and forward-filling merged sector and unit cells.
func parseHeader(header [][]string) ([]dataset.ColKey, error) {
	width := 0
	for _, row := range header {
		if len(row) > width {
			width = len(row)
		}
	}
	if width <= indexWidth {
		return nil, fmt.Errorf("header block has no data columns")
	}

	at := func(level, col int) string {
		if col < len(header[level]) {
			return strings.TrimSpace(header[level][col])
		}
		return ""
	}

	cols := make([]dataset.ColKey, 0, width-indexWidth)
	sector := ""
	for col := indexWidth; col < width; col++ {
		if s := at(0, col); s != "" {
			sector = s
		}
		cols = append(cols, dataset.ColKey{
			Sector: sector,
			Metric: at(1, col),
			Unit:   at(2, col),
		})
	}
	return cols, nil
}

// parseRowKey reads the index block of one data line. Returns false for
// the footer line, where the year cell stops being an integer.
func parseRowKey(line []string) (dataset.RowKey, bool) {
	if len(line) < indexWidth {
		return dataset.RowKey{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(line[0]))
	if err != nil {
		return dataset.RowKey{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(line[1]))
	if err != nil {
		return dataset.RowKey{}, false
	}
	state := strings.TrimSpace(line[2])
	if state == "" {
		return dataset.RowKey{}, false
	}
	return dataset.RowKey{Year: year, Month: month, State: state}, true
}

// parseValues reads the data block of one line. Blank and non-numeric
// cells become missing values.
func parseValues(line []string, numCols int) []float64 {
	values := make([]float64, numCols)
	for j := range values {
		values[j] = dataset.Missing
		col := indexWidth + j
		if col >= len(line) {
			continue
		}
		cell := strings.TrimSpace(strings.ReplaceAll(line[col], ",", ""))
		if cell == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			values[j] = v
		}
	}
	return values
}
