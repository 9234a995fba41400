package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Axis names used throughout the query surface.
const (
	KeyYear   = "Year"
	KeyMonth  = "Month"
	KeyState  = "State"
	KeySector = "Sector"
	KeyMetric = "Metric"
	KeyUnit   = "Unit"
)

// RowAxes lists the row-index axes in index order.
var RowAxes = []string{KeyYear, KeyMonth, KeyState}

// ColAxes lists the column-index axes in index order.
// Unit is labeling only; it is not an enumerable level for Keys.
var ColAxes = []string{KeySector, KeyMetric, KeyUnit}

// Sector labels as they appear in the source workbook.
const (
	SectorResidential    = "RESIDENTIAL"
	SectorCommercial     = "COMMERCIAL"
	SectorIndustrial     = "INDUSTRIAL"
	SectorTransportation = "TRANSPORTATION"
	SectorTotal          = "TOTAL"
)

// Metric labels as they appear in the source workbook.
const (
	MetricRevenue   = "Revenue"
	MetricSales     = "Sales"
	MetricCustomers = "Customers"
	MetricPrice     = "Price"
)

// Sectors lists all sectors in workbook order.
var Sectors = []string{
	SectorResidential,
	SectorCommercial,
	SectorIndustrial,
	SectorTransportation,
	SectorTotal,
}

// Metrics lists all metrics in workbook order.
var Metrics = []string{MetricRevenue, MetricSales, MetricCustomers, MetricPrice}

// StandardUnits maps each metric to its fixed source unit.
var StandardUnits = map[string]string{
	MetricRevenue:   "Thousand Dollars",
	MetricSales:     "Megawatthours",
	MetricCustomers: "Count",
	MetricPrice:     "Cents/kWh",
}

// RowKey is a composite row index entry: (Year, Month, State).
type RowKey struct {
	Year  int
	Month int
	State string
}

// Less orders row keys lexicographically by (Year, Month, State).
func (k RowKey) Less(other RowKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.State < other.State
}

func (k RowKey) String() string {
	return fmt.Sprintf("(%d, %d, %s)", k.Year, k.Month, k.State)
}

// ColKey is a composite column index entry: (Sector, Metric, Unit).
type ColKey struct {
	Sector string
	Metric string
	Unit   string
}

func (k ColKey) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.Sector, k.Metric, k.Unit)
}

// Missing is the sentinel for an absent cell value.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Dataset is the canonical normalized snapshot. Immutable after New.
type Dataset struct {
	rows  []RowKey
	cols  []ColKey
	cells [][]float64 // len(rows) x len(cols); Missing marks absent values
}

// New builds a Dataset from raw rows, columns, and cells.
//
// Normalization applied here, in order:
//   - administrative "Data Status" columns are dropped
//   - rows are sorted lexicographically by (Year, Month, State)
//
// Row keys must be unique and each cells row must match the column count.
func New(rows []RowKey, cols []ColKey, cells [][]float64) (*Dataset, error) {
	if len(cells) != len(rows) {
		return nil, fmt.Errorf("dataset: %d rows but %d cell rows", len(rows), len(cells))
	}

	// Drop status columns before anything else looks at the column index.
	keep := make([]int, 0, len(cols))
	for i, c := range cols {
		if strings.Contains(c.Metric, "Data Status") || strings.Contains(c.Sector, "Data Status") {
			continue
		}
		keep = append(keep, i)
	}

	d := &Dataset{
		rows:  make([]RowKey, len(rows)),
		cols:  make([]ColKey, len(keep)),
		cells: make([][]float64, len(rows)),
	}
	copy(d.rows, rows)
	for j, src := range keep {
		d.cols[j] = cols[src]
	}
	for i, row := range cells {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("dataset: row %d has %d cells, want %d", i, len(row), len(cols))
		}
		d.cells[i] = make([]float64, len(keep))
		for j, src := range keep {
			d.cells[i][j] = row[src]
		}
	}

	order := make([]int, len(d.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return d.rows[order[a]].Less(d.rows[order[b]])
	})
	sortedRows := make([]RowKey, len(d.rows))
	sortedCells := make([][]float64, len(d.cells))
	for i, src := range order {
		sortedRows[i] = d.rows[src]
		sortedCells[i] = d.cells[src]
	}
	d.rows = sortedRows
	d.cells = sortedCells

	for i := 1; i < len(d.rows); i++ {
		if d.rows[i] == d.rows[i-1] {
			return nil, fmt.Errorf("dataset: duplicate row key %s", d.rows[i])
		}
	}
	return d, nil
}

// NumRows returns the row count.
func (d *Dataset) NumRows() int { return len(d.rows) }

// NumCols returns the column count.
func (d *Dataset) NumCols() int { return len(d.cols) }

// Rows returns a copy of the row index.
func (d *Dataset) Rows() []RowKey {
	out := make([]RowKey, len(d.rows))
	copy(out, d.rows)
	return out
}

// Cols returns a copy of the column index.
func (d *Dataset) Cols() []ColKey {
	out := make([]ColKey, len(d.cols))
	copy(out, d.cols)
	return out
}

// Cell returns the value at (row, col) by position.
func (d *Dataset) Cell(row, col int) float64 {
	return d.cells[row][col]
}

// CellRow returns a copy of one row of cells.
func (d *Dataset) CellRow(row int) []float64 {
	out := make([]float64, len(d.cells[row]))
	copy(out, d.cells[row])
	return out
}

// Units returns the metric-to-unit mapping derived from the column index.
//
// The map is built from every column except the first: the leading column
// triple is the index anchor reserved for index labeling. Because each
// metric repeats across sectors, all metrics are still covered.
func (d *Dataset) Units() map[string]string {
	units := make(map[string]string)
	cols := d.cols
	if len(cols) > 0 {
		cols = cols[1:]
	}
	for _, c := range cols {
		units[c.Metric] = c.Unit
	}
	return units
}
