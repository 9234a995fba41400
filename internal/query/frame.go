package query

import (
	"strconv"

	"github.com/roach88/retailgrid/internal/dataset"
)

// Frame is the mutable per-invocation working table. Label axes (initially
// Year, Month, State) are kept alongside the data columns; selection and
// grouping consume or collapse them.
//
// Index values are carried as strings with a canonical form per axis
// (integers rendered by strconv.Itoa for Year and Month), so comparing a
// coerced criterion against an index cell is a plain string compare.
type Frame struct {
	// Axes names the label axes, in index order.
	Axes []string

	// Index holds one label tuple per row, parallel to Axes.
	Index [][]string

	// Cols is the 3-part column index.
	Cols []dataset.ColKey

	// Cells holds the data, len(Index) rows by len(Cols) columns.
	Cells [][]float64
}

// NewFrame builds a working copy of the canonical snapshot with the row
// index demoted to label columns. The snapshot is never referenced again,
// so later stages are free to mutate the frame.
func NewFrame(d *dataset.Dataset) *Frame {
	rows := d.Rows()
	f := &Frame{
		Axes:  append([]string(nil), dataset.RowAxes...),
		Index: make([][]string, len(rows)),
		Cols:  d.Cols(),
		Cells: make([][]float64, len(rows)),
	}
	for i, r := range rows {
		f.Index[i] = []string{strconv.Itoa(r.Year), strconv.Itoa(r.Month), r.State}
		f.Cells[i] = d.CellRow(i)
	}
	return f
}

// NumRows returns the working row count.
func (f *Frame) NumRows() int { return len(f.Index) }

// axisPos returns the position of axis in f.Axes, or -1.
func (f *Frame) axisPos(axis string) int {
	for i, a := range f.Axes {
		if a == axis {
			return i
		}
	}
	return -1
}

// axisLess compares two index cells on one axis. Year and Month compare
// numerically; everything else lexicographically.
func axisLess(axis, a, b string) bool {
	if axis == dataset.KeyYear || axis == dataset.KeyMonth {
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return na < nb
		}
	}
	return a < b
}
