package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Index is a normalized 5-slot lookup key. Components are consumed
// left-to-right: Year, Month, State, Sector, Metric. Arity records how many
// slots are specified; unspecified slots are zero values and never read.
type Index struct {
	Year   int
	Month  int
	State  string
	Sector string
	Metric string

	arity int
}

// NewIndex builds an Index from 1 to 5 components. Year and Month must be
// ints, the remaining components strings. More than 5 components is an
// invalid-arity error.
func NewIndex(components ...any) (Index, error) {
	if len(components) > 5 {
		return Index{}, NewInvalidArityError(len(components))
	}
	if len(components) == 0 {
		return Index{}, &QueryError{Code: ErrCodeInvalidIndexArity, Message: "empty lookup tuple"}
	}

	var idx Index
	idx.arity = len(components)
	for i, c := range components {
		switch i {
		case 0, 1:
			n, ok := c.(int)
			if !ok {
				return Index{}, fmt.Errorf("lookup component %d: want int, got %T", i+1, c)
			}
			if i == 0 {
				idx.Year = n
			} else {
				idx.Month = n
			}
		default:
			s, ok := c.(string)
			if !ok {
				return Index{}, fmt.Errorf("lookup component %d: want string, got %T", i+1, c)
			}
			switch i {
			case 2:
				idx.State = s
			case 3:
				idx.Sector = s
			case 4:
				idx.Metric = s
			}
		}
	}
	return idx, nil
}

// Arity returns the number of specified components.
func (idx Index) Arity() int { return idx.arity }

func (idx Index) String() string {
	parts := []string{fmt.Sprintf("%d", idx.Year)}
	if idx.arity >= 2 {
		parts = append(parts, fmt.Sprintf("%d", idx.Month))
	}
	if idx.arity >= 3 {
		parts = append(parts, idx.State)
	}
	if idx.arity >= 4 {
		parts = append(parts, idx.Sector)
	}
	if idx.arity >= 5 {
		parts = append(parts, idx.Metric)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ResultKind tags the shape of a lookup result.
type ResultKind int

const (
	// ResultTable is a 2-D sub-table (1 or 2 row components consumed).
	ResultTable ResultKind = iota

	// ResultSeries is a 1-D slice of labeled values (3 or 4 components).
	ResultSeries

	// ResultScalar is a single value (all 5 components consumed).
	ResultScalar
)

// Result is the maximal matching projection for a partial-tuple lookup.
// Exactly one of Table, Series, or Scalar is meaningful, per Kind.
type Result struct {
	Kind   ResultKind
	Table  *Table
	Series *Series
	Scalar float64
}

// Len returns the row count of the result: table rows, series entries, or 1
// for a scalar.
func (r Result) Len() int {
	switch r.Kind {
	case ResultTable:
		return len(r.Table.Rows)
	case ResultSeries:
		return len(r.Series.Labels)
	default:
		return 1
	}
}

// Table is a materialized sub-table projection.
type Table struct {
	Rows  []RowKey
	Cols  []ColKey
	Cells [][]float64
}

// Series is a 1-D projection: one labeled value per retained column.
type Series struct {
	Labels []ColKey
	Values []float64
}

// Lookup answers a partial-tuple query. The row components (Year, Month,
// State) narrow the row index; once a single row is pinned, the Sector and
// Metric components narrow the column index. The result is the maximal
// matching sub-table, series, or scalar.
func (d *Dataset) Lookup(idx Index) (Result, error) {
	if idx.arity < 1 || idx.arity > 5 {
		return Result{}, NewInvalidArityError(idx.arity)
	}

	lo, hi := d.rowRange(idx)
	if lo == hi {
		return Result{}, NewKeyNotFoundError(idx.String())
	}

	if idx.arity <= 2 {
		t := &Table{
			Rows:  append([]RowKey(nil), d.rows[lo:hi]...),
			Cols:  append([]ColKey(nil), d.cols...),
			Cells: make([][]float64, hi-lo),
		}
		for i := lo; i < hi; i++ {
			t.Cells[i-lo] = d.CellRow(i)
		}
		return Result{Kind: ResultTable, Table: t}, nil
	}

	// A full row tuple pins exactly one row; transpose it into a series
	// indexed by the column keys, then narrow by sector and metric.
	row := d.cells[lo]
	s := &Series{}
	for j, c := range d.cols {
		if idx.arity >= 4 && c.Sector != idx.Sector {
			continue
		}
		if idx.arity >= 5 && c.Metric != idx.Metric {
			continue
		}
		s.Labels = append(s.Labels, c)
		s.Values = append(s.Values, row[j])
	}
	if len(s.Labels) == 0 {
		return Result{}, NewKeyNotFoundError(idx.String())
	}
	if idx.arity == 5 {
		return Result{Kind: ResultScalar, Scalar: s.Values[0]}, nil
	}
	return Result{Kind: ResultSeries, Series: s}, nil
}

// rowRange returns the half-open row interval matching the row components
// of idx. Rows are sorted, so the bounds are binary searches.
func (d *Dataset) rowRange(idx Index) (int, int) {
	cmp := func(k RowKey) int {
		if k.Year != idx.Year {
			return compareInt(k.Year, idx.Year)
		}
		if idx.arity < 2 {
			return 0
		}
		if k.Month != idx.Month {
			return compareInt(k.Month, idx.Month)
		}
		if idx.arity < 3 {
			return 0
		}
		return strings.Compare(k.State, idx.State)
	}
	lo := sort.Search(len(d.rows), func(i int) bool { return cmp(d.rows[i]) >= 0 })
	hi := sort.Search(len(d.rows), func(i int) bool { return cmp(d.rows[i]) > 0 })
	return lo, hi
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
