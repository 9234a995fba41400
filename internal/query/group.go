package query

import (
	"sort"

	"github.com/roach88/retailgrid/internal/dataset"
)

// Aggregate is one of the closed set of supported reduction functions.
type Aggregate int

const (
	AggSum Aggregate = iota
	AggMean
	AggMin
	AggMax
	AggCount
)

var aggregateNames = map[string]Aggregate{
	"sum":   AggSum,
	"mean":  AggMean,
	"min":   AggMin,
	"max":   AggMax,
	"count": AggCount,
}

// ParseAggregate resolves an aggregate function name.
func ParseAggregate(name string) (Aggregate, error) {
	agg, ok := aggregateNames[name]
	if !ok {
		return 0, NewUnknownAggregateError(name)
	}
	return agg, nil
}

func (a Aggregate) String() string {
	for name, agg := range aggregateNames {
		if agg == a {
			return name
		}
	}
	return "unknown"
}

// GroupSpec is one (axis, aggregate) grouping step.
type GroupSpec struct {
	Axis      string
	Aggregate Aggregate
}

// GroupBy applies grouping steps left to right. Each step groups the
// current frame by one axis and replaces it with the aggregated result, so
// chained groups operate on the already-aggregated table. The grouped axis
// becomes the sole remaining label axis; other label axes are dropped, the
// way a numeric aggregation discards non-numeric columns.
func (f *Frame) GroupBy(specs []GroupSpec) error {
	for _, spec := range specs {
		if err := f.groupOnce(spec); err != nil {
			return err
		}
	}
	return nil
}

func (f *Frame) groupOnce(spec GroupSpec) error {
	pos := f.axisPos(spec.Axis)
	if pos < 0 {
		return dataset.NewUnknownAxisError(spec.Axis)
	}

	groups := make(map[string][]int)
	var keys []string
	for i, tuple := range f.Index {
		k := tuple[pos]
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}
	sort.Slice(keys, func(a, b int) bool {
		return axisLess(spec.Axis, keys[a], keys[b])
	})

	newIndex := make([][]string, len(keys))
	newCells := make([][]float64, len(keys))
	for gi, k := range keys {
		newIndex[gi] = []string{k}
		row := make([]float64, len(f.Cols))
		for j := range f.Cols {
			var values []float64
			for _, ri := range groups[k] {
				if v := f.Cells[ri][j]; !dataset.IsMissing(v) {
					values = append(values, v)
				}
			}
			row[j] = reduce(spec.Aggregate, values)
		}
		newCells[gi] = row
	}

	f.Axes = []string{spec.Axis}
	f.Index = newIndex
	f.Cells = newCells
	return nil
}

// reduce applies one aggregate to the non-missing values of a group.
// Sum of an empty group is 0; min, max, and mean of an empty group are
// missing; count is always defined.
func reduce(agg Aggregate, values []float64) float64 {
	switch agg {
	case AggCount:
		return float64(len(values))
	case AggSum:
		var total float64
		for _, v := range values {
			total += v
		}
		return total
	case AggMean:
		if len(values) == 0 {
			return dataset.Missing
		}
		var total float64
		for _, v := range values {
			total += v
		}
		return total / float64(len(values))
	case AggMin:
		if len(values) == 0 {
			return dataset.Missing
		}
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case AggMax:
		if len(values) == 0 {
			return dataset.Missing
		}
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default:
		return dataset.Missing
	}
}
