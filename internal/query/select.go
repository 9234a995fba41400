package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/retailgrid/internal/dataset"
)

// Criterion is one axis-name to literal-value selection pair. Criteria
// order matters: it becomes the new composite index order.
type Criterion struct {
	Axis  string
	Value string
}

// Select re-indexes the frame on the criteria axes, sorts the new index,
// and keeps only the rows matching the criteria tuple. The consumed axes
// are dropped; remaining label axes stay on the frame, so a single-row
// match still comes back as a one-row table rather than a flattened
// series.
//
// Values are coerced per axis: Year and Month must parse as integers,
// State stays a string. A tuple with no matching rows is a key-not-found
// error.
func (f *Frame) Select(criteria []Criterion) error {
	if len(criteria) == 0 {
		return NewInvalidArgumentError("empty selection", "")
	}

	// Later criteria on the same axis override earlier ones, keeping the
	// first occurrence's position in the new index order.
	var axes []string
	want := make(map[string]string)
	for _, c := range criteria {
		coerced, err := coerceAxisValue(c.Axis, c.Value)
		if err != nil {
			return err
		}
		if _, seen := want[c.Axis]; !seen {
			axes = append(axes, c.Axis)
		}
		want[c.Axis] = coerced
	}

	positions := make([]int, len(axes))
	for i, axis := range axes {
		pos := f.axisPos(axis)
		if pos < 0 {
			return dataset.NewUnknownAxisError(axis)
		}
		positions[i] = pos
	}

	// New axis order: criteria axes first, then the rest.
	consumed := make(map[int]bool, len(positions))
	for _, p := range positions {
		consumed[p] = true
	}
	var rest []int
	for p := range f.Axes {
		if !consumed[p] {
			rest = append(rest, p)
		}
	}
	order := append(append([]int(nil), positions...), rest...)

	newAxes := make([]string, len(order))
	for i, p := range order {
		newAxes[i] = f.Axes[p]
	}
	newIndex := make([][]string, len(f.Index))
	for i, tuple := range f.Index {
		reordered := make([]string, len(order))
		for j, p := range order {
			reordered[j] = tuple[p]
		}
		newIndex[i] = reordered
	}
	f.Axes = newAxes
	f.Index = newIndex

	f.sortRows()

	// Keep rows whose leading tuple matches the criteria values.
	var keptIndex [][]string
	var keptCells [][]float64
	for i, tuple := range f.Index {
		match := true
		for j, axis := range axes {
			if tuple[j] != want[axis] {
				match = false
				break
			}
		}
		if match {
			keptIndex = append(keptIndex, tuple[len(axes):])
			keptCells = append(keptCells, f.Cells[i])
		}
	}
	if len(keptIndex) == 0 {
		vals := make([]string, len(axes))
		for i, axis := range axes {
			vals[i] = want[axis]
		}
		return dataset.NewKeyNotFoundError("(" + strings.Join(vals, ", ") + ")")
	}

	f.Axes = f.Axes[len(axes):]
	f.Index = keptIndex
	f.Cells = keptCells
	return nil
}

// sortRows orders the frame rows by the current index tuple, comparing
// each axis with its native ordering.
func (f *Frame) sortRows() {
	order := make([]int, len(f.Index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := f.Index[order[a]], f.Index[order[b]]
		for j, axis := range f.Axes {
			if ta[j] == tb[j] {
				continue
			}
			return axisLess(axis, ta[j], tb[j])
		}
		return false
	})
	sortedIndex := make([][]string, len(f.Index))
	sortedCells := make([][]float64, len(f.Cells))
	for i, src := range order {
		sortedIndex[i] = f.Index[src]
		sortedCells[i] = f.Cells[src]
	}
	f.Index = sortedIndex
	f.Cells = sortedCells
}

// coerceAxisValue normalizes a selection literal for one axis.
func coerceAxisValue(axis, value string) (string, error) {
	switch axis {
	case dataset.KeyYear, dataset.KeyMonth:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "", NewInvalidArgumentError(axis+" must be an integer", value)
		}
		return strconv.Itoa(n), nil
	default:
		return value, nil
	}
}
