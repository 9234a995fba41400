package query

import (
	"sort"
	"strings"

	"github.com/roach88/retailgrid/internal/dataset"
)

// NamedAxes lists the five enumerable axes in their canonical order, used
// when a keys query names no axis.
var NamedAxes = []string{
	dataset.KeyYear,
	dataset.KeyMonth,
	dataset.KeyState,
	dataset.KeySector,
	dataset.KeyMetric,
}

// KeysReport answers a keys query: for each requested axis, the sorted,
// deduplicated, stringified value set. A single requested axis yields the
// bare comma-joined list; multiple axes (or none, meaning all five) yield
// one "Axis=v1,v2,..." line per axis.
//
// Values sort as strings after stringification, so months order as
// 1,10,11,12,2,... in the report. The presentation is a label list, not a
// numeric one.
func KeysReport(d *dataset.Dataset, axes []string) (string, error) {
	bare := len(axes) == 1
	if len(axes) == 0 {
		axes = NamedAxes
	}

	var lines []string
	for _, axis := range axes {
		values, err := d.Keys(axis, true)
		if err != nil {
			return "", err
		}
		sort.Strings(values)
		joined := strings.Join(values, ",")
		if bare {
			return joined, nil
		}
		lines = append(lines, axis+"="+joined)
	}
	return strings.Join(lines, "\n"), nil
}
