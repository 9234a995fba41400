// Package testutil provides deterministic dataset fixtures for tests.
package testutil

import (
	"github.com/roach88/retailgrid/internal/dataset"
)

// States lists the 51 region codes (50 states plus DC) present in the
// reference dataset.
var States = []string{
	"AK", "AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL", "GA",
	"HI", "IA", "ID", "IL", "IN", "KS", "KY", "LA", "MA", "MD", "ME",
	"MI", "MN", "MO", "MS", "MT", "NC", "ND", "NE", "NH", "NJ", "NM",
	"NV", "NY", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX",
	"UT", "VA", "VT", "WA", "WI", "WV", "WY",
}

// ReferenceDataset builds a deterministic dataset with the shape of the
// real feed: years 2010 through 2021, all 12 months, 51 regions, 5 sectors
// by 4 metrics. Cell values are a pure function of their key, so every
// test run sees identical data.
func ReferenceDataset() *dataset.Dataset {
	return buildDataset(2010, 2021, 12, States)
}

// SmallDataset builds a compact dataset (2 years, 3 regions, all months)
// for golden-file and rendering tests where the full fixture is noise.
func SmallDataset() *dataset.Dataset {
	return buildDataset(2020, 2021, 12, []string{"CA", "NY", "TX"})
}

// PartialReferenceDataset is the reference fixture plus a partial trailing
// year: 2022 stops at July, the shape of the monthly feed mid-year.
func PartialReferenceDataset() *dataset.Dataset {
	return buildDataset(2010, 2022, 7, States)
}

func buildDataset(firstYear, lastYear, lastYearMonths int, states []string) *dataset.Dataset {
	cols := ReferenceColumns()

	var rows []dataset.RowKey
	var cells [][]float64
	for year := firstYear; year <= lastYear; year++ {
		months := 12
		if year == lastYear {
			months = lastYearMonths
		}
		for month := 1; month <= months; month++ {
			for si, state := range states {
				rows = append(rows, dataset.RowKey{Year: year, Month: month, State: state})
				row := make([]float64, len(cols))
				for j := range cols {
					row[j] = cellValue(year, month, si, j)
				}
				cells = append(cells, row)
			}
		}
	}

	d, err := dataset.New(rows, cols, cells)
	if err != nil {
		panic(err) // fixture construction is deterministic; failure is a bug
	}
	return d
}

// ReferenceColumns returns the 20 column keys (5 sectors x 4 metrics) in
// workbook order with standard units.
func ReferenceColumns() []dataset.ColKey {
	var cols []dataset.ColKey
	for _, sector := range dataset.Sectors {
		for _, metric := range dataset.Metrics {
			cols = append(cols, dataset.ColKey{
				Sector: sector,
				Metric: metric,
				Unit:   dataset.StandardUnits[metric],
			})
		}
	}
	return cols
}

// cellValue derives a stable value from the cell's position. Spread the
// terms so that sums and means differ across rows and columns.
func cellValue(year, month, stateIdx, colIdx int) float64 {
	return float64((year-2000)*1000+month*100+stateIdx*10+colIdx) / 4.0
}
