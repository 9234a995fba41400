package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/testutil"
)

func mustIndex(t *testing.T, components ...any) dataset.Index {
	t.Helper()
	idx, err := dataset.NewIndex(components...)
	require.NoError(t, err)
	return idx
}

func TestLookup_Year(t *testing.T) {
	d := testutil.ReferenceDataset()

	res, err := d.Lookup(mustIndex(t, 2020))
	require.NoError(t, err)
	assert.Equal(t, dataset.ResultTable, res.Kind)
	assert.Equal(t, 612, res.Len(), "12 months x 51 regions")
}

func TestLookup_YearMonth(t *testing.T) {
	d := testutil.ReferenceDataset()

	res, err := d.Lookup(mustIndex(t, 2020, 7))
	require.NoError(t, err)
	assert.Equal(t, dataset.ResultTable, res.Kind)
	assert.Equal(t, 51, res.Len(), "one row per region")
}

func TestLookup_YearMonthState(t *testing.T) {
	d := testutil.ReferenceDataset()

	res, err := d.Lookup(mustIndex(t, 2020, 7, "CA"))
	require.NoError(t, err)
	assert.Equal(t, dataset.ResultSeries, res.Kind)

	// The fixture carries exactly the 20 data columns (5 sectors x 4
	// metrics). The live feed has been observed to return 21 entries here
	// because its raw sheet carries a vestigial leading column triple that
	// survives normalization in one code path. Pin the fixture count and
	// keep the discrepancy visible rather than asserting either number
	// against the live feed.
	assert.Equal(t, 20, res.Len())
}

func TestLookup_YearMonthStateSector(t *testing.T) {
	d := testutil.ReferenceDataset()

	res, err := d.Lookup(mustIndex(t, 2020, 7, "CA", dataset.SectorResidential))
	require.NoError(t, err)
	assert.Equal(t, dataset.ResultSeries, res.Kind)
	assert.Equal(t, 4, res.Len(), "one entry per metric")

	for _, label := range res.Series.Labels {
		assert.Equal(t, dataset.SectorResidential, label.Sector)
	}
}

func TestLookup_FullTuple(t *testing.T) {
	d := testutil.ReferenceDataset()

	res, err := d.Lookup(mustIndex(t, 2020, 7, "CA", dataset.SectorResidential, dataset.MetricRevenue))
	require.NoError(t, err)
	assert.Equal(t, dataset.ResultScalar, res.Kind)
	assert.Equal(t, 1, res.Len())

	// Cross-check against a direct positional read.
	rows := d.Rows()
	cols := d.Cols()
	for i, r := range rows {
		if r.Year != 2020 || r.Month != 7 || r.State != "CA" {
			continue
		}
		for j, c := range cols {
			if c.Sector == dataset.SectorResidential && c.Metric == dataset.MetricRevenue {
				assert.Equal(t, d.Cell(i, j), res.Scalar)
			}
		}
	}
}

func TestLookup_TooManyComponents(t *testing.T) {
	_, err := dataset.NewIndex(2020, 7, "CA", "RESIDENTIAL", "Revenue", "extra")
	require.Error(t, err)
	assert.True(t, dataset.IsInvalidIndexArity(err))
}

func TestLookup_KeyNotFound(t *testing.T) {
	d := testutil.ReferenceDataset()

	_, err := d.Lookup(mustIndex(t, 1999))
	require.Error(t, err)
	assert.True(t, dataset.IsKeyNotFound(err))

	_, err = d.Lookup(mustIndex(t, 2020, 7, "ZZ"))
	require.Error(t, err)
	assert.True(t, dataset.IsKeyNotFound(err))

	_, err = d.Lookup(mustIndex(t, 2020, 7, "CA", "AGRICULTURAL"))
	require.Error(t, err)
	assert.True(t, dataset.IsKeyNotFound(err))
}

// TestLookup_MatchesDirectScan verifies the partial-tuple lookup against a
// fully-materialized filter for every arity of row component.
func TestLookup_MatchesDirectScan(t *testing.T) {
	d := testutil.ReferenceDataset()
	rows := d.Rows()

	count := func(pred func(dataset.RowKey) bool) int {
		n := 0
		for _, r := range rows {
			if pred(r) {
				n++
			}
		}
		return n
	}

	res, err := d.Lookup(mustIndex(t, 2015))
	require.NoError(t, err)
	assert.Equal(t, count(func(r dataset.RowKey) bool { return r.Year == 2015 }), res.Len())

	res, err = d.Lookup(mustIndex(t, 2015, 3))
	require.NoError(t, err)
	assert.Equal(t, count(func(r dataset.RowKey) bool { return r.Year == 2015 && r.Month == 3 }), res.Len())
}

func TestKeys_Unique(t *testing.T) {
	d := testutil.ReferenceDataset()

	years, err := d.Keys(dataset.KeyYear, true)
	require.NoError(t, err)
	assert.Len(t, years, 12)
	assert.Equal(t, "2010", years[0])

	months, err := d.Keys(dataset.KeyMonth, true)
	require.NoError(t, err)
	assert.Len(t, months, 12)

	states, err := d.Keys(dataset.KeyState, true)
	require.NoError(t, err)
	assert.Len(t, states, 51)
	assert.Contains(t, states, "DC")

	sectors, err := d.Keys(dataset.KeySector, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, dataset.Sectors, sectors)

	metrics, err := d.Keys(dataset.KeyMetric, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, dataset.Metrics, metrics)
}

// TestKeys_UniqueMatchesScan checks the dedup path against a manual scan
// for every enumerable axis.
func TestKeys_UniqueMatchesScan(t *testing.T) {
	d := testutil.ReferenceDataset()

	for _, axis := range []string{
		dataset.KeyYear, dataset.KeyMonth, dataset.KeyState,
		dataset.KeySector, dataset.KeyMetric,
	} {
		raw, err := d.Keys(axis, false)
		require.NoError(t, err)
		uniq, err := d.Keys(axis, true)
		require.NoError(t, err)

		seen := map[string]bool{}
		var want []string
		for _, v := range raw {
			if !seen[v] {
				seen[v] = true
				want = append(want, v)
			}
		}
		assert.Equal(t, want, uniq, "axis %s", axis)
	}
}

func TestKeys_RawPreservesOccurrence(t *testing.T) {
	d := testutil.ReferenceDataset()

	states, err := d.Keys(dataset.KeyState, false)
	require.NoError(t, err)
	assert.Len(t, states, d.NumRows())

	sectors, err := d.Keys(dataset.KeySector, false)
	require.NoError(t, err)
	assert.Len(t, sectors, d.NumCols())
}

func TestKeys_UnknownAxis(t *testing.T) {
	d := testutil.ReferenceDataset()

	_, err := d.Keys("Region", true)
	require.Error(t, err)
	assert.True(t, dataset.IsUnknownAxis(err))

	// Unit labels columns but is not an enumerable level.
	_, err = d.Keys(dataset.KeyUnit, true)
	require.Error(t, err)
	assert.True(t, dataset.IsUnknownAxis(err))
}

func TestAllKeys(t *testing.T) {
	d := testutil.SmallDataset()

	ks := d.AllKeys()
	assert.Len(t, ks.Rows, d.NumRows())
	assert.Len(t, ks.Cols, d.NumCols())
}

func TestUnits(t *testing.T) {
	d := testutil.ReferenceDataset()

	assert.Equal(t, map[string]string{
		"Revenue":   "Thousand Dollars",
		"Sales":     "Megawatthours",
		"Customers": "Count",
		"Price":     "Cents/kWh",
	}, d.Units())
}

// TestUnits_SkipsAnchorColumn pins the quirk that the metric-to-unit map is
// built from every column except the first.
func TestUnits_SkipsAnchorColumn(t *testing.T) {
	cols := []dataset.ColKey{
		{Sector: "ANCHOR", Metric: "Label", Unit: "None"},
	}
	cols = append(cols, testutil.ReferenceColumns()...)

	rows := []dataset.RowKey{{Year: 2020, Month: 1, State: "CA"}}
	cells := [][]float64{make([]float64, len(cols))}

	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)

	units := d.Units()
	assert.NotContains(t, units, "Label")
	assert.Len(t, units, 4)
}

func TestNew_DropsStatusColumns(t *testing.T) {
	cols := testutil.ReferenceColumns()
	cols = append(cols, dataset.ColKey{Sector: "RESIDENTIAL", Metric: "Data Status", Unit: ""})

	rows := []dataset.RowKey{{Year: 2020, Month: 1, State: "CA"}}
	cells := [][]float64{make([]float64, len(cols))}

	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)
	assert.Equal(t, 20, d.NumCols())
}

func TestNew_SortsRows(t *testing.T) {
	cols := testutil.ReferenceColumns()
	rows := []dataset.RowKey{
		{Year: 2021, Month: 1, State: "CA"},
		{Year: 2020, Month: 12, State: "NY"},
		{Year: 2020, Month: 12, State: "AK"},
	}
	cells := [][]float64{
		make([]float64, len(cols)),
		make([]float64, len(cols)),
		make([]float64, len(cols)),
	}

	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)

	sorted := d.Rows()
	assert.Equal(t, dataset.RowKey{Year: 2020, Month: 12, State: "AK"}, sorted[0])
	assert.Equal(t, dataset.RowKey{Year: 2020, Month: 12, State: "NY"}, sorted[1])
	assert.Equal(t, dataset.RowKey{Year: 2021, Month: 1, State: "CA"}, sorted[2])
}

func TestNew_RejectsDuplicateRowKeys(t *testing.T) {
	cols := testutil.ReferenceColumns()
	rows := []dataset.RowKey{
		{Year: 2020, Month: 1, State: "CA"},
		{Year: 2020, Month: 1, State: "CA"},
	}
	cells := [][]float64{
		make([]float64, len(cols)),
		make([]float64, len(cols)),
	}

	_, err := dataset.New(rows, cols, cells)
	require.Error(t, err)
}
