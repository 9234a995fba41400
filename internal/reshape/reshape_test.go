package reshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/query"
	"github.com/roach88/retailgrid/internal/reshape"
	"github.com/roach88/retailgrid/internal/testutil"
)

func smallFrame() *query.Frame {
	return query.NewFrame(testutil.SmallDataset())
}

func TestRender_Defaults(t *testing.T) {
	f := smallFrame()
	doc := reshape.New().Render(f)

	require.Len(t, doc.Headers, 1, "default header mode is pack")
	header := doc.Headers[0]

	// Label axes lead as plain columns, then packed data labels.
	assert.Equal(t, "Year", header[0])
	assert.Equal(t, "Month", header[1])
	assert.Equal(t, "State", header[2])
	assert.Equal(t, "RESIDENTIAL:Revenue:Thousand Dollars", header[3])

	require.Len(t, doc.Rows, f.NumRows())
	assert.Equal(t, "2020", doc.Rows[0][0])
	assert.Len(t, doc.Rows[0], len(header))
}

func TestRender_HeaderUnpack(t *testing.T) {
	r := reshape.New()
	r.SetHeaderMode(reshape.HeaderUnpack)
	doc := r.Render(smallFrame())

	require.Len(t, doc.Headers, 3, "one header row per column level")
	assert.Equal(t, "RESIDENTIAL", doc.Headers[0][3])
	assert.Equal(t, "Revenue", doc.Headers[1][3])
	assert.Equal(t, "Thousand Dollars", doc.Headers[2][3])

	// Index columns only carry their name on the first header row.
	assert.Equal(t, "Year", doc.Headers[0][0])
	assert.Equal(t, "", doc.Headers[1][0])
	assert.Equal(t, "", doc.Headers[2][0])
}

func TestRender_HeaderNone(t *testing.T) {
	r := reshape.New()
	r.SetHeaderMode(reshape.HeaderNone)
	doc := r.Render(smallFrame())

	assert.Empty(t, doc.Headers)
	assert.NotEmpty(t, doc.Rows)
}

func TestRender_IndexPack(t *testing.T) {
	r := reshape.New()
	r.SetIndexMode(reshape.IndexPack)
	doc := r.Render(smallFrame())

	assert.Equal(t, "Year:Month:State", doc.Headers[0][0])
	assert.Equal(t, "2020:1:CA", doc.Rows[0][0])
}

// TestPackUnpack_RoundTrip verifies that splitting a packed label on the
// documented delimiter recovers the original tuple values.
func TestPackUnpack_RoundTrip(t *testing.T) {
	r := reshape.New()
	r.SetIndexMode(reshape.IndexPack)
	doc := r.Render(smallFrame())

	assert.Equal(t, []string{"Year", "Month", "State"}, reshape.UnpackLabel(doc.Headers[0][0]))
	assert.Equal(t, []string{"2020", "1", "CA"}, reshape.UnpackLabel(doc.Rows[0][0]))

	cols := testutil.ReferenceColumns()
	for j, label := range doc.Headers[0][1:] {
		parts := reshape.UnpackLabel(label)
		require.Len(t, parts, 3)
		assert.Equal(t, cols[j].Sector, parts[0])
		assert.Equal(t, cols[j].Metric, parts[1])
		assert.Equal(t, cols[j].Unit, parts[2])
	}
}

func TestApplyUnits_SubstitutesAndForcesIndexPack(t *testing.T) {
	f := smallFrame()
	r := reshape.New()

	require.NoError(t, r.ApplyUnits(f))
	doc := r.Render(f)

	// Index packing happens as a side effect of selecting glm units.
	assert.Equal(t, "Year:Month:State", doc.Headers[0][0])
	assert.Equal(t, "2020:1:CA", doc.Rows[0][0])

	assert.Equal(t, "RESIDENTIAL_Revenue[$k]", doc.Headers[0][1])
	assert.Equal(t, "RESIDENTIAL_Sales[MWh]", doc.Headers[0][2])
	assert.Equal(t, "RESIDENTIAL_Customers[unit]", doc.Headers[0][3])
	assert.Equal(t, "RESIDENTIAL_Price[0.01$/kWh]", doc.Headers[0][4])
}

func TestApplyUnits_BroadcastsAcrossMetricColumns(t *testing.T) {
	f := smallFrame()
	r := reshape.New()
	require.NoError(t, r.ApplyUnits(f))

	for _, c := range f.Cols {
		assert.Equal(t, reshape.GLMUnits[c.Metric], c.Unit, "metric %s", c.Metric)
	}
}

func TestApplyUnits_RejectedTwice(t *testing.T) {
	f := smallFrame()
	r := reshape.New()

	require.NoError(t, r.ApplyUnits(f))
	err := r.ApplyUnits(f)
	require.Error(t, err)
	assert.True(t, reshape.IsUnitSystemConflict(err))
}

func TestApplyUnits_RejectedAfterPackingConfigured(t *testing.T) {
	r := reshape.New()
	r.SetHeaderMode(reshape.HeaderPack)

	err := r.ApplyUnits(smallFrame())
	require.Error(t, err)
	assert.True(t, reshape.IsUnitSystemConflict(err))
}

func TestApplyUnits_RequiresFullRowIndex(t *testing.T) {
	f := smallFrame()
	require.NoError(t, f.Select([]query.Criterion{{Axis: "Year", Value: "2020"}}))

	err := reshape.New().ApplyUnits(f)
	require.Error(t, err)
	assert.True(t, reshape.IsUnitSystemConflict(err))
}

func TestRender_GLMDropsShortKeys(t *testing.T) {
	cols := testutil.ReferenceColumns()
	cols = append(cols, dataset.ColKey{Sector: "TOTAL", Metric: "Flag", Unit: ""})

	rows := []dataset.RowKey{{Year: 2020, Month: 7, State: "CA"}}
	cells := [][]float64{make([]float64, len(cols))}
	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)

	f := query.NewFrame(d)
	r := reshape.New()
	require.NoError(t, r.ApplyUnits(f))
	doc := r.Render(f)

	// Index column plus the 20 complete keys; the unit-less column is
	// silently excluded.
	assert.Len(t, doc.Headers[0], 21)
	for _, label := range doc.Headers[0][1:] {
		assert.NotContains(t, label, "Flag")
	}
}

func TestRender_Precision(t *testing.T) {
	cols := testutil.ReferenceColumns()
	rows := []dataset.RowKey{{Year: 2020, Month: 7, State: "CA"}}
	cells := [][]float64{make([]float64, len(cols))}
	cells[0][0] = 1234.5678
	cells[0][1] = dataset.Missing
	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)

	render := func(prec int) []string {
		f := query.NewFrame(d)
		r := reshape.New()
		r.SetPrecision(prec)
		return r.Render(f).Rows[0]
	}

	row := render(2)
	assert.Equal(t, "1234.57", row[3])
	assert.Equal(t, "", row[4], "missing cells render empty")

	assert.Equal(t, "1235", render(0)[3])

	// Negative precision rounds into the integer digits.
	assert.Equal(t, "1230", render(-1)[3])
	assert.Equal(t, "1200", render(-2)[3])
}

func TestRender_FullPrecisionWhenUnset(t *testing.T) {
	cols := testutil.ReferenceColumns()
	rows := []dataset.RowKey{{Year: 2020, Month: 7, State: "CA"}}
	cells := [][]float64{make([]float64, len(cols))}
	cells[0][0] = 0.125
	d, err := dataset.New(rows, cols, cells)
	require.NoError(t, err)

	doc := reshape.New().Render(query.NewFrame(d))
	assert.Equal(t, "0.125", doc.Rows[0][3])
}

func TestParseModes(t *testing.T) {
	for _, s := range []string{"pack", "unpack", "none"} {
		_, err := reshape.ParseHeaderMode(s)
		assert.NoError(t, err, s)
		_, err = reshape.ParseIndexMode(s)
		assert.NoError(t, err, s)
	}

	_, err := reshape.ParseHeaderMode("fold")
	require.Error(t, err)
	assert.True(t, reshape.IsInvalidMode(err))

	_, err = reshape.ParseIndexMode("fold")
	require.Error(t, err)
	assert.True(t, reshape.IsInvalidMode(err))
}
