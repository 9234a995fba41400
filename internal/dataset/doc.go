// Package dataset holds the normalized retail electricity dataset.
//
// A Dataset is a table with a 3-level row index (Year, Month, State) and a
// 3-level column index (Sector, Metric, Unit). It is constructed once per
// invocation from the source workbook and treated as immutable afterwards:
// the query and reshape stages operate on working copies, never on the
// canonical snapshot.
//
// ARCHITECTURE:
//
// Rows are kept sorted lexicographically by (Year, Month, State), so
// partial-tuple lookups are prefix scans over a sorted slice. Columns keep
// the source workbook ordering (sector-major), which the units() quirk
// depends on: the metric-to-unit map is derived from every column except
// the first, mirroring how the source reserves the leading column triple
// as the index anchor.
//
// Lookup results are a tagged variant (Table, Series, Scalar) rather than
// an arity-dependent tuple, so call sites never branch on how much of the
// index was consumed.
package dataset
