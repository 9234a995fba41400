package dataset

import "strconv"

// KeySet holds the full row and column key listing returned when no level
// is named.
type KeySet struct {
	Rows []RowKey
	Cols []ColKey
}

// AllKeys returns every row key and every column key.
func (d *Dataset) AllKeys() KeySet {
	return KeySet{Rows: d.Rows(), Cols: d.Cols()}
}

// Keys returns the stringified values at one index level.
//
// Level is one of Year, Month, State, Sector, or Metric. Unit is not an
// enumerable level; it is only retrievable through Units. With unique set
// the values are deduplicated (first occurrence order); otherwise the raw
// per-row or per-column occurrence sequence is preserved.
func (d *Dataset) Keys(level string, unique bool) ([]string, error) {
	var values []string
	switch level {
	case KeyYear:
		for _, r := range d.rows {
			values = append(values, strconv.Itoa(r.Year))
		}
	case KeyMonth:
		for _, r := range d.rows {
			values = append(values, strconv.Itoa(r.Month))
		}
	case KeyState:
		for _, r := range d.rows {
			values = append(values, r.State)
		}
	case KeySector:
		for _, c := range d.cols {
			values = append(values, c.Sector)
		}
	case KeyMetric:
		for _, c := range d.cols {
			values = append(values, c.Metric)
		}
	default:
		return nil, NewUnknownAxisError(level)
	}

	if !unique {
		return values, nil
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}
