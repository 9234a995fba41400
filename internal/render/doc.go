// Package render writes a reshaped document to an output format.
//
// Formats live in an explicit registry mapping name to writer function.
// Each entry declares a typed options schema in CUE; options are validated
// against the schema when the format is looked up, so an unknown format or
// a malformed option fails before any output is produced. There is no
// reflective probing for writer methods.
package render

// Doc is the flat presentation shape handed over by the reshape stage.
//
// Headers holds zero or more header rows: one row when column labels were
// packed, three rows (sector, metric, unit) when left unpacked, none when
// header emission is suppressed. Every header row and every data row has
// the same width.
type Doc struct {
	Headers [][]string
	Rows    [][]string
}

// Width returns the column count of the document.
func (d *Doc) Width() int {
	if len(d.Headers) > 0 {
		return len(d.Headers[0])
	}
	if len(d.Rows) > 0 {
		return len(d.Rows[0])
	}
	return 0
}
