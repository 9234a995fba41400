package reshape

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/query"
	"github.com/roach88/retailgrid/internal/render"
)

// HeaderMode controls how the 3-part column keys are emitted.
type HeaderMode int

const (
	// HeaderPack collapses each column key into one colon-joined label.
	HeaderPack HeaderMode = iota

	// HeaderUnpack keeps the multi-level structure: one header row per level.
	HeaderUnpack

	// HeaderNone suppresses header emission entirely.
	HeaderNone
)

// IndexMode controls how the label axes are emitted.
type IndexMode int

const (
	// IndexDemote (the default) emits the label axes as plain leading columns.
	IndexDemote IndexMode = iota

	// IndexPack collapses the label axes into one compound column.
	IndexPack

	// IndexUnpack retains separate index columns for export.
	IndexUnpack
)

// ParseHeaderMode resolves a header directive value.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch s {
	case "pack":
		return HeaderPack, nil
	case "unpack":
		return HeaderUnpack, nil
	case "none":
		return HeaderNone, nil
	default:
		return 0, &ReshapeError{
			Code:    ErrCodeInvalidArgument,
			Message: fmt.Sprintf("header mode %q: want pack, unpack, or none", s),
		}
	}
}

// ParseIndexMode resolves an index directive value.
func ParseIndexMode(s string) (IndexMode, error) {
	switch s {
	case "pack":
		return IndexPack, nil
	case "unpack":
		return IndexUnpack, nil
	case "none":
		return IndexDemote, nil
	default:
		return 0, &ReshapeError{
			Code:    ErrCodeInvalidArgument,
			Message: fmt.Sprintf("index mode %q: want pack, unpack, or none", s),
		}
	}
}

// GLMUnits is the unit substitution table for the glm unit system.
var GLMUnits = map[string]string{
	dataset.MetricRevenue:   "$k",
	dataset.MetricSales:     "MWh",
	dataset.MetricCustomers: "unit",
	dataset.MetricPrice:     "0.01$/kWh",
}

// Reshaper accumulates presentation directives for one invocation and
// renders the final document. The zero value is not usable; call New.
type Reshaper struct {
	header HeaderMode
	index  IndexMode

	precision    int
	hasPrecision bool

	glm          bool
	modesTouched bool
}

// New returns a Reshaper with the invocation defaults: packed header,
// demoted index, full precision.
func New() *Reshaper {
	return &Reshaper{header: HeaderPack, index: IndexDemote}
}

// SetHeaderMode records the header directive. From this point the unit
// transform is no longer available.
func (r *Reshaper) SetHeaderMode(m HeaderMode) {
	r.header = m
	r.modesTouched = true
}

// SetIndexMode records the index directive.
func (r *Reshaper) SetIndexMode(m IndexMode) {
	r.index = m
	r.modesTouched = true
}

// SetPrecision fixes the decimal count for numeric cells. Negative counts
// round to tens, hundreds, and so on.
func (r *Reshaper) SetPrecision(n int) {
	r.precision = n
	r.hasPrecision = true
}

// ApplyUnits switches the frame to the glm unit system: every column's
// unit component is rewritten through the substitution table, uniformly
// across each metric's columns.
//
// The transform is rejected when requested a second time, after a packing
// mode has been chosen, or when the frame's row index has fewer than 3
// levels. Selecting glm units forces the index into packed form.
func (r *Reshaper) ApplyUnits(f *query.Frame) error {
	if r.glm {
		return &ReshapeError{
			Code:    ErrCodeUnitSystemConflict,
			Message: "unit system requested twice in one invocation",
		}
	}
	if r.modesTouched {
		return &ReshapeError{
			Code:    ErrCodeUnitSystemConflict,
			Message: "unit system requested after header or index packing",
		}
	}
	if len(f.Axes) < 3 {
		return &ReshapeError{
			Code:    ErrCodeUnitSystemConflict,
			Message: fmt.Sprintf("unit system needs a full row index (have %d levels)", len(f.Axes)),
		}
	}

	for j := range f.Cols {
		if unit, ok := GLMUnits[f.Cols[j].Metric]; ok {
			f.Cols[j].Unit = unit
		}
	}
	r.glm = true
	r.index = IndexPack
	return nil
}

// Render produces the flat document for the output sink.
func (r *Reshaper) Render(f *query.Frame) *render.Doc {
	doc := &render.Doc{}

	// Column selection: under glm with packed headers, columns whose key
	// does not carry exactly three non-empty components are dropped rather
	// than erroring.
	keep := make([]int, 0, len(f.Cols))
	for j, c := range f.Cols {
		if r.glm && r.header == HeaderPack {
			if c.Sector == "" || c.Metric == "" || c.Unit == "" {
				continue
			}
		}
		keep = append(keep, j)
	}

	doc.Headers = r.headerRows(f, keep)
	doc.Rows = r.dataRows(f, keep)
	return doc
}

// headerRows builds zero, one, or three header rows per the header mode.
func (r *Reshaper) headerRows(f *query.Frame, keep []int) [][]string {
	if r.header == HeaderNone {
		return nil
	}

	indexLabels := r.indexHeaderLabels(f)

	if r.header == HeaderUnpack {
		rows := make([][]string, 3)
		for level := 0; level < 3; level++ {
			row := make([]string, 0, len(indexLabels)+len(keep))
			for _, label := range indexLabels {
				if level == 0 {
					row = append(row, label)
				} else {
					row = append(row, "")
				}
			}
			for _, j := range keep {
				c := f.Cols[j]
				switch level {
				case 0:
					row = append(row, c.Sector)
				case 1:
					row = append(row, c.Metric)
				case 2:
					row = append(row, c.Unit)
				}
			}
			rows[level] = row
		}
		return rows
	}

	// Packed: one row of compound labels.
	row := make([]string, 0, len(indexLabels)+len(keep))
	row = append(row, indexLabels...)
	for _, j := range keep {
		row = append(row, r.packLabel(f.Cols[j]))
	}
	return [][]string{row}
}

// packLabel collapses one column key into its compound label: colon-joined
// non-empty components, or Sector_Metric[Unit] under the glm unit system.
func (r *Reshaper) packLabel(c dataset.ColKey) string {
	if r.glm {
		return fmt.Sprintf("%s_%s[%s]", c.Sector, c.Metric, c.Unit)
	}
	var parts []string
	for _, p := range []string{c.Sector, c.Metric, c.Unit} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ":")
}

// indexHeaderLabels returns the header labels contributed by the label
// axes: one compound name when packed, one name per axis otherwise.
func (r *Reshaper) indexHeaderLabels(f *query.Frame) []string {
	if len(f.Axes) == 0 {
		return nil
	}
	if r.index == IndexPack {
		return []string{strings.Join(f.Axes, ":")}
	}
	return append([]string(nil), f.Axes...)
}

// dataRows renders the cell matrix with the configured precision, index
// labels leading each row.
func (r *Reshaper) dataRows(f *query.Frame, keep []int) [][]string {
	rows := make([][]string, len(f.Cells))
	for i, cells := range f.Cells {
		var row []string
		if len(f.Axes) > 0 {
			if r.index == IndexPack {
				row = append(row, strings.Join(f.Index[i], ":"))
			} else {
				row = append(row, f.Index[i]...)
			}
		}
		for _, j := range keep {
			row = append(row, r.formatCell(cells[j]))
		}
		rows[i] = row
	}
	return rows
}

// formatCell renders one numeric cell. Missing values become empty
// strings; otherwise the configured precision applies.
func (r *Reshaper) formatCell(v float64) string {
	if dataset.IsMissing(v) {
		return ""
	}
	if !r.hasPrecision {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if r.precision >= 0 {
		return strconv.FormatFloat(v, 'f', r.precision, 64)
	}
	scale := math.Pow(10, float64(-r.precision))
	return strconv.FormatFloat(math.Round(v/scale)*scale, 'f', 0, 64)
}

// UnpackLabel splits a packed compound label back into its components
// using the documented delimiter.
func UnpackLabel(label string) []string {
	return strings.Split(label, ":")
}
