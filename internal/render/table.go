package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func init() {
	register(Format{
		Name:          "table",
		Write:         writeTable,
		OptionsSchema: tableSchema,
	})
}

const tableSchema = `
close({
	// separators disables thousands separators when "false".
	separators?: "true" | "false"
})
`

// writeTable renders an aligned plain-text table for terminal reading.
// Numeric cells are right-aligned and grouped with thousands separators.
func writeTable(w io.Writer, doc *Doc, opts Options) error {
	printer := message.NewPrinter(language.English)
	grouping := opts["separators"] != "false"

	format := func(cell string) (string, bool) {
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return cell, false
		}
		if !grouping {
			return cell, true
		}
		// Preserve the cell's rounded decimal places while the printer
		// inserts grouping separators in the integer part.
		scale := 0
		if dot := strings.IndexByte(cell, '.'); dot >= 0 {
			scale = len(cell) - dot - 1
		}
		return printer.Sprintf("%v", number.Decimal(n, number.Scale(scale))), true
	}

	rows := make([][]string, 0, len(doc.Headers)+len(doc.Rows))
	numeric := make([]bool, doc.Width())
	rows = append(rows, doc.Headers...)
	for _, row := range doc.Rows {
		formatted := make([]string, len(row))
		for j, cell := range row {
			f, isNum := format(cell)
			formatted[j] = f
			if isNum {
				numeric[j] = true
			}
		}
		rows = append(rows, formatted)
	}

	// Widths count runes, not bytes, so multibyte labels keep columns
	// aligned.
	widths := make([]int, doc.Width())
	for _, row := range rows {
		for j, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j], numeric[j])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func pad(cell string, width int, alignRight bool) string {
	gap := width - utf8.RuneCountInString(cell)
	if gap <= 0 {
		return cell
	}
	if alignRight {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}
