package render

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

func init() {
	register(Format{
		Name:          "json",
		Write:         writeJSON,
		OptionsSchema: jsonSchema,
	})
}

const jsonSchema = `
close({
	// indent enables pretty-printed output.
	indent?: "true" | "false"
})
`

// writeJSON emits one object per row keyed by column label, or plain
// arrays when header emission was suppressed. Multi-row headers collapse
// into colon-joined labels so keys stay flat.
func writeJSON(w io.Writer, doc *Doc, opts Options) error {
	enc := json.NewEncoder(w)
	if opts["indent"] == "true" {
		enc.SetIndent("", "  ")
	}

	if len(doc.Headers) == 0 {
		rows := make([][]any, len(doc.Rows))
		for i, row := range doc.Rows {
			rows[i] = typedRow(row)
		}
		return enc.Encode(rows)
	}

	labels := make([]string, doc.Width())
	for j := range labels {
		var parts []string
		for _, header := range doc.Headers {
			if header[j] != "" {
				parts = append(parts, header[j])
			}
		}
		labels[j] = strings.Join(parts, ":")
	}

	out := make([]map[string]any, len(doc.Rows))
	for i, row := range doc.Rows {
		obj := make(map[string]any, len(row))
		for j, cell := range row {
			obj[labels[j]] = typedCell(cell)
		}
		out[i] = obj
	}
	return enc.Encode(out)
}

func typedRow(row []string) []any {
	out := make([]any, len(row))
	for i, cell := range row {
		out[i] = typedCell(cell)
	}
	return out
}

// typedCell keeps numbers numeric in the JSON output. Empty cells (missing
// values) become null.
func typedCell(cell string) any {
	if cell == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	return cell
}
