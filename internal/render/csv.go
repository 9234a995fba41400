package render

import (
	"encoding/csv"
	"io"
)

func init() {
	register(Format{
		Name:          "csv",
		Write:         writeCSV(','),
		OptionsSchema: delimitedSchema,
	})
	register(Format{
		Name:          "tsv",
		Write:         writeCSV('\t'),
		OptionsSchema: delimitedSchema,
	})
}

const delimitedSchema = `
import "strings"

close({
	// delimiter overrides the format's field separator (single rune).
	delimiter?: string & strings.MinRunes(1) & strings.MaxRunes(1)
	// crlf selects \r\n line termination.
	crlf?: "true" | "false"
})
`

func writeCSV(defaultComma rune) WriterFunc {
	return func(w io.Writer, doc *Doc, opts Options) error {
		cw := csv.NewWriter(w)
		cw.Comma = defaultComma
		if d := opts["delimiter"]; d != "" {
			cw.Comma = []rune(d)[0]
		}
		cw.UseCRLF = opts["crlf"] == "true"

		for _, header := range doc.Headers {
			if err := cw.Write(header); err != nil {
				return err
			}
		}
		for _, row := range doc.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
}
