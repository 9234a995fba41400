package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/retailgrid/internal/query"
	"github.com/roach88/retailgrid/internal/render"
	"github.com/roach88/retailgrid/internal/reshape"
)

// NewQueryCommand creates the query command: the full pipeline from
// snapshot load through directive execution to rendered output.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query [DIRECTIVE ...]",
		Short: "Select, aggregate, and render the dataset",
		Long: `Query executes directives in the literal order given:

  select=AXIS:VALUE[,AXIS:VALUE...]   keep rows matching the criteria
  group=AXIS:AGG[,AXIS:AGG...]        aggregate over an axis (sum, mean, min, max, count)
  keys[=AXIS[,AXIS...]]               list axis values and stop
  index={pack|unpack|none}            row index presentation
  header={pack|unpack|none}           column header presentation
  units=glm                           rewrite units to the glm system
  precision=N                         round cells to N decimals (may be negative)
  format=NAME                         output format (default table)
  output=PATH[,opt:val...]            write to PATH instead of stdout

Axes are Year, Month, State, Sector, Metric.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args)
		},
	}
}

func runQuery(cmd *cobra.Command, opts *RootOptions, args []string) error {
	directives, err := ParseDirectives(args)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid directive", err)
	}

	d, err := loadDataset(cmd.Context(), opts)
	if err != nil {
		return err
	}

	frame := query.NewFrame(d)
	reshaper := reshape.New()
	reshaper.SetPrecision(2)

	formatName := "table"
	outputPath := ""
	outputOpts := render.Options{}

	for _, dir := range directives {
		switch dir.Name {
		case "select":
			criteria, err := parseCriteria(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid select", err)
			}
			if err := frame.Select(criteria); err != nil {
				return WrapExitError(ExitFailure, "select failed", err)
			}
		case "group":
			specs, err := parseGroupSpecs(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid group", err)
			}
			if err := frame.GroupBy(specs); err != nil {
				return WrapExitError(ExitFailure, "group failed", err)
			}
		case "keys":
			report, err := query.KeysReport(d, parseAxisList(dir))
			if err != nil {
				return WrapExitError(ExitFailure, "keys failed", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		case "index":
			mode, err := reshape.ParseIndexMode(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid index mode", err)
			}
			reshaper.SetIndexMode(mode)
		case "header":
			mode, err := reshape.ParseHeaderMode(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid header mode", err)
			}
			reshaper.SetHeaderMode(mode)
		case "units":
			if dir.Value != "glm" {
				return WrapExitError(ExitFailure, "invalid units",
					query.NewInvalidArgumentError("unknown unit system", dir.Value))
			}
			if err := reshaper.ApplyUnits(frame); err != nil {
				return WrapExitError(ExitFailure, "units failed", err)
			}
		case "precision":
			n, err := strconv.Atoi(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid precision",
					query.NewInvalidArgumentError("precision must be an integer", dir.Value))
			}
			reshaper.SetPrecision(n)
		case "format":
			formatName = dir.Value
		case "output":
			outputPath, outputOpts, err = parseOutput(dir.Value)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid output", err)
			}
		}
	}

	format, err := render.Lookup(formatName, outputOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "unavailable format", err)
	}

	doc := reshaper.Render(frame)

	if outputPath == "" {
		return format.Write(cmd.OutOrStdout(), doc, outputOpts)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output file", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("error closing output file", "path", outputPath, "error", closeErr)
		}
	}()
	if err := format.Write(f, doc, outputOpts); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	slog.Info("wrote output", "path", outputPath, "format", formatName, "rows", len(doc.Rows))
	return nil
}
