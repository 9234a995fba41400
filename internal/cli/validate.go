package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/retailgrid/internal/dataset"
)

// stateCodes is the expected state axis: the 50 states plus DC.
var stateCodes = []string{
	"AK", "AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL",
	"GA", "HI", "IA", "ID", "IL", "IN", "KS", "KY", "LA", "MA",
	"MD", "ME", "MI", "MN", "MO", "MS", "MT", "NC", "ND", "NE",
	"NH", "NJ", "NM", "NV", "NY", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VA", "VT", "WA", "WI", "WV", "WY",
}

// NewValidateCommand creates the validate command: structural sanity
// checks against the loaded snapshot. Useful after a refresh to confirm
// the published workbook still has the shape the rest of the pipeline
// assumes.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the loaded snapshot's structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var failures []string
			check := func(ok bool, format string, args ...any) {
				if !ok {
					failures = append(failures, fmt.Sprintf(format, args...))
				}
			}

			years, err := d.Keys(dataset.KeyYear, true)
			if err != nil {
				return WrapExitError(ExitFailure, "validate failed", err)
			}
			check(len(years) > 0, "dataset has no years")
			minYear := 0
			for _, y := range years {
				n, convErr := strconv.Atoi(y)
				check(convErr == nil, "non-numeric year %q", y)
				if convErr != nil {
					continue
				}
				if minYear == 0 || n < minYear {
					minYear = n
				}
			}
			check(minYear >= 2010, "minimum year %d precedes 2010", minYear)

			months, err := d.Keys(dataset.KeyMonth, true)
			if err != nil {
				return WrapExitError(ExitFailure, "validate failed", err)
			}
			check(len(months) == 12, "expected 12 months, got %d", len(months))
			for _, m := range months {
				n, convErr := strconv.Atoi(m)
				check(convErr == nil && n >= 1 && n <= 12, "month %q out of range", m)
			}

			states, err := d.Keys(dataset.KeyState, true)
			if err != nil {
				return WrapExitError(ExitFailure, "validate failed", err)
			}
			check(sameSet(states, stateCodes), "state set mismatch: got %d states", len(states))

			sectors, err := d.Keys(dataset.KeySector, true)
			if err != nil {
				return WrapExitError(ExitFailure, "validate failed", err)
			}
			check(sameSet(sectors, dataset.Sectors), "sector set mismatch: %v", sectors)

			metrics, err := d.Keys(dataset.KeyMetric, true)
			if err != nil {
				return WrapExitError(ExitFailure, "validate failed", err)
			}
			check(sameSet(metrics, dataset.Metrics), "metric set mismatch: %v", metrics)

			units := d.Units()
			for metric, want := range dataset.StandardUnits {
				check(units[metric] == want, "metric %s reports unit %q, want %q", metric, units[metric], want)
			}

			// Lookup counts run against the most recent complete year: the
			// feed is published monthly, so the latest year is usually
			// partial and its row count proves nothing.
			if year := latestCompleteYear(d); year > 0 {
				checkLookup(d, check, year)
			} else {
				check(false, "no year carries all 12 months")
			}

			if len(failures) > 0 {
				for _, f := range failures {
					fmt.Fprintln(cmd.ErrOrStderr(), "FAIL:", f)
				}
				return NewExitError(ExitFailure, fmt.Sprintf("%d validation check(s) failed", len(failures)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

// latestCompleteYear returns the newest year whose row index carries all
// 12 months, or 0 when no year is complete.
func latestCompleteYear(d *dataset.Dataset) int {
	months := make(map[int]map[int]bool)
	for _, k := range d.Rows() {
		m, ok := months[k.Year]
		if !ok {
			m = make(map[int]bool, 12)
			months[k.Year] = m
		}
		m[k.Month] = true
	}
	year := 0
	for y, m := range months {
		if len(m) == 12 && y > year {
			year = y
		}
	}
	return year
}

func checkLookup(d *dataset.Dataset, check func(bool, string, ...any), year int) {
	checkArity := func(want int, components ...any) {
		idx, err := dataset.NewIndex(components...)
		if err != nil {
			check(false, "index %v: %v", components, err)
			return
		}
		res, err := d.Lookup(idx)
		if err != nil {
			check(false, "lookup %v: %v", components, err)
			return
		}
		check(res.Len() == want, "lookup %v returned %d entries, want %d", components, res.Len(), want)
	}

	checkArity(12*len(stateCodes), year)
	checkArity(len(stateCodes), year, 1)
	checkArity(len(dataset.Metrics), year, 1, "CA", dataset.SectorResidential)
	checkArity(1, year, 1, "CA", dataset.SectorResidential, dataset.MetricRevenue)
}

func sameSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}
