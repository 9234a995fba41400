package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/retailgrid/internal/query"
)

// NewKeysCommand creates the keys command, a shortcut for the keys
// directive: list the value set of each named axis.
func NewKeysCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [AXIS ...]",
		Short: "List axis values present in the dataset",
		Long: `Keys lists the distinct values of each named axis. With no arguments it
lists all five enumerable axes (Year, Month, State, Sector, Metric); a
single axis prints its bare comma-joined value list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			var axes []string
			for _, arg := range args {
				for _, axis := range strings.Split(arg, ",") {
					if axis != "" {
						axes = append(axes, axis)
					}
				}
			}
			report, err := query.KeysReport(d, axes)
			if err != nil {
				return WrapExitError(ExitFailure, "keys failed", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
