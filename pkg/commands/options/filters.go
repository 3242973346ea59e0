// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the event query filters shared by read commands.
type FilterOptions struct {
	Calendars []string
	Status    string
	Search    string
}

// AddFilterArgs wires filter flags on the provided command. An empty
// --calendar falls back to the persisted selection.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringSliceVarP(&o.Calendars, "calendar", "c", nil,
		"Calendar IDs to query. Defaults to the persisted selection.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Only events with this job status.")
	cmd.Flags().StringVar(&o.Search, "search", "",
		"Only events matching this search text.")
}
