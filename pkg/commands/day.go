package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/commands/options"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	wo := &options.WhenOptions{}

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "show one day's schedule",
		Example: `
gts day
gts day today
gts day 2025-03-10
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				wo.Date = args[0]
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			date, err := wo.ResolveDate()
			if err != nil {
				return err
			}
			s := day.Day{
				Date:       date,
				Calendars:  cs.calendarsOrSelected(fo.Calendars),
				Status:     fo.Status,
				Search:     fo.Search,
				Controller: cs.controller,
			}
			return s.Do(context.Background())
		},
	}

	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
