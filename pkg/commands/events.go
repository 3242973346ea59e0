package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/commands/options"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/events"
)

func addEvents(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	wo := &options.WhenOptions{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "list the month's events",
		Example: `
gts events
gts events --month 2025-03 --status confirmed
gts events --calendar 1,4 --search acme
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			month, err := wo.ResolveMonth()
			if err != nil {
				return err
			}
			s := events.Events{
				ShowID:     io.ShowID,
				Month:      month,
				Calendars:  cs.calendarsOrSelected(fo.Calendars),
				Status:     fo.Status,
				Search:     fo.Search,
				Controller: cs.controller,
			}
			return s.Do(context.Background())
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddMonthArg(cmd, wo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
