package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/calendars"
)

func addCalendars(topLevel *cobra.Command) {
	var selected []string
	var def string

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "show or change the calendar selection",
		Example: `
gts calendars
gts calendars --select 1,4,7
gts calendars --default 4
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			s := calendars.Calendars{
				Default: def,
				State:   cs.state,
			}
			if cmd.Flags().Changed("select") {
				s.Select = selected
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringSliceVar(&selected, "select", nil,
		"Replace the selected calendar IDs.")
	cmd.Flags().StringVar(&def, "default", "",
		"Set the calendar preselected for new jobs.")

	topLevel.AddCommand(cmd)
}
