package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/api"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/commands/options"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/reminder"
)

func addReminder(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "create or delete call reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addReminderCreate(cmd)
	addReminderDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addReminderCreate(topLevel *cobra.Command) {
	var jobID, contact, phone, at, notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "create a call reminder",
		Example: `
gts reminder create --job job-42 --at 2025-03-09
gts reminder create --contact "Pat Smith" --phone 555-0101 --at 2025-03-09T08:00:00Z
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			client, err := cs.apiClient()
			if err != nil {
				return err
			}

			when, err := options.ParseWhen(at)
			if err != nil {
				return err
			}

			s := reminder.Create{
				Client: client,
				Request: api.ReminderRequest{
					JobID:       jobID,
					ContactName: contact,
					Phone:       phone,
					At:          event.Timestamp{Time: when},
					Notes:       notes,
				},
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job to attach the reminder to.")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact name for a standalone reminder.")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number.")
	cmd.Flags().StringVar(&at, "at", "", "When to call, RFC3339 or YYYY-MM-DD.")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes.")

	topLevel.AddCommand(cmd)
}

func addReminderDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a call reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			client, err := cs.apiClient()
			if err != nil {
				return err
			}
			s := reminder.Delete{Client: client, ID: args[0]}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
