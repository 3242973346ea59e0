package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/commands/options"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/job"
)

func addJob(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "create, update or delete jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJobCreate(cmd)
	addJobUpdate(cmd)
	addJobDelete(cmd)
	addJobStatus(cmd)

	topLevel.AddCommand(cmd)
}

func addJobCreate(topLevel *cobra.Command) {
	jo := &options.JobOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "create a job",
		Example: `
gts job create -t "Dump trailer - Acme" --start 2025-03-10T09:00:00Z --trailer T-4
gts job create -t "Weekend rental" --start 2025-03-14 --end 2025-03-17 --all-day
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
			req, err := jo.Request()
			if err != nil {
				return err
			}
			if req.CalendarID == "" {
				req.CalendarID = cs.state.DefaultCalendar()
			}
			s := job.Create{Client: client, Request: req}
			return s.Do(context.Background())
		},
	}

	options.AddJobArgs(cmd, jo)
	topLevel.AddCommand(cmd)
}

func addJobUpdate(topLevel *cobra.Command) {
	jo := &options.JobOptions{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "update a job",
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
			req, err := jo.Request()
			if err != nil {
				return err
			}
			s := job.Update{Client: client, ID: args[0], Request: req}
			return s.Do(context.Background())
		},
	}

	options.AddJobArgs(cmd, jo)
	topLevel.AddCommand(cmd)
}

func addJobDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a job and its reminders",
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
			s := job.Delete{Client: client, ID: args[0]}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addJobStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "change a job's status",
		Example: `
gts job status job-42 confirmed
gts job status job-42 completed
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("need a job id and a status")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			client, err := cs.apiClient()
			if err != nil {
				return err
			}
			s := job.SetStatus{Client: client, ID: args[0], Status: args[1]}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
