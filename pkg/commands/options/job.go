package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/api"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// JobOptions captures the job create/update flags.
type JobOptions struct {
	Calendar     string
	Title        string
	Start        string
	End          string
	AllDay       bool
	BusinessName string
	ContactName  string
	Phone        string
	TrailerID    string
	Status       string
	Notes        string
}

// AddJobArgs wires job fields on the provided command.
func AddJobArgs(cmd *cobra.Command, o *JobOptions) {
	cmd.Flags().StringVarP(&o.Calendar, "calendar", "c", "",
		"Calendar the job lands on. Defaults to the persisted default calendar.")
	cmd.Flags().StringVarP(&o.Title, "title", "t", "", "Job title.")
	cmd.Flags().StringVar(&o.Start, "start", "", "Start, RFC3339 or YYYY-MM-DD.")
	cmd.Flags().StringVar(&o.End, "end", "", "End, RFC3339 or YYYY-MM-DD.")
	cmd.Flags().BoolVar(&o.AllDay, "all-day", false, "All-day job.")
	cmd.Flags().StringVar(&o.BusinessName, "business", "", "Business name.")
	cmd.Flags().StringVar(&o.ContactName, "contact", "", "Contact name.")
	cmd.Flags().StringVar(&o.Phone, "phone", "", "Contact phone.")
	cmd.Flags().StringVar(&o.TrailerID, "trailer", "", "Trailer ID.")
	cmd.Flags().StringVar(&o.Status, "status", "", "Job status.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Free-form notes.")
}

// Request converts the flags into the API payload.
func (o *JobOptions) Request() (api.JobRequest, error) {
	req := api.JobRequest{
		CalendarID:   o.Calendar,
		Title:        o.Title,
		AllDay:       o.AllDay,
		BusinessName: o.BusinessName,
		ContactName:  o.ContactName,
		Phone:        o.Phone,
		TrailerID:    o.TrailerID,
		Status:       o.Status,
		Notes:        o.Notes,
	}

	if o.Start != "" {
		t, err := ParseWhen(o.Start)
		if err != nil {
			return api.JobRequest{}, err
		}
		req.Start = event.Timestamp{Time: t}
	}
	if o.End != "" {
		t, err := ParseWhen(o.End)
		if err != nil {
			return api.JobRequest{}, err
		}
		req.End = event.Timestamp{Time: t}
	}
	return req, nil
}

// ParseWhen accepts either an RFC3339 timestamp or a local YYYY-MM-DD date.
func ParseWhen(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := timeutil.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want RFC3339 or YYYY-MM-DD", v)
	}
	return t, nil
}
