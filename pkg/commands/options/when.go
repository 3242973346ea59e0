package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// WhenOptions selects the month or day a read command covers.
type WhenOptions struct {
	Month string
	Date  string
}

// AddMonthArg registers the --month flag.
func AddMonthArg(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		"Month to show, YYYY-MM. Defaults to the current month.")
}

// ResolveMonth parses the --month value, defaulting to now.
func (o *WhenOptions) ResolveMonth() (time.Time, error) {
	if strings.TrimSpace(o.Month) == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01", o.Month, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", o.Month)
	}
	return t, nil
}

// ResolveDate parses a positional date argument, defaulting to today.
func (o *WhenOptions) ResolveDate() (time.Time, error) {
	if strings.TrimSpace(o.Date) == "" || o.Date == "today" {
		return time.Now(), nil
	}
	return timeutil.ParseDay(o.Date)
}
