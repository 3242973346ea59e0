package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("job-171dff69  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" event")
	default:
		_, _ = c.Println(" events")
	}
}

// Events prints a sorted event list: all-day events first, then by start.
func (pp *PrettyPrint) Events(events ...event.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	event.SortForDisplay(sorted)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range sorted {
		row := []interface{}{timeLabel(e), e.Title, statusLabel(e)}
		if pp.ShowID {
			row = append([]interface{}{e.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

func timeLabel(e event.Event) string {
	if e.AllDay {
		return "all-day"
	}
	if e.Start.IsZero() {
		return "unscheduled"
	}
	label := e.Start.Local().Format("15:04")
	if !e.End.IsZero() {
		label += "-" + e.End.Local().Format("15:04")
	}
	return label
}

func statusLabel(e event.Event) string {
	kind := ""
	switch e.Details.(type) {
	case event.JobDetails:
		kind = "job"
	case event.CallReminderDetails, event.StandaloneCallReminderDetails:
		kind = "call"
	case event.VirtualJobDetails:
		kind = "job (recurring)"
	case event.VirtualCallReminderDetails:
		kind = "call (recurring)"
	default:
		return ""
	}
	if status := e.Status(); status != "" {
		return kind + " · " + status
	}
	return kind
}

const width = len("11 12 13 14 15 16 17") // an example week

// MonthCount renders the compact month grid with days carrying events in
// bold. count holds per-day event counts, index 0 = the 1st.
func (pp *PrettyPrint) MonthCount(then time.Time, count []int) {
	d := startDay(then)
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := timeutil.DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		fmt.Print("   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Printf("%2d ", i+1)
		} else {
			_, _ = l1.Printf("%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

func startDay(then time.Time) time.Weekday {
	local := then.Local()
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location()).Weekday()
}
