package calendars

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/state"
)

// Calendars shows or changes which calendars the event queries cover.
// Select replaces the selection when non-nil; Default changes the calendar
// preselected for new jobs.
type Calendars struct {
	Select  []string
	Default string
	State   *state.Store
}

func (n *Calendars) Do(ctx context.Context) error {
	if n.State == nil {
		return errors.New("can not manage calendars, no state store")
	}

	if n.Select != nil {
		if err := n.State.SetSelectedCalendars(n.Select); err != nil {
			return err
		}
	}
	if n.Default != "" {
		if err := n.State.SetDefaultCalendar(n.Default); err != nil {
			return err
		}
	}

	selected := n.State.SelectedCalendars()
	def := n.State.DefaultCalendar()

	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint, color.Italic)

	fmt.Println("")
	_, _ = t.Println("Calendars")
	if len(selected) == 0 {
		_, _ = f.Println(" none selected")
		return nil
	}
	for _, id := range selected {
		if id == def {
			fmt.Printf(" %s (default)\n", id)
			continue
		}
		fmt.Printf(" %s\n", id)
	}
	return nil
}
