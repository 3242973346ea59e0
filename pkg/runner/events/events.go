package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/printers"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// Events fetches and prints the events for one month window.
type Events struct {
	ShowID     bool
	Month      time.Time
	Calendars  []string
	Status     string
	Search     string
	Controller *fetch.Controller
}

func (n *Events) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not get events, no controller")
	}
	if n.Month.IsZero() {
		n.Month = time.Now()
	}

	start, end := timeutil.MonthRange(n.Month)
	events := n.Controller.FetchEvents(ctx, cache.Query{
		Start:     start,
		End:       end,
		Calendars: n.Calendars,
		Status:    n.Status,
		Search:    n.Search,
	})

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount(n.Month.Local().Format("January 2006"), len(events))

	idx := dayindex.Build(events)
	count := make([]int, timeutil.DaysIn(n.Month))
	for i := range count {
		day := time.Date(start.Year(), start.Month(), i+1, 0, 0, 0, 0, start.Location())
		count[i] = len(idx.Lookup(day))
	}
	pp.MonthCount(n.Month, count)

	pp.Events(events...)
	return nil
}
