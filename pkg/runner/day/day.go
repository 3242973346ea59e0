package day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/ui/daypanel"
)

// Day fetches the month around Date and prints that day's panel.
type Day struct {
	Date       time.Time
	Calendars  []string
	Status     string
	Search     string
	Controller *fetch.Controller
}

func (n *Day) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not get day, no controller")
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	start, end := timeutil.MonthRange(n.Date)
	events := n.Controller.FetchEvents(ctx, cache.Query{
		Start:     start,
		End:       end,
		Calendars: n.Calendars,
		Status:    n.Status,
		Search:    n.Search,
	})

	r := daypanel.Renderer{
		Index:  dayindex.Build(events),
		Styles: daypanel.DefaultStyles(),
	}
	fmt.Println("")
	fmt.Print(r.Render(n.Date, -1))
	fmt.Println("")
	return nil
}
