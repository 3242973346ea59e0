package dayindex

import (
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// maxSpanDays bounds how many day buckets a single event may occupy, as a
// guard against runaway spans from bad server data.
const maxSpanDays = 60

// Index maps local YYYY-MM-DD day keys to the events overlapping that day.
// It is rebuilt wholesale from each fetch result, never patched.
type Index struct {
	buckets map[string][]event.Event
}

// Build indexes every event with a start. All-day events use an exclusive
// end (converted to inclusive by backing off one millisecond); timed events
// without an end occupy only their start day. Events without a start are
// skipped.
func Build(events []event.Event) *Index {
	idx := &Index{buckets: make(map[string][]event.Event)}
	for _, e := range events {
		if e.Start.IsZero() {
			continue
		}

		startDay := timeutil.TruncateToDay(e.Start.Time)
		endDay := startDay
		if !e.End.IsZero() {
			end := e.End.Time
			if e.AllDay {
				end = end.Add(-time.Millisecond)
			}
			if end.After(e.Start.Time) {
				endDay = timeutil.TruncateToDay(end)
			}
		}

		for day, n := startDay, 0; !day.After(endDay) && n < maxSpanDays; day, n = day.AddDate(0, 0, 1), n+1 {
			key := timeutil.DayKey(day)
			idx.buckets[key] = append(idx.buckets[key], e)
		}
	}
	return idx
}

// Lookup returns the events overlapping the given date. The result is never
// nil.
func (idx *Index) Lookup(date time.Time) []event.Event {
	if idx == nil {
		return []event.Event{}
	}
	if events, ok := idx.buckets[timeutil.DayKey(date)]; ok {
		return events
	}
	return []event.Event{}
}

// Days returns how many distinct day buckets the index holds.
func (idx *Index) Days() int {
	if idx == nil {
		return 0
	}
	return len(idx.buckets)
}
