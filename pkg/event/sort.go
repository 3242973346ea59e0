package event

import "sort"

// SortForDisplay orders events the way day views list them: all-day events
// first, then by ascending start. Stable so same-slot events keep server
// order.
func SortForDisplay(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].AllDay != events[j].AllDay {
			return events[i].AllDay
		}
		return events[i].Start.Before(events[j].Start.Time)
	})
}
