package cache

import (
	"sort"
	"strings"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// Prefix namespaces every cached event snapshot in the shared store.
const Prefix = "cal-events-cache"

// Query identifies one logical events request: a visible date window plus the
// active filter set. Two queries with equal fingerprints are the same request
// as far as caching is concerned.
type Query struct {
	Start     time.Time
	End       time.Time
	Calendars []string
	Status    string
	Search    string
}

// Fingerprint renders the normalized cache key for q:
// cal-events-cache:<startDate>:<endDate>:<calendarIdsCsv>:<status>:<search>.
// Range bounds are truncated to the calendar date and calendar IDs are
// sorted, so ID order never changes the key.
func Fingerprint(q Query) string {
	ids := make([]string, len(q.Calendars))
	copy(ids, q.Calendars)
	sort.Strings(ids)

	return strings.Join([]string{
		Prefix,
		timeutil.DayKey(q.Start),
		timeutil.DayKey(q.End),
		strings.Join(ids, ","),
		q.Status,
		q.Search,
	}, ":")
}

// SameWindow reports whether two queries cover the same visible dates,
// ignoring filters. Background revalidation uses this to decide whether a
// late result still belongs to the view the user is looking at.
func SameWindow(a, b Query) bool {
	return timeutil.SameDay(a.Start, b.Start) && timeutil.SameDay(a.End, b.End)
}
