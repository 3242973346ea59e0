package daypanel

import (
	"strings"
	"testing"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
)

func day(y int, m time.Month, d, hh, mm int) event.Timestamp {
	return event.Timestamp{Time: time.Date(y, m, d, hh, mm, 0, 0, time.Local)}
}

func fixtures() []event.Event {
	return []event.Event{
		{
			ID:    "job-2",
			Title: "Flatbed pickup",
			Start: day(2025, time.March, 10, 14, 0),
			Details: event.JobDetails{
				Status: "confirmed",
				Notes:  "gate code 4411, call ahead",
			},
		},
		{
			ID:     "job-1",
			Title:  "Dump trailer - Acme",
			Start:  day(2025, time.March, 10, 0, 0),
			End:    day(2025, time.March, 12, 0, 0),
			AllDay: true,
		},
		{
			ID:    "call-1",
			Title: "Call back Smith",
			Start: day(2025, time.March, 10, 9, 30),
			Details: event.StandaloneCallReminderDetails{
				Phone: "555-0101",
			},
		},
		{
			ID:    "job-3",
			Title: "Enclosed dropoff",
			Start: day(2025, time.March, 14, 8, 0),
		},
	}
}

func TestEventsForOrdersAllDayFirst(t *testing.T) {
	r := &Renderer{Index: dayindex.Build(fixtures())}

	got := r.EventsFor(time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local))
	if len(got) != 3 {
		t.Fatalf("expected 3 events on march 10, got %d", len(got))
	}
	if got[0].ID != "job-1" {
		t.Errorf("expected all-day event first, got %s", got[0].ID)
	}
	if got[1].ID != "call-1" || got[2].ID != "job-2" {
		t.Errorf("expected timed events by start, got %s then %s", got[1].ID, got[2].ID)
	}
}

func TestEventsForFallbackMatchesIndex(t *testing.T) {
	events := fixtures()
	indexed := &Renderer{Index: dayindex.Build(events)}
	scanned := &Renderer{Events: events}

	for d := 9; d <= 15; d++ {
		date := time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local)
		a := indexed.EventsFor(date)
		b := scanned.EventsFor(date)
		if len(a) != len(b) {
			t.Fatalf("day %d: index found %d, scan found %d", d, len(a), len(b))
		}
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Errorf("day %d pos %d: index %s, scan %s", d, i, a[i].ID, b[i].ID)
			}
		}
	}
}

func TestEventsForAllDayExclusiveEnd(t *testing.T) {
	r := &Renderer{Events: fixtures()}

	// job-1 runs march 10-11 with an exclusive end of the 12th.
	if got := r.EventsFor(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.Local)); len(got) != 1 {
		t.Fatalf("expected job-1 on march 11, got %d events", len(got))
	}
	for _, e := range r.EventsFor(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)) {
		if e.ID == "job-1" {
			t.Error("exclusive end day must not include the all-day event")
		}
	}
}

func TestRenderEmptyDay(t *testing.T) {
	r := &Renderer{Index: dayindex.Build(fixtures()), Styles: DefaultStyles()}

	out := r.Render(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.Local), -1)
	if !strings.Contains(out, "no events") {
		t.Fatalf("expected empty-day placeholder, got %q", out)
	}
}

func TestRenderListsTitlesAndNotes(t *testing.T) {
	r := &Renderer{Index: dayindex.Build(fixtures()), Styles: DefaultStyles(), Width: 60}

	out := r.Render(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local), -1)
	for _, want := range []string{"Monday, March 10", "all-day", "Dump trailer - Acme", "09:30", "14:00", "gate code 4411"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRenderWrapsLongNotes(t *testing.T) {
	long := strings.Repeat("needs tandem axle ", 10)
	events := []event.Event{{
		ID:      "job-9",
		Title:   "Big haul",
		Start:   day(2025, time.April, 1, 10, 0),
		Details: event.JobDetails{Notes: long},
	}}
	r := &Renderer{Events: events, Styles: DefaultStyles(), Width: 40}

	out := r.Render(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local), -1)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 60 {
			t.Fatalf("expected notes wrapped near width, got line of %d chars: %q", len(line), line)
		}
	}
}
