package daypanel

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
)

// Workspace is the job-editing collaborator a day panel routes open actions
// through; the panel itself never edits jobs.
type Workspace interface {
	OpenJob(id string) error
}

// Styles controls the panel's rendering.
type Styles struct {
	Title    lipgloss.Style
	Time     lipgloss.Style
	Event    lipgloss.Style
	Notes    lipgloss.Style
	Empty    lipgloss.Style
	Selected lipgloss.Style
	Fallback lipgloss.Color
}

// DefaultStyles matches the calendar TUI theme.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Time:     lipgloss.NewStyle().Faint(true),
		Event:    lipgloss.NewStyle(),
		Notes:    lipgloss.NewStyle().Faint(true).Italic(true),
		Empty:    lipgloss.NewStyle().Faint(true).Italic(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Fallback: lipgloss.Color("245"),
	}
}

// Renderer renders the "events for day X" list. Lookups go through the day
// index when one has been built; before that (first paint) it falls back to
// a linear scan of the flat event list.
type Renderer struct {
	Index  *dayindex.Index
	Events []event.Event
	Width  int
	Styles Styles
}

// EventsFor returns the events overlapping date in display order.
func (r *Renderer) EventsFor(date time.Time) []event.Event {
	var found []event.Event
	if r.Index != nil {
		found = r.Index.Lookup(date)
	} else {
		for _, e := range r.Events {
			if overlapsDay(e, date) {
				found = append(found, e)
			}
		}
	}

	sorted := make([]event.Event, len(found))
	copy(sorted, found)
	event.SortForDisplay(sorted)
	return sorted
}

// Render produces the day panel for date, highlighting the selected row when
// selected >= 0.
func (r *Renderer) Render(date time.Time, selected int) string {
	width := r.Width
	if width <= 0 {
		width = 48
	}

	var b strings.Builder
	b.WriteString(r.Styles.Title.Render(date.Local().Format("Monday, January 2")))
	b.WriteString("\n")

	events := r.EventsFor(date)
	if len(events) == 0 {
		b.WriteString(r.Styles.Empty.Render("no events"))
		b.WriteString("\n")
		return b.String()
	}

	for i, e := range events {
		line := swatch(e.BackgroundColor, r.Styles.Fallback) + " " +
			r.Styles.Time.Render(timeLabel(e)) + " " +
			r.Styles.Event.Render(e.Title)
		if i == selected {
			line = r.Styles.Selected.Render(swatch(e.BackgroundColor, r.Styles.Fallback) + " " + timeLabel(e) + " " + e.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if notes := notesFor(e); notes != "" {
			b.WriteString(r.Styles.Notes.Render(wordwrap.String(notes, width-4)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func timeLabel(e event.Event) string {
	if e.AllDay {
		return "all-day"
	}
	if e.Start.IsZero() {
		return "       "
	}
	return e.Start.Local().Format("15:04")
}

// swatch renders a colored marker from the event's background color,
// degrading to the fallback when the server hands back something
// unparseable.
func swatch(hex string, fallback lipgloss.Color) string {
	c := fallback
	if _, err := colorful.Hex(hex); err == nil {
		c = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(c).Render("▎")
}

func notesFor(e event.Event) string {
	switch d := e.Details.(type) {
	case event.JobDetails:
		return d.Notes
	case event.CallReminderDetails:
		return d.Notes
	case event.StandaloneCallReminderDetails:
		return d.Notes
	case event.VirtualJobDetails:
		return ""
	case event.VirtualCallReminderDetails:
		return d.Notes
	default:
		return ""
	}
}

// overlapsDay applies the same span rules the day index uses, for the
// pre-index fallback path.
func overlapsDay(e event.Event, date time.Time) bool {
	if e.Start.IsZero() {
		return false
	}
	day := timeutil.TruncateToDay(date)
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
	return !day.Before(startDay) && !day.After(endDay)
}
