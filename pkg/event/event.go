package event

import (
	"encoding/json"
	"fmt"
)

// Type discriminates the extendedProps payload carried by an event.
type Type string

const (
	TypeJob                    Type = "job"
	TypeCallReminder           Type = "call_reminder"
	TypeStandaloneCallReminder Type = "standalone_call_reminder"
	TypeVirtualJob             Type = "virtual_job"
	TypeVirtualCallReminder    Type = "virtual_call_reminder"
)

// Event is a display-ready occurrence of a job or reminder on the calendar.
// All-day events carry an exclusive End per calendar convention; timed events
// without an End are point events. A zero Start makes an event unindexable.
type Event struct {
	ID              string
	Title           string
	Start           Timestamp
	End             Timestamp
	AllDay          bool
	BackgroundColor string
	Details         Details
}

// Details is the typed view of the server's extendedProps bag, keyed by the
// type discriminator. Consumers switch exhaustively on the concrete variant.
type Details interface {
	EventType() Type
}

// JobDetails backs a persisted job occurrence.
type JobDetails struct {
	BusinessName string `json:"businessName,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TrailerID    string `json:"trailerId,omitempty"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
	RecurrenceID string `json:"recurrenceId,omitempty"`
}

func (JobDetails) EventType() Type { return TypeJob }

// CallReminderDetails backs a reminder attached to a job.
type CallReminderDetails struct {
	JobID  string `json:"jobId,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

func (CallReminderDetails) EventType() Type { return TypeCallReminder }

// StandaloneCallReminderDetails backs a reminder with no job linkage.
type StandaloneCallReminderDetails struct {
	ContactName string `json:"contactName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (StandaloneCallReminderDetails) EventType() Type { return TypeStandaloneCallReminder }

// VirtualJobDetails backs a recurring-job occurrence that has not been
// materialized into its own record yet.
type VirtualJobDetails struct {
	SeriesID     string `json:"seriesId,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	TrailerID    string `json:"trailerId,omitempty"`
	Status       string `json:"status,omitempty"`
}

func (VirtualJobDetails) EventType() Type { return TypeVirtualJob }

// VirtualCallReminderDetails backs an unmaterialized recurring reminder.
type VirtualCallReminderDetails struct {
	SeriesID string `json:"seriesId,omitempty"`
	JobID    string `json:"jobId,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (VirtualCallReminderDetails) EventType() Type { return TypeVirtualCallReminder }

// wireEvent mirrors the JSON the server emits for a single event.
type wireEvent struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Start           Timestamp       `json:"start"`
	End             *Timestamp      `json:"end,omitempty"`
	AllDay          bool            `json:"allDay,omitempty"`
	BackgroundColor string          `json:"backgroundColor,omitempty"`
	ExtendedProps   json.RawMessage `json:"extendedProps,omitempty"`
}

// wireProps is the flat superset of every variant's fields; decoding switches
// on Type to build the concrete Details value.
type wireProps struct {
	Type         Type   `json:"type"`
	BusinessName string `json:"businessName,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TrailerID    string `json:"trailerId,omitempty"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
	RecurrenceID string `json:"recurrenceId,omitempty"`
	SeriesID     string `json:"seriesId,omitempty"`
	JobID        string `json:"jobId,omitempty"`
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var w wireEvent
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	e.ID = w.ID
	e.Title = w.Title
	e.Start = w.Start
	if w.End != nil {
		e.End = *w.End
	} else {
		e.End = Timestamp{}
	}
	e.AllDay = w.AllDay
	e.BackgroundColor = w.BackgroundColor

	// A malformed or unknown props bag degrades to no details rather than
	// failing the whole event.
	e.Details = nil
	if len(w.ExtendedProps) > 0 {
		e.Details = decodeDetails(w.ExtendedProps)
	}
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{
		ID:              e.ID,
		Title:           e.Title,
		Start:           e.Start,
		AllDay:          e.AllDay,
		BackgroundColor: e.BackgroundColor,
	}
	if !e.End.IsZero() {
		end := e.End
		w.End = &end
	}
	if e.Details != nil {
		props, err := encodeDetails(e.Details)
		if err != nil {
			return nil, fmt.Errorf("event: encode details for %s: %w", e.ID, err)
		}
		w.ExtendedProps = props
	}
	return json.Marshal(w)
}

func decodeDetails(raw json.RawMessage) Details {
	var p wireProps
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	switch p.Type {
	case TypeJob:
		return JobDetails{
			BusinessName: p.BusinessName,
			ContactName:  p.ContactName,
			Phone:        p.Phone,
			TrailerID:    p.TrailerID,
			Status:       p.Status,
			Notes:        p.Notes,
			RecurrenceID: p.RecurrenceID,
		}
	case TypeCallReminder:
		return CallReminderDetails{
			JobID:  p.JobID,
			Phone:  p.Phone,
			Status: p.Status,
			Notes:  p.Notes,
		}
	case TypeStandaloneCallReminder:
		return StandaloneCallReminderDetails{
			ContactName: p.ContactName,
			Phone:       p.Phone,
			Status:      p.Status,
			Notes:       p.Notes,
		}
	case TypeVirtualJob:
		return VirtualJobDetails{
			SeriesID:     p.SeriesID,
			BusinessName: p.BusinessName,
			TrailerID:    p.TrailerID,
			Status:       p.Status,
		}
	case TypeVirtualCallReminder:
		return VirtualCallReminderDetails{
			SeriesID: p.SeriesID,
			JobID:    p.JobID,
			Phone:    p.Phone,
			Notes:    p.Notes,
		}
	default:
		return nil
	}
}

func encodeDetails(d Details) (json.RawMessage, error) {
	p := wireProps{Type: d.EventType()}
	switch v := d.(type) {
	case JobDetails:
		p.BusinessName = v.BusinessName
		p.ContactName = v.ContactName
		p.Phone = v.Phone
		p.TrailerID = v.TrailerID
		p.Status = v.Status
		p.Notes = v.Notes
		p.RecurrenceID = v.RecurrenceID
	case CallReminderDetails:
		p.JobID = v.JobID
		p.Phone = v.Phone
		p.Status = v.Status
		p.Notes = v.Notes
	case StandaloneCallReminderDetails:
		p.ContactName = v.ContactName
		p.Phone = v.Phone
		p.Status = v.Status
		p.Notes = v.Notes
	case VirtualJobDetails:
		p.SeriesID = v.SeriesID
		p.BusinessName = v.BusinessName
		p.TrailerID = v.TrailerID
		p.Status = v.Status
	case VirtualCallReminderDetails:
		p.SeriesID = v.SeriesID
		p.JobID = v.JobID
		p.Phone = v.Phone
		p.Notes = v.Notes
	default:
		return nil, fmt.Errorf("unknown details type %T", d)
	}
	return json.Marshal(p)
}

// Status returns the business status carried by the details bag, if any.
func (e Event) Status() string {
	switch d := e.Details.(type) {
	case JobDetails:
		return d.Status
	case CallReminderDetails:
		return d.Status
	case StandaloneCallReminderDetails:
		return d.Status
	case VirtualJobDetails:
		return d.Status
	case VirtualCallReminderDetails:
		return ""
	default:
		return ""
	}
}

// JobID returns the persisted job record an event resolves to for the
// workspace open action: the event's own ID for jobs, the linked job for
// attached reminders, empty for everything virtual or standalone.
func (e Event) JobID() string {
	switch d := e.Details.(type) {
	case JobDetails:
		return e.ID
	case CallReminderDetails:
		return d.JobID
	case StandaloneCallReminderDetails:
		return ""
	case VirtualJobDetails:
		return ""
	case VirtualCallReminderDetails:
		return d.JobID
	default:
		return ""
	}
}
