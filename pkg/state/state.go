package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
)

// Storage keys, shared with every gts process using the same store.
const (
	keySelectedCalendars = "gts-selected-calendars"
	keyDefaultCalendar   = "gts-default-calendar"
	keyFilters           = "gts-calendar-filters"
	keyCurrentDate       = "gts-calendar-current-date"
)

// Filters is the persisted filter state read at controller start so the very
// first fetch already carries the right parameters.
type Filters struct {
	Calendar string `json:"calendar,omitempty"`
	Status   string `json:"status,omitempty"`
	Search   string `json:"search,omitempty"`
	Month    int    `json:"month,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// Store persists calendar selection and filters, independent of the event
// cache. Reads fail soft to zero values; a corrupt entry behaves like an
// unset one.
type Store struct {
	kv *store.KV
}

func New(kv *store.KV) *Store {
	return &Store{kv: kv}
}

// SelectedCalendars returns the persisted calendar selection, empty when
// unset.
func (s *Store) SelectedCalendars() []string {
	data, err := s.kv.Read(keySelectedCalendars)
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}

func (s *Store) SetSelectedCalendars(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("state: marshal selection: %w", err)
	}
	return s.kv.Write(keySelectedCalendars, data)
}

// DefaultCalendar returns the calendar preselected for new jobs, empty when
// unset.
func (s *Store) DefaultCalendar() string {
	data, err := s.kv.Read(keyDefaultCalendar)
	if err != nil {
		return ""
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return ""
	}
	return id
}

func (s *Store) SetDefaultCalendar(id string) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("state: marshal default calendar: %w", err)
	}
	return s.kv.Write(keyDefaultCalendar, data)
}

// Filters returns the persisted filter state, zero when unset.
func (s *Store) Filters() Filters {
	data, err := s.kv.Read(keyFilters)
	if err != nil {
		return Filters{}
	}
	var f Filters
	if err := json.Unmarshal(data, &f); err != nil {
		return Filters{}
	}
	return f
}

func (s *Store) SetFilters(f Filters) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("state: marshal filters: %w", err)
	}
	return s.kv.Write(keyFilters, data)
}

// CurrentDate returns the last date the calendar view was parked on, zero
// when unset.
func (s *Store) CurrentDate() time.Time {
	data, err := s.kv.Read(keyCurrentDate)
	if err != nil {
		return time.Time{}
	}
	var iso string
	if err := json.Unmarshal(data, &iso); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) SetCurrentDate(t time.Time) error {
	data, err := json.Marshal(t.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("state: marshal current date: %w", err)
	}
	return s.kv.Write(keyCurrentDate, data)
}
