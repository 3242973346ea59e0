package state

import (
	"testing"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string              { return t.path }
func (t testConfig) BaseURL() string               { return "http://localhost:8069" }
func (t testConfig) CSRFToken() string             { return "" }
func (t testConfig) DebounceWindow() time.Duration { return 300 * time.Millisecond }

func testState(t *testing.T) *Store {
	t.Helper()
	kv, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load kv: %v", err)
	}
	return New(kv)
}

func TestSelectedCalendarsRoundTrip(t *testing.T) {
	s := testState(t)
	if got := s.SelectedCalendars(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
	if err := s.SetSelectedCalendars([]string{"1", "3"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got := s.SelectedCalendars()
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("unexpected selection: %v", got)
	}
}

func TestDefaultCalendar(t *testing.T) {
	s := testState(t)
	if got := s.DefaultCalendar(); got != "" {
		t.Fatalf("expected empty default, got %q", got)
	}
	if err := s.SetDefaultCalendar("2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.DefaultCalendar(); got != "2" {
		t.Fatalf("unexpected default: %q", got)
	}
}

func TestFiltersRoundTrip(t *testing.T) {
	s := testState(t)
	in := Filters{Calendar: "1", Status: "scheduled", Search: "acme", Month: 1, Year: 2025}
	if err := s.SetFilters(in); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Filters(); got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}
}

func TestCorruptEntriesFailSoft(t *testing.T) {
	s := testState(t)
	kv := s.kv
	_ = kv.Write("gts-selected-calendars", []byte("not json"))
	_ = kv.Write("gts-calendar-filters", []byte("{broken"))
	_ = kv.Write("gts-calendar-current-date", []byte(`"not a date"`))

	if got := s.SelectedCalendars(); got != nil {
		t.Fatalf("expected nil selection, got %v", got)
	}
	if got := s.Filters(); got != (Filters{}) {
		t.Fatalf("expected zero filters, got %+v", got)
	}
	if got := s.CurrentDate(); !got.IsZero() {
		t.Fatalf("expected zero date, got %v", got)
	}
}

func TestCurrentDateRoundTrip(t *testing.T) {
	s := testState(t)
	at := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	if err := s.SetCurrentDate(at); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.CurrentDate(); !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
}
