package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/state"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string              { return t.path }
func (t testConfig) BaseURL() string               { return "http://localhost:8069" }
func (t testConfig) CSRFToken() string             { return "" }
func (t testConfig) DebounceWindow() time.Duration { return 10 * time.Millisecond }

type harness struct {
	model     *Model
	state     *state.Store
	scheduled *atomic.Int32
}

func newHarness(t *testing.T, calendars []string) *harness {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","events":[` +
			`{"id":"job-1","title":"Dump trailer - Acme","start":"2025-03-10T09:00:00Z",` +
			`"extendedProps":{"type":"job","status":"confirmed"}}]}`))
	}))
	t.Cleanup(srv.Close)

	kv, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load kv: %v", err)
	}
	st := state.New(kv)
	if err := st.SetSelectedCalendars(calendars); err != nil {
		t.Fatalf("seed calendars: %v", err)
	}

	controller, err := fetch.NewController(srv.URL+"/api/events", cache.New(kv))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	var scheduled atomic.Int32
	scheduler := fetch.NewScheduler(10*time.Millisecond, func() {
		scheduled.Add(1)
	})
	t.Cleanup(scheduler.Stop)

	m, err := New(Deps{Controller: controller, Scheduler: scheduler, State: st})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return &harness{model: m, state: st, scheduled: &scheduled}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelRequiresDeps(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

func TestNoCalendarsOverlay(t *testing.T) {
	h := newHarness(t, nil)

	h.model.Update(noCalendarsMsg(true))
	if view := h.model.View(); !strings.Contains(view, "No calendars selected") {
		t.Fatalf("expected overlay, got:\n%s", view)
	}
}

func TestEventsMsgPopulatesDayPanel(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model
	m.selected = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	m.month = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)

	m.Update(eventsMsg{
		query: m.visibleQuery(),
		events: []event.Event{{
			ID:    "job-1",
			Title: "Dump trailer - Acme",
			Start: event.Timestamp{Time: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)},
		}},
	})

	view := m.View()
	if !strings.Contains(view, "March 2025") {
		t.Errorf("expected month header, got:\n%s", view)
	}
	if !strings.Contains(view, "Dump trailer - Acme") {
		t.Errorf("expected event in day panel, got:\n%s", view)
	}
}

func TestStaleEventsResultDropped(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model
	m.month = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)

	stale := m.visibleQuery()
	stale.Search = "something else"
	m.Update(eventsMsg{
		query:  stale,
		events: []event.Event{{ID: "job-9", Title: "stale"}},
	})
	if len(m.events) != 0 {
		t.Fatalf("expected stale result dropped, got %d events", len(m.events))
	}
}

func TestMonthNavigationTriggersFetch(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model
	m.month = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)

	_, cmd := m.Update(keyRune(']'))
	if m.month.Month() != time.April {
		t.Fatalf("expected april, got %s", m.month.Month())
	}
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	raw := cmd()
	msg, ok := raw.(eventsMsg)
	if !ok {
		t.Fatalf("expected eventsMsg, got %T", raw)
	}
	if len(msg.events) != 1 {
		t.Fatalf("expected server events, got %d", len(msg.events))
	}
}

func TestDayNavigationAcrossMonthBoundary(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model
	m.month = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	m.selected = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.selected.Month() != time.April || m.selected.Day() != 1 {
		t.Fatalf("expected april 1, got %s", m.selected)
	}
	if m.month.Month() != time.April {
		t.Fatalf("expected visible month to follow, got %s", m.month.Month())
	}
	if cmd == nil {
		t.Fatal("expected a fetch for the new month")
	}
}

func TestStatusCycleSchedulesRefetch(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model

	m.Update(keyRune('s'))
	if m.status != "pending" {
		t.Fatalf("expected first status in cycle, got %q", m.status)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.scheduled.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("debounced refetch never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSearchCommit(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model

	m.Update(keyRune('/'))
	if !m.searching {
		t.Fatal("expected search mode")
	}
	for _, r := range "acme" {
		m.Update(keyRune(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.searching {
		t.Fatal("expected search mode exited")
	}
	if m.search != "acme" {
		t.Fatalf("expected search committed, got %q", m.search)
	}
}

func TestQuitPersistsFiltersAndDate(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model
	m.month = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	m.selected = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	m.status = "confirmed"
	m.search = "acme"

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	f := h.state.Filters()
	if f.Status != "confirmed" || f.Search != "acme" || f.Month != 3 || f.Year != 2025 {
		t.Fatalf("filters not persisted: %+v", f)
	}
	if got := h.state.CurrentDate(); got.IsZero() {
		t.Fatal("current date not persisted")
	}
}

func TestExternalInvalidationSchedulesRefetch(t *testing.T) {
	h := newHarness(t, []string{"1"})
	m := h.model

	m.Update(storeMsg(store.Event{Prefix: cache.Prefix, Removed: true}))
	deadline := time.Now().Add(2 * time.Second)
	for h.scheduled.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("invalidations never coalesced into a refetch")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Unrelated writes must not schedule anything further.
	before := h.scheduled.Load()
	m.Update(storeMsg(store.Event{Prefix: "gts-calendar-filters", Removed: false}))
	time.Sleep(50 * time.Millisecond)
	if h.scheduled.Load() != before {
		t.Fatal("non-cache event scheduled a refetch")
	}
}

func TestNextStatusWraps(t *testing.T) {
	got := ""
	for range statusCycle {
		got = nextStatus(got)
	}
	if got != "" {
		t.Fatalf("expected cycle to wrap to empty, got %q", got)
	}
}
