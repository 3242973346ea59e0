// Package tui hosts the Bubble Tea program for the interactive calendar.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/dayindex"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/state"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/timeutil"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/ui/daypanel"
)

// statusCycle is the order the status filter steps through; empty means no
// filter.
var statusCycle = []string{"", "pending", "confirmed", "completed", "cancelled"}

// Deps wires the calendar UI to the rest of the client. Controller, Scheduler
// and State are required; Watch and Workspace are optional.
type Deps struct {
	Controller *fetch.Controller
	Scheduler  *fetch.Scheduler
	State      *state.Store
	Watch      <-chan store.Event
	Workspace  daypanel.Workspace
}

type keymap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	CursorUp   key.Binding
	CursorDown key.Binding
	Today      key.Binding
	Search     key.Binding
	Status     key.Binding
	Refresh    key.Binding
	Open       key.Binding
	Quit       key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev day")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
		PrevWeek:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev week")),
		NextWeek:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next week")),
		PrevMonth:  key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("[", "prev month")),
		NextMonth:  key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("]", "next month")),
		CursorUp:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "prev event")),
		CursorDown: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "next event")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open job")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

type eventsMsg struct {
	query  cache.Query
	events []event.Event
}

type refetchMsg struct{ fingerprint string }

type storeMsg store.Event

type loadingMsg bool

type noCalendarsMsg bool

// Model contains UI state.
type Model struct {
	ctx        context.Context
	controller *fetch.Controller
	scheduler  *fetch.Scheduler
	state      *state.Store
	watch      <-chan store.Event
	workspace  daypanel.Workspace

	month    time.Time // first of the visible month
	selected time.Time
	cursor   int

	calendars []string
	status    string
	search    string

	searching bool
	input     textinput.Model

	events []event.Event
	index  *dayindex.Index

	spin        spinner.Model
	loading     bool
	noCalendars bool
	flash       string

	keys   keymap
	styles gridStyles
	width  int
	height int
}

// New builds the model with filters and position restored from the state
// store.
func New(deps Deps) (*Model, error) {
	if deps.Controller == nil {
		return nil, errors.New("tui: controller required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("tui: scheduler required")
	}
	if deps.State == nil {
		return nil, errors.New("tui: state store required")
	}

	selected := time.Now()
	if parked := deps.State.CurrentDate(); !parked.IsZero() {
		selected = parked.Local()
	}
	filters := deps.State.Filters()
	if filters.Year != 0 && filters.Month >= 1 && filters.Month <= 12 {
		selected = time.Date(filters.Year, time.Month(filters.Month), selected.Day(), 0, 0, 0, 0, time.Local)
	}

	input := textinput.New()
	input.Placeholder = "search"
	input.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	month, _ := timeutil.MonthRange(selected)
	m := &Model{
		ctx:        context.Background(),
		controller: deps.Controller,
		scheduler:  deps.Scheduler,
		state:      deps.State,
		watch:      deps.Watch,
		workspace:  deps.Workspace,
		month:      month,
		selected:   timeutil.TruncateToDay(selected),
		calendars:  deps.State.SelectedCalendars(),
		status:     filters.Status,
		search:     filters.Search,
		input:      input,
		spin:       spin,
		keys:       defaultKeymap(),
		styles:     defaultGridStyles(),
	}
	return m, nil
}

func (m *Model) visibleQuery() cache.Query {
	start, end := timeutil.MonthRange(m.month)
	return cache.Query{
		Start:     start,
		End:       end,
		Calendars: m.calendars,
		Status:    m.status,
		Search:    m.search,
	}
}

func (m *Model) fetchCmd() tea.Cmd {
	q := m.visibleQuery()
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		return eventsMsg{query: q, events: controller.FetchEvents(ctx, q)}
	}
}

func waitRefetch(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return refetchMsg{fingerprint: <-ch}
	}
}

func waitStore(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeMsg(ev)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(),
		waitRefetch(m.controller.Refreshed()),
		waitStore(m.watch),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventsMsg:
		// A result for a window the user already left is stale; drop it.
		if cache.Fingerprint(msg.query) != cache.Fingerprint(m.visibleQuery()) {
			return m, nil
		}
		m.events = msg.events
		m.index = dayindex.Build(msg.events)
		m.clampCursor()
		return m, nil

	case refetchMsg:
		return m, tea.Batch(m.fetchCmd(), waitRefetch(m.controller.Refreshed()))

	case storeMsg:
		// A removal under the cache namespace means another process
		// invalidated the cache; coalesce into one forced refetch.
		if msg.Prefix == cache.Prefix && msg.Removed {
			m.scheduler.ScheduleRefetch()
		}
		return m, waitStore(m.watch)

	case loadingMsg:
		m.loading = bool(msg)
		if m.loading {
			return m, m.spin.Tick
		}
		return m, nil

	case noCalendarsMsg:
		m.noCalendars = bool(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.input.Blur()
			m.search = m.input.Value()
			m.scheduler.ScheduleRefetch()
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	m.flash = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persist()
		m.scheduler.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevDay):
		return m.moveSelection(-1)
	case key.Matches(msg, m.keys.NextDay):
		return m.moveSelection(1)
	case key.Matches(msg, m.keys.PrevWeek):
		return m.moveSelection(-7)
	case key.Matches(msg, m.keys.NextWeek):
		return m.moveSelection(7)

	case key.Matches(msg, m.keys.PrevMonth):
		return m.moveMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		return m.moveMonth(1)

	case key.Matches(msg, m.keys.Today):
		m.selected = timeutil.TruncateToDay(time.Now())
		return m.gotoMonthOf(m.selected)

	case key.Matches(msg, m.keys.CursorUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.CursorDown):
		m.cursor++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.search)
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Status):
		m.status = nextStatus(m.status)
		m.scheduler.ScheduleRefetch()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.controller.RefreshCalendar(m.ctx)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	}
	return m, nil
}

func (m *Model) moveSelection(days int) (tea.Model, tea.Cmd) {
	m.selected = m.selected.AddDate(0, 0, days)
	m.cursor = 0
	return m.gotoMonthOf(m.selected)
}

func (m *Model) moveMonth(months int) (tea.Model, tea.Cmd) {
	m.month = m.month.AddDate(0, months, 0)
	m.selected = m.month
	m.cursor = 0
	return m, m.fetchCmd()
}

func (m *Model) gotoMonthOf(date time.Time) (tea.Model, tea.Cmd) {
	month, _ := timeutil.MonthRange(date)
	if month.Equal(m.month) {
		return m, nil
	}
	m.month = month
	return m, m.fetchCmd()
}

func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	events := m.panel().EventsFor(m.selected)
	if len(events) == 0 {
		return m, nil
	}
	m.clampCursor()
	id := events[m.cursor].JobID()
	if id == "" {
		m.flash = "no job record behind this event"
		return m, nil
	}
	if m.workspace == nil {
		m.flash = "job " + id
		return m, nil
	}
	if err := m.workspace.OpenJob(id); err != nil {
		m.flash = fmt.Sprintf("open job %s: %v", id, err)
		return m, nil
	}
	m.flash = "opened job " + id
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.panel().EventsFor(m.selected))
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
}

func (m *Model) panel() *daypanel.Renderer {
	width := m.width/2 - 4
	if width < 30 {
		width = 30
	}
	return &daypanel.Renderer{
		Index:  m.index,
		Width:  width,
		Styles: daypanel.DefaultStyles(),
	}
}

func (m *Model) persist() {
	filters := state.Filters{
		Status: m.status,
		Search: m.search,
		Month:  int(m.month.Month()),
		Year:   m.month.Year(),
	}
	if err := m.state.SetFilters(filters); err != nil {
		fmt.Fprintf(os.Stderr, "tui: persist filters: %v\n", err)
	}
	if err := m.state.SetCurrentDate(m.selected); err != nil {
		fmt.Fprintf(os.Stderr, "tui: persist current date: %v\n", err)
	}
}

func nextStatus(current string) string {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

func (m *Model) View() string {
	if m.noCalendars {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			"No calendars selected.\n\nRun: gts calendars --select <id>[,<id>...]\n\nPress q to quit.")
	}

	grid := renderMonth(m.month, m.selected, time.Now(), m.index, m.styles)
	panel := m.panel().Render(m.selected, m.cursor)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(grid),
		lipgloss.NewStyle().Padding(1, 2).Render(panel),
	)

	return body + "\n" + m.footer()
}

func (m *Model) footer() string {
	faint := lipgloss.NewStyle().Faint(true)

	if m.searching {
		return " " + m.input.View()
	}

	left := " ←/→ day  ↑/↓ week  [/] month  t today  / search  s status  r refresh  q quit"
	var tags []string
	if m.loading {
		tags = append(tags, m.spin.View()+"fetching")
	}
	if m.status != "" {
		tags = append(tags, "status:"+m.status)
	}
	if m.search != "" {
		tags = append(tags, "search:"+m.search)
	}
	if m.flash != "" {
		tags = append(tags, m.flash)
	}
	if len(tags) == 0 {
		return faint.Render(left)
	}
	return faint.Render(left) + "\n " + faint.Render(joinTags(tags))
}

func joinTags(tags []string) string {
	out := tags[0]
	for _, t := range tags[1:] {
		out += "  " + t
	}
	return out
}

// chrome forwards the controller's view signals into the running program.
type chrome struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (c *chrome) setSend(fn func(tea.Msg)) {
	c.mu.Lock()
	c.send = fn
	c.mu.Unlock()
}

func (c *chrome) post(msg tea.Msg) {
	c.mu.Lock()
	fn := c.send
	c.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (c *chrome) Loading(on bool) { c.post(loadingMsg(on)) }

func (c *chrome) NoCalendars(on bool) { c.post(noCalendarsMsg(on)) }

// Run starts the calendar UI and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	m, err := New(deps)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.ctx = ctx

	ch := &chrome{}
	deps.Controller.SetPresenter(ch)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	ch.setSend(p.Send)

	_, err = p.Run()
	return err
}
