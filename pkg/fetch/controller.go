package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
)

// maxOverrides bounds the one-shot override stash; it only ever holds
// results for windows the user just looked at, so it stays tiny.
const maxOverrides = 8

// Presenter is the view chrome the controller drives around a fetch: the
// loading indicator and the "no calendars selected" overlay.
type Presenter interface {
	Loading(on bool)
	NoCalendars(on bool)
}

type nopPresenter struct{}

func (nopPresenter) Loading(bool)     {}
func (nopPresenter) NoCalendars(bool) {}

// envelope is the server's events response body.
type envelope struct {
	Status string        `json:"status"`
	Events []event.Event `json:"events"`
	Error  string        `json:"error,omitempty"`
}

// Controller orchestrates the events request lifecycle: cache-first serving,
// background revalidation, one-shot override consumption, and cancellation
// of superseded interactive fetches. FetchEvents never surfaces transient
// failures to the caller; the view degrades to an empty list instead.
type Controller struct {
	eventsURL string
	client    *http.Client
	cache     *cache.Store
	presenter Presenter

	mu            sync.Mutex
	overrides     map[string][]event.Event
	visible       cache.Query
	force         bool
	primaryCancel context.CancelFunc
	bgCancel      context.CancelFunc

	refresh chan string
}

// NewController wires the controller to the events endpoint and the local
// cache. All dependencies are required.
func NewController(eventsURL string, c *cache.Store) (*Controller, error) {
	if eventsURL == "" {
		return nil, errors.New("fetch: events URL required")
	}
	if c == nil {
		return nil, errors.New("fetch: cache store required")
	}
	return &Controller{
		eventsURL: eventsURL,
		client:    &http.Client{},
		cache:     c,
		presenter: nopPresenter{},
		overrides: make(map[string][]event.Event),
		refresh:   make(chan string, 4),
	}, nil
}

// SetPresenter replaces the no-op view chrome. Call before the first fetch.
func (c *Controller) SetPresenter(p Presenter) {
	if p != nil {
		c.presenter = p
	}
}

// Refreshed signals that the view should re-request events. A non-empty
// value is the fingerprint whose one-shot override is ready; empty means a
// general forced refetch (mutation or external invalidation).
func (c *Controller) Refreshed() <-chan string {
	return c.refresh
}

// ForceNext makes the next FetchEvents bypass the cache.
func (c *Controller) ForceNext() {
	c.mu.Lock()
	c.force = true
	c.mu.Unlock()
}

// RequestRefetch nudges the view to call FetchEvents again. Non-blocking; a
// pending signal already covers the change.
func (c *Controller) RequestRefetch(fingerprint string) {
	select {
	case c.refresh <- fingerprint:
	default:
	}
}

// RefreshCalendar is the immediate, non-debounced refresh used after a known
// mutation: the whole cache is dropped and the view is told to refetch with
// the cache bypassed.
func (c *Controller) RefreshCalendar(ctx context.Context) {
	c.cache.InvalidateAll(ctx)
	c.ForceNext()
	c.RequestRefetch("")
}

// FetchEvents returns the events for the visible window q. Cached data is
// served immediately with a background revalidation; the cold path fetches
// from the network, cancelling any superseded interactive fetch. Transient
// failures degrade to an empty list and are logged, never returned.
func (c *Controller) FetchEvents(ctx context.Context, q cache.Query) []event.Event {
	if len(q.Calendars) == 0 {
		c.presenter.NoCalendars(true)
		return []event.Event{}
	}
	c.presenter.NoCalendars(false)

	fingerprint := cache.Fingerprint(q)

	c.mu.Lock()
	c.visible = q
	if stashed, ok := c.overrides[fingerprint]; ok {
		// A background revalidation already fetched this exact query;
		// consume it so the triggered re-request costs no network call.
		delete(c.overrides, fingerprint)
		c.mu.Unlock()
		return stashed
	}
	force := c.force
	c.force = false
	c.mu.Unlock()

	if !force {
		if entry := c.cache.Get(fingerprint); entry != nil {
			go c.revalidate(q, fingerprint, entry.Signature)
			return entry.Events
		}
	}

	// Cold path. A newer interactive fetch supersedes any pending one.
	c.presenter.Loading(true)
	pctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.primaryCancel != nil {
		c.primaryCancel()
	}
	c.primaryCancel = cancel
	c.mu.Unlock()

	events, err := c.fetchRemote(pctx, q)
	c.presenter.Loading(false)
	if err != nil {
		if !isCanceled(err) {
			fmt.Fprintf(os.Stderr, "fetch: events request failed: %v\n", err)
		}
		return []event.Event{}
	}

	c.cache.Put(ctx, fingerprint, events, "")
	return events
}

// revalidate re-fetches q on the background lane and reconciles the result
// against the cache. It runs on its own cancellation handle so interactive
// navigation neither cancels it nor waits on it. All failures are silent.
func (c *Controller) revalidate(q cache.Query, fingerprint, cachedSignature string) {
	bgctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	if c.bgCancel != nil {
		c.bgCancel()
	}
	c.bgCancel = cancel
	c.mu.Unlock()
	defer cancel()

	events, err := c.fetchRemote(bgctx, q)
	if err != nil {
		return
	}

	signature := event.Signature(events)
	if signature == cachedSignature {
		// Server truth matches what the view already shows; keep the entry
		// fresh without a re-render.
		c.cache.Touch(fingerprint)
		return
	}

	c.cache.Put(bgctx, fingerprint, events, signature)

	c.mu.Lock()
	stale := !cache.SameWindow(c.visible, q)
	if !stale {
		if len(c.overrides) >= maxOverrides {
			c.overrides = make(map[string][]event.Event)
		}
		c.overrides[fingerprint] = events
	}
	c.mu.Unlock()

	if stale {
		// The user navigated away while this was in flight; the fresh data
		// is cached but must not clobber the current view.
		return
	}
	c.RequestRefetch(fingerprint)
}

// fetchRemote issues one events GET. A non-2xx status is a hard failure; a
// 2xx response with an empty or malformed body degrades to zero events with
// a diagnostic.
func (c *Controller) fetchRemote(ctx context.Context, q cache.Query) ([]event.Event, error) {
	params := url.Values{}
	params.Set("start", q.Start.UTC().Format(time.RFC3339))
	params.Set("end", q.End.UTC().Format(time.RFC3339))
	params.Set("calendar", strings.Join(q.Calendars, ","))
	params.Set("status", q.Status)
	params.Set("search", q.Search)
	requestURL := c.eventsURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d, content-type %q, body %q",
			requestURL, resp.StatusCode, resp.Header.Get("Content-Type"), snippet(body))
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		fmt.Fprintf(os.Stderr, "fetch: empty body from %s, treating as zero events\n", requestURL)
		return []event.Event{}, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		fmt.Fprintf(os.Stderr, "fetch: malformed body from %s (content-type %q, body %q), treating as zero events\n",
			requestURL, resp.Header.Get("Content-Type"), snippet(body))
		return []event.Event{}, nil
	}
	if env.Status != "success" {
		fmt.Fprintf(os.Stderr, "fetch: server error from %s: %s\n", requestURL, env.Error)
		return []event.Event{}, nil
	}
	if env.Events == nil {
		return []event.Event{}, nil
	}
	return env.Events, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func snippet(body []byte) string {
	const max = 120
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
