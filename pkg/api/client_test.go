package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func TestCreateJobInvalidatesCache(t *testing.T) {
	var invalidations atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/jobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-CSRF-Token"); got != "tok-123" {
			t.Errorf("missing CSRF token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","id":"job-42"}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c, err := NewClient(srv.URL, "tok-123", n, func(context.Context) {
		invalidations.Add(1)
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	id, err := c.CreateJob(context.Background(), JobRequest{
		CalendarID: "1",
		Title:      "Dump trailer - Acme",
		Start:      event.Timestamp{Time: time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if id != "job-42" {
		t.Fatalf("expected server-assigned id, got %q", id)
	}
	if invalidations.Load() != 1 {
		t.Fatalf("expected cache invalidated once, got %d", invalidations.Load())
	}
	if len(n.successes) != 1 {
		t.Fatalf("expected success toast, got %v", n.successes)
	}
}

func TestServerErrorSurfacesMessageAndSkipsInvalidation(t *testing.T) {
	var invalidations atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status":"error","error":"trailer T-4 is already booked"}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c, err := NewClient(srv.URL, "", n, func(context.Context) {
		invalidations.Add(1)
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := c.UpdateJob(context.Background(), "job-1", JobRequest{Title: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if invalidations.Load() != 0 {
		t.Fatalf("failed mutation must not invalidate the cache")
	}
	if len(n.errors) != 1 || n.errors[0] != "trailer T-4 is already booked" {
		t.Fatalf("expected server message surfaced, got %v", n.errors)
	}
}

func TestErrorWithoutServerMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>oops</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	c, err := NewClient(srv.URL, "", n, func(context.Context) {})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := c.DeleteJob(context.Background(), "job-1"); err == nil {
		t.Fatal("expected error")
	}
	if len(n.errors) != 1 || n.errors[0] != "Request failed, please try again" {
		t.Fatalf("expected generic fallback, got %v", n.errors)
	}
}

func TestSetJobStatus(t *testing.T) {
	var invalidations atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs/job-7/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", nil, func(context.Context) {
		invalidations.Add(1)
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.SetJobStatus(context.Background(), "job-7", "completed"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if invalidations.Load() != 1 {
		t.Fatalf("expected invalidation, got %d", invalidations.Load())
	}
}

func TestNewClientRequiresInvalidationHook(t *testing.T) {
	if _, err := NewClient("http://localhost", "", nil, nil); err == nil {
		t.Fatal("expected error for missing invalidation hook")
	}
}
