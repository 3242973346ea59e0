package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
)

// Notifier surfaces mutation outcomes to the user, toast-style.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Client talks to the scheduler server's mutation endpoints. Every
// successful mutation invalidates the local event cache before returning, so
// the next fetch bypasses stale data.
type Client struct {
	baseURL    string
	client     *http.Client
	csrfToken  string
	notifier   Notifier
	invalidate func(context.Context)
}

// NewClient builds a mutation client. invalidate is required: it is the
// cache-invalidation hook run after every successful mutation. notifier may
// be nil.
func NewClient(baseURL, csrfToken string, notifier Notifier, invalidate func(context.Context)) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api: base URL required")
	}
	if invalidate == nil {
		return nil, errors.New("api: cache invalidation hook required")
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{},
		csrfToken:  csrfToken,
		notifier:   notifier,
		invalidate: invalidate,
	}, nil
}

// JobRequest is the payload for creating or updating a job.
type JobRequest struct {
	CalendarID   string          `json:"calendarId"`
	Title        string          `json:"title"`
	Start        event.Timestamp `json:"start"`
	End          event.Timestamp `json:"end,omitempty"`
	AllDay       bool            `json:"allDay,omitempty"`
	BusinessName string          `json:"businessName,omitempty"`
	ContactName  string          `json:"contactName,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	TrailerID    string          `json:"trailerId,omitempty"`
	Status       string          `json:"status,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// ReminderRequest is the payload for creating a call reminder, attached to a
// job or standalone.
type ReminderRequest struct {
	JobID       string          `json:"jobId,omitempty"`
	ContactName string          `json:"contactName,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	At          event.Timestamp `json:"at"`
	Notes       string          `json:"notes,omitempty"`
}

type response struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CreateJob creates a job and returns its server-assigned ID.
func (c *Client) CreateJob(ctx context.Context, req JobRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/jobs", req)
	if err != nil {
		return "", err
	}
	c.notifier.Success("Job created")
	return resp.ID, nil
}

// UpdateJob replaces the stored job with req.
func (c *Client) UpdateJob(ctx context.Context, id string, req JobRequest) error {
	if _, err := c.do(ctx, http.MethodPut, "/api/jobs/"+id, req); err != nil {
		return err
	}
	c.notifier.Success("Job updated")
	return nil
}

// DeleteJob removes a job and its attached reminders.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/jobs/"+id, nil); err != nil {
		return err
	}
	c.notifier.Success("Job deleted")
	return nil
}

// SetJobStatus changes only the job's business status.
func (c *Client) SetJobStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}
	if _, err := c.do(ctx, http.MethodPost, "/api/jobs/"+id+"/status", payload); err != nil {
		return err
	}
	c.notifier.Success("Status updated")
	return nil
}

// CreateReminder creates a call reminder and returns its ID.
func (c *Client) CreateReminder(ctx context.Context, req ReminderRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/reminders", req)
	if err != nil {
		return "", err
	}
	c.notifier.Success("Reminder created")
	return resp.ID, nil
}

// DeleteReminder removes a call reminder.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/reminders/"+id, nil); err != nil {
		return err
	}
	c.notifier.Success("Reminder deleted")
	return nil
}

// do issues one mutating request. Any failure is surfaced through the
// notifier with the server message when one exists; success invalidates the
// event cache before returning.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set("X-CSRF-Token", c.csrfToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.notifier.Error("Request failed, please try again")
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notifier.Error("Request failed, please try again")
		return nil, fmt.Errorf("api: %s %s: read body: %w", method, path, err)
	}

	var parsed response
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			parsed = response{}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || parsed.Status == "error" {
		msg := parsed.Error
		if msg == "" {
			msg = "Request failed, please try again"
		}
		c.notifier.Error(msg)
		return nil, fmt.Errorf("api: %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	c.invalidate(ctx)
	return &parsed, nil
}
