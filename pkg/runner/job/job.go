package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/api"
)

// Create adds a new job through the server API. The cache invalidation hook
// wired into the client runs on success, so a following fetch sees the job.
type Create struct {
	Client  *api.Client
	Request api.JobRequest
}

func (n *Create) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not create job, no client")
	}
	if n.Request.CalendarID == "" {
		return errors.New("can not create job, no calendar")
	}
	if n.Request.Title == "" {
		return errors.New("can not create job, no title")
	}
	id, err := n.Client.CreateJob(ctx, n.Request)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", id)
	return nil
}

// Update replaces a stored job.
type Update struct {
	Client  *api.Client
	ID      string
	Request api.JobRequest
}

func (n *Update) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not update job, no client")
	}
	if n.ID == "" {
		return errors.New("can not update job, no id")
	}
	return n.Client.UpdateJob(ctx, n.ID, n.Request)
}

// Delete removes a job and its attached reminders.
type Delete struct {
	Client *api.Client
	ID     string
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not delete job, no client")
	}
	if n.ID == "" {
		return errors.New("can not delete job, no id")
	}
	return n.Client.DeleteJob(ctx, n.ID)
}

// SetStatus changes only a job's business status.
type SetStatus struct {
	Client *api.Client
	ID     string
	Status string
}

func (n *SetStatus) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not set status, no client")
	}
	if n.ID == "" || n.Status == "" {
		return errors.New("can not set status, need id and status")
	}
	return n.Client.SetJobStatus(ctx, n.ID, n.Status)
}
