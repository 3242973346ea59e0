package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/api"
)

// Create adds a call reminder, attached to a job when JobID is set.
type Create struct {
	Client  *api.Client
	Request api.ReminderRequest
}

func (n *Create) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not create reminder, no client")
	}
	if n.Request.At.IsZero() {
		return errors.New("can not create reminder, no time")
	}
	id, err := n.Client.CreateReminder(ctx, n.Request)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", id)
	return nil
}

// Delete removes a call reminder.
type Delete struct {
	Client *api.Client
	ID     string
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not delete reminder, no client")
	}
	if n.ID == "" {
		return errors.New("can not delete reminder, no id")
	}
	return n.Client.DeleteReminder(ctx, n.ID)
}
