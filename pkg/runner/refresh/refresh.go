package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
)

// Refresh drops every cached event window so the next fetch hits the server.
type Refresh struct {
	Controller *fetch.Controller
}

func (n *Refresh) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not refresh, no controller")
	}
	n.Controller.RefreshCalendar(ctx)
	fmt.Println("calendar cache invalidated")
	return nil
}
