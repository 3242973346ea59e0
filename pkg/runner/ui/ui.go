package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/state"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/tui"
)

// UI launches the interactive calendar.
type UI struct {
	Config     store.Config
	KV         *store.KV
	Controller *fetch.Controller
	State      *state.Store
}

func (n *UI) Do(ctx context.Context) error {
	if n.Config == nil || n.Controller == nil || n.KV == nil || n.State == nil {
		return errors.New("can not open ui, missing dependencies")
	}

	scheduler := fetch.NewScheduler(n.Config.DebounceWindow(), func() {
		n.Controller.ForceNext()
		n.Controller.RequestRefetch("")
	})
	defer scheduler.Stop()

	// Store changes by other gts processes surface as watch events; the UI
	// turns cache removals into a coalesced refetch.
	watch, err := n.KV.Watch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ui: store watch unavailable: %v\n", err)
		watch = nil
	}

	return tui.Run(ctx, tui.Deps{
		Controller: n.Controller,
		Scheduler:  scheduler,
		State:      n.State,
		Watch:      watch,
		Workspace:  tui.JobLink{BaseURL: n.Config.BaseURL()},
	})
}
