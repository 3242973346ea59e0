package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/api"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/cache"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/fetch"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/printers"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/state"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "gts",
		Short: "Trailer shop scheduling on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addEvents(topLevel)
	addDay(topLevel)
	addCalendars(topLevel)
	addJob(topLevel)
	addReminder(topLevel)
	addRefresh(topLevel)
	addVersion(topLevel)
}

// clientSet bundles the lazily-built dependencies every command shares.
type clientSet struct {
	cfg        store.Config
	kv         *store.KV
	controller *fetch.Controller
	state      *state.Store
}

func loadClientSet() (*clientSet, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	kv, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	controller, err := fetch.NewController(eventsURL(cfg), cache.New(kv))
	if err != nil {
		return nil, err
	}
	return &clientSet{
		cfg:        cfg,
		kv:         kv,
		controller: controller,
		state:      state.New(kv),
	}, nil
}

func eventsURL(cfg store.Config) string {
	return strings.TrimRight(cfg.BaseURL(), "/") + "/api/events"
}

// apiClient builds the mutation client with the cache invalidation hook
// pointed at this process's controller.
func (cs *clientSet) apiClient() (*api.Client, error) {
	return api.NewClient(cs.cfg.BaseURL(), cs.cfg.CSRFToken(), printers.Toast{}, func(ctx context.Context) {
		cs.controller.RefreshCalendar(ctx)
	})
}

// calendarsOrSelected falls back to the persisted selection when the flag was
// not given.
func (cs *clientSet) calendarsOrSelected(flagged []string) []string {
	if len(flagged) > 0 {
		return flagged
	}
	return cs.state.SelectedCalendars()
}
