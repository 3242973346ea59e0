package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive calendar",
		Example: `
gts ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			i := ui.UI{
				Config:     cs.cfg,
				KV:         cs.kv,
				Controller: cs.controller,
				State:      cs.state,
			}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
