package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/runner/refresh"
)

func addRefresh(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "drop the local event cache",
		Example: `
gts refresh
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadClientSet()
			if err != nil {
				return err
			}
			s := refresh.Refresh{Controller: cs.controller}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
