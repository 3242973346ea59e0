package options

import (
	"github.com/spf13/cobra"
)

// IDOptions toggles printing event IDs in listings.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers the --show-ids flag.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-ids", "i", false,
		"Show event IDs.")
}
