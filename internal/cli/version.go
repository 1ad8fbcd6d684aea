package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orrery-engine/orrery/pkg/orrery"
)

const modulePath = "github.com/orrery-engine/orrery"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the orrery version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "orrery v%s\nmodule: %s\n", orrery.Version, modulePath)
			return nil
		},
	}
}
