package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orrery-engine/orrery/internal/snapshot"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old.db> <new.db>",
		Short: "Compare two catalog snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := snapshot.Read(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			new, err := snapshot.Read(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			changes := snapshot.Diff(old, new)
			if len(changes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no changes")
				return nil
			}
			for _, c := range changes {
				fmt.Fprintln(cmd.OutOrStdout(), c.String())
			}
			return nil
		},
	}
}
