package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orrery-engine/orrery/internal/snapshot"
	"github.com/orrery-engine/orrery/pkg/types"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <snapshot.db>",
		Short: "Print a saved catalog snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Read(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "generation %s (policy %s, created %s)\n\n", snap.GenerationID, snap.Policy, snap.CreatedAt)

			fmt.Fprintf(out, "components (%d):\n", len(snap.Components))
			for _, r := range snap.Components {
				size := fmt.Sprintf("%d bytes", r.ByteSize)
				if r.ByteSize == types.SizeNotApplicable {
					size = "managed"
				}
				kind := "data"
				if r.EngineObject {
					kind = "object"
				}
				fmt.Fprintf(out, "  [%4d] %-50s %-8s %-10s hash=%016x pos=%d desc=%d\n",
					r.Index, r.Name, kind, size, r.ContentHash, r.TreePosition, r.DescendantCount)
			}

			fmt.Fprintf(out, "\nsystems (%d):\n", len(snap.Systems))
			for _, r := range snap.Systems {
				size := fmt.Sprintf("%d bytes", r.ByteSize)
				if r.ByteSize == types.SizeNotApplicable {
					size = "managed"
				}
				fmt.Fprintf(out, "  [%4d] %-50s %-10s flags=%04b filter=%04b hash=%016x\n",
					r.Index, r.Name, size, r.Flags, r.WorldFilter, r.ContentHash)
			}

			if len(snap.Attributes) > 0 {
				fmt.Fprintf(out, "\nsystem attributes (%d):\n", len(snap.Attributes))
				for _, a := range snap.Attributes {
					fmt.Fprintf(out, "  [%4d] %s -> [%d]\n", a.SystemIndex, a.Kind, a.TargetIndex)
				}
			}

			if len(snap.WriteGroups) > 0 {
				fmt.Fprintf(out, "\nwrite groups (%d):\n", len(snap.WriteGroups))
				for _, w := range snap.WriteGroups {
					fmt.Fprintf(out, "  [%4d] conflicts with [%d]\n", w.Index, w.Conflict)
				}
			}
			return nil
		},
	}
}
