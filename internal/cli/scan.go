package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orrery-engine/orrery/internal/catalog"
	"github.com/orrery-engine/orrery/internal/demo"
	"github.com/orrery-engine/orrery/internal/layout"
	"github.com/orrery-engine/orrery/internal/snapshot"
)

// defaultSnapshotName is the file scan writes inside the data directory.
const defaultSnapshotName = "catalog.db"

func newScanCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Build the catalog over the demo modules and save a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			engine := layout.NewEngine()
			cat, err := catalog.New(cfg, engine, engine)
			if err != nil {
				return err
			}
			report, err := cat.Initialize(demo.Modules())
			if err != nil {
				return fmt.Errorf("initialize catalog: %w", err)
			}
			for _, p := range report.Problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p.Error())
			}

			snap, err := snapshot.Capture(cat, cfg.Policy())
			if err != nil {
				return err
			}
			if out == "" {
				if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
					return err
				}
				out = filepath.Join(cfg.DataDir, defaultSnapshotName)
			}
			if err := snapshot.Write(out, snap); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generation %s: %d components, %d systems -> %s\n",
				snap.GenerationID, len(snap.Components), len(snap.Systems), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "snapshot file to write (default: <data-dir>/catalog.db)")
	return cmd
}
