package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/compiler/load"
	"github.com/syssam/schemamap/internal/cli/config"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Capture the database schema into a snapshot file",
		Long: `Inspect the configured database and write the table descriptions to a
snapshot file. Later commands can read the snapshot with --snapshot instead
of connecting to the database.`,
		Example: `  # Capture a postgres schema
  schemamap inspect --dialect postgres --dsn "postgres://localhost/app?sslmode=disable" --out app.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "snapshot file to write (default: --snapshot or "+config.DefaultSnapshot+")")
	return cmd
}

func runInspect(cmd *cobra.Command, out string) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()
	if out == "" {
		out = c.Cfg.Snapshot
	}
	if out == "" {
		out = config.DefaultSnapshot
	}
	insp, err := c.OpenDatabase(ctx)
	if err != nil {
		return err
	}
	defer insp.Close()

	snap, err := load.Capture(ctx, insp, load.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	if err := load.SaveSnapshot(out, snap); err != nil {
		return err
	}
	c.Logger.Info("snapshot written", "path", out, "tables", len(snap.Tables), "stats", insp.Stats())
	return nil
}
