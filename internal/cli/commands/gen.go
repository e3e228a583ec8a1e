package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/compiler/gen"
)

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	var (
		out     string
		pkg     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "gen [class...]",
		Short: "Generate Go structs for the inferred entities",
		Example: `  # Write one file per entity into ./internal/entity
  schemamap gen --snapshot app.msgpack --out ./internal/entity --package entity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			opts := []gen.Option{gen.WithPackage(pkg)}
			if workers > 0 {
				opts = append(opts, gen.WithWorkers(workers))
			}
			g, err := gen.NewGenerator(out, opts...)
			if err != nil {
				return err
			}
			entities, err := c.Entities(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := g.Generate(cmd.Context(), entities); err != nil {
				return err
			}
			m := g.Metrics()
			c.Logger.Info("generated", "dir", out, "files", m.FilesGenerated, "bytes", m.TotalBytes)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "entity", "target directory")
	cmd.Flags().StringVar(&pkg, "package", "entity", "Go package name")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel file writers (default: GOMAXPROCS)")
	return cmd
}
