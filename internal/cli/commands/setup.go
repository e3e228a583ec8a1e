// Package commands implements the schemamap subcommands.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/compiler/load"
	"github.com/syssam/schemamap/compiler/reverse"
	"github.com/syssam/schemamap/internal/cli/config"
	"github.com/syssam/schemamap/mapping"
)

// ErrNoSource is returned when neither a snapshot nor a database is configured.
var ErrNoSource = errors.New("no schema source: set --snapshot, or --dialect and --dsn")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext reads the configuration and logger stored on cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	return &CommandContext{
		Cfg:    config.FromContext(ctx),
		Logger: config.GetLogger(ctx),
	}
}

// OpenDatabase connects the inspector to the configured database.
func (c *CommandContext) OpenDatabase(ctx context.Context) (*load.Inspector, error) {
	if !c.Cfg.HasDatabase() {
		return nil, ErrNoSource
	}
	opts := []load.Option{load.WithLogger(c.Logger)}
	if c.Cfg.Schema != "" {
		opts = append(opts, load.WithSchemas(c.Cfg.Schema))
	}
	return load.Open(ctx, c.Cfg.Dialect, c.Cfg.DSN, opts...)
}

// OpenSource returns the configured snapshot, or a live inspector when no
// snapshot is set. The returned function releases the source.
func (c *CommandContext) OpenSource(ctx context.Context) (reverse.Source, func(), error) {
	if c.Cfg.Snapshot != "" {
		s, err := load.LoadSnapshot(c.Cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using snapshot", "path", c.Cfg.Snapshot, "dialect", s.Dialect, "tables", len(s.Tables))
		return s, func() {}, nil
	}
	insp, err := c.OpenDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}
	return insp, func() {
		if err := insp.Close(); err != nil {
			c.Logger.Warn("closing database", "error", err)
		}
	}, nil
}

// Inferencer loads the schema source and classifies its tables.
func (c *CommandContext) Inferencer(ctx context.Context) (*reverse.Inferencer, error) {
	src, release, err := c.OpenSource(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	inf, err := reverse.Load(ctx, src, c.Cfg.ReverseOptions(c.Logger)...)
	if err != nil {
		return nil, err
	}
	c.warn(inf.Diagnostics())
	return inf, nil
}

// Entities maps the given classes, or every class when none is given.
func (c *CommandContext) Entities(ctx context.Context, classes []string) ([]*mapping.Entity, error) {
	inf, err := c.Inferencer(ctx)
	if err != nil {
		return nil, err
	}
	var entities []*mapping.Entity
	if len(classes) == 0 {
		if entities, err = inf.MapAll(ctx); err != nil {
			return nil, err
		}
	} else {
		for _, class := range classes {
			e, err := inf.Map(class)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
	}
	for _, e := range entities {
		c.warn(e.Diagnostics)
	}
	return entities, nil
}

func (c *CommandContext) warn(diags []mapping.Diagnostic) {
	for _, d := range diags {
		c.Logger.Warn(d.Message,
			"kind", d.Kind,
			"entity", d.Entity,
			"table", d.Table,
			"field", d.Field,
		)
	}
}
