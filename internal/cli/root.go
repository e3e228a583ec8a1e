// Package cli provides the command-line interface for schemamap.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/internal/cli/commands"
	"github.com/syssam/schemamap/internal/cli/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "schemamap",
		Short: "Infer ORM mapping metadata from a relational schema",
		Long: `schemamap reverse-engineers entity mappings from an existing database.

Tables become entity classes, columns become fields, and foreign keys become
one-to-one, many-to-one, one-to-many and many-to-many associations. Pure link
tables are folded into many-to-many associations.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			cmd.SetContext(config.NewContext(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}` + " (" + GitCommit + ")\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./schemamap.yaml)")
	rootCmd.PersistentFlags().String("dialect", "", "database dialect (mysql|postgres|sqlite)")
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")
	rootCmd.PersistentFlags().String("snapshot", "", "read tables from a snapshot file instead of the database")
	rootCmd.PersistentFlags().String("schema", "", "restrict inference to one schema")
	rootCmd.PersistentFlags().String("namespace", "", "namespace of generated class names")
	rootCmd.PersistentFlags().String("repository", "", "custom repository class copied into every entity")
	rootCmd.PersistentFlags().Bool("foreign-keys", true, "treat foreign keys as enforced by the platform")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (yaml|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mysql", "postgres", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewMapCommand())
	rootCmd.AddCommand(commands.NewGenCommand())
	rootCmd.AddCommand(commands.NewGraphQLCommand())

	return rootCmd
}

// NewLogger returns a text logger on w. Verbose lowers the level to debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
